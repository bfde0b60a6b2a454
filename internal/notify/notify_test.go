package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggingForwardsAndLogs(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	var got []Event
	n := Logging(zap.New(core), Func(func(e Event) { got = append(got, e) }))
	n.Notify(Event{Message: "boom", Seq: 3})

	require.Len(t, got, 1)
	assert.Equal(t, Event{Message: "boom", Seq: 3}, got[0])

	entries := logs.FilterMessage("notifying user of failed fetch").All()
	require.Len(t, entries, 1)
	assert.Equal(t, uint64(3), entries[0].ContextMap()["seq"])
}

func TestLoggingWithNilNext(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	Logging(zap.New(core), nil).Notify(Event{Message: "x"})
	assert.Equal(t, 1, logs.Len())
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	Writer(&buf).Notify(Event{Message: "An error occurred while fetching packs"})
	assert.Equal(t, "An error occurred while fetching packs\n", buf.String())
}

func TestToastTakeClears(t *testing.T) {
	var toast Toast

	_, ok := toast.Take()
	assert.False(t, ok)

	toast.Notify(Event{Message: "first", Seq: 1})
	toast.Notify(Event{Message: "second", Seq: 2})

	e, ok := toast.Take()
	require.True(t, ok)
	assert.Equal(t, "second", e.Message)

	_, ok = toast.Take()
	assert.False(t, ok)
}

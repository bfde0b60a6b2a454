package packs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *HTTPClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	client, err := NewHTTPClient(server.URL+"/v1/", opts...)
	require.NoError(t, err)
	return client
}

func TestPacksRequestsQuantityPath(t *testing.T) {
	var gotPath, gotMethod string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		_, _ = w.Write([]byte(`{"5":"5","20":"1"}`))
	})

	got, err := client.Packs(context.Background(), 29)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/v1/packs/29", gotPath)
	assert.Equal(t, ResultSet{5: 5, 20: 1}, got)
}

func TestPacksZeroQuantityEmptyObject(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	})

	got, err := client.Packs(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "/v1/packs/0", gotPath)
	assert.Empty(t, got)
}

func TestPacksAcceptsNumericCounts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"250":1,"500":"2"}`))
	})

	got, err := client.Packs(context.Background(), 1250)
	require.NoError(t, err)
	assert.Equal(t, ResultSet{250: 1, 500: 2}, got)
}

func TestPacksNon2xxIsFetchFailed(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError, http.StatusBadGateway} {
		status := status
		t.Run(http.StatusText(status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
				_, _ = w.Write([]byte(`{"5":"1"}`))
			})

			got, err := client.Packs(context.Background(), 5)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFetchFailed))
			assert.Nil(t, got)
		})
	}
}

func TestPacksMalformedBodyIsFetchFailed(t *testing.T) {
	bodies := []string{
		``,
		`null`,
		`[]`,
		`{"five":"1"}`,
		`{"0":"1"}`,
		`{"5":"-1"}`,
		`{"5":"abc"}`,
		`{"5":true}`,
	}

	for _, body := range bodies {
		body := body
		t.Run(body, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			_, err := client.Packs(context.Background(), 1)
			assert.ErrorIs(t, err, ErrFetchFailed)
		})
	}
}

func TestPacksTransportErrorIsFetchFailed(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client, err := NewHTTPClient(baseURL)
	require.NoError(t, err)

	_, err = client.Packs(context.Background(), 1)
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestPacksTimeoutIsFetchFailed(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(20*time.Millisecond))

	_, err := client.Packs(context.Background(), 1)
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestPacksWithRateLimitWaitsInsteadOfFailing(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}, WithRateLimit(50, 1))

	for i := 0; i < 3; i++ {
		_, err := client.Packs(context.Background(), i)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), hits.Load())
}

func TestPacksRateLimitHonoursContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, WithRateLimit(0.001, 1))

	_, err := client.Packs(context.Background(), 1)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = client.Packs(ctx, 2)
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestNewHTTPClientValidatesBaseURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://example.com", "not a url", "http://"} {
		_, err := NewHTTPClient(raw)
		assert.Error(t, err, "base URL %q", raw)
	}

	client, err := NewHTTPClient("https://api.example.com/v1/?x=1")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1", client.BaseURL())
	assert.Equal(t, "https://api.example.com/v1/packs/42", client.Endpoint(42))
}

func TestResultSetUnmarshalWrapsMalformed(t *testing.T) {
	var rs ResultSet
	err := json.Unmarshal([]byte(`{"x":"1"}`), &rs)
	assert.ErrorIs(t, err, ErrMalformedResultSet)
}

func TestResultSetClone(t *testing.T) {
	original := ResultSet{5: 1}
	clone := original.Clone()
	clone[5] = 9

	assert.Equal(t, 1, original[5])
	assert.NotNil(t, ResultSet(nil).Clone())
}

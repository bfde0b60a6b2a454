package fetch

import (
	"time"

	"github.com/eugenenazirov/package-shark/internal/packs"
)

// FailureMessage is shown to the user when a lookup fails.
const FailureMessage = "An error occurred while fetching packs"

// Status is the lookup status visible to the view.
type Status int

const (
	// Idle means no lookup owns the view.
	Idle Status = iota
	// InFlight means the latest issued lookup has not resolved yet.
	InFlight
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case InFlight:
		return "in-flight"
	default:
		return "unknown"
	}
}

// State is the status plus the latest issued sequence number.
type State struct {
	Status Status
	Seq    uint64
}

// Request is an issued lookup. Quantity is captured at issue time.
type Request struct {
	Seq      uint64
	Quantity int
	IssuedAt time.Time
}

// Outcome is the raw result of running a Request.
type Outcome struct {
	Request
	Result packs.ResultSet
	Err    error
}

// Resolution reports what Complete did with an Outcome.
type Resolution int

const (
	// Superseded means the outcome was discarded without touching state.
	Superseded Resolution = iota
	// Applied means the outcome replaced the result set.
	Applied
	// Failed means the user was notified and the result set stays empty.
	Failed
)

func (r Resolution) String() string {
	switch r {
	case Applied:
		return "applied"
	case Failed:
		return "failed"
	default:
		return "superseded"
	}
}

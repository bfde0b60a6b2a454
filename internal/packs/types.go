package packs

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ResultSet maps a pack size to the number of packs of that size.
type ResultSet map[int]int

// Clone returns an independent copy. A nil set clones to an empty one.
func (r ResultSet) Clone() ResultSet {
	out := make(ResultSet, len(r))
	for size, count := range r {
		out[size] = count
	}
	return out
}

// UnmarshalJSON accepts an object with decimal-string keys whose values are
// either decimal strings or JSON numbers, e.g. {"5":"3","2":1}.
func (r *ResultSet) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResultSet, err)
	}
	if raw == nil {
		return fmt.Errorf("%w: expected an object", ErrMalformedResultSet)
	}

	out := make(ResultSet, len(raw))
	for key, value := range raw {
		size, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || size <= 0 {
			return fmt.Errorf("%w: invalid pack size %q", ErrMalformedResultSet, key)
		}
		count, err := parseCount(value)
		if err != nil {
			return fmt.Errorf("%w: pack %d: %v", ErrMalformedResultSet, size, err)
		}
		out[size] = count
	}

	*r = out
	return nil
}

func parseCount(value json.RawMessage) (int, error) {
	var text string
	if err := json.Unmarshal(value, &text); err != nil {
		var number json.Number
		if err := json.Unmarshal(value, &number); err != nil {
			return 0, fmt.Errorf("count must be a string or number, got %s", value)
		}
		text = number.String()
	}

	count, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", text)
	}
	if count < 0 {
		return 0, fmt.Errorf("negative count %d", count)
	}
	return count, nil
}

// Client looks up the pack breakdown for a quantity.
type Client interface {
	Packs(ctx context.Context, quantity int) (ResultSet, error)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, quantity int) (ResultSet, error)

// Packs calls f.
func (f ClientFunc) Packs(ctx context.Context, quantity int) (ResultSet, error) {
	return f(ctx, quantity)
}

package quantity

import (
	"math"
	"strconv"
	"strings"
)

const (
	// Step100 is the small adjustment step.
	Step100 = 100
	// Step1000 is the large adjustment step.
	Step1000 = 1000
)

// Normalize turns raw text into a quantity. It reads an optional sign and the
// leading decimal digits, ignores anything after them, and clamps the result
// to zero. Text without leading digits yields zero.
func Normalize(text string) int {
	s := strings.TrimLeft(text, " \t\r\n")
	negative := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		negative = s[0] == '-'
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || negative {
		return 0
	}

	value, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		// only range errors are possible on a pure digit string
		return math.MaxInt
	}
	return clamp(value)
}

func clamp(v int64) int {
	if v < 0 {
		return 0
	}
	if v > math.MaxInt {
		return math.MaxInt
	}
	return int(v)
}

// Model is the canonical quantity. The zero value holds 0 and is ready to use.
type Model struct {
	value int
}

// New returns a Model set to the clamped initial value.
func New(initial int) *Model {
	m := &Model{}
	m.Set(initial)
	return m
}

// Value returns the current quantity.
func (m *Model) Value() int {
	return m.value
}

// Text returns the canonical string form shown in the input field.
func (m *Model) Text() string {
	return strconv.Itoa(m.value)
}

// SetText normalizes raw input and stores it. The returned text replaces
// whatever the user typed.
func (m *Model) SetText(text string) string {
	m.value = Normalize(text)
	return m.Text()
}

// Set stores v clamped to zero.
func (m *Model) Set(v int) {
	if v < 0 {
		v = 0
	}
	m.value = v
}

// Increment adds by, saturating at math.MaxInt instead of wrapping.
func (m *Model) Increment(by int) {
	if by < 0 {
		m.Decrement(-by)
		return
	}
	if m.value > math.MaxInt-by {
		m.value = math.MaxInt
		return
	}
	m.Set(m.value + by)
}

// Decrement subtracts by, flooring at zero.
func (m *Model) Decrement(by int) {
	if by < 0 {
		m.Increment(-by)
		return
	}
	m.Set(m.value - by)
}

// Reset sets the quantity to zero.
func (m *Model) Reset() {
	m.Set(0)
}

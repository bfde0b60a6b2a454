// Package presenter derives the display rows for a result set. The rows are a
// pure function of the set and are rebuilt on every render.
package presenter

import (
	"sort"
	"strconv"
	"time"

	"github.com/eugenenazirov/package-shark/internal/packs"
)

// StaggerStep is the entrance delay added per row position.
const StaggerStep = 50 * time.Millisecond

// PackRow is one rendered line of the breakdown.
type PackRow struct {
	PackSize     int
	Quantity     int
	DisplayIndex int
}

// Title returns the row heading, e.g. "Pack of 250".
func (r PackRow) Title() string {
	return "Pack of " + strconv.Itoa(r.PackSize)
}

// Count returns the row count label, e.g. "x3".
func (r PackRow) Count() string {
	return "x" + strconv.Itoa(r.Quantity)
}

// Delay is the entrance delay for the row, derived only from its position.
func (r PackRow) Delay() time.Duration {
	return time.Duration(r.DisplayIndex) * StaggerStep
}

// Rows sorts the set by pack size, largest first.
func Rows(set packs.ResultSet) []PackRow {
	sizes := make([]int, 0, len(set))
	for size := range set {
		sizes = append(sizes, size)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))

	rows := make([]PackRow, len(sizes))
	for i, size := range sizes {
		rows[i] = PackRow{PackSize: size, Quantity: set[size], DisplayIndex: i}
	}
	return rows
}

// Visible returns the rows whose entrance delay has elapsed.
func Visible(rows []PackRow, elapsed time.Duration) []PackRow {
	n := 0
	for n < len(rows) && rows[n].Delay() <= elapsed {
		n++
	}
	return rows[:n]
}

// RevealDuration is the time after which every row is visible.
func RevealDuration(rows []PackRow) time.Duration {
	if len(rows) == 0 {
		return 0
	}
	return rows[len(rows)-1].Delay()
}

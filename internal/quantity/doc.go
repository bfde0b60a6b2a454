// Package quantity holds the order quantity entered by the user. Every path
// that mutates it (typed text or the adjustment controls) goes through the
// same clamping rule, so the stored value is always a non-negative integer.
package quantity

// Package fetch orchestrates pack lookups. Every lookup is tagged with a
// sequence number when it is issued, and only the most recently issued lookup
// may change the visible state when it resolves. Earlier lookups are left to
// finish and are then discarded.
package fetch

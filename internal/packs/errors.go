package packs

import "errors"

var (
	// ErrFetchFailed is returned for every failed lookup: transport errors,
	// non-2xx responses and bodies that do not decode into a ResultSet.
	ErrFetchFailed = errors.New("fetch packs failed")
	// ErrMalformedResultSet is wrapped together with ErrFetchFailed when the
	// response body is not a pack size to count mapping.
	ErrMalformedResultSet = errors.New("malformed pack result set")
)

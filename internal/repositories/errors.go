// Package repositories holds the in-memory stores. Records live for the
// process lifetime and are gone on restart; there is no persistence layer
// behind them.
package repositories

import "errors"

// ErrNotFound is returned when a lookup id has no record. Callers match it
// with errors.Is.
var ErrNotFound = errors.New("record not found")

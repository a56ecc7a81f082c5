// Package mppilog is a thin facade over the logger type used throughout
// this repository, kept as its own package so call sites depend on a name
// that belongs to this domain rather than importing the logging library
// directly everywhere.
package mppilog

import (
	"testing"

	"github.com/edaniels/golog"
)

// Logger is the logging interface the controller package accepts at
// configuration time.
type Logger = golog.Logger

// NewDevelopment returns a logger suitable for interactive use, named after
// the component constructing it.
func NewDevelopment(name string) Logger {
	return golog.NewDevelopmentLogger(name)
}

// NewTest returns a logger that writes to the test's own output, for use in
// table-driven tests that need to observe soft-warning log lines.
func NewTest(tb testing.TB) Logger {
	return golog.NewTestLogger(tb)
}

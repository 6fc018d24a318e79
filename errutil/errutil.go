package errutil

import (
	"fmt"
)

const debug = false

// FatalIf panics on a non-nil error. For paths where an error means the
// process cannot meaningfully continue, such as harness setup.
func FatalIf(err error) {
	if err == nil {
		return
	}
	panic(fmt.Sprintf("FATAL: %v", err))
}

// Bug panics with the formatted message when the package debug flag is
// on; compiled out otherwise.
func Bug(format string, msg ...any) {
	if debug {
		panic(fmt.Sprintf(format, msg...))
	}
}

// BugOn is Bug gated on a condition.
func BugOn(cond bool, format string, msg ...any) {
	if debug && cond {
		Bug(format, msg...)
	}
}

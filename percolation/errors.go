package percolation

import "fmt"

// assertf panics with a formatted message when cond is false. It is used
// throughout this package for contract violations (spec.md §7): invalid
// dimensions, a factorial argument outside the supported range, and label
// overflow are all programming errors that must fail fast rather than be
// recovered from.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

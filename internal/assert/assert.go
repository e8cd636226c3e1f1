// Package assert guards invariants that must never be false for any
// validly constructed position. A failing assertion is a program error
// (bad caller, broken invariant), never a condition a legitimate input
// can trigger — FEN parsing errors are returned as values, never routed
// through here.
package assert

import "fmt"

// Assert panics with a formatted message if cond is false.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}

package ir2

import "fmt"

// invariant panics with a formatted message if cond is false, marking a
// condition codegen or a pass must never violate.
func invariant(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

package debug

import (
	"fmt"
	"os"
)

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}

// Warnf always logs, independent of any debug switch. It carries the
// "keep going" notices the transform pipeline emits when a rule fails.
func Warnf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "xj: "+msg, args...)
}

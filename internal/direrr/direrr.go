// Package direrr holds the two error families spec §7 names: a
// Malformed input reaches the pass only when upstream parsing/validation
// should already have rejected it (behavior past that point is
// unspecified, so these are carried for diagnostics rather than treated
// as something the pass recovers from), and an Internal invariant
// violation (a dangling Location, a leap stack popped while empty) is
// always fatal and meant to be forwarded to the host pipeline as a
// compiler-internal error rather than shown to whoever wrote the source.
package direrr

import (
	"errors"
	"fmt"
)

// Malformed describes input the pass encountered that a well-formed
// ECMAScript AST should never contain (an unresolved break/continue
// label, `function.sent` outside a generator body).
type Malformed struct {
	Where  string // e.g. "break statement", "function.sent"
	Detail string
}

func (e *Malformed) Error() string {
	return fmt.Sprintf("direrr: malformed input at %s: %s", e.Where, e.Detail)
}

// Internal describes a violation of one of the pass's own bookkeeping
// invariants — something only a bug in the pass itself, never in the
// input, could cause.
type Internal struct {
	Where  string
	Detail string
}

func (e *Internal) Error() string {
	return fmt.Sprintf("direrr: internal invariant violated at %s: %s", e.Where, e.Detail)
}

// IsInternal reports whether err is (or wraps) an *Internal, for the
// Driver's decision to forward it via internal/hostrpc before returning.
func IsInternal(err error) bool {
	var e *Internal
	return errors.As(err, &e)
}

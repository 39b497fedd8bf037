// Package identgen is the "external collaborator" spec §1 and §5 assume
// exists: something that provides the `private_ident!` primitive and
// guarantees global uniqueness of a generated name within a compilation
// unit, even across units transformed concurrently in the same process
// (CLI batch mode, a long-lived LSP-style host).
//
// Seeding each Allocator from a fresh UUID rather than a shared counter
// decouples one unit's generated names from whatever else is running.
// Within one Pass.Run the salt is fixed once, and every name derived
// from it is a pure function of a monotonic index. Two runs over the same
// input get different salts, so names built from the salt differ between
// runs.
package identgen

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Allocator hands out hygienic identifier names salted per compilation
// unit. The zero value is not usable; construct with New.
type Allocator struct {
	salt string
	seq  int
}

// New seeds an Allocator with an 8-hex-character salt derived from a
// fresh UUID. Call once per Pass.Run.
func New() *Allocator {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return &Allocator{salt: raw[:8]}
}

// Salt returns this allocator's per-unit salt, for components (like
// caseh.Builder) that need to derive their own names from the same
// hygiene root without going through Next.
func (a *Allocator) Salt() string { return a.salt }

// Next returns a fresh name of the form "_<prefix><salt><n>", guaranteed
// unique within this Allocator's unit.
func (a *Allocator) Next(prefix string) string {
	n := a.seq
	a.seq++
	return "_" + prefix + a.salt + strconv.Itoa(n)
}

// Package caseh is the Case Handler from spec §4.4 — the core of the
// whole pass. It translates a block of statements into the flat list of
// numbered SwitchCases that drive the runtime's dispatch loop, spilling
// operands across yield suspension points and routing abrupt completions
// through the Leap Manager.
//
// The Location-allocation discipline (allocate before you reference,
// patch forward jumps once the target is marked) is lifted directly from
// the teacher's bytecode compiler: compiler.emitJump/patchJump hand out a
// byte offset and backpatch it once the jump target is known; Builder.Alloc
// /Mark do the same thing one level more abstract, with an integer Location
// standing in for a byte offset and a listing index standing in for the
// chunk's write cursor.
package caseh

import (
	"fmt"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/leap"
)

// Case is one flat entry of the emitted dispatch switch (spec §3's Case
// entity). IsEnd marks the terminal `case "end":` sentinel; otherwise Loc
// is the numeric Location this case's body begins at.
type Case struct {
	Loc   int
	IsEnd bool
	Body  []ast.Statement
}

// ToSwitchCase renders a Case as the ast.SwitchCase the Driver splices
// into the worker function's `switch (_ctx.prev = _ctx.next) { ... }`.
func (c Case) ToSwitchCase() *ast.SwitchCase {
	test := ast.Expression(ast.Str("end"))
	if !c.IsEnd {
		test = ast.NumLoc(c.Loc)
	}
	return &ast.SwitchCase{Span: ast.Synthetic, Test: test, Consequent: c.Body}
}

// Builder accumulates one generator's exploded case listing. Construct
// one per generator via New; it is not reusable across generators (matches
// spec §5: "per-unit mutable accumulators ... reset per compilation unit",
// here scoped one level deeper, per generator within the unit).
type Builder struct {
	Leaps *leap.Manager

	ctxIdent string
	salt     string
	runtime  string // the Driver's configured runtime binding (spec's rt.keys()/rt.values())

	next    int // monotonic Location counter
	listing []*Case
	marks   map[int]int // Location -> index into listing

	tempSeq  int
	slotSeq  int // delegateYield result-slot counter (_ctx.tN), separate from tempSeq
	temps    []string
}

// New creates a Builder for one generator. ctxIdent is the name the
// emitted code uses for the context parameter (e.g. "_ctx"); salt
// disambiguates TempVar names across generators transformed in the same
// process (see internal/identgen — the Driver is the one that mints salt).
// runtime is the Driver's configured runtime binding (config.Config.
// RuntimeBinding), needed here because for-in/for-of lowering calls the
// runtime's keys()/values() enumerator helper directly.
func New(ctxIdent, salt, runtime string) *Builder {
	b := &Builder{
		Leaps:    &leap.Manager{},
		ctxIdent: ctxIdent,
		salt:     salt,
		runtime:  runtime,
		marks:    make(map[int]int),
	}
	b.Mark(b.Alloc()) // case 0 always exists, even for an empty body
	return b
}

// Runtime returns an Identifier referencing the configured runtime
// binding (e.g. `rt` or `regeneratorRuntime`), for call sites outside
// the Driver that still need to reach the runtime object directly.
func (b *Builder) Runtime() *ast.Identifier { return ast.Ident(b.runtime) }

// Ctx returns an Identifier referencing the context parameter.
func (b *Builder) Ctx() *ast.Identifier { return ast.Ident(b.ctxIdent) }

// CtxField returns `_ctx.<field>`.
func (b *Builder) CtxField(field string) *ast.MemberExpression {
	return ast.Dot(b.Ctx(), field)
}

// Alloc allocates a fresh Location. Locations are always allocated before
// the Case that will reference them is marked, so forward jumps (if/else,
// loop exits, switch dispatch, try/catch/finally boundaries) can be
// emitted before their target exists — the "arena + index" pattern spec
// §9 calls out to avoid any cyclic ownership between emitted statements
// and the listing.
func (b *Builder) Alloc() int {
	loc := b.next
	b.next += 2 // even locations only, matching the teacher's habit of
	// leaving room between allocated offsets (here: so a Location can
	// never collide with one produced by a different allocation order in
	// a future incremental change to this function — purely a hygiene
	// margin, not load-bearing).
	return loc
}

// Mark opens a new listing entry at loc and makes it the current case
// that Emit appends to.
func (b *Builder) Mark(loc int) {
	if _, exists := b.marks[loc]; exists {
		panic(fmt.Sprintf("caseh: Location %d marked twice", loc))
	}
	b.listing = append(b.listing, &Case{Loc: loc})
	b.marks[loc] = len(b.listing) - 1
}

// Emit appends statements to the current (most recently marked) case.
func (b *Builder) Emit(stmts ...ast.Statement) {
	if len(b.listing) == 0 {
		panic("caseh: Emit before any Mark")
	}
	cur := b.listing[len(b.listing)-1]
	cur.Body = append(cur.Body, stmts...)
}

// SetNext emits `_ctx.next = <loc>;`.
func (b *Builder) SetNext(loc int) {
	b.Emit(ast.ExprStmt(ast.Assign(b.CtxField("next"), ast.NumLoc(loc))))
}

// Jump emits `_ctx.next = loc; break;` — a plain in-switch jump with no
// finalizers to cross (spec §4.4's Break/Continue "else" branch).
func (b *Builder) Jump(loc int) {
	b.SetNext(loc)
	b.Emit(&ast.BreakStatement{Span: ast.Synthetic})
}

// NewTemp allocates a fresh TempVar name for operand spilling, hoisted
// into the enclosing function's single `var` block by the Driver once
// Finish returns Temps().
func (b *Builder) NewTemp() string {
	name := fmt.Sprintf("_t%s%d", b.salt, b.tempSeq)
	b.tempSeq++
	b.temps = append(b.temps, name)
	return name
}

// NewDelegateSlot allocates a context-slot name for a `yield*`'s
// delegateYield result (spec §3: "Context slots ... delegateYield(iter,
// resultName, nextLoc)"). Unlike NewTemp, this is a property on _ctx
// itself and needs no outer-function declaration.
func (b *Builder) NewDelegateSlot() string {
	name := fmt.Sprintf("t%d", b.slotSeq)
	b.slotSeq++
	return name
}

// Temps returns every TempVar name allocated during the walk, for the
// Driver to fold into the outer function's hoisted `var` list.
func (b *Builder) Temps() []string { return b.temps }

// Finish appends the two terminal cases spec §4.4 mandates and flattens
// the listing into the ast.SwitchCase list for the worker's dispatch
// switch. Must be called exactly once, after the whole body has been
// exploded.
func (b *Builder) Finish() []*ast.SwitchCase {
	finalLoc := b.Alloc()
	b.Mark(finalLoc) // falls through into "end" with an empty body
	out := make([]*ast.SwitchCase, 0, len(b.listing)+1)
	for _, c := range b.listing {
		out = append(out, c.ToSwitchCase())
	}
	end := &Case{IsEnd: true, Body: []ast.Statement{ast.Ret(ast.Call(b.CtxField("stop")))}}
	out = append(out, end.ToSwitchCase())
	return out
}

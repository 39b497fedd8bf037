// Package driver implements the Driver/Pass from spec §4.5: it walks a
// compilation unit looking for generator functions at every syntactic
// position spec.md names, runs each one through the Hoister, the
// function.sent rewriter and the Case Handler (in that order, per spec
// §4.4's "data flow"), and rewires the call site into the runtime's
// wrap()/mark() protocol.
package driver

import (
	"fmt"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/config"
	"github.com/funvibe/funxy/internal/direrr"
	"github.com/funvibe/funxy/internal/hostrpc"
	"github.com/funvibe/funxy/internal/identgen"
)

// Pass carries the per-compilation-unit mutable accumulators spec §5
// names: a lazily-bound runtime identifier, and (through p.ids) the
// identifier-hygiene salt every lowered generator in this unit shares.
// Construct one per unit via New; Run resets what needs resetting and
// may be called again on the same Pass for a subsequent unit.
type Pass struct {
	cfg      config.Config
	reporter *hostrpc.Reporter

	ids     *identgen.Allocator
	rtUsed  bool
	calleeN int // counter for synthesized "_callee" names within this unit
	genN    int // count of generator surfaces lowered in the current Run
}

// RuntimeUsed reports whether the most recent Run needed the runtime
// binding — cmd/regenerate surfaces this in its per-unit cache entry.
func (p *Pass) RuntimeUsed() bool { return p.rtUsed }

// GeneratorCount reports how many generator surfaces the most recent
// Run lowered, for cmd/regenerate's summary line.
func (p *Pass) GeneratorCount() int { return p.genN }

// New constructs a Pass. reporter may be nil (equivalent to an
// unconfigured host endpoint — see internal/hostrpc.New("")).
func New(cfg config.Config, reporter *hostrpc.Reporter) *Pass {
	return &Pass{cfg: cfg, reporter: reporter}
}

// Run transforms one compilation unit per spec §4.5, returning a new
// Program with every generator function lowered away. An
// *direrr.Internal bubbling up from a nested stage is reported via
// internal/hostrpc before being returned to the caller unwrapped, per
// spec §7's propagation rule ("errors bubble up to the host compiler
// driver; nothing is retried").
func (p *Pass) Run(unit *ast.Program) (out *ast.Program, err error) {
	p.ids = identgen.New()
	p.rtUsed = false
	p.calleeN = 0
	p.genN = 0

	defer func() {
		if r := recover(); r != nil {
			internalErr := &direrr.Internal{Where: "driver.Pass.Run", Detail: fmt.Sprintf("%v", r)}
			if p.reporter != nil {
				p.reporter.ReportError(unit.SourceType, internalErr)
			}
			err = internalErr
		}
	}()

	body := p.transformStatementList(unit.Body)
	if p.rtUsed {
		body = append([]ast.Statement{p.requireStatement()}, body...)
	}

	return &ast.Program{Span: unit.Span, SourceType: unit.SourceType, Body: body}, nil
}

// runtimeDot marks the runtime binding as used and returns `<rt>.<field>`
// (spec §4.5 step 1: the binding is "lazily allocated on first
// encounter", which in this AST-to-AST setting just means recording
// that at least one generator in the unit needed it, so Run knows to
// prepend the require() declaration).
func (p *Pass) runtimeDot(field string) *ast.MemberExpression {
	p.rtUsed = true
	return ast.Dot(ast.Ident(p.cfg.RuntimeBinding), field)
}

// requireStatement builds `var <rt> = require("<runtime_import>");`,
// spec §4.5 step 1 / §6's "Module-level emission" (at most one per
// Module or Script, at index 0).
func (p *Pass) requireStatement() *ast.VariableDeclaration {
	return &ast.VariableDeclaration{
		Span: ast.Synthetic, Kind: "var",
		Declarations: []*ast.VariableDeclarator{{
			Span: ast.Synthetic,
			Id:   ast.Ident(p.cfg.RuntimeBinding),
			Init: ast.Call(ast.Ident("require"), ast.Str(p.cfg.RuntimeImport)),
		}},
	}
}

// nextCallee hands out a fresh "_callee", "_callee2", ... name for an
// anonymous generator expression, scoped to this Pass's current Run.
func (p *Pass) nextCallee() string {
	p.calleeN++
	if p.calleeN == 1 {
		return "_callee"
	}
	return fmt.Sprintf("_callee%d", p.calleeN)
}

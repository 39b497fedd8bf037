// Package hoist implements spec §4.2's Hoister: a shallow AST walk that
// lifts `var` declarator names (and arguments-rebinding parameter aliases)
// out of a generator body so the Driver can declare them once at the head
// of the outer, non-generator function, leaving the inner worker free of
// `var`.
//
// "Shallow" means the walk never descends into a nested function's own
// body — the same boundary the teacher's semantic walker respects when
// collecting a scope's own bindings (internal/analyzer's per-scope
// traversal never reaches into a FunctionDeclaration it happens to find
// while walking a statement list; this is that rule applied to lifting
// instead of name resolution).
package hoist

import "github.com/funvibe/funxy/internal/ast"

// Result is what the Driver needs to build the single outer `var`
// declaration (spec §3 invariant: "All hoisted names are declared exactly
// once at the head of the outer ... function body").
type Result struct {
	Vars      []string // every `var` declarator name found, in first-seen order
	Arguments []string // parameter names re-bound in the body (matched by name only; each is in Vars too)
}

// Hoist strips every `var` declarator from body (replacing an
// initializer with a plain assignment statement at the same position)
// and returns the stripped body plus the names to declare outside.
//
// params is the generator's own formal parameter list. Any hoisted
// binding (a `var` declarator, a catch parameter, a for/for-in/for-of
// `var`) whose name is in params is recorded in Result.Arguments as well
// as in Result.Vars. The match is by name alone: the initializer is not
// inspected, so `var p = arguments` and `var p = 1` are recorded alike.
func Hoist(body *ast.BlockStatement, params []string) (*ast.BlockStatement, Result) {
	h := &hoister{paramSet: toSet(params)}
	newBody := h.block(body)
	return newBody, Result{Vars: h.vars, Arguments: h.arguments}
}

func toSet(names []string) map[string]bool {
	s := make(map[string]bool, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

type hoister struct {
	paramSet map[string]bool
	vars     []string
	varSeen  map[string]bool
	arguments []string
	argSeen   map[string]bool
}

func (h *hoister) addVar(name string) {
	if h.varSeen == nil {
		h.varSeen = make(map[string]bool)
	}
	if h.varSeen[name] {
		return
	}
	h.varSeen[name] = true
	h.vars = append(h.vars, name)
}

func (h *hoister) addArgumentsAlias(name string) {
	if h.argSeen == nil {
		h.argSeen = make(map[string]bool)
	}
	if h.argSeen[name] {
		return
	}
	h.argSeen[name] = true
	h.arguments = append(h.arguments, name)
}

// block rewrites a statement list in place (conceptually): each statement
// is replaced by its hoisted form, recursing into every nested statement
// that is still part of *this* function's body.
func (h *hoister) block(b *ast.BlockStatement) *ast.BlockStatement {
	if b == nil {
		return nil
	}
	out := make([]ast.Statement, 0, len(b.Body))
	for _, s := range b.Body {
		out = append(out, h.statement(s)...)
	}
	return ast.CloneShallow(b, out)
}

// statement returns the replacement(s) for one statement. A
// VariableDeclaration of kind "var" expands to zero or more
// ExpressionStatements (one per initialized declarator); everything else
// maps 1:1 but with nested blocks/bodies recursively hoisted.
func (h *hoister) statement(s ast.Statement) []ast.Statement {
	switch n := s.(type) {
	case *ast.VariableDeclaration:
		if n.Kind != "var" {
			return []ast.Statement{n}
		}
		var out []ast.Statement
		for _, d := range n.Declarations {
			h.bindPattern(d.Id)
			if d.Init != nil {
				out = append(out, ast.ExprStmt(ast.Assign(patternAsExpr(d.Id), d.Init)))
			}
		}
		return out

	case *ast.BlockStatement:
		return []ast.Statement{h.block(n)}

	case *ast.IfStatement:
		n2 := *n
		n2.Consequent = h.single(n.Consequent)
		if n.Alternate != nil {
			n2.Alternate = h.single(n.Alternate)
		}
		return []ast.Statement{&n2}

	case *ast.ForStatement:
		n2 := *n
		if decl, ok := n.Init.(*ast.VariableDeclaration); ok && decl.Kind == "var" {
			n2.Init = h.forInit(decl)
		}
		n2.Body = h.single(n.Body)
		return []ast.Statement{&n2}

	case *ast.ForInStatement:
		n2 := *n
		n2.Left = h.forInLeft(n.Left)
		n2.Body = h.single(n.Body)
		return []ast.Statement{&n2}

	case *ast.ForOfStatement:
		n2 := *n
		n2.Left = h.forInLeft(n.Left)
		n2.Body = h.single(n.Body)
		return []ast.Statement{&n2}

	case *ast.WhileStatement:
		n2 := *n
		n2.Body = h.single(n.Body)
		return []ast.Statement{&n2}

	case *ast.DoWhileStatement:
		n2 := *n
		n2.Body = h.single(n.Body)
		return []ast.Statement{&n2}

	case *ast.SwitchStatement:
		n2 := *n
		cases := make([]*ast.SwitchCase, len(n.Cases))
		for i, c := range n.Cases {
			c2 := *c
			var body []ast.Statement
			for _, cs := range c.Consequent {
				body = append(body, h.statement(cs)...)
			}
			c2.Consequent = body
			cases[i] = &c2
		}
		n2.Cases = cases
		return []ast.Statement{&n2}

	case *ast.TryStatement:
		n2 := *n
		n2.Block = h.block(n.Block)
		if n.Handler != nil {
			handler := *n.Handler
			handler.Body = h.block(n.Handler.Body)
			n2.Handler = &handler
			// The Case Handler assigns the caught value to this name via
			// `e = _ctx.catch(firstLoc);` inside the worker, which closes
			// over the outer function's scope the same way it does for any
			// other cross-case reference — so the catch parameter needs the
			// same outer-function declaration a `var` gets, even though it
			// was never itself a `var`.
			if n.Handler.Param != nil {
				h.bindPattern(n.Handler.Param)
			}
		}
		if n.Finalizer != nil {
			n2.Finalizer = h.block(n.Finalizer)
		}
		return []ast.Statement{&n2}

	case *ast.LabeledStatement:
		n2 := *n
		n2.Body = h.single(n.Body)
		return []ast.Statement{&n2}

	case *ast.FunctionDeclaration:
		// Nested function: its own `var`s belong to *its* scope, not ours.
		return []ast.Statement{n}

	default:
		return []ast.Statement{s}
	}
}

func (h *hoister) single(s ast.Statement) ast.Statement {
	out := h.statement(s)
	if len(out) == 1 {
		return out[0]
	}
	// A bare (non-block) statement position that expanded to multiple
	// statements (e.g. `for (var x = 1) ...` is already illegal JS, but a
	// single `var` with one declarator never expands to more than one
	// statement either) — wrap defensively so the tree stays well-formed.
	return ast.Block(out...)
}

func (h *hoister) forInit(decl *ast.VariableDeclaration) ast.Node {
	// `for (var x = 1; ...)` becomes `for (x = 1; ...)`, per spec §4.2.
	var exprs []ast.Expression
	for _, d := range decl.Declarations {
		h.bindPattern(d.Id)
		if d.Init != nil {
			exprs = append(exprs, ast.Assign(patternAsExpr(d.Id), d.Init))
		}
	}
	switch len(exprs) {
	case 0:
		return nil
	case 1:
		return exprs[0]
	default:
		return &ast.SequenceExpression{Span: ast.Synthetic, Expressions: exprs}
	}
}

func (h *hoister) forInLeft(left ast.Node) ast.Node {
	if decl, ok := left.(*ast.VariableDeclaration); ok && decl.Kind == "var" && len(decl.Declarations) == 1 {
		h.bindPattern(decl.Declarations[0].Id)
		return patternAsExpr(decl.Declarations[0].Id)
	}
	return left
}

// bindPattern records every name a pattern binds. Only Identifier is
// modeled in depth (spec's hoisting is syntactic name collection, not
// destructuring-aware beyond the top-level name); nested destructuring
// patterns pass through opaquely and are not walked for bound names,
// matching spec §1's "hoisting is syntactic, not scope-aware" non-goal.
func (h *hoister) bindPattern(p ast.Pattern) {
	if id, ok := p.(*ast.Identifier); ok {
		h.addVar(id.Name)
		if h.paramSet[id.Name] {
			h.addArgumentsAlias(id.Name)
		}
	}
}

func patternAsExpr(p ast.Pattern) ast.Expression {
	if e, ok := p.(ast.Expression); ok {
		return e
	}
	// Non-identifier patterns (destructuring) are out of the syntactic
	// hoist's depth; callers only reach this path for `var` declarators,
	// whose Id is overwhelmingly an Identifier in generator bodies that
	// actually need hoisting across yields.
	return ast.Ident("$$unsupported_pattern")
}

package driver

import "github.com/funvibe/funxy/internal/ast"

// transformStatementList is the per-scope entry point (spec §9's open
// question on `_marked` ordering: each statement list that declares a
// generator gets its own prepended `var` of marker bindings, in source
// order; nested lists get their own, not bubbled up to an ancestor).
func (p *Pass) transformStatementList(stmts []ast.Statement) []ast.Statement {
	var marked []*ast.VariableDeclarator
	out := make([]ast.Statement, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, p.transformStatement(s, &marked)...)
	}
	if len(marked) == 0 {
		return out
	}
	markerDecl := &ast.VariableDeclaration{Span: ast.Synthetic, Kind: "var", Declarations: marked}
	return append([]ast.Statement{markerDecl}, out...)
}

// transformSingle handles a single-statement body position (an `if`
// branch, a loop body) that is not already a block. A generator
// declaration can't legally appear there unbraced, but the position can
// still contain expressions needing transformExpr, or could expand to
// more than one statement if a future position-specific accumulator
// needs it — wrapped defensively in a block in that case.
func (p *Pass) transformSingle(s ast.Statement) ast.Statement {
	out := p.transformStatement(s, &[]*ast.VariableDeclarator{})
	if len(out) == 1 {
		return out[0]
	}
	return ast.Block(out...)
}

// transformStatement rewrites one statement, recursing into every
// nested statement list and expression. marked accumulates this
// statement's own list's `_marked = rt.mark(name)` declarators when s is
// itself a generator FunctionDeclaration.
func (p *Pass) transformStatement(s ast.Statement, marked *[]*ast.VariableDeclarator) []ast.Statement {
	switch n := s.(type) {
	case *ast.FunctionDeclaration:
		if n.IsGenerator {
			markerName := nextMarkerName(*marked)
			decl := p.lowerDeclaration(n, markerName)
			*marked = append(*marked, &ast.VariableDeclarator{
				Span: ast.Synthetic, Id: ast.Ident(markerName),
				Init: ast.Call(p.runtimeDot("mark"), ast.Ident(n.Id.Name)),
			})
			return []ast.Statement{decl}
		}
		n2 := *n
		n2.Body = ast.CloneShallow(n.Body, p.transformStatementList(n.Body.Body))
		return []ast.Statement{&n2}

	case *ast.BlockStatement:
		return []ast.Statement{ast.CloneShallow(n, p.transformStatementList(n.Body))}

	case *ast.ExpressionStatement:
		n2 := *n
		n2.Expression = p.transformExpr(n.Expression)
		return []ast.Statement{&n2}

	case *ast.VariableDeclaration:
		n2 := *n
		decls := make([]*ast.VariableDeclarator, len(n.Declarations))
		for i, d := range n.Declarations {
			d2 := *d
			if d.Init != nil {
				d2.Init = p.transformExpr(d.Init)
			}
			decls[i] = &d2
		}
		n2.Declarations = decls
		return []ast.Statement{&n2}

	case *ast.IfStatement:
		n2 := *n
		n2.Test = p.transformExpr(n.Test)
		n2.Consequent = p.transformSingle(n.Consequent)
		if n.Alternate != nil {
			n2.Alternate = p.transformSingle(n.Alternate)
		}
		return []ast.Statement{&n2}

	case *ast.ForStatement:
		n2 := *n
		if n.Init != nil {
			n2.Init = p.transformForInit(n.Init)
		}
		n2.Test = p.transformExpr(n.Test)
		n2.Update = p.transformExpr(n.Update)
		n2.Body = p.transformSingle(n.Body)
		return []ast.Statement{&n2}

	case *ast.ForInStatement:
		n2 := *n
		n2.Right = p.transformExpr(n.Right)
		n2.Body = p.transformSingle(n.Body)
		return []ast.Statement{&n2}

	case *ast.ForOfStatement:
		n2 := *n
		n2.Right = p.transformExpr(n.Right)
		n2.Body = p.transformSingle(n.Body)
		return []ast.Statement{&n2}

	case *ast.WhileStatement:
		n2 := *n
		n2.Test = p.transformExpr(n.Test)
		n2.Body = p.transformSingle(n.Body)
		return []ast.Statement{&n2}

	case *ast.DoWhileStatement:
		n2 := *n
		n2.Test = p.transformExpr(n.Test)
		n2.Body = p.transformSingle(n.Body)
		return []ast.Statement{&n2}

	case *ast.SwitchStatement:
		n2 := *n
		n2.Discriminant = p.transformExpr(n.Discriminant)
		cases := make([]*ast.SwitchCase, len(n.Cases))
		for i, c := range n.Cases {
			c2 := *c
			if c.Test != nil {
				c2.Test = p.transformExpr(c.Test)
			}
			c2.Consequent = p.transformStatementList(c.Consequent)
			cases[i] = &c2
		}
		n2.Cases = cases
		return []ast.Statement{&n2}

	case *ast.TryStatement:
		n2 := *n
		n2.Block = ast.CloneShallow(n.Block, p.transformStatementList(n.Block.Body))
		if n.Handler != nil {
			handler := *n.Handler
			handler.Body = ast.CloneShallow(n.Handler.Body, p.transformStatementList(n.Handler.Body.Body))
			n2.Handler = &handler
		}
		if n.Finalizer != nil {
			n2.Finalizer = ast.CloneShallow(n.Finalizer, p.transformStatementList(n.Finalizer.Body))
		}
		return []ast.Statement{&n2}

	case *ast.LabeledStatement:
		n2 := *n
		n2.Body = p.transformSingle(n.Body)
		return []ast.Statement{&n2}

	case *ast.ReturnStatement:
		n2 := *n
		n2.Argument = p.transformExpr(n.Argument)
		return []ast.Statement{&n2}

	case *ast.ThrowStatement:
		n2 := *n
		n2.Argument = p.transformExpr(n.Argument)
		return []ast.Statement{&n2}

	case *ast.MethodDefinition:
		return []ast.Statement{p.transformMethodDefinition(n)}

	case *ast.ExportDefaultDeclaration:
		return []ast.Statement{p.transformExportDefault(n, marked)}

	default:
		return []ast.Statement{s}
	}
}

// transformForInit handles the three shapes of a for-loop's init clause:
// absent, a VariableDeclaration (let/const reach here unmodified in
// content but still need their initializers walked; var has already been
// stripped by the time the Case Handler sees a generator's own body, but
// a for-loop outside any generator keeps its var as-is — the Hoister only
// ever runs inside a matched generator's own body), or a bare expression.
func (p *Pass) transformForInit(init ast.Node) ast.Node {
	switch v := init.(type) {
	case *ast.VariableDeclaration:
		n2 := *v
		decls := make([]*ast.VariableDeclarator, len(v.Declarations))
		for i, d := range v.Declarations {
			d2 := *d
			if d.Init != nil {
				d2.Init = p.transformExpr(d.Init)
			}
			decls[i] = &d2
		}
		n2.Declarations = decls
		return &n2
	case ast.Expression:
		return p.transformExpr(v)
	default:
		return init
	}
}

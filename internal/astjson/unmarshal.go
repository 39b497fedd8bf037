package astjson

import (
	"encoding/json"
	"fmt"

	"github.com/funvibe/funxy/internal/ast"
)

// Unmarshal parses cmd/regenerate's input format back into a Program,
// the inverse of Marshal.
func Unmarshal(data []byte) (*ast.Program, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("astjson: decode program: %w", err)
	}
	if raw.Type != "Program" {
		return nil, fmt.Errorf("astjson: expected root type Program, got %q", raw.Type)
	}
	return decodeProgram(raw)
}

// rawNode is the generic shape every encoded node decodes into first: a
// type discriminator plus every field any node kind might carry, left as
// json.RawMessage so the type switch below can pick which of them to
// decode further.
type rawNode struct {
	Type       string            `json:"type"`
	Range      [2]int            `json:"range"`
	Line       int               `json:"line"`
	SourceType string            `json:"sourceType"`
	Name       string            `json:"name"`
	Value      json.RawMessage   `json:"value"`
	Raw        string            `json:"raw"`
	Meta       string            `json:"meta"`
	Property   json.RawMessage   `json:"property"`
	Argument   json.RawMessage   `json:"argument"`
	Delegate   bool              `json:"delegate"`
	Callee     json.RawMessage   `json:"callee"`
	Arguments  []json.RawMessage `json:"arguments"`
	Object     json.RawMessage   `json:"object"`
	Computed   bool              `json:"computed"`
	Operator   string            `json:"operator"`
	Left       json.RawMessage   `json:"left"`
	Right      json.RawMessage   `json:"right"`
	Test       json.RawMessage   `json:"test"`
	Consequent json.RawMessage   `json:"consequent"`
	Alternate  json.RawMessage   `json:"alternate"`
	Expressions []json.RawMessage `json:"expressions"`
	Elements   []json.RawMessage `json:"elements"`
	Properties []json.RawMessage `json:"properties"`
	Key        json.RawMessage   `json:"key"`
	Kind       string            `json:"kind"`
	Shorthand  bool              `json:"shorthand"`
	Id         json.RawMessage   `json:"id"`
	Params     []json.RawMessage `json:"params"`
	Body       json.RawMessage   `json:"body"`
	Generator  bool              `json:"generator"`
	Async      bool              `json:"async"`
	Static     bool              `json:"static"`
	Declaration json.RawMessage  `json:"declaration"`
	Expression json.RawMessage   `json:"expression"`
	Declarations []json.RawMessage `json:"declarations"`
	Init       json.RawMessage   `json:"init"`
	Update     json.RawMessage   `json:"update"`
	Discriminant json.RawMessage `json:"discriminant"`
	Cases      []json.RawMessage `json:"cases"`
	Block      json.RawMessage   `json:"block"`
	Handler    json.RawMessage   `json:"handler"`
	Finalizer  json.RawMessage   `json:"finalizer"`
	Param      json.RawMessage   `json:"param"`
	Label      json.RawMessage   `json:"label"`
	Await      bool              `json:"await"`
}

func parseRaw(data json.RawMessage) (rawNode, error) {
	var r rawNode
	if len(data) == 0 || string(data) == "null" {
		return r, nil
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("astjson: %w", err)
	}
	return r, nil
}

func spanOf(r rawNode) ast.Span {
	return ast.Span{Start: r.Range[0], End: r.Range[1], Line: r.Line}
}

// decodeNode is the universal entry point: given a raw JSON node, return
// the concrete ast.Node it describes. A nil/absent child (raw length 0)
// decodes to a nil Node, which callers downcast from as needed.
func decodeNode(data json.RawMessage) (ast.Node, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	r, err := parseRaw(data)
	if err != nil {
		return nil, err
	}
	if r.Type == "" {
		return nil, nil
	}

	switch r.Type {
	case "Program":
		return decodeProgram(r)
	case "Identifier":
		return &ast.Identifier{Span: spanOf(r), Name: r.Name}, nil
	case "NumericLiteral":
		var v float64
		if err := json.Unmarshal(r.Value, &v); err != nil {
			return nil, fmt.Errorf("astjson: NumericLiteral.value: %w", err)
		}
		return &ast.NumericLiteral{Span: spanOf(r), Value: v, Raw: r.Raw}, nil
	case "StringLiteral":
		var v string
		if err := json.Unmarshal(r.Value, &v); err != nil {
			return nil, fmt.Errorf("astjson: StringLiteral.value: %w", err)
		}
		return &ast.StringLiteral{Span: spanOf(r), Value: v}, nil
	case "BooleanLiteral":
		var v bool
		if err := json.Unmarshal(r.Value, &v); err != nil {
			return nil, fmt.Errorf("astjson: BooleanLiteral.value: %w", err)
		}
		return &ast.BooleanLiteral{Span: spanOf(r), Value: v}, nil
	case "NullLiteral":
		return &ast.NullLiteral{Span: spanOf(r)}, nil
	case "ThisExpression":
		return &ast.ThisExpression{Span: spanOf(r)}, nil
	case "MetaPropertyExpression":
		var prop string
		if len(r.Property) > 0 {
			if err := json.Unmarshal(r.Property, &prop); err != nil {
				return nil, fmt.Errorf("astjson: MetaPropertyExpression.property: %w", err)
			}
		}
		return &ast.MetaPropertyExpression{Span: spanOf(r), Meta: r.Meta, Property: prop}, nil
	case "YieldExpression":
		arg, err := decodeExpression(r.Argument)
		if err != nil {
			return nil, err
		}
		return &ast.YieldExpression{Span: spanOf(r), Argument: arg, Delegate: r.Delegate}, nil
	case "CallExpression":
		callee, err := decodeExpression(r.Callee)
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressionList(r.Arguments)
		if err != nil {
			return nil, err
		}
		return &ast.CallExpression{Span: spanOf(r), Callee: callee, Arguments: args}, nil
	case "MemberExpression":
		obj, err := decodeExpression(r.Object)
		if err != nil {
			return nil, err
		}
		prop, err := decodeExpression(r.Property)
		if err != nil {
			return nil, err
		}
		return &ast.MemberExpression{Span: spanOf(r), Object: obj, Property: prop, Computed: r.Computed}, nil
	case "UnaryExpression":
		arg, err := decodeExpression(r.Argument)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Span: spanOf(r), Operator: r.Operator, Argument: arg}, nil
	case "AssignmentExpression":
		left, err := decodeExpression(r.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(r.Right)
		if err != nil {
			return nil, err
		}
		return &ast.AssignmentExpression{Span: spanOf(r), Operator: r.Operator, Left: left, Right: right}, nil
	case "BinaryExpression":
		left, err := decodeExpression(r.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(r.Right)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpression{Span: spanOf(r), Operator: r.Operator, Left: left, Right: right}, nil
	case "LogicalExpression":
		left, err := decodeExpression(r.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(r.Right)
		if err != nil {
			return nil, err
		}
		return &ast.LogicalExpression{Span: spanOf(r), Operator: r.Operator, Left: left, Right: right}, nil
	case "ConditionalExpression":
		test, err := decodeExpression(r.Test)
		if err != nil {
			return nil, err
		}
		cons, err := decodeExpression(r.Consequent)
		if err != nil {
			return nil, err
		}
		alt, err := decodeExpression(r.Alternate)
		if err != nil {
			return nil, err
		}
		return &ast.ConditionalExpression{Span: spanOf(r), Test: test, Consequent: cons, Alternate: alt}, nil
	case "SequenceExpression":
		exprs, err := decodeExpressionList(r.Expressions)
		if err != nil {
			return nil, err
		}
		return &ast.SequenceExpression{Span: spanOf(r), Expressions: exprs}, nil
	case "ArrayExpression":
		elems, err := decodeExpressionList(r.Elements)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayExpression{Span: spanOf(r), Elements: elems}, nil
	case "ObjectExpression":
		props := make([]*ast.Property, len(r.Properties))
		for i, raw := range r.Properties {
			n, err := decodeNode(raw)
			if err != nil {
				return nil, err
			}
			pr, ok := n.(*ast.Property)
			if !ok {
				return nil, fmt.Errorf("astjson: ObjectExpression.properties[%d]: not a Property", i)
			}
			props[i] = pr
		}
		return &ast.ObjectExpression{Span: spanOf(r), Properties: props}, nil
	case "Property":
		key, err := decodeExpression(r.Key)
		if err != nil {
			return nil, err
		}
		val, err := decodeExpression(r.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Property{Span: spanOf(r), Key: key, Value: val, Computed: r.Computed, Kind: r.Kind, Shorthand: r.Shorthand}, nil
	case "FunctionDeclaration":
		id, params, body, err := decodeFunctionParts(r)
		if err != nil {
			return nil, err
		}
		idIdent, _ := id.(*ast.Identifier)
		return &ast.FunctionDeclaration{Span: spanOf(r), Id: idIdent, Params: params, Body: body, IsGenerator: r.Generator, Async: r.Async}, nil
	case "FunctionExpression":
		id, params, body, err := decodeFunctionParts(r)
		if err != nil {
			return nil, err
		}
		idIdent, _ := id.(*ast.Identifier)
		return &ast.FunctionExpression{Span: spanOf(r), Id: idIdent, Params: params, Body: body, IsGenerator: r.Generator, Async: r.Async}, nil
	case "ArrowFunctionExpression":
		params, err := decodePatternList(r.Params)
		if err != nil {
			return nil, err
		}
		body, err := decodeNode(r.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ArrowFunctionExpression{Span: spanOf(r), Params: params, Body: body, Async: r.Async}, nil
	case "MethodDefinition":
		key, err := decodeExpression(r.Key)
		if err != nil {
			return nil, err
		}
		valNode, err := decodeNode(r.Value)
		if err != nil {
			return nil, err
		}
		val, _ := valNode.(*ast.FunctionExpression)
		return &ast.MethodDefinition{Span: spanOf(r), Key: key, Value: val, Kind: r.Kind, Static: r.Static, Computed: r.Computed}, nil
	case "ExportDefaultDeclaration":
		decl, err := decodeNode(r.Declaration)
		if err != nil {
			return nil, err
		}
		return &ast.ExportDefaultDeclaration{Span: spanOf(r), Declaration: decl}, nil
	case "BlockStatement":
		var rawStmts []json.RawMessage
		if len(r.Body) > 0 {
			if err := json.Unmarshal(r.Body, &rawStmts); err != nil {
				return nil, fmt.Errorf("astjson: BlockStatement.body: %w", err)
			}
		}
		body, err := decodeStatementList(rawStmts)
		if err != nil {
			return nil, err
		}
		return &ast.BlockStatement{Span: spanOf(r), Body: body}, nil
	case "ExpressionStatement":
		expr, err := decodeExpression(r.Expression)
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Span: spanOf(r), Expression: expr}, nil
	case "VariableDeclaration":
		decls := make([]*ast.VariableDeclarator, len(r.Declarations))
		for i, raw := range r.Declarations {
			n, err := decodeNode(raw)
			if err != nil {
				return nil, err
			}
			d, ok := n.(*ast.VariableDeclarator)
			if !ok {
				return nil, fmt.Errorf("astjson: VariableDeclaration.declarations[%d]: not a VariableDeclarator", i)
			}
			decls[i] = d
		}
		return &ast.VariableDeclaration{Span: spanOf(r), Kind: r.Kind, Declarations: decls}, nil
	case "VariableDeclarator":
		idNode, err := decodeNode(r.Id)
		if err != nil {
			return nil, err
		}
		id, _ := idNode.(ast.Pattern)
		init, err := decodeExpression(r.Init)
		if err != nil {
			return nil, err
		}
		return &ast.VariableDeclarator{Span: spanOf(r), Id: id, Init: init}, nil
	case "IfStatement":
		test, err := decodeExpression(r.Test)
		if err != nil {
			return nil, err
		}
		cons, err := decodeStatement(r.Consequent)
		if err != nil {
			return nil, err
		}
		alt, err := decodeStatement(r.Alternate)
		if err != nil {
			return nil, err
		}
		return &ast.IfStatement{Span: spanOf(r), Test: test, Consequent: cons, Alternate: alt}, nil
	case "ForStatement":
		init, err := decodeForInit(r.Init)
		if err != nil {
			return nil, err
		}
		test, err := decodeExpression(r.Test)
		if err != nil {
			return nil, err
		}
		update, err := decodeExpression(r.Update)
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(r.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ForStatement{Span: spanOf(r), Init: init, Test: test, Update: update, Body: body}, nil
	case "ForInStatement", "ForOfStatement":
		left, err := decodeForInit(r.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(r.Right)
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(r.Body)
		if err != nil {
			return nil, err
		}
		if r.Type == "ForInStatement" {
			return &ast.ForInStatement{Span: spanOf(r), Left: left, Right: right, Body: body}, nil
		}
		return &ast.ForOfStatement{Span: spanOf(r), Left: left, Right: right, Body: body, Await: r.Await}, nil
	case "WhileStatement":
		test, err := decodeExpression(r.Test)
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(r.Body)
		if err != nil {
			return nil, err
		}
		return &ast.WhileStatement{Span: spanOf(r), Test: test, Body: body}, nil
	case "DoWhileStatement":
		test, err := decodeExpression(r.Test)
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(r.Body)
		if err != nil {
			return nil, err
		}
		return &ast.DoWhileStatement{Span: spanOf(r), Test: test, Body: body}, nil
	case "SwitchStatement":
		disc, err := decodeExpression(r.Discriminant)
		if err != nil {
			return nil, err
		}
		cases := make([]*ast.SwitchCase, len(r.Cases))
		for i, raw := range r.Cases {
			n, err := decodeNode(raw)
			if err != nil {
				return nil, err
			}
			c, ok := n.(*ast.SwitchCase)
			if !ok {
				return nil, fmt.Errorf("astjson: SwitchStatement.cases[%d]: not a SwitchCase", i)
			}
			cases[i] = c
		}
		return &ast.SwitchStatement{Span: spanOf(r), Discriminant: disc, Cases: cases}, nil
	case "SwitchCase":
		test, err := decodeExpression(r.Test)
		if err != nil {
			return nil, err
		}
		var rawCons []json.RawMessage
		if len(r.Consequent) > 0 {
			if err := json.Unmarshal(r.Consequent, &rawCons); err != nil {
				return nil, fmt.Errorf("astjson: SwitchCase.consequent: %w", err)
			}
		}
		cons, err := decodeStatementList(rawCons)
		if err != nil {
			return nil, err
		}
		return &ast.SwitchCase{Span: spanOf(r), Test: test, Consequent: cons}, nil
	case "TryStatement":
		blockNode, err := decodeNode(r.Block)
		if err != nil {
			return nil, err
		}
		block, _ := blockNode.(*ast.BlockStatement)
		handlerNode, err := decodeNode(r.Handler)
		if err != nil {
			return nil, err
		}
		handler, _ := handlerNode.(*ast.CatchClause)
		finalizerNode, err := decodeNode(r.Finalizer)
		if err != nil {
			return nil, err
		}
		finalizer, _ := finalizerNode.(*ast.BlockStatement)
		return &ast.TryStatement{Span: spanOf(r), Block: block, Handler: handler, Finalizer: finalizer}, nil
	case "CatchClause":
		paramNode, err := decodeNode(r.Param)
		if err != nil {
			return nil, err
		}
		param, _ := paramNode.(ast.Pattern)
		bodyNode, err := decodeNode(r.Body)
		if err != nil {
			return nil, err
		}
		body, _ := bodyNode.(*ast.BlockStatement)
		return &ast.CatchClause{Span: spanOf(r), Param: param, Body: body}, nil
	case "LabeledStatement":
		label, err := decodeIdentifier(r.Label)
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(r.Body)
		if err != nil {
			return nil, err
		}
		return &ast.LabeledStatement{Span: spanOf(r), Label: label, Body: body}, nil
	case "BreakStatement":
		label, err := decodeIdentifier(r.Label)
		if err != nil {
			return nil, err
		}
		return &ast.BreakStatement{Span: spanOf(r), Label: label}, nil
	case "ContinueStatement":
		label, err := decodeIdentifier(r.Label)
		if err != nil {
			return nil, err
		}
		return &ast.ContinueStatement{Span: spanOf(r), Label: label}, nil
	case "ReturnStatement":
		arg, err := decodeExpression(r.Argument)
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStatement{Span: spanOf(r), Argument: arg}, nil
	case "ThrowStatement":
		arg, err := decodeExpression(r.Argument)
		if err != nil {
			return nil, err
		}
		return &ast.ThrowStatement{Span: spanOf(r), Argument: arg}, nil
	case "EmptyStatement":
		return &ast.EmptyStatement{Span: spanOf(r)}, nil
	default:
		return nil, fmt.Errorf("astjson: unknown node type %q", r.Type)
	}
}

func decodeProgram(r rawNode) (*ast.Program, error) {
	var rawStmts []json.RawMessage
	if len(r.Body) > 0 {
		if err := json.Unmarshal(r.Body, &rawStmts); err != nil {
			return nil, fmt.Errorf("astjson: Program.body: %w", err)
		}
	}
	body, err := decodeStatementList(rawStmts)
	if err != nil {
		return nil, err
	}
	return &ast.Program{Span: spanOf(r), SourceType: r.SourceType, Body: body}, nil
}

func decodeFunctionParts(r rawNode) (ast.Node, []ast.Pattern, *ast.BlockStatement, error) {
	id, err := decodeNode(r.Id)
	if err != nil {
		return nil, nil, nil, err
	}
	params, err := decodePatternList(r.Params)
	if err != nil {
		return nil, nil, nil, err
	}
	bodyNode, err := decodeNode(r.Body)
	if err != nil {
		return nil, nil, nil, err
	}
	body, _ := bodyNode.(*ast.BlockStatement)
	return id, params, body, nil
}

func decodeIdentifier(data json.RawMessage) (*ast.Identifier, error) {
	n, err := decodeNode(data)
	if err != nil || n == nil {
		return nil, err
	}
	id, ok := n.(*ast.Identifier)
	if !ok {
		return nil, fmt.Errorf("astjson: expected Identifier, got %T", n)
	}
	return id, nil
}

func decodeExpression(data json.RawMessage) (ast.Expression, error) {
	n, err := decodeNode(data)
	if err != nil || n == nil {
		return nil, err
	}
	e, ok := n.(ast.Expression)
	if !ok {
		return nil, fmt.Errorf("astjson: expected Expression, got %T", n)
	}
	return e, nil
}

func decodeStatement(data json.RawMessage) (ast.Statement, error) {
	n, err := decodeNode(data)
	if err != nil || n == nil {
		return nil, err
	}
	s, ok := n.(ast.Statement)
	if !ok {
		return nil, fmt.Errorf("astjson: expected Statement, got %T", n)
	}
	return s, nil
}

// decodeForInit handles a for/for-in/for-of init-or-left clause: either a
// VariableDeclaration or a bare pattern/expression, passed through as the
// ast.Node the corresponding statement field expects.
func decodeForInit(data json.RawMessage) (ast.Node, error) {
	return decodeNode(data)
}

func decodeExpressionList(raws []json.RawMessage) ([]ast.Expression, error) {
	out := make([]ast.Expression, len(raws))
	for i, raw := range raws {
		e, err := decodeExpression(raw)
		if err != nil {
			return nil, fmt.Errorf("astjson: element %d: %w", i, err)
		}
		out[i] = e
	}
	return out, nil
}

func decodeStatementList(raws []json.RawMessage) ([]ast.Statement, error) {
	out := make([]ast.Statement, len(raws))
	for i, raw := range raws {
		s, err := decodeStatement(raw)
		if err != nil {
			return nil, fmt.Errorf("astjson: statement %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

func decodePatternList(raws []json.RawMessage) ([]ast.Pattern, error) {
	out := make([]ast.Pattern, len(raws))
	for i, raw := range raws {
		n, err := decodeNode(raw)
		if err != nil {
			return nil, fmt.Errorf("astjson: param %d: %w", i, err)
		}
		p, ok := n.(ast.Pattern)
		if !ok {
			return nil, fmt.Errorf("astjson: param %d: expected Pattern, got %T", i, n)
		}
		out[i] = p
	}
	return out, nil
}

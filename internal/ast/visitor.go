package ast

// Visitor is the double-dispatch interface behind Node.Accept. The JSON
// encoder in internal/astjson implements it; the Hoister, the
// function.sent rewriter and the Case Handler walk the tree with their
// own type switches instead.
type Visitor interface {
	VisitProgram(n *Program)

	VisitIdentifier(n *Identifier)
	VisitNumericLiteral(n *NumericLiteral)
	VisitStringLiteral(n *StringLiteral)
	VisitBooleanLiteral(n *BooleanLiteral)
	VisitNullLiteral(n *NullLiteral)
	VisitThisExpression(n *ThisExpression)
	VisitMetaPropertyExpression(n *MetaPropertyExpression)
	VisitYieldExpression(n *YieldExpression)
	VisitCallExpression(n *CallExpression)
	VisitMemberExpression(n *MemberExpression)
	VisitAssignmentExpression(n *AssignmentExpression)
	VisitBinaryExpression(n *BinaryExpression)
	VisitLogicalExpression(n *LogicalExpression)
	VisitConditionalExpression(n *ConditionalExpression)
	VisitUnaryExpression(n *UnaryExpression)
	VisitSequenceExpression(n *SequenceExpression)
	VisitArrayExpression(n *ArrayExpression)
	VisitObjectExpression(n *ObjectExpression)
	VisitProperty(n *Property)

	VisitFunctionDeclaration(n *FunctionDeclaration)
	VisitFunctionExpression(n *FunctionExpression)
	VisitArrowFunctionExpression(n *ArrowFunctionExpression)
	VisitMethodDefinition(n *MethodDefinition)
	VisitExportDefaultDeclaration(n *ExportDefaultDeclaration)

	VisitBlockStatement(n *BlockStatement)
	VisitExpressionStatement(n *ExpressionStatement)
	VisitVariableDeclaration(n *VariableDeclaration)
	VisitVariableDeclarator(n *VariableDeclarator)
	VisitIfStatement(n *IfStatement)
	VisitForStatement(n *ForStatement)
	VisitForInStatement(n *ForInStatement)
	VisitForOfStatement(n *ForOfStatement)
	VisitWhileStatement(n *WhileStatement)
	VisitDoWhileStatement(n *DoWhileStatement)
	VisitSwitchStatement(n *SwitchStatement)
	VisitSwitchCase(n *SwitchCase)
	VisitTryStatement(n *TryStatement)
	VisitCatchClause(n *CatchClause)
	VisitLabeledStatement(n *LabeledStatement)
	VisitBreakStatement(n *BreakStatement)
	VisitContinueStatement(n *ContinueStatement)
	VisitReturnStatement(n *ReturnStatement)
	VisitThrowStatement(n *ThrowStatement)
	VisitEmptyStatement(n *EmptyStatement)
}

// BaseVisitor is an embeddable no-op Visitor: a walker can embed it and
// override only the node kinds relevant to it, rather than implementing
// all 45 methods.
type BaseVisitor struct{}

func (BaseVisitor) VisitProgram(n *Program)                                   {}
func (BaseVisitor) VisitIdentifier(n *Identifier)                             {}
func (BaseVisitor) VisitNumericLiteral(n *NumericLiteral)                     {}
func (BaseVisitor) VisitStringLiteral(n *StringLiteral)                       {}
func (BaseVisitor) VisitBooleanLiteral(n *BooleanLiteral)                     {}
func (BaseVisitor) VisitNullLiteral(n *NullLiteral)                          {}
func (BaseVisitor) VisitThisExpression(n *ThisExpression)                     {}
func (BaseVisitor) VisitMetaPropertyExpression(n *MetaPropertyExpression)     {}
func (BaseVisitor) VisitYieldExpression(n *YieldExpression)                   {}
func (BaseVisitor) VisitCallExpression(n *CallExpression)                     {}
func (BaseVisitor) VisitMemberExpression(n *MemberExpression)                 {}
func (BaseVisitor) VisitAssignmentExpression(n *AssignmentExpression)         {}
func (BaseVisitor) VisitBinaryExpression(n *BinaryExpression)                 {}
func (BaseVisitor) VisitLogicalExpression(n *LogicalExpression)               {}
func (BaseVisitor) VisitConditionalExpression(n *ConditionalExpression)       {}
func (BaseVisitor) VisitUnaryExpression(n *UnaryExpression)                   {}
func (BaseVisitor) VisitSequenceExpression(n *SequenceExpression)             {}
func (BaseVisitor) VisitArrayExpression(n *ArrayExpression)                   {}
func (BaseVisitor) VisitObjectExpression(n *ObjectExpression)                 {}
func (BaseVisitor) VisitProperty(n *Property)                                 {}
func (BaseVisitor) VisitFunctionDeclaration(n *FunctionDeclaration)           {}
func (BaseVisitor) VisitFunctionExpression(n *FunctionExpression)             {}
func (BaseVisitor) VisitArrowFunctionExpression(n *ArrowFunctionExpression)   {}
func (BaseVisitor) VisitMethodDefinition(n *MethodDefinition)                 {}
func (BaseVisitor) VisitExportDefaultDeclaration(n *ExportDefaultDeclaration) {}
func (BaseVisitor) VisitBlockStatement(n *BlockStatement)                     {}
func (BaseVisitor) VisitExpressionStatement(n *ExpressionStatement)           {}
func (BaseVisitor) VisitVariableDeclaration(n *VariableDeclaration)           {}
func (BaseVisitor) VisitVariableDeclarator(n *VariableDeclarator)             {}
func (BaseVisitor) VisitIfStatement(n *IfStatement)                           {}
func (BaseVisitor) VisitForStatement(n *ForStatement)                         {}
func (BaseVisitor) VisitForInStatement(n *ForInStatement)                     {}
func (BaseVisitor) VisitForOfStatement(n *ForOfStatement)                     {}
func (BaseVisitor) VisitWhileStatement(n *WhileStatement)                     {}
func (BaseVisitor) VisitDoWhileStatement(n *DoWhileStatement)                 {}
func (BaseVisitor) VisitSwitchStatement(n *SwitchStatement)                   {}
func (BaseVisitor) VisitSwitchCase(n *SwitchCase)                             {}
func (BaseVisitor) VisitTryStatement(n *TryStatement)                         {}
func (BaseVisitor) VisitCatchClause(n *CatchClause)                           {}
func (BaseVisitor) VisitLabeledStatement(n *LabeledStatement)                 {}
func (BaseVisitor) VisitBreakStatement(n *BreakStatement)                     {}
func (BaseVisitor) VisitContinueStatement(n *ContinueStatement)               {}
func (BaseVisitor) VisitReturnStatement(n *ReturnStatement)                   {}
func (BaseVisitor) VisitThrowStatement(n *ThrowStatement)                     {}
func (BaseVisitor) VisitEmptyStatement(n *EmptyStatement)                     {}

package ast

import "fmt"

// NodeType identifies the kind of a syntax tree node.
type NodeType string

const (
	NodeIdentifier           NodeType = "Identifier"
	NodeIntegerLiteral       NodeType = "IntegerLiteral"
	NodeFloatLiteral         NodeType = "FloatLiteral"
	NodeBooleanLiteral       NodeType = "BooleanLiteral"
	NodeStringLiteral        NodeType = "StringLiteral"
	NodeBinaryExpression     NodeType = "BinaryExpression"
	NodeFunctionCall         NodeType = "FunctionCall"
	NodeSimpleTypeExpression NodeType = "SimpleTypeExpression"
	NodeVariableDeclaration  NodeType = "VariableDeclaration"
	NodeAssignmentStatement  NodeType = "AssignmentStatement"
	NodeCallStatement        NodeType = "CallStatement"
	NodeBlockStatement       NodeType = "BlockStatement"
	NodeIfStatement          NodeType = "IfStatement"
	NodeWhileStatement       NodeType = "WhileStatement"
	NodeParallelBlock        NodeType = "ParallelBlock"
	NodeParameter            NodeType = "Parameter"
	NodeProcedureDeclaration NodeType = "ProcedureDeclaration"
	NodeFunctionDeclaration  NodeType = "FunctionDeclaration"
	NodeStructField          NodeType = "StructField"
	NodeStructDeclaration    NodeType = "StructDeclaration"
	NodeModule               NodeType = "Module"
)

// Pos is a source location reported by the external parser. The zero value
// means the position is unknown.
type Pos struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "<unknown>"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Node is the shared behaviour for all syntax tree nodes.
type Node interface {
	NodeType() NodeType
	Position() Pos
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	Pos  Pos      `json:"pos,omitzero"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Position() Pos      { return n.Pos }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

type Identifier struct {
	nodeImpl
	expressionMarker
	statementMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

type IntegerLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value int64 `json:"value"`
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

// StringLiteral is accepted by the decoder for forward compatibility with the
// surface grammar; the evaluator does not produce string values yet.
type StringLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

// BinaryOperator enumerates the binary operators carried by the tree. The
// parser owns precedence and associativity; by the time a BinaryExpression
// reaches the runtime the tree shape is authoritative.
type BinaryOperator string

const (
	OpAdd BinaryOperator = "+"
	OpSub BinaryOperator = "-"
	OpMul BinaryOperator = "*"
	OpDiv BinaryOperator = "/"
)

type BinaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator BinaryOperator `json:"operator"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func NewBinaryExpression(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type FunctionCall struct {
	nodeImpl
	expressionMarker
	statementMarker

	Callee    *Identifier  `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(callee *Identifier, arguments []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: arguments}
}

//-----------------------------------------------------------------------------
// Type expressions
//-----------------------------------------------------------------------------

// SimpleTypeExpression names a type by its surface spelling ("int", "bool",
// or a declared struct name).
type SimpleTypeExpression struct {
	nodeImpl

	Name string `json:"name"`
}

func NewSimpleTypeExpression(name string) *SimpleTypeExpression {
	return &SimpleTypeExpression{nodeImpl: newNodeImpl(NodeSimpleTypeExpression), Name: name}
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

// VariableDeclaration introduces a local variable. A nil Initializer leaves
// the variable declared but undefined.
type VariableDeclaration struct {
	nodeImpl
	statementMarker

	Name        *Identifier           `json:"name"`
	VarType     *SimpleTypeExpression `json:"varType"`
	Initializer Expression            `json:"initializer,omitempty"`
}

func NewVariableDeclaration(name *Identifier, varType *SimpleTypeExpression, initializer Expression) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), Name: name, VarType: varType, Initializer: initializer}
}

type AssignmentStatement struct {
	nodeImpl
	statementMarker

	Target *Identifier `json:"target"`
	Value  Expression  `json:"value"`
}

func NewAssignmentStatement(target *Identifier, value Expression) *AssignmentStatement {
	return &AssignmentStatement{nodeImpl: newNodeImpl(NodeAssignmentStatement), Target: target, Value: value}
}

// CallStatement invokes a procedure for its effects. Overload resolution
// happens at runtime against the argument types.
type CallStatement struct {
	nodeImpl
	statementMarker

	Callee    *Identifier  `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewCallStatement(callee *Identifier, arguments []Expression) *CallStatement {
	return &CallStatement{nodeImpl: newNodeImpl(NodeCallStatement), Callee: callee, Arguments: arguments}
}

type BlockStatement struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlockStatement(body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Body: body}
}

// IfStatement and WhileStatement are carried by the tree but have no
// evaluation semantics in this runtime yet.
type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression      `json:"condition"`
	Then      *BlockStatement `json:"then"`
	Else      *BlockStatement `json:"else,omitempty"`
}

func NewIfStatement(condition Expression, then, els *BlockStatement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Then: then, Else: els}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition Expression      `json:"condition"`
	Body      *BlockStatement `json:"body"`
}

func NewWhileStatement(condition Expression, body *BlockStatement) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: condition, Body: body}
}

// ParallelBlock is reserved surface syntax. It decodes, and nothing more.
type ParallelBlock struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewParallelBlock(body []Statement) *ParallelBlock {
	return &ParallelBlock{nodeImpl: newNodeImpl(NodeParallelBlock), Body: body}
}

//-----------------------------------------------------------------------------
// Declarations
//-----------------------------------------------------------------------------

type Parameter struct {
	nodeImpl

	Name      *Identifier           `json:"name"`
	ParamType *SimpleTypeExpression `json:"paramType"`
}

func NewParameter(name *Identifier, paramType *SimpleTypeExpression) *Parameter {
	return &Parameter{nodeImpl: newNodeImpl(NodeParameter), Name: name, ParamType: paramType}
}

// ProcedureDeclaration declares a user procedure. Procedures produce no
// result; they exist for their effects.
type ProcedureDeclaration struct {
	nodeImpl
	statementMarker

	Name   *Identifier     `json:"name"`
	Params []*Parameter    `json:"params"`
	Body   *BlockStatement `json:"body"`
}

func NewProcedureDeclaration(name *Identifier, params []*Parameter, body *BlockStatement) *ProcedureDeclaration {
	return &ProcedureDeclaration{nodeImpl: newNodeImpl(NodeProcedureDeclaration), Name: name, Params: params, Body: body}
}

// FunctionDeclaration declares a user function with a result type.
type FunctionDeclaration struct {
	nodeImpl
	statementMarker

	Name       *Identifier           `json:"name"`
	Params     []*Parameter          `json:"params"`
	ResultType *SimpleTypeExpression `json:"resultType"`
	Body       *BlockStatement       `json:"body"`
}

func NewFunctionDeclaration(name *Identifier, params []*Parameter, resultType *SimpleTypeExpression, body *BlockStatement) *FunctionDeclaration {
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), Name: name, Params: params, ResultType: resultType, Body: body}
}

type StructField struct {
	nodeImpl

	Name      *Identifier           `json:"name"`
	FieldType *SimpleTypeExpression `json:"fieldType"`
}

func NewStructField(name *Identifier, fieldType *SimpleTypeExpression) *StructField {
	return &StructField{nodeImpl: newNodeImpl(NodeStructField), Name: name, FieldType: fieldType}
}

// StructDeclaration registers a named record type. Instantiation is not part
// of this runtime yet.
type StructDeclaration struct {
	nodeImpl
	statementMarker

	Name   *Identifier    `json:"name"`
	Fields []*StructField `json:"fields"`
}

func NewStructDeclaration(name *Identifier, fields []*StructField) *StructDeclaration {
	return &StructDeclaration{nodeImpl: newNodeImpl(NodeStructDeclaration), Name: name, Fields: fields}
}

//-----------------------------------------------------------------------------
// Module
//-----------------------------------------------------------------------------

type Module struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewModule(body []Statement) *Module {
	return &Module{nodeImpl: newNodeImpl(NodeModule), Body: body}
}

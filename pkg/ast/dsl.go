package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

// Expression helpers.

func Bin(op BinaryOperator, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Add(left, right Expression) *BinaryExpression {
	return Bin(OpAdd, left, right)
}

func Mul(left, right Expression) *BinaryExpression {
	return Bin(OpMul, left, right)
}

func CallFn(name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(ID(name), args)
}

// Type expression helpers.

func Ty(name string) *SimpleTypeExpression {
	return NewSimpleTypeExpression(name)
}

// Statement helpers.

func Var(name string, typeName string, initializer Expression) *VariableDeclaration {
	return NewVariableDeclaration(ID(name), Ty(typeName), initializer)
}

func Assign(name string, value Expression) *AssignmentStatement {
	return NewAssignmentStatement(ID(name), value)
}

func Call(name string, args ...Expression) *CallStatement {
	return NewCallStatement(ID(name), args)
}

func Block(body ...Statement) *BlockStatement {
	return NewBlockStatement(body)
}

// Declaration helpers.

func Param(name, typeName string) *Parameter {
	return NewParameter(ID(name), Ty(typeName))
}

func Proc(name string, params []*Parameter, body ...Statement) *ProcedureDeclaration {
	return NewProcedureDeclaration(ID(name), params, Block(body...))
}

func Fn(name string, params []*Parameter, resultType string, body ...Statement) *FunctionDeclaration {
	return NewFunctionDeclaration(ID(name), params, Ty(resultType), Block(body...))
}

func Field(name, typeName string) *StructField {
	return NewStructField(ID(name), Ty(typeName))
}

func Struct(name string, fields ...*StructField) *StructDeclaration {
	return NewStructDeclaration(ID(name), fields)
}

func Mod(body ...Statement) *Module {
	return NewModule(body)
}

// At pins a node to a source position and returns it, for fluent tree
// construction in tests and fixtures.
func At[N Node](node N, pos Pos) N {
	switch n := any(node).(type) {
	case *Identifier:
		n.Pos = pos
	case *IntegerLiteral:
		n.Pos = pos
	case *FloatLiteral:
		n.Pos = pos
	case *BooleanLiteral:
		n.Pos = pos
	case *StringLiteral:
		n.Pos = pos
	case *BinaryExpression:
		n.Pos = pos
	case *FunctionCall:
		n.Pos = pos
	case *SimpleTypeExpression:
		n.Pos = pos
	case *VariableDeclaration:
		n.Pos = pos
	case *AssignmentStatement:
		n.Pos = pos
	case *CallStatement:
		n.Pos = pos
	case *BlockStatement:
		n.Pos = pos
	case *IfStatement:
		n.Pos = pos
	case *WhileStatement:
		n.Pos = pos
	case *ParallelBlock:
		n.Pos = pos
	case *Parameter:
		n.Pos = pos
	case *ProcedureDeclaration:
		n.Pos = pos
	case *FunctionDeclaration:
		n.Pos = pos
	case *StructField:
		n.Pos = pos
	case *StructDeclaration:
		n.Pos = pos
	case *Module:
		n.Pos = pos
	}
	return node
}

package ast

import "testing"

func TestDecodeModule(t *testing.T) {
	data := []byte(`{
		"type": "Module",
		"body": [
			{
				"type": "VariableDeclaration",
				"pos": {"line": 1, "column": 1},
				"name": {"type": "Identifier", "name": "x"},
				"varType": {"type": "SimpleTypeExpression", "name": "int"},
				"initializer": {"type": "IntegerLiteral", "value": 5}
			},
			{
				"type": "CallStatement",
				"callee": {"type": "Identifier", "name": "writeln"},
				"arguments": [
					{
						"type": "BinaryExpression",
						"operator": "+",
						"left": {"type": "Identifier", "name": "x"},
						"right": {"type": "IntegerLiteral", "value": 2}
					}
				]
			}
		]
	}`)

	module, err := DecodeModule(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(module.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(module.Body))
	}

	decl, ok := module.Body[0].(*VariableDeclaration)
	if !ok {
		t.Fatalf("expected VariableDeclaration, got %T", module.Body[0])
	}
	if decl.Name.Name != "x" || decl.VarType.Name != "int" {
		t.Fatalf("unexpected declaration %+v", decl)
	}
	if decl.Position().Line != 1 {
		t.Fatalf("position lost: %v", decl.Position())
	}
	init, ok := decl.Initializer.(*IntegerLiteral)
	if !ok || init.Value != 5 {
		t.Fatalf("unexpected initializer %#v", decl.Initializer)
	}

	call, ok := module.Body[1].(*CallStatement)
	if !ok {
		t.Fatalf("expected CallStatement, got %T", module.Body[1])
	}
	bin, ok := call.Arguments[0].(*BinaryExpression)
	if !ok || bin.Operator != OpAdd {
		t.Fatalf("unexpected argument %#v", call.Arguments[0])
	}
}

func TestDecodeDeclarations(t *testing.T) {
	data := []byte(`{
		"type": "Module",
		"body": [
			{
				"type": "ProcedureDeclaration",
				"name": {"type": "Identifier", "name": "greet"},
				"params": [
					{
						"type": "Parameter",
						"name": {"type": "Identifier", "name": "n"},
						"paramType": {"type": "SimpleTypeExpression", "name": "int"}
					}
				],
				"body": {"type": "BlockStatement", "body": []}
			},
			{
				"type": "FunctionDeclaration",
				"name": {"type": "Identifier", "name": "double"},
				"params": [],
				"resultType": {"type": "SimpleTypeExpression", "name": "int"},
				"body": {"type": "BlockStatement", "body": [{"type": "IntegerLiteral", "value": 2}]}
			},
			{
				"type": "StructDeclaration",
				"name": {"type": "Identifier", "name": "Point"},
				"fields": [
					{
						"type": "StructField",
						"name": {"type": "Identifier", "name": "x"},
						"fieldType": {"type": "SimpleTypeExpression", "name": "int"}
					}
				]
			}
		]
	}`)

	module, err := DecodeModule(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	proc, ok := module.Body[0].(*ProcedureDeclaration)
	if !ok || proc.Name.Name != "greet" || len(proc.Params) != 1 {
		t.Fatalf("unexpected procedure %#v", module.Body[0])
	}
	fn, ok := module.Body[1].(*FunctionDeclaration)
	if !ok || fn.ResultType.Name != "int" || len(fn.Body.Body) != 1 {
		t.Fatalf("unexpected function %#v", module.Body[1])
	}
	st, ok := module.Body[2].(*StructDeclaration)
	if !ok || st.Name.Name != "Point" || len(st.Fields) != 1 {
		t.Fatalf("unexpected struct %#v", module.Body[2])
	}
}

func TestDecodeRejectsUnknownNode(t *testing.T) {
	if _, err := DecodeNode([]byte(`{"type": "Teleport"}`)); err == nil {
		t.Fatalf("expected an unknown-node error")
	}
}

func TestDecodeRejectsFractionalInteger(t *testing.T) {
	if _, err := DecodeNode([]byte(`{"type": "IntegerLiteral", "value": 1.5}`)); err == nil {
		t.Fatalf("expected an invalid-integer error")
	}
}

func TestDecodeControlFlowScaffolding(t *testing.T) {
	data := []byte(`{
		"type": "IfStatement",
		"condition": {"type": "BooleanLiteral", "value": true},
		"then": {"type": "BlockStatement", "body": []},
		"else": {"type": "BlockStatement", "body": []}
	}`)
	node, err := DecodeNode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	ifStmt, ok := node.(*IfStatement)
	if !ok || ifStmt.Else == nil {
		t.Fatalf("unexpected node %#v", node)
	}

	par, err := DecodeNode([]byte(`{"type": "ParallelBlock", "body": []}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if _, ok := par.(*ParallelBlock); !ok {
		t.Fatalf("unexpected node %#v", par)
	}
}

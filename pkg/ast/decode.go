package ast

import (
	"encoding/json"
	"fmt"
)

// DecodeModule parses a JSON-serialized module produced by the external
// parser front end into an AST value.
func DecodeModule(data []byte) (*Module, error) {
	node, err := DecodeNode(data)
	if err != nil {
		return nil, err
	}
	module, ok := node.(*Module)
	if !ok {
		return nil, fmt.Errorf("expected Module node, got %s", node.NodeType())
	}
	return module, nil
}

// DecodeNode parses a single JSON-serialized node of any kind.
func DecodeNode(data []byte) (Node, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode node: %w", err)
	}
	return decodeNode(raw)
}

func decodeNode(node map[string]any) (Node, error) {
	typ, _ := node["type"].(string)
	pos := decodePos(node)
	switch NodeType(typ) {
	case NodeModule:
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return At(NewModule(body), pos), nil
	case NodeIdentifier:
		name, _ := node["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("identifier missing name")
		}
		return At(NewIdentifier(name), pos), nil
	case NodeIntegerLiteral:
		val, ok := node["value"].(float64)
		if !ok || val != float64(int64(val)) {
			return nil, fmt.Errorf("invalid integer literal value %v", node["value"])
		}
		return At(NewIntegerLiteral(int64(val)), pos), nil
	case NodeFloatLiteral:
		val, ok := node["value"].(float64)
		if !ok {
			return nil, fmt.Errorf("invalid float literal value %v", node["value"])
		}
		return At(NewFloatLiteral(val), pos), nil
	case NodeBooleanLiteral:
		val, ok := node["value"].(bool)
		if !ok {
			return nil, fmt.Errorf("invalid boolean literal value %v", node["value"])
		}
		return At(NewBooleanLiteral(val), pos), nil
	case NodeStringLiteral:
		val, _ := node["value"].(string)
		return At(NewStringLiteral(val), pos), nil
	case NodeBinaryExpression:
		op, _ := node["operator"].(string)
		switch BinaryOperator(op) {
		case OpAdd, OpSub, OpMul, OpDiv:
		default:
			return nil, fmt.Errorf("unknown binary operator %q", op)
		}
		left, err := decodeExpressionField(node, "left")
		if err != nil {
			return nil, err
		}
		right, err := decodeExpressionField(node, "right")
		if err != nil {
			return nil, err
		}
		return At(NewBinaryExpression(BinaryOperator(op), left, right), pos), nil
	case NodeFunctionCall:
		callee, err := decodeIdentifierField(node, "callee")
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(node["arguments"])
		if err != nil {
			return nil, err
		}
		return At(NewFunctionCall(callee, args), pos), nil
	case NodeSimpleTypeExpression:
		name, _ := node["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("type expression missing name")
		}
		return At(NewSimpleTypeExpression(name), pos), nil
	case NodeVariableDeclaration:
		name, err := decodeIdentifierField(node, "name")
		if err != nil {
			return nil, err
		}
		varType, err := decodeTypeField(node, "varType")
		if err != nil {
			return nil, err
		}
		var init Expression
		if _, ok := node["initializer"]; ok {
			init, err = decodeExpressionField(node, "initializer")
			if err != nil {
				return nil, err
			}
		}
		return At(NewVariableDeclaration(name, varType, init), pos), nil
	case NodeAssignmentStatement:
		target, err := decodeIdentifierField(node, "target")
		if err != nil {
			return nil, err
		}
		value, err := decodeExpressionField(node, "value")
		if err != nil {
			return nil, err
		}
		return At(NewAssignmentStatement(target, value), pos), nil
	case NodeCallStatement:
		callee, err := decodeIdentifierField(node, "callee")
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(node["arguments"])
		if err != nil {
			return nil, err
		}
		return At(NewCallStatement(callee, args), pos), nil
	case NodeBlockStatement:
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return At(NewBlockStatement(body), pos), nil
	case NodeIfStatement:
		cond, err := decodeExpressionField(node, "condition")
		if err != nil {
			return nil, err
		}
		then, err := decodeBlockField(node, "then")
		if err != nil {
			return nil, err
		}
		var els *BlockStatement
		if _, ok := node["else"]; ok {
			els, err = decodeBlockField(node, "else")
			if err != nil {
				return nil, err
			}
		}
		return At(NewIfStatement(cond, then, els), pos), nil
	case NodeWhileStatement:
		cond, err := decodeExpressionField(node, "condition")
		if err != nil {
			return nil, err
		}
		body, err := decodeBlockField(node, "body")
		if err != nil {
			return nil, err
		}
		return At(NewWhileStatement(cond, body), pos), nil
	case NodeParallelBlock:
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return At(NewParallelBlock(body), pos), nil
	case NodeParameter:
		name, err := decodeIdentifierField(node, "name")
		if err != nil {
			return nil, err
		}
		paramType, err := decodeTypeField(node, "paramType")
		if err != nil {
			return nil, err
		}
		return At(NewParameter(name, paramType), pos), nil
	case NodeProcedureDeclaration:
		name, err := decodeIdentifierField(node, "name")
		if err != nil {
			return nil, err
		}
		params, err := decodeParameters(node["params"])
		if err != nil {
			return nil, err
		}
		body, err := decodeBlockField(node, "body")
		if err != nil {
			return nil, err
		}
		return At(NewProcedureDeclaration(name, params, body), pos), nil
	case NodeFunctionDeclaration:
		name, err := decodeIdentifierField(node, "name")
		if err != nil {
			return nil, err
		}
		params, err := decodeParameters(node["params"])
		if err != nil {
			return nil, err
		}
		resultType, err := decodeTypeField(node, "resultType")
		if err != nil {
			return nil, err
		}
		body, err := decodeBlockField(node, "body")
		if err != nil {
			return nil, err
		}
		return At(NewFunctionDeclaration(name, params, resultType, body), pos), nil
	case NodeStructField:
		name, err := decodeIdentifierField(node, "name")
		if err != nil {
			return nil, err
		}
		fieldType, err := decodeTypeField(node, "fieldType")
		if err != nil {
			return nil, err
		}
		return At(NewStructField(name, fieldType), pos), nil
	case NodeStructDeclaration:
		name, err := decodeIdentifierField(node, "name")
		if err != nil {
			return nil, err
		}
		fieldsVal, _ := node["fields"].([]any)
		fields := make([]*StructField, 0, len(fieldsVal))
		for _, raw := range fieldsVal {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("invalid struct field entry %T", raw)
			}
			decoded, err := decodeNode(child)
			if err != nil {
				return nil, err
			}
			field, ok := decoded.(*StructField)
			if !ok {
				return nil, fmt.Errorf("expected StructField, got %s", decoded.NodeType())
			}
			fields = append(fields, field)
		}
		return At(NewStructDeclaration(name, fields), pos), nil
	default:
		return nil, fmt.Errorf("unknown node type %q", typ)
	}
}

func decodePos(node map[string]any) Pos {
	raw, ok := node["pos"].(map[string]any)
	if !ok {
		return Pos{}
	}
	line, _ := raw["line"].(float64)
	column, _ := raw["column"].(float64)
	return Pos{Line: int(line), Column: int(column)}
}

func decodeStatements(raw any) ([]Statement, error) {
	items, _ := raw.([]any)
	stmts := make([]Statement, 0, len(items))
	for _, item := range items {
		child, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid statement entry %T", item)
		}
		node, err := decodeNode(child)
		if err != nil {
			return nil, err
		}
		stmt, ok := node.(Statement)
		if !ok {
			return nil, fmt.Errorf("%s is not a statement", node.NodeType())
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodeExpressions(raw any) ([]Expression, error) {
	items, _ := raw.([]any)
	exprs := make([]Expression, 0, len(items))
	for _, item := range items {
		child, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid expression entry %T", item)
		}
		expr, err := decodeExpression(child)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func decodeExpression(raw map[string]any) (Expression, error) {
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	expr, ok := node.(Expression)
	if !ok {
		return nil, fmt.Errorf("%s is not an expression", node.NodeType())
	}
	return expr, nil
}

func decodeExpressionField(node map[string]any, field string) (Expression, error) {
	raw, ok := node[field].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s node missing %s", node["type"], field)
	}
	return decodeExpression(raw)
}

func decodeIdentifierField(node map[string]any, field string) (*Identifier, error) {
	raw, ok := node[field].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s node missing %s", node["type"], field)
	}
	decoded, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	ident, ok := decoded.(*Identifier)
	if !ok {
		return nil, fmt.Errorf("expected Identifier for %s, got %s", field, decoded.NodeType())
	}
	return ident, nil
}

func decodeTypeField(node map[string]any, field string) (*SimpleTypeExpression, error) {
	raw, ok := node[field].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s node missing %s", node["type"], field)
	}
	decoded, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	ty, ok := decoded.(*SimpleTypeExpression)
	if !ok {
		return nil, fmt.Errorf("expected SimpleTypeExpression for %s, got %s", field, decoded.NodeType())
	}
	return ty, nil
}

func decodeBlockField(node map[string]any, field string) (*BlockStatement, error) {
	raw, ok := node[field].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s node missing %s", node["type"], field)
	}
	decoded, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	block, ok := decoded.(*BlockStatement)
	if !ok {
		return nil, fmt.Errorf("expected BlockStatement for %s, got %s", field, decoded.NodeType())
	}
	return block, nil
}

func decodeParameters(raw any) ([]*Parameter, error) {
	items, _ := raw.([]any)
	params := make([]*Parameter, 0, len(items))
	for _, item := range items {
		child, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid parameter entry %T", item)
		}
		decoded, err := decodeNode(child)
		if err != nil {
			return nil, err
		}
		param, ok := decoded.(*Parameter)
		if !ok {
			return nil, fmt.Errorf("expected Parameter, got %s", decoded.NodeType())
		}
		params = append(params, param)
	}
	return params, nil
}

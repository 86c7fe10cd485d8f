package interpreter

import (
	"fmt"
	"io"
	"os"

	"rill/interpreter-go/pkg/ast"
	"rill/interpreter-go/pkg/runtime"
)

// Interpreter drives evaluation of Rill AST nodes against a single threaded
// program state. The console writer is the only external resource; writes
// happen inline inside steps, in step order.
type Interpreter struct {
	out   io.Writer
	state runtime.State
}

// New returns an interpreter writing to stdout, with the builtin procedures
// registered.
func New() *Interpreter {
	return NewWithOutput(os.Stdout)
}

// NewWithOutput returns an interpreter writing console output to out.
func NewWithOutput(out io.Writer) *Interpreter {
	return &Interpreter{out: out, state: registerBuiltins(runtime.NewState())}
}

// State exposes the current program state.
func (i *Interpreter) State() runtime.State {
	return i.state
}

// EvaluateModule executes a module's statements in order. On failure the
// interpreter keeps the state from before the failing statement sequence.
func (i *Interpreter) EvaluateModule(module *ast.Module) error {
	st, err := i.statementsStep(module.Body).FinalState(i.state)
	if err != nil {
		return err
	}
	i.state = st
	return nil
}

// EvaluateStatement executes one statement against the persistent state and
// returns its result, for interactive use.
func (i *Interpreter) EvaluateStatement(stmt ast.Statement) (runtime.Value, error) {
	st, v, err := i.statementStep(stmt)(i.state)
	if err != nil {
		return nil, err
	}
	i.state = st
	return v, nil
}

// EvaluateExpression evaluates an expression without keeping any state it
// produced, for interactive inspection.
func (i *Interpreter) EvaluateExpression(expr ast.Expression) (runtime.Value, error) {
	return i.expressionStep(expr).Result(i.state)
}

func (i *Interpreter) statementsStep(stmts []ast.Statement) Step {
	step := Pure(runtime.NoneValue{})
	for _, stmt := range stmts {
		step = step.Then(i.statementStep(stmt))
	}
	return step
}

func (i *Interpreter) statementStep(node ast.Statement) Step {
	switch n := node.(type) {
	case ast.Expression:
		return i.expressionStep(n)
	case *ast.VariableDeclaration:
		return i.variableDeclarationStep(n)
	case *ast.AssignmentStatement:
		return i.expressionStep(n.Value).Bind(func(v runtime.Value) Step {
			return Effect(func(st runtime.State) (runtime.State, error) {
				next, err := st.AssignVariable(n.Target.Name, v)
				if err != nil {
					return st, runtime.At(err, n.Target.Position())
				}
				return next, nil
			})
		})
	case *ast.CallStatement:
		return i.callStatementStep(n)
	case *ast.BlockStatement:
		enter := Effect(func(st runtime.State) (runtime.State, error) {
			return st.RaiseScope(), nil
		})
		leave := Effect(func(st runtime.State) (runtime.State, error) {
			return st.DropScope(), nil
		})
		return enter.Then(i.statementsStep(n.Body)).Then(leave)
	case *ast.ProcedureDeclaration:
		return i.procedureDeclarationStep(n)
	case *ast.FunctionDeclaration:
		return i.functionDeclarationStep(n)
	case *ast.StructDeclaration:
		return i.structDeclarationStep(n)
	default:
		return Fail(unsupportedNode(node))
	}
}

func (i *Interpreter) expressionStep(node ast.Expression) Step {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return Pure(runtime.IntegerValue{Val: n.Value})
	case *ast.FloatLiteral:
		return Pure(runtime.FloatValue{Val: n.Value})
	case *ast.BooleanLiteral:
		return Pure(runtime.BoolValue{Val: n.Value})
	case *ast.Identifier:
		return Query(func(st runtime.State) (runtime.Value, error) {
			v, err := st.FindVariable(n.Name)
			if err != nil {
				return nil, runtime.At(err, n.Position())
			}
			return v.Value, nil
		})
	case *ast.BinaryExpression:
		return i.expressionStep(n.Left).Bind(func(left runtime.Value) Step {
			return i.expressionStep(n.Right).Bind(func(right runtime.Value) Step {
				v, err := applyBinary(n.Operator, left, right)
				if err != nil {
					return Fail(runtime.At(err, n.Position()))
				}
				return Pure(v)
			})
		})
	case *ast.FunctionCall:
		return i.functionCallStep(n)
	default:
		return Fail(unsupportedNode(node))
	}
}

func (i *Interpreter) variableDeclarationStep(n *ast.VariableDeclaration) Step {
	if n.Initializer == nil {
		return Effect(func(st runtime.State) (runtime.State, error) {
			t, err := st.FindType(n.VarType.Name)
			if err != nil {
				return st, runtime.At(err, n.VarType.Position())
			}
			return st.DefineLocalUndefined(n.Name.Name, t), nil
		})
	}
	return i.expressionStep(n.Initializer).Bind(func(v runtime.Value) Step {
		return Effect(func(st runtime.State) (runtime.State, error) {
			t, err := st.FindType(n.VarType.Name)
			if err != nil {
				return st, runtime.At(err, n.VarType.Position())
			}
			return st.DefineLocal(n.Name.Name, t, v), nil
		})
	})
}

func (i *Interpreter) callStatementStep(n *ast.CallStatement) Step {
	return i.argumentsStep(n.Arguments, nil, func(args []runtime.Value) Step {
		return Effect(func(st runtime.State) (runtime.State, error) {
			sig := runtime.Signature{Params: typesOf(args), Result: runtime.NoneType}
			proc, err := st.FindProcedure(n.Callee.Name, sig)
			if err != nil {
				return st, runtime.At(err, n.Position())
			}
			return i.invokeProcedure(st, proc, args)
		})
	})
}

func (i *Interpreter) functionCallStep(n *ast.FunctionCall) Step {
	return i.argumentsStep(n.Arguments, nil, func(args []runtime.Value) Step {
		return func(st runtime.State) (runtime.State, runtime.Value, error) {
			fn, err := st.FindFunction(n.Callee.Name)
			if err != nil {
				return st, nil, runtime.At(err, n.Position())
			}
			if len(args) != len(fn.Signature.Params) {
				return st, nil, fmt.Errorf("%sfunction %q expects %d arguments, got %d",
					posPrefix(n.Position()), fn.Name, len(fn.Signature.Params), len(args))
			}
			snapshot, frame := st.SaveAndClearScope()
			for idx, param := range fn.Decl.Params {
				frame = frame.DefineLocal(param.Name.Name, fn.Signature.Params[idx], args[idx])
			}
			after, result, err := i.statementsStep(fn.Decl.Body.Body)(frame)
			if err != nil {
				return st, nil, err
			}
			return after.WithVariables(snapshot), result, nil
		}
	})
}

// argumentsStep evaluates the argument expressions strictly left to right and
// hands the collected values to the continuation.
func (i *Interpreter) argumentsStep(args []ast.Expression, acc []runtime.Value, k func([]runtime.Value) Step) Step {
	if len(args) == 0 {
		return k(acc)
	}
	return i.expressionStep(args[0]).Bind(func(v runtime.Value) Step {
		return i.argumentsStep(args[1:], append(acc, v), k)
	})
}

func (i *Interpreter) invokeProcedure(st runtime.State, proc runtime.Procedure, args []runtime.Value) (runtime.State, error) {
	switch p := proc.(type) {
	case *runtime.NativeProcedure:
		ctx := &runtime.NativeCallContext{State: st, Out: i.out}
		if err := p.Fn(ctx, args); err != nil {
			return st, err
		}
		return st, nil
	case *runtime.UserProcedure:
		snapshot, frame := st.SaveAndClearScope()
		for idx, param := range p.Decl.Params {
			frame = frame.DefineLocal(param.Name.Name, p.Signature.Params[idx], args[idx])
		}
		after, err := i.statementsStep(p.Decl.Body.Body).FinalState(frame)
		if err != nil {
			return st, err
		}
		return after.WithVariables(snapshot), nil
	default:
		return st, fmt.Errorf("unsupported procedure variant %T", proc)
	}
}

func (i *Interpreter) procedureDeclarationStep(n *ast.ProcedureDeclaration) Step {
	return Effect(func(st runtime.State) (runtime.State, error) {
		params, err := resolveParamTypes(st, n.Params)
		if err != nil {
			return st, err
		}
		sig := runtime.Signature{Params: params, Result: runtime.NoneType}
		return st.RegisterProcedure(&runtime.UserProcedure{Name: n.Name.Name, Signature: sig, Decl: n}), nil
	})
}

func (i *Interpreter) functionDeclarationStep(n *ast.FunctionDeclaration) Step {
	return Effect(func(st runtime.State) (runtime.State, error) {
		params, err := resolveParamTypes(st, n.Params)
		if err != nil {
			return st, err
		}
		result := runtime.NoneType
		if n.ResultType != nil {
			var err error
			result, err = st.FindType(n.ResultType.Name)
			if err != nil {
				return st, runtime.At(err, n.ResultType.Position())
			}
		}
		sig := runtime.Signature{Params: params, Result: result}
		return st.RegisterFunction(runtime.Function{Name: n.Name.Name, Signature: sig, Decl: n}), nil
	})
}

func (i *Interpreter) structDeclarationStep(n *ast.StructDeclaration) Step {
	return Effect(func(st runtime.State) (runtime.State, error) {
		fields := make([]runtime.StructDeclField, 0, len(n.Fields))
		for _, f := range n.Fields {
			t, err := st.FindType(f.FieldType.Name)
			if err != nil {
				return st, runtime.At(err, f.FieldType.Position())
			}
			fields = append(fields, runtime.StructDeclField{Name: f.Name.Name, Type: t})
		}
		return st.RegisterStruct(runtime.StructDecl{Name: n.Name.Name, Fields: fields}), nil
	})
}

func resolveParamTypes(st runtime.State, params []*ast.Parameter) ([]runtime.Type, error) {
	types := make([]runtime.Type, 0, len(params))
	for _, p := range params {
		t, err := st.FindType(p.ParamType.Name)
		if err != nil {
			return nil, runtime.At(err, p.ParamType.Position())
		}
		types = append(types, t)
	}
	return types, nil
}

func typesOf(values []runtime.Value) []runtime.Type {
	types := make([]runtime.Type, len(values))
	for i, v := range values {
		types[i] = runtime.TypeOf(v)
	}
	return types
}

func applyBinary(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, error) {
	if !runtime.TypeOf(left).Equals(runtime.TypeOf(right)) {
		return nil, fmt.Errorf("operator %q needs matching operand types, got %s and %s",
			op, runtime.TypeOf(left), runtime.TypeOf(right))
	}
	switch op {
	case ast.OpAdd:
		switch l := left.(type) {
		case runtime.IntegerValue:
			return runtime.IntegerValue{Val: l.Val + right.(runtime.IntegerValue).Val}, nil
		case runtime.FloatValue:
			return runtime.FloatValue{Val: l.Val + right.(runtime.FloatValue).Val}, nil
		}
	case ast.OpMul:
		switch l := left.(type) {
		case runtime.IntegerValue:
			return runtime.IntegerValue{Val: l.Val * right.(runtime.IntegerValue).Val}, nil
		case runtime.FloatValue:
			return runtime.FloatValue{Val: l.Val * right.(runtime.FloatValue).Val}, nil
		}
	case ast.OpSub, ast.OpDiv:
		return nil, fmt.Errorf("operator %q is not executable yet", op)
	}
	return nil, fmt.Errorf("operator %q is not defined on %s operands", op, runtime.TypeOf(left))
}

func unsupportedNode(node ast.Node) error {
	return fmt.Errorf("%sunsupported node type: %s", posPrefix(node.Position()), node.NodeType())
}

func posPrefix(pos ast.Pos) string {
	if !pos.IsValid() {
		return ""
	}
	return pos.String() + ": "
}

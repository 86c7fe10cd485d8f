package runtime

import (
	"errors"
	"reflect"
	"testing"

	"rill/interpreter-go/pkg/ast"
)

func TestShadowingNewestWins(t *testing.T) {
	st := NewState().
		DefineLocal("x", IntegerType, IntegerValue{Val: 5}).
		DefineLocal("x", IntegerType, IntegerValue{Val: 7})

	v, err := st.FindVariable("x")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got := v.Value.(IntegerValue).Val; got != 7 {
		t.Fatalf("expected newest x = 7, got %d", got)
	}
	if len(st.Variables()) != 2 {
		t.Fatalf("shadowed entry should stay in the table, got %d entries", len(st.Variables()))
	}
}

func TestFindVariableMissing(t *testing.T) {
	_, err := NewState().FindVariable("nope")
	var notFound *VariableNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected VariableNotFoundError, got %v", err)
	}
	if notFound.Name != "nope" {
		t.Fatalf("error should carry the failing name, got %q", notFound.Name)
	}
}

func TestAssignVariableValueOnly(t *testing.T) {
	st := NewState().DefineLocal("x", IntegerType, IntegerValue{Val: 5})
	before, _ := st.FindVariable("x")

	st, err := st.AssignVariable("x", IntegerValue{Val: 99})
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	after, _ := st.FindVariable("x")
	if got := after.Value.(IntegerValue).Val; got != 99 {
		t.Fatalf("expected x = 99, got %d", got)
	}
	if !after.Type.Equals(before.Type) {
		t.Fatalf("assign changed the type: %v -> %v", before.Type, after.Type)
	}
	if after.Scope != before.Scope {
		t.Fatalf("assign changed the scope: %v -> %v", before.Scope, after.Scope)
	}
}

func TestAssignVariableInnermostWins(t *testing.T) {
	st := NewState().
		DefineLocal("x", IntegerType, IntegerValue{Val: 1}).
		DefineLocal("x", IntegerType, IntegerValue{Val: 2})

	st, err := st.AssignVariable("x", IntegerValue{Val: 3})
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	vars := st.Variables()
	if got := vars[0].Value.(IntegerValue).Val; got != 3 {
		t.Fatalf("expected front entry updated to 3, got %d", got)
	}
	if got := vars[1].Value.(IntegerValue).Val; got != 1 {
		t.Fatalf("shadowed entry must keep its value, got %d", got)
	}
}

func TestAssignVariableMissingLeavesTableUntouched(t *testing.T) {
	st := NewState().DefineLocal("x", IntegerType, IntegerValue{Val: 5})
	before := st.Variables()

	next, err := st.AssignVariable("nope", IntegerValue{Val: 1})
	var notFound *VariableNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected VariableNotFoundError, got %v", err)
	}
	if !reflect.DeepEqual(next.Variables(), before) {
		t.Fatalf("table changed on failed assign: %v vs %v", next.Variables(), before)
	}
}

func TestProcedureOverloadDistinctness(t *testing.T) {
	intSig := NewSignature(NoneType, IntegerType)
	floatSig := NewSignature(NoneType, FloatType)

	first := &NativeProcedure{Name: "f", Signature: intSig}
	second := &NativeProcedure{Name: "f", Signature: floatSig}
	st := NewState().RegisterProcedure(first).RegisterProcedure(second)

	got, err := st.FindProcedure("f", intSig)
	if err != nil {
		t.Fatalf("int overload lookup failed: %v", err)
	}
	if got != Procedure(first) {
		t.Fatalf("wrong procedure for int overload")
	}
	got, err = st.FindProcedure("f", floatSig)
	if err != nil {
		t.Fatalf("float overload lookup failed: %v", err)
	}
	if got != Procedure(second) {
		t.Fatalf("wrong procedure for float overload")
	}
}

func TestProcedureReregistrationShadows(t *testing.T) {
	sig := NewSignature(NoneType, IntegerType)
	older := &NativeProcedure{Name: "f", Signature: sig}
	newer := &NativeProcedure{Name: "f", Signature: sig}
	st := NewState().RegisterProcedure(older).RegisterProcedure(newer)

	got, err := st.FindProcedure("f", sig)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got != Procedure(newer) {
		t.Fatalf("expected the newer registration to win")
	}
	if len(st.Procedures()) != 2 {
		t.Fatalf("older registration should stay in the table")
	}
}

func TestFindProcedureMissing(t *testing.T) {
	sig := NewSignature(NoneType, IntegerType)
	_, err := NewState().FindProcedure("f", sig)
	var notFound *ProcedureNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ProcedureNotFoundError, got %v", err)
	}
	if notFound.Name != "f" || !notFound.Signature.Equals(sig) {
		t.Fatalf("error should carry name and signature, got %v", notFound)
	}
}

func TestFindFunctionByNameOnly(t *testing.T) {
	fn := Function{Name: "double", Signature: NewSignature(IntegerType, IntegerType)}
	st := NewState().RegisterFunction(fn)

	got, err := st.FindFunction("double")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.Name != "double" {
		t.Fatalf("unexpected function %v", got)
	}

	_, err = st.FindFunction("nope")
	var notFound *FunctionNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected FunctionNotFoundError, got %v", err)
	}
}

func TestFindTypePrimitives(t *testing.T) {
	st := NewState()
	cases := map[string]Type{
		"int":   IntegerType,
		"float": FloatType,
		"bool":  BoolType,
	}
	for name, want := range cases {
		got, err := st.FindType(name)
		if err != nil {
			t.Fatalf("find-type %q failed: %v", name, err)
		}
		if !got.Equals(want) {
			t.Fatalf("find-type %q: got %v, want %v", name, got, want)
		}
	}

	_, err := st.FindType("widget")
	var notFound *TypeNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected TypeNotFoundError, got %v", err)
	}
	if notFound.Name != "widget" {
		t.Fatalf("error should carry the failing name, got %q", notFound.Name)
	}
}

func TestFindTypeConsultsDeclaredStructs(t *testing.T) {
	st := NewState().RegisterStruct(StructDecl{
		Name:   "Point",
		Fields: []StructDeclField{{Name: "x", Type: IntegerType}, {Name: "y", Type: IntegerType}},
	})

	got, err := st.FindType("Point")
	if err != nil {
		t.Fatalf("declared struct not resolvable: %v", err)
	}
	if !got.Equals(StructType("Point")) {
		t.Fatalf("expected struct type Point, got %v", got)
	}
}

func TestErrorPositionAttachment(t *testing.T) {
	_, err := NewState().FindVariable("x")
	err = At(err, ast.Pos{Line: 3, Column: 7})

	var notFound *VariableNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected VariableNotFoundError, got %v", err)
	}
	if notFound.Pos.Line != 3 || notFound.Pos.Column != 7 {
		t.Fatalf("position not attached: %v", notFound.Pos)
	}
	if want := "3:7: variable \"x\" is not defined"; err.Error() != want {
		t.Fatalf("unexpected message %q", err.Error())
	}

	// An already-attached position is not overwritten.
	err = At(err, ast.Pos{Line: 9, Column: 1})
	if notFound.Pos.Line != 3 {
		t.Fatalf("position overwritten: %v", notFound.Pos)
	}
}

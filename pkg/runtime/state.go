package runtime

import (
	"fmt"
	"io"

	"rill/interpreter-go/pkg/ast"
)

// ScopeKind tags a variable's scope marker.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeLocal
)

// Scope marks where a variable lives. A local variable's depth counts the
// block boundaries between it and the innermost open block; depth 0 means the
// variable belongs to the current block. Globals carry no depth and are never
// touched by scope raises or drops.
type Scope struct {
	Kind  ScopeKind
	Depth int
}

func GlobalScope() Scope {
	return Scope{Kind: ScopeGlobal}
}

func LocalScope(depth int) Scope {
	if depth < 0 {
		panic(fmt.Sprintf("runtime: negative scope depth %d", depth))
	}
	return Scope{Kind: ScopeLocal, Depth: depth}
}

func (s Scope) IsLocal() bool {
	return s.Kind == ScopeLocal
}

func (s Scope) String() string {
	if s.Kind == ScopeGlobal {
		return "global"
	}
	return fmt.Sprintf("local(%d)", s.Depth)
}

// Variable binds a name to a typed value. Name and type never change after
// creation; value and scope change only through AssignVariable and the scope
// manager. Names are not unique in a table — insertion order disambiguates,
// which is how shadowing works.
type Variable struct {
	Name  string
	Type  Type
	Value Value
	Scope Scope
}

func (v Variable) String() string {
	return fmt.Sprintf("%s: %s = %s [%s]", v.Name, v.Type, FormatValue(v.Value), v.Scope)
}

// NativeCallContext gives a native procedure access to the program state it
// runs against and the console it may write to.
type NativeCallContext struct {
	State State
	Out   io.Writer
}

// NativeProcFunc is a host-implemented effectful callback taking the argument
// values in call order.
type NativeProcFunc func(ctx *NativeCallContext, args []Value) error

// Procedure is the tagged variant over native and user-defined procedures.
// Lookup identity is the (name, signature) pair.
type Procedure interface {
	ProcName() string
	ProcSignature() Signature
	procedureNode()
}

type NativeProcedure struct {
	Name      string
	Signature Signature
	Fn        NativeProcFunc
}

func (p *NativeProcedure) ProcName() string         { return p.Name }
func (p *NativeProcedure) ProcSignature() Signature { return p.Signature }
func (*NativeProcedure) procedureNode()             {}

type UserProcedure struct {
	Name      string
	Signature Signature
	Decl      *ast.ProcedureDeclaration
}

func (p *UserProcedure) ProcName() string         { return p.Name }
func (p *UserProcedure) ProcSignature() Signature { return p.Signature }
func (*UserProcedure) procedureNode()             {}

// Function is a user-defined function. Lookup identity is the name alone; the
// signature is kept for call validation, not resolution.
type Function struct {
	Name      string
	Signature Signature
	Decl      *ast.FunctionDeclaration
}

// StructDecl is a declared record type, registered so FindType can resolve
// its name. Field semantics (instantiation, access) live outside this core.
type StructDecl struct {
	Name   string
	Fields []StructDeclField
}

type StructDeclField struct {
	Name string
	Type Type
}

// State is the whole program state: four independent insertion-ordered
// tables. It is a value threaded through execution steps — each step reads
// tables, computes replacements, and produces a new State; at no point do two
// steps hold divergent copies. Replacing one table never alters the others.
type State struct {
	vars  []Variable
	types []StructDecl
	procs []Procedure
	funcs []Function
}

func NewState() State {
	return State{}
}

// Variables returns the variable table, most recently inserted first.
func (s State) Variables() []Variable {
	return s.vars
}

func (s State) WithVariables(vars []Variable) State {
	s.vars = vars
	return s
}

func (s State) Types() []StructDecl {
	return s.types
}

func (s State) WithTypes(types []StructDecl) State {
	s.types = types
	return s
}

func (s State) Procedures() []Procedure {
	return s.procs
}

func (s State) WithProcedures(procs []Procedure) State {
	s.procs = procs
	return s
}

func (s State) Functions() []Function {
	return s.funcs
}

func (s State) WithFunctions(funcs []Function) State {
	s.funcs = funcs
	return s
}

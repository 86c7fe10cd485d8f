package runtime

import (
	"fmt"
	"strings"
)

// TypeKind tags the type descriptor variants.
type TypeKind int

const (
	TypeKindInteger TypeKind = iota
	TypeKindFloat
	TypeKindBool
	TypeKindNone
	TypeKindStruct
)

// Type is a canonical type descriptor. Name is set only for struct types.
type Type struct {
	Kind TypeKind
	Name string
}

// Canonical primitive descriptors.
var (
	IntegerType = Type{Kind: TypeKindInteger}
	FloatType   = Type{Kind: TypeKindFloat}
	BoolType    = Type{Kind: TypeKindBool}
	NoneType    = Type{Kind: TypeKindNone}
)

// StructType builds the descriptor for a declared record type.
func StructType(name string) Type {
	return Type{Kind: TypeKindStruct, Name: name}
}

// Equals is the single exhaustive type-equality point. Tags must match; for
// structs the name must match as well. No coercion, no subtyping.
func (t Type) Equals(o Type) bool {
	switch t.Kind {
	case TypeKindInteger, TypeKindFloat, TypeKindBool, TypeKindNone:
		return t.Kind == o.Kind
	case TypeKindStruct:
		return o.Kind == TypeKindStruct && t.Name == o.Name
	default:
		panic(fmt.Sprintf("runtime: unknown type kind %d", int(t.Kind)))
	}
}

func (t Type) String() string {
	switch t.Kind {
	case TypeKindInteger:
		return "int"
	case TypeKindFloat:
		return "float"
	case TypeKindBool:
		return "bool"
	case TypeKindNone:
		return "none"
	case TypeKindStruct:
		return t.Name
	default:
		return fmt.Sprintf("unknown_type_%d", int(t.Kind))
	}
}

// Signature is the type of a procedure or function: parameter types in order
// plus a result type (NoneType for procedures). Procedures with the same name
// and different signatures are unrelated entries.
type Signature struct {
	Params []Type
	Result Type
}

func NewSignature(result Type, params ...Type) Signature {
	return Signature{Params: params, Result: result}
}

// Equals requires the same arity and exact per-position type equality.
func (s Signature) Equals(o Signature) bool {
	if len(s.Params) != len(o.Params) {
		return false
	}
	for i, p := range s.Params {
		if !p.Equals(o.Params[i]) {
			return false
		}
	}
	return s.Result.Equals(o.Result)
}

func (s Signature) String() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), s.Result)
}

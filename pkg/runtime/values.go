package runtime

import (
	"fmt"
	"strconv"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindBool
	KindNone
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindNone:
		return "none"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. Values are immutable:
// a variable's value is replaced wholesale, never changed in place.
type Value interface {
	Kind() Kind
}

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// NoneValue marks a declared-but-undefined variable and the result of
// effect-only steps.
type NoneValue struct{}

func (NoneValue) Kind() Kind { return KindNone }

// TypeOf reports the canonical type of a value. This is the single exhaustive
// value-typing point; a new value variant must be added here.
func TypeOf(v Value) Type {
	switch v.(type) {
	case IntegerValue:
		return IntegerType
	case FloatValue:
		return FloatType
	case BoolValue:
		return BoolType
	case NoneValue, nil:
		return NoneType
	default:
		panic(fmt.Sprintf("runtime: value %T has no type", v))
	}
}

// FormatValue renders a value for console output and diagnostics.
func FormatValue(v Value) string {
	switch val := v.(type) {
	case IntegerValue:
		return strconv.FormatInt(val.Val, 10)
	case FloatValue:
		return strconv.FormatFloat(val.Val, 'g', -1, 64)
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case NoneValue, nil:
		return "none"
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}

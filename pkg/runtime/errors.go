package runtime

import (
	"errors"
	"fmt"

	"rill/interpreter-go/pkg/ast"
)

// Lookup failures carry the failing key and, once the evaluator attaches it,
// the source position of the reference. They propagate as ordinary error
// values and short-circuit composed steps; nothing in this package aborts the
// process.

type VariableNotFoundError struct {
	Name string
	Pos  ast.Pos
}

func (e *VariableNotFoundError) Error() string {
	return posPrefix(e.Pos) + fmt.Sprintf("variable %q is not defined", e.Name)
}

type ProcedureNotFoundError struct {
	Name      string
	Signature Signature
	Pos       ast.Pos
}

func (e *ProcedureNotFoundError) Error() string {
	return posPrefix(e.Pos) + fmt.Sprintf("no procedure %q with type %s", e.Name, e.Signature)
}

type FunctionNotFoundError struct {
	Name string
	Pos  ast.Pos
}

func (e *FunctionNotFoundError) Error() string {
	return posPrefix(e.Pos) + fmt.Sprintf("function %q is not defined", e.Name)
}

type TypeNotFoundError struct {
	Name string
	Pos  ast.Pos
}

func (e *TypeNotFoundError) Error() string {
	return posPrefix(e.Pos) + fmt.Sprintf("type %q is not known", e.Name)
}

func posPrefix(pos ast.Pos) string {
	if !pos.IsValid() {
		return ""
	}
	return pos.String() + ": "
}

// At attaches a source position to a lookup failure that does not already
// carry one. Other errors pass through unchanged.
func At(err error, pos ast.Pos) error {
	if err == nil || !pos.IsValid() {
		return err
	}
	var varErr *VariableNotFoundError
	if errors.As(err, &varErr) && !varErr.Pos.IsValid() {
		varErr.Pos = pos
		return err
	}
	var procErr *ProcedureNotFoundError
	if errors.As(err, &procErr) && !procErr.Pos.IsValid() {
		procErr.Pos = pos
		return err
	}
	var fnErr *FunctionNotFoundError
	if errors.As(err, &fnErr) && !fnErr.Pos.IsValid() {
		fnErr.Pos = pos
		return err
	}
	var typeErr *TypeNotFoundError
	if errors.As(err, &typeErr) && !typeErr.Pos.IsValid() {
		typeErr.Pos = pos
		return err
	}
	return err
}

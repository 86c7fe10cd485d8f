package interpreter

import (
	"fmt"
	"io"

	"rill/interpreter-go/pkg/runtime"
)

// Builtin native procedures available in every program: writeln overloads
// for each printable primitive, and the dumpVariables diagnostic.

func registerBuiltins(st runtime.State) runtime.State {
	for _, t := range []runtime.Type{runtime.IntegerType, runtime.FloatType, runtime.BoolType} {
		st = st.RegisterProcedure(&runtime.NativeProcedure{
			Name:      "writeln",
			Signature: runtime.NewSignature(runtime.NoneType, t),
			Fn:        writelnNative,
		})
	}
	st = st.RegisterProcedure(&runtime.NativeProcedure{
		Name:      "dumpVariables",
		Signature: runtime.NewSignature(runtime.NoneType),
		Fn:        dumpVariablesNative,
	})
	return st
}

func writelnNative(ctx *runtime.NativeCallContext, args []runtime.Value) error {
	return writeLine(ctx.Out, runtime.FormatValue(args[0]))
}

// dumpVariablesNative writes a header followed by one line per variable, in
// table order, so shadowed entries show up beneath the entries hiding them.
func dumpVariablesNative(ctx *runtime.NativeCallContext, _ []runtime.Value) error {
	if err := writeLine(ctx.Out, "-- variables --"); err != nil {
		return err
	}
	for _, v := range ctx.State.Variables() {
		if err := writeLine(ctx.Out, v.String()); err != nil {
			return err
		}
	}
	return nil
}

func writeLine(out io.Writer, line string) error {
	_, err := fmt.Fprintln(out, line)
	return err
}

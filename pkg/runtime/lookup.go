package runtime

// Lookup and registration over the four tables. Every lookup is a linear scan
// in table order; the first match wins, which together with front insertion
// realizes shadowing and overload precedence.

// FindVariable returns the first variable with the given name.
func (s State) FindVariable(name string) (Variable, error) {
	for _, v := range s.vars {
		if v.Name == name {
			return v, nil
		}
	}
	return Variable{}, &VariableNotFoundError{Name: name}
}

// FindProcedure requires an exact match on both name and signature. Two
// procedures sharing a name with different signatures are unrelated entries.
func (s State) FindProcedure(name string, sig Signature) (Procedure, error) {
	for _, p := range s.procs {
		if p.ProcName() == name && p.ProcSignature().Equals(sig) {
			return p, nil
		}
	}
	return nil, &ProcedureNotFoundError{Name: name, Signature: sig}
}

// FindFunction matches on name alone; functions do not overload.
func (s State) FindFunction(name string) (Function, error) {
	for _, f := range s.funcs {
		if f.Name == name {
			return f, nil
		}
	}
	return Function{}, &FunctionNotFoundError{Name: name}
}

// FindType resolves a surface type name. The primitive names are closed;
// anything else is looked up in the declared-type table, which is the
// extension seam for struct types.
func (s State) FindType(name string) (Type, error) {
	switch name {
	case "int":
		return IntegerType, nil
	case "float":
		return FloatType, nil
	case "bool":
		return BoolType, nil
	}
	for _, d := range s.types {
		if d.Name == name {
			return StructType(d.Name), nil
		}
	}
	return Type{}, &TypeNotFoundError{Name: name}
}

// DefineLocal inserts a variable at the front of the table with scope
// local(0). An existing entry with the same name stays in the table but is
// shadowed for subsequent lookups.
func (s State) DefineLocal(name string, t Type, v Value) State {
	entry := Variable{Name: name, Type: t, Value: v, Scope: LocalScope(0)}
	vars := make([]Variable, 0, len(s.vars)+1)
	vars = append(vars, entry)
	vars = append(vars, s.vars...)
	return s.WithVariables(vars)
}

// DefineLocalUndefined registers a declared-but-uninitialized local.
func (s State) DefineLocalUndefined(name string, t Type) State {
	return s.DefineLocal(name, t, NoneValue{})
}

// DefineGlobal inserts a global-scoped variable at the front of the table.
func (s State) DefineGlobal(name string, t Type, v Value) State {
	entry := Variable{Name: name, Type: t, Value: v, Scope: GlobalScope()}
	vars := make([]Variable, 0, len(s.vars)+1)
	vars = append(vars, entry)
	vars = append(vars, s.vars...)
	return s.WithVariables(vars)
}

// AssignVariable replaces the value of the first variable with the given
// name, leaving its type and scope untouched. On a miss the table is
// unchanged and the lookup failure is returned.
func (s State) AssignVariable(name string, v Value) (State, error) {
	for i, existing := range s.vars {
		if existing.Name != name {
			continue
		}
		vars := make([]Variable, len(s.vars))
		copy(vars, s.vars)
		vars[i].Value = v
		return s.WithVariables(vars), nil
	}
	return s, &VariableNotFoundError{Name: name}
}

// RegisterProcedure inserts at the front of the procedure table. No
// uniqueness check: a later registration under an identical (name, signature)
// shadows the earlier one for lookup without removing it.
func (s State) RegisterProcedure(p Procedure) State {
	procs := make([]Procedure, 0, len(s.procs)+1)
	procs = append(procs, p)
	procs = append(procs, s.procs...)
	return s.WithProcedures(procs)
}

// RegisterFunction inserts at the front of the function table; same
// shadowing policy as procedures.
func (s State) RegisterFunction(f Function) State {
	funcs := make([]Function, 0, len(s.funcs)+1)
	funcs = append(funcs, f)
	funcs = append(funcs, s.funcs...)
	return s.WithFunctions(funcs)
}

// RegisterStruct inserts a declared type at the front of the type table.
func (s State) RegisterStruct(d StructDecl) State {
	types := make([]StructDecl, 0, len(s.types)+1)
	types = append(types, d)
	types = append(types, s.types...)
	return s.WithTypes(types)
}

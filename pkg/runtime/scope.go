package runtime

// The scope manager reinterprets the variable table's per-entry depth markers
// to implement block entry and exit. There is no nested environment tree: one
// flat table, with each local variable carrying its distance from the
// innermost open block.

// RaiseScope bumps every local variable one block boundary outward. Called on
// entering a nested block, before any of that block's variables are
// registered, so that depth 0 is free for them. Globals are untouched.
func (s State) RaiseScope() State {
	vars := make([]Variable, len(s.vars))
	for i, v := range s.vars {
		if v.Scope.IsLocal() {
			v.Scope = LocalScope(v.Scope.Depth + 1)
		}
		vars[i] = v
	}
	return s.WithVariables(vars)
}

// DropScope removes every local variable at depth 0 and moves the remaining
// locals one boundary inward. Called on leaving a block; must pair 1:1 with a
// prior RaiseScope, otherwise it removes the current block's own variables.
// Globals are untouched.
func (s State) DropScope() State {
	vars := make([]Variable, 0, len(s.vars))
	for _, v := range s.vars {
		if v.Scope.IsLocal() {
			if v.Scope.Depth == 0 {
				continue
			}
			v.Scope = LocalScope(v.Scope.Depth - 1)
		}
		vars = append(vars, v)
	}
	return s.WithVariables(vars)
}

// SaveAndClearScope captures the entire variable table and replaces the live
// table with only its global entries, giving a callee a frame that sees
// globals but none of the caller's locals. Restoring the snapshot is the
// caller's job, via WithVariables; the restore replaces the table wholesale,
// so global updates made while the frame was active are discarded.
func (s State) SaveAndClearScope() (snapshot []Variable, cleared State) {
	snapshot = s.vars
	globals := make([]Variable, 0, len(s.vars))
	for _, v := range s.vars {
		if !v.Scope.IsLocal() {
			globals = append(globals, v)
		}
	}
	return snapshot, s.WithVariables(globals)
}

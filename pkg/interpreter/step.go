package interpreter

import "rill/interpreter-go/pkg/runtime"

// Step is the unit of execution: given the current program state, perform
// its external effects, and produce the next state plus a result value.
// Steps compose left to right; an effect runs exactly once, in sequence
// order, and a failing step stops everything composed after it. There is no
// parallelism and no reentrancy — a step completes before the next begins.
type Step func(runtime.State) (runtime.State, runtime.Value, error)

// Effect builds a leaf step that may write to the console and computes a new
// state from the old one. Its result is none.
func Effect(fn func(runtime.State) (runtime.State, error)) Step {
	return func(st runtime.State) (runtime.State, runtime.Value, error) {
		next, err := fn(st)
		if err != nil {
			return st, nil, err
		}
		return next, runtime.NoneValue{}, nil
	}
}

// Query builds a leaf step that derives a result from the current state,
// performs no effect, and leaves the state unchanged.
func Query(fn func(runtime.State) (runtime.Value, error)) Step {
	return func(st runtime.State) (runtime.State, runtime.Value, error) {
		v, err := fn(st)
		if err != nil {
			return st, nil, err
		}
		return st, v, nil
	}
}

// Pure lifts a ready value into a step.
func Pure(v runtime.Value) Step {
	return func(st runtime.State) (runtime.State, runtime.Value, error) {
		return st, v, nil
	}
}

// Fail is a step that always short-circuits with err.
func Fail(err error) Step {
	return func(st runtime.State) (runtime.State, runtime.Value, error) {
		return st, nil, err
	}
}

// Then runs s, feeds its resulting state to next, and keeps next's result.
func (s Step) Then(next Step) Step {
	return func(st runtime.State) (runtime.State, runtime.Value, error) {
		mid, _, err := s(st)
		if err != nil {
			return st, nil, err
		}
		return next(mid)
	}
}

// Bind runs s and uses its result to choose the continuation step.
func (s Step) Bind(fn func(runtime.Value) Step) Step {
	return func(st runtime.State) (runtime.State, runtime.Value, error) {
		mid, v, err := s(st)
		if err != nil {
			return st, nil, err
		}
		return fn(v)(mid)
	}
}

// Seq chains steps in order; the composite result is the last step's result.
func Seq(steps ...Step) Step {
	return func(st runtime.State) (runtime.State, runtime.Value, error) {
		var last runtime.Value = runtime.NoneValue{}
		for _, step := range steps {
			next, v, err := step(st)
			if err != nil {
				return st, nil, err
			}
			st, last = next, v
		}
		return st, last, nil
	}
}

// FinalState runs the step for its effects and returns only the final state.
func (s Step) FinalState(st runtime.State) (runtime.State, error) {
	next, _, err := s(st)
	if err != nil {
		return st, err
	}
	return next, nil
}

// Result runs the step and returns only its result, discarding the state it
// produced. Callers that need the state must use FinalState or compose
// further instead of running the step twice.
func (s Step) Result(st runtime.State) (runtime.Value, error) {
	_, v, err := s(st)
	if err != nil {
		return nil, err
	}
	return v, nil
}

package engine

// ActionCheck is the outcome of a precondition stage: either a decided value
// or a terminal failure that already carries the effects to log.
type ActionCheck[T any] struct {
	value    T
	effects  ActionSideEffects
	terminal bool
}

// Proceed returns a decided outcome.
func Proceed[T any](v T) ActionCheck[T] {
	return ActionCheck[T]{value: v}
}

// Terminate aborts the action with the given effects.
func Terminate[T any](effects ...SideEffect) ActionCheck[T] {
	return ActionCheck[T]{effects: effects, terminal: true}
}

// Value returns the decided value and false when the check terminated.
func (c ActionCheck[T]) Value() (T, bool) {
	return c.value, !c.terminal
}

// Terminal reports whether the check aborted the action.
func (c ActionCheck[T]) Terminal() bool {
	return c.terminal
}

// Effects returns the effects attached to a terminal check.
func (c ActionCheck[T]) Effects() ActionSideEffects {
	return c.effects
}

package request

import (
	"github.com/adamwoolhether/wire/internal/fold"
)

// Modifier takes a descriptor and returns a modified copy or fails.
// Implementations must not mutate the descriptor they receive.
type Modifier interface {
	Modify(Descriptor) (Descriptor, error)
}

// ModifierFunc adapts a function to the [Modifier] interface. The function
// receives its own copy of the descriptor.
type ModifierFunc func(Descriptor) (Descriptor, error)

// Modify calls f with a copy of d.
func (f ModifierFunc) Modify(d Descriptor) (Descriptor, error) {
	return f(d.Clone())
}

// Apply runs modifiers over d in order, stopping at the first failure.
func Apply(d Descriptor, modifiers ...Modifier) (Descriptor, error) {
	return fold.UntilFailure(d, modifiers)
}

// Package fold applies ordered, fallible steps to a value.
package fold

// Step transforms a value or fails.
type Step[T any] interface {
	Modify(T) (T, error)
}

// UntilFailure applies steps to initial in order and returns the final
// value. The first failing step ends the fold; later steps never run and
// its error is returned unchanged.
func UntilFailure[T any, S Step[T]](initial T, steps []S) (T, error) {
	buffer := initial

	for _, step := range steps {
		next, err := step.Modify(buffer)
		if err != nil {
			var zero T
			return zero, err
		}
		buffer = next
	}

	return buffer, nil
}

package domain

import "fmt"

// PlaceholderError reports a ${...} placeholder that has no value and no default.
// It matches ErrUnresolvablePlaceholder with errors.Is.
type PlaceholderError struct {
	// Placeholder is the name inside ${...}.
	Placeholder string
	// Key is the dotted configuration key whose value holds the placeholder.
	Key string
}

func (e *PlaceholderError) Error() string {
	return fmt.Sprintf("%s ${%s} in %s", ErrUnresolvablePlaceholder.Error(), e.Placeholder, e.Key)
}

// Is reports whether target is ErrUnresolvablePlaceholder.
func (e *PlaceholderError) Is(target error) bool {
	return target == ErrUnresolvablePlaceholder
}

package mutate

import "fmt"

// NotFoundError is returned by strict lookups. The mutation functions themselves
// treat unknown ids as no-ops.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

type InvalidColorError struct {
	Color string
}

func (e InvalidColorError) Error() string {
	return fmt.Sprintf("invalid color: %q", e.Color)
}

package jump

import "errors"

var (
	// ErrNoRouteFound is returned when no route matches the URL.
	ErrNoRouteFound = errors.New("no matching route found")

	// ErrNotNavigable is returned when only closure routes match.
	ErrNotNavigable = errors.New("route matched but its action is a closure and cannot be navigated to")
)

// MethodRequiredError is returned when several HTTP methods lead to
// different actions and no choice was made.
type MethodRequiredError struct {
	URL     string
	Methods []string
}

func (e *MethodRequiredError) Error() string {
	msg := "multiple routes match " + e.URL + "; choose a method:"
	for _, m := range e.Methods {
		msg += " " + m
	}
	return msg
}

package catalog

import "fmt"

// ValidationError indicates the request payload failed a precondition.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// NotFoundError indicates no live service matches the given id.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("service %s not found", e.ID)
}

// AlreadyExistsError indicates a live service already uses the name.
type AlreadyExistsError struct {
	Name string
}

func (e AlreadyExistsError) Error() string {
	return fmt.Sprintf("service named %q already exists", e.Name)
}

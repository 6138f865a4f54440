package staff

import "fmt"

// ValidationError indicates the request payload failed a precondition.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// NotFoundError indicates no live account matches the given id.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("user %s not found", e.ID)
}

// AlreadyExistsError indicates a live account already uses the email.
type AlreadyExistsError struct {
	Email string
}

func (e AlreadyExistsError) Error() string {
	return fmt.Sprintf("user with email %s already exists", e.Email)
}

package ogurydomain

import "fmt"

// AuthError is returned when the client-credentials exchange fails.
type AuthError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %s", e.Err.Error())
	}
	return fmt.Sprintf("authentication failed: %s", e.Status)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// APIError is returned when a reporting call answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api request failed: %s", e.Status)
}

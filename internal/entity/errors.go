package entity

import "fmt"

// ServiceError carries a failure reported by the remote scoring service.
// Message is the server-supplied user-facing text, empty when the response
// body carried none (or was unparseable).
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("service error (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("service error (HTTP %d)", e.StatusCode)
}

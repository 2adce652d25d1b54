package gigachat

import "fmt"

// AuthError reports a non-200 response from the OAuth endpoint.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("gigachat auth: unexpected status %d", e.Status)
}

// CompletionError reports a non-200 response from the completion endpoint.
// Body carries the raw response body for diagnostics and user messaging.
type CompletionError struct {
	Status int
	Body   string
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("gigachat completion: status %d: %s", e.Status, e.Body)
}

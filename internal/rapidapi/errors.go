package rapidapi

import "fmt"

// StatusError captures non-2xx HTTP responses from a RapidAPI host.
type StatusError struct {
	Host       string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Body == "" {
		return fmt.Sprintf("%s request failed: status %d", e.Host, e.StatusCode)
	}
	return fmt.Sprintf("%s request failed: status %d: %s", e.Host, e.StatusCode, e.Body)
}

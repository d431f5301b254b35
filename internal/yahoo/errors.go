package yahoo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFrequency is returned for statement frequencies other than
	// yearly, quarterly or trailing.
	ErrInvalidFrequency = errors.New("yahoo: frequency must be one of yearly, quarterly, trailing")

	// ErrNoData is returned when Yahoo answers successfully with no result.
	ErrNoData = errors.New("yahoo: no data returned")
)

// APIError is an error object reported inside a Yahoo response envelope.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yahoo api error: %s: %s", e.Code, e.Description)
}

// HTTPError is a non-2xx response without a recognisable error envelope.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("yahoo returned %d for %s: %s", e.StatusCode, e.URL, e.Body)
}

package services

import (
	"fmt"
	"io"
	"net/http"
)

// maxErrorBodySize bounds how much of an upstream error body is kept.
const maxErrorBodySize = 500

// HTTPError is a non-2xx reply from an upstream service.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
	URL        string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s (status %d): %s", e.Status, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s (status %d)", e.Status, e.StatusCode)
}

// parseErrorResponse returns an *HTTPError for 4xx/5xx replies and nil
// otherwise. It consumes the body only on error.
func parseErrorResponse(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize+1))
	s := string(body)
	if len(s) > maxErrorBodySize {
		s = s[:maxErrorBodySize] + "..."
	}

	e := &HTTPError{
		StatusCode: resp.StatusCode,
		Status:     http.StatusText(resp.StatusCode),
		Body:       s,
	}
	if resp.Request != nil {
		e.URL = resp.Request.URL.String()
	}
	return e
}

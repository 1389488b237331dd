package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork matches every failed request: transport error, non-2xx status or undecodable body
	ErrNetwork = errors.New("network failure")
	// ErrNotFound matches a 404 response
	ErrNotFound = errors.New("not found")
)

// RequestError describes one failed backend request
type RequestError struct {
	Op     string // "sections", "instructor rating", ...
	URL    string
	Status int    // 0 when no response arrived
	Body   string // truncated response body for non-2xx
	Err    error
}

func (e *RequestError) Error() string {
	switch {
	case e.Status != 0 && e.Err == nil:
		msg := fmt.Sprintf("%s: backend returned status %d", e.Op, e.Status)
		if e.Body != "" {
			msg += ": " + e.Body
		}
		return msg
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op + ": request failed"
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrNetwork for any RequestError and ErrNotFound for a 404
func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return true
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

package commerce

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// StatusError is a non-2xx response from the commerce API.
type StatusError struct {
	StatusCode int
	// Message is the server's message when the body was JSON with a message
	// field, otherwise the raw body text.
	Message string
	Body    []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("commerce api status=%d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) HTTPStatus() int {
	return e.StatusCode
}

func (e *StatusError) ServerMessage() string {
	return e.Message
}

func newStatusError(code int, body []byte) *StatusError {
	return &StatusError{StatusCode: code, Message: errorMessage(code, body), Body: body}
}

// errorMessage tries {"message": ...} (falling back to {"error": ...}) and then the raw text.
func errorMessage(code int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return http.StatusText(code)
}

// FetchError wraps any failure of a read operation.
type FetchError struct {
	Op string
	// StatusCode is 0 for transport and decoding failures.
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

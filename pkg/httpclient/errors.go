package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	appErrors "github.com/noah-isme/cemetery-console/pkg/errors"
)

// maxPlainMessage bounds how much of a text/plain error body is shown to operators.
const maxPlainMessage = 200

// TransportError means no response was received from the backend.
type TransportError struct {
	Client string
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s %s: %v", e.Client, e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a non-2xx backend answer.
type StatusError struct {
	Client      string
	Method      string
	Path        string
	Status      int
	ContentType string
	Body        []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s %s: status %d", e.Client, e.Method, e.Path, e.Status)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}

// Normalize turns a client failure into an application error carrying operator-facing text.
// Errors that did not originate from a backend call are returned unchanged.
func Normalize(err error, action string) error {
	if err == nil {
		return nil
	}

	var se *StatusError
	if errors.As(err, &se) {
		message := extractMessage(se)
		if message == "" {
			message = fmt.Sprintf("%s (status %d)", action, se.Status)
		}
		return appErrors.Wrap(err, codeFor(se.Status), se.Status, message)
	}

	var te *TransportError
	if errors.As(err, &te) {
		if errors.Is(err, context.Canceled) {
			return appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, 499, fmt.Sprintf("%s (solicitud cancelada)", action))
		}
		return appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status,
			fmt.Sprintf("%s (sin respuesta del servidor)", action))
	}

	return err
}

func codeFor(status int) string {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return appErrors.ErrValidation.Code
	case status == http.StatusUnauthorized:
		return appErrors.ErrUnauthorized.Code
	case status == http.StatusForbidden:
		return appErrors.ErrForbidden.Code
	case status == http.StatusNotFound:
		return appErrors.ErrNotFound.Code
	case status == http.StatusConflict:
		return appErrors.ErrConflict.Code
	default:
		return appErrors.ErrUpstream.Code
	}
}

// extractMessage picks, in order: a JSON "message", a JSON "error", a bare JSON string,
// or a short plain-text body.
func extractMessage(se *StatusError) string {
	body := strings.TrimSpace(string(se.Body))
	if body == "" {
		return ""
	}

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(body), &fields); err == nil {
		for _, key := range []string{"message", "error"} {
			if s, ok := fields[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
		return ""
	}

	var plain string
	if err := json.Unmarshal([]byte(body), &plain); err == nil {
		return strings.TrimSpace(plain)
	}

	if strings.HasPrefix(se.ContentType, "text/plain") && utf8.RuneCountInString(body) <= maxPlainMessage {
		return body
	}
	return ""
}

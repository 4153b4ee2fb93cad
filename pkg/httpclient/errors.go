package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/VivekRai08/Jain-Foam-website/pkg/errors"
)

// maxErrorBody caps how much of an error body is read and quoted.
const maxErrorBody = 4 << 10

// StatusError describes a non-2xx response that did not map to an AppError.
type StatusError struct {
	Service string
	Status  int
	Body    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.Status, e.Body)
}

// errorBody matches both this API's error envelope and the
// {"code","message"} shape used by Brevo.
type errorBody struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseResponseError reads and closes the body of a non-2xx response and
// returns an error describing it. 404, 400 and 503 map to the matching
// AppError so callers can use errors.Is on the sentinels.
func ParseResponseError(resp *http.Response, service string) error {
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("%s returned status %d (read body: %w)", service, resp.StatusCode, err)
	}

	message := strings.TrimSpace(string(raw))
	var body errorBody
	if json.Unmarshal(raw, &body) == nil {
		switch {
		case body.Error != nil && body.Error.Message != "":
			message = body.Error.Message
		case body.Message != "":
			message = body.Message
		}
	}
	qualified := fmt.Sprintf("%s: %s", service, message)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return &apperrors.AppError{
			Code:    "NOT_FOUND",
			Message: qualified,
			Status:  http.StatusNotFound,
			Err:     apperrors.ErrNotFound,
		}
	case http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case http.StatusServiceUnavailable:
		return apperrors.Unavailable(qualified)
	default:
		return &StatusError{Service: service, Status: resp.StatusCode, Body: message}
	}
}

// IsSuccess reports whether status is 2xx.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}

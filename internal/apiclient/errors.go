package apiclient

import (
	"encoding/json"
	"io"
	"net/http"

	apperrors "github.com/vetdesk-app/vetdesk/pkg/util"
)

// errorEnvelope matches the stub/backend error contract. Older deployments
// answer with the flat {message, errors} shape instead; both are accepted.
type errorEnvelope struct {
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func decodeError(resp *http.Response) *apperrors.DomainError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error != nil && envelope.Error.Message != "" {
			return &apperrors.DomainError{
				Code:       envelope.Error.Code,
				Message:    envelope.Error.Message,
				HTTPStatus: resp.StatusCode,
				Details:    envelope.Error.Details,
			}
		}
		if envelope.Message != "" {
			details := map[string]any{}
			for field, msg := range envelope.Errors {
				details[field] = msg
			}
			return &apperrors.DomainError{
				Code:       codeForStatus(resp.StatusCode),
				Message:    envelope.Message,
				HTTPStatus: resp.StatusCode,
				Details:    details,
			}
		}
	}

	return &apperrors.DomainError{
		Code:       codeForStatus(resp.StatusCode),
		Message:    http.StatusText(resp.StatusCode),
		HTTPStatus: resp.StatusCode,
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusUnprocessableEntity:
		return "VALIDATION_FAILED"
	default:
		return "API_ERROR"
	}
}

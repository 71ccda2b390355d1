package errors

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Display string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// NewErrorResponse builds the API error payload from a marked error.
func NewErrorResponse(err error) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Display: displayMessage(err),
			Code:    codeOf(err),
			Details: safeDetails(err),
		},
	}
}

func codeOf(err error) string {
	var internal *InternalError
	if errors.As(err, &internal) {
		return internal.Code
	}
	for sentinel := range statusCodeMap {
		if errors.Is(err, sentinel) {
			if ie, ok := sentinel.(*InternalError); ok {
				return ie.Code
			}
		}
	}
	return ""
}

func displayMessage(err error) string {
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		// GetAllHints is post-order traversal, first non-empty wins
		for _, hint := range hints {
			if hint = strings.TrimSpace(hint); hint != "" {
				return hint
			}
		}
	}
	return "An unexpected error occurred"
}

func safeDetails(err error) map[string]any {
	details := make(map[string]any)

	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			if len(payload) > 9 && strings.HasPrefix(payload, "__json__:") {
				var jsonDetails map[string]any
				if err := json.Unmarshal([]byte(payload[9:]), &jsonDetails); err == nil {
					for k, v := range jsonDetails {
						details[k] = v
					}
				}
			}
		}
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

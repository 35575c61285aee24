package services

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/healthnav/internal/client/client"
)

// DefaultErrorMessage is stored when an error carries no text at all.
const DefaultErrorMessage = "An unexpected error occurred"

// ErrIncompleteAuth is returned when the server accepts credentials but
// omits the user or a token.
var ErrIncompleteAuth = errors.New("server response is missing the user or tokens")

// ErrorMessage flattens err into the single line stored in a domain's error
// field: the server-provided message when there is one, else the error
// text, else DefaultErrorMessage.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if msg := strings.TrimSpace(apiErr.Error()); msg != "" {
			return msg
		}
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return DefaultErrorMessage
}

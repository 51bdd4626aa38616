package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/myblog/internal/client/client"
	"github.com/dmitrijs2005/myblog/internal/common"
)

var (
	ErrPostNotFound = fmt.Errorf("post %w", common.ErrorNotFound)

	// ErrSessionRejected is returned when the server does not recognise the
	// stored token (the "me" query resolves to nothing).
	ErrSessionRejected = fmt.Errorf("session rejected by server: %w", common.ErrorUnauthorized)
)

// ValidationError is a problem with user input found before any request is
// sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// RejectedError is a business failure reported by the server (ok: false).
// The session is left unchanged.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string { return e.Message }

// Describe renders err as the message shown to the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	var re *RejectedError
	var ge *client.GraphQLError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &re):
		return re.Message
	case errors.Is(err, ErrPostNotFound):
		return "Post not found."
	case errors.Is(err, ErrSessionRejected):
		return "Your session is no longer valid. Please log in again."
	case errors.As(err, &ge):
		msg := ge.Error()
		if len(ge.Messages) > 0 {
			msg = ge.Messages[0]
		}
		return "GraphQL Error: " + msg
	case errors.Is(err, client.ErrUnavailable), errors.Is(err, client.ErrProtocol):
		return "Network Error: " + err.Error()
	default:
		return "Unexpected error: " + err.Error()
	}
}

package client

import (
	"errors"
	"strings"
)

var (
	// ErrUnavailable wraps transport failures: refused connections,
	// timeouts and canceled requests.
	ErrUnavailable = errors.New("server unavailable")

	// ErrProtocol is returned for non-2xx replies and bodies that are not a
	// GraphQL response.
	ErrProtocol = errors.New("unexpected response from server")
)

// GraphQLError carries the messages of a response with a non-empty
// "errors" list.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	if len(e.Messages) == 0 {
		return "graphql error"
	}
	return strings.Join(e.Messages, "; ")
}

// Package common contains shared constants and sentinel errors used across
// the myblog client packages.
package common

const (
	// AuthorizationHeader carries the bearer credential on outbound API requests.
	AuthorizationHeader = "Authorization"

	// BearerScheme is the authorization scheme prefix, including the trailing space.
	BearerScheme = "Bearer "

	// RequestIDHeader correlates a single GraphQL request across client and server logs.
	RequestIDHeader = "X-Request-ID"
)

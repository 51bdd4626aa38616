// Package client talks to the myblog GraphQL API.
//
// # Overview
//
// The package provides:
//  1. The Client interface used by the services: login/register mutations,
//     post queries and post mutations.
//  2. GraphQLClient, an implementation over HTTP POST that decodes the
//     {data, errors} envelope and maps failures to package errors.
//  3. An http.RoundTripper chain: AuthTransport attaches the bearer token
//     read from durable storage right before each request, RequestIDTransport
//     adds an X-Request-ID header.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable, malformed or non-2xx responses wrap
// ErrProtocol, and server-side GraphQL errors are returned as *GraphQLError.
// Match them with errors.Is and errors.As.
//
// Business failures (ok: false in a mutation envelope) are not errors at this
// level; the envelope is returned as is.
package client

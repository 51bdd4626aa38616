package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/myblog/internal/client/session"
	"github.com/dmitrijs2005/myblog/internal/client/storage"
	"github.com/dmitrijs2005/myblog/internal/common"
	"github.com/dmitrijs2005/myblog/internal/logging"
	"github.com/google/uuid"
)

// TokenSource yields the bearer token for the next request, "" if none.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StorageTokenSource reads the token from durable storage on every call,
// under the same key the session store writes it to.
type StorageTokenSource struct {
	Storage storage.Storage
}

func (s StorageTokenSource) Token(ctx context.Context) (string, error) {
	v, _, err := s.Storage.GetItem(ctx, session.KeyToken)
	return v, err
}

// AuthTransport sets "Authorization: Bearer <token>" on outgoing requests
// when a token is stored. Requests without a token pass through untouched.
type AuthTransport struct {
	Base   http.RoundTripper
	Tokens TokenSource
	Log    logging.Logger
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.Tokens.Token(req.Context())
	if err != nil {
		if t.Log != nil {
			t.Log.Warn(req.Context(), "failed to read token, sending request without it", "error", err)
		}
		token = ""
	}
	if token == "" {
		return base(t.Base).RoundTrip(req)
	}

	r := req.Clone(req.Context())
	r.Header.Set(common.AuthorizationHeader, common.BearerScheme+token)
	return base(t.Base).RoundTrip(r)
}

// RequestIDTransport tags each request with a fresh X-Request-ID unless the
// caller already set one.
type RequestIDTransport struct {
	Base http.RoundTripper
}

func (t *RequestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(common.RequestIDHeader) != "" {
		return base(t.Base).RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set(common.RequestIDHeader, uuid.NewString())
	return base(t.Base).RoundTrip(r)
}

// NewHTTPClient returns an http.Client whose requests carry a request id and
// the stored bearer token.
func NewHTTPClient(tokens TokenSource, log logging.Logger) *http.Client {
	return &http.Client{
		Transport: &RequestIDTransport{
			Base: &AuthTransport{Tokens: tokens, Log: log},
		},
	}
}

func base(rt http.RoundTripper) http.RoundTripper {
	if rt == nil {
		return http.DefaultTransport
	}
	return rt
}

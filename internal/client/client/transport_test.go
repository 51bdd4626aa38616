package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/myblog/internal/client/session"
	"github.com/dmitrijs2005/myblog/internal/client/storage"
	"github.com/dmitrijs2005/myblog/internal/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type headerRecorder struct {
	headers []http.Header
}

func (h *headerRecorder) server(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.headers = append(h.headers, r.Header.Clone())
		_, _ = w.Write([]byte(`{"data":{"posts":[]}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

type errTokens struct{}

func (errTokens) Token(context.Context) (string, error) { return "", errors.New("db locked") }

func TestAuthTransport_AttachesStoredToken(t *testing.T) {
	ctx := context.Background()
	rec := &headerRecorder{}
	srv := rec.server(t)

	st := storage.NewMemoryStorage()
	c := NewGraphQLClient(srv.URL, NewHTTPClient(StorageTokenSource{Storage: st}, nil), 0, nil)

	_, err := c.Posts(ctx)
	require.NoError(t, err)

	require.NoError(t, st.SetItems(ctx, map[string]string{session.KeyToken: "mock-token-123"}))
	_, err = c.Posts(ctx)
	require.NoError(t, err)

	require.NoError(t, st.RemoveItems(ctx, session.KeyToken))
	_, err = c.Posts(ctx)
	require.NoError(t, err)

	require.Len(t, rec.headers, 3)
	require.Empty(t, rec.headers[0].Values(common.AuthorizationHeader))
	require.Equal(t, "Bearer mock-token-123", rec.headers[1].Get(common.AuthorizationHeader))
	require.Empty(t, rec.headers[2].Values(common.AuthorizationHeader))
}

func TestAuthTransport_FollowsSessionStore(t *testing.T) {
	ctx := context.Background()
	rec := &headerRecorder{}
	srv := rec.server(t)

	st := storage.NewMemoryStorage()
	sess := session.NewStore(st, nil, nil)
	require.NoError(t, sess.Initialize(ctx))
	c := NewGraphQLClient(srv.URL, NewHTTPClient(StorageTokenSource{Storage: st}, nil), 0, nil)

	require.NoError(t, sess.Login(ctx, "tok-1", session.Identity{UserID: "1", Username: "u", DisplayName: "U"}))
	_, err := c.Posts(ctx)
	require.NoError(t, err)

	require.NoError(t, sess.Logout(ctx))
	_, err = c.Posts(ctx)
	require.NoError(t, err)

	require.Equal(t, "Bearer tok-1", rec.headers[0].Get(common.AuthorizationHeader))
	require.Empty(t, rec.headers[1].Get(common.AuthorizationHeader))
}

func TestAuthTransport_TokenErrorSendsWithoutHeader(t *testing.T) {
	rec := &headerRecorder{}
	srv := rec.server(t)

	c := NewGraphQLClient(srv.URL, NewHTTPClient(errTokens{}, nil), 0, nil)
	_, err := c.Posts(context.Background())
	require.NoError(t, err)
	require.Empty(t, rec.headers[0].Get(common.AuthorizationHeader))
}

func TestAuthTransport_DoesNotMutateCallerRequest(t *testing.T) {
	rec := &headerRecorder{}
	srv := rec.server(t)

	st := storage.NewMemoryStorage()
	require.NoError(t, st.SetItems(context.Background(), map[string]string{session.KeyToken: "t"}))
	tr := &AuthTransport{Tokens: StorageTokenSource{Storage: st}}

	req, err := http.NewRequest(http.MethodPost, srv.URL, nil)
	require.NoError(t, err)
	resp, err := tr.RoundTrip(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Empty(t, req.Header.Get(common.AuthorizationHeader))
	require.Equal(t, "Bearer t", rec.headers[0].Get(common.AuthorizationHeader))
}

func TestRequestIDTransport(t *testing.T) {
	rec := &headerRecorder{}
	srv := rec.server(t)
	httpClient := &http.Client{Transport: &RequestIDTransport{}}

	for i := 0; i < 2; i++ {
		resp, err := httpClient.Post(srv.URL, "application/json", nil)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	req, err := http.NewRequest(http.MethodPost, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set(common.RequestIDHeader, "fixed")
	resp, err := httpClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	first := rec.headers[0].Get(common.RequestIDHeader)
	second := rec.headers[1].Get(common.RequestIDHeader)
	_, err = uuid.Parse(first)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
	require.Equal(t, "fixed", rec.headers[2].Get(common.RequestIDHeader))
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/myblog/internal/client/models"
	"github.com/dmitrijs2005/myblog/internal/logging"
)

// DefaultEndpoint is used when no endpoint is configured.
const DefaultEndpoint = "http://localhost:5000/graphql"

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 8 << 20

const (
	loginMutation = `mutation Login($username: String!, $password: String!) {
  login(username: $username, password: $password) {
    ok
    message
    token
    user { id username displayName }
  }
}`

	registerMutation = `mutation Register($username: String!, $password: String!, $displayName: String!) {
  register(username: $username, password: $password, displayName: $displayName) {
    ok
    message
    token
    user { id username displayName }
  }
}`

	meQuery = `query Me($token: String!) {
  me(token: $token) {
    id
    username
    displayName
    posts { id title content }
  }
}`

	postsQuery = `query GetPosts {
  posts {
    id
    title
    content
    author { id username displayName }
  }
}`

	postQuery = `query GetPostById($id: ID!) {
  post(id: $id) {
    id
    title
    content
    author { id username displayName }
  }
}`

	createPostMutation = `mutation CreatePost($title: String!, $content: String!, $token: String!) {
  createPost(title: $title, content: $content, token: $token) {
    ok
    message
    post { id title content author { id username displayName } }
  }
}`

	updatePostMutation = `mutation UpdatePost($id: ID!, $title: String!, $content: String!, $token: String!) {
  updatePost(id: $id, title: $title, content: $content, token: $token) {
    ok
    message
    post { id title content author { id username displayName } }
  }
}`
)

// GraphQLClient talks to the blog API with GraphQL over HTTP POST.
type GraphQLClient struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	log      logging.Logger
}

var _ Client = (*GraphQLClient)(nil)

// NewGraphQLClient creates a client for endpoint. httpClient carries the
// transport chain (see NewHTTPClient); timeout, when positive, bounds each
// request.
func NewGraphQLClient(endpoint string, httpClient *http.Client, timeout time.Duration, log logging.Logger) *GraphQLClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &GraphQLClient{endpoint: endpoint, http: httpClient, timeout: timeout, log: log}
}

func (c *GraphQLClient) Endpoint() string { return c.endpoint }

func (c *GraphQLClient) Login(ctx context.Context, username, password string) (*models.AuthResult, error) {
	var data struct {
		Login *models.AuthResult `json:"login"`
	}
	vars := map[string]any{"username": username, "password": password}
	if err := c.do(ctx, "Login", loginMutation, vars, &data); err != nil {
		return nil, err
	}
	if data.Login == nil {
		return nil, fmt.Errorf("%w: empty login result", ErrProtocol)
	}
	return data.Login, nil
}

func (c *GraphQLClient) Register(ctx context.Context, username, password, displayName string) (*models.AuthResult, error) {
	var data struct {
		Register *models.AuthResult `json:"register"`
	}
	vars := map[string]any{"username": username, "password": password, "displayName": displayName}
	if err := c.do(ctx, "Register", registerMutation, vars, &data); err != nil {
		return nil, err
	}
	if data.Register == nil {
		return nil, fmt.Errorf("%w: empty register result", ErrProtocol)
	}
	return data.Register, nil
}

func (c *GraphQLClient) Me(ctx context.Context, token string) (*models.Profile, error) {
	var data struct {
		Me *models.Profile `json:"me"`
	}
	if err := c.do(ctx, "Me", meQuery, map[string]any{"token": token}, &data); err != nil {
		return nil, err
	}
	return data.Me, nil
}

func (c *GraphQLClient) Posts(ctx context.Context) ([]models.Post, error) {
	var data struct {
		Posts []models.Post `json:"posts"`
	}
	if err := c.do(ctx, "GetPosts", postsQuery, nil, &data); err != nil {
		return nil, err
	}
	return data.Posts, nil
}

func (c *GraphQLClient) Post(ctx context.Context, id string) (*models.Post, error) {
	var data struct {
		Post *models.Post `json:"post"`
	}
	if err := c.do(ctx, "GetPostById", postQuery, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	return data.Post, nil
}

func (c *GraphQLClient) CreatePost(ctx context.Context, title, content, token string) (*models.PostResult, error) {
	var data struct {
		CreatePost *models.PostResult `json:"createPost"`
	}
	vars := map[string]any{"title": title, "content": content, "token": token}
	if err := c.do(ctx, "CreatePost", createPostMutation, vars, &data); err != nil {
		return nil, err
	}
	if data.CreatePost == nil {
		return nil, fmt.Errorf("%w: empty createPost result", ErrProtocol)
	}
	return data.CreatePost, nil
}

func (c *GraphQLClient) UpdatePost(ctx context.Context, id, title, content, token string) (*models.PostResult, error) {
	var data struct {
		UpdatePost *models.PostResult `json:"updatePost"`
	}
	vars := map[string]any{"id": id, "title": title, "content": content, "token": token}
	if err := c.do(ctx, "UpdatePost", updatePostMutation, vars, &data); err != nil {
		return nil, err
	}
	if data.UpdatePost == nil {
		return nil, fmt.Errorf("%w: empty updatePost result", ErrProtocol)
	}
	return data.UpdatePost, nil
}

type request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []errorMessage  `json:"errors"`
}

// errorMessage accepts both {"message": "..."} objects and bare strings.
type errorMessage string

func (m *errorMessage) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*m = errorMessage(s)
		return nil
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*m = errorMessage(obj.Message)
	return nil
}

func (c *GraphQLClient) do(ctx context.Context, op, query string, vars map[string]any, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(request{Query: query, Variables: vars, OperationName: op})
	if err != nil {
		return fmt.Errorf("encode %s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "graphql request failed", "operation", op, "error", err)
		return c.mapError(err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "graphql request",
		"operation", op,
		"status", resp.StatusCode,
		"elapsed", time.Since(start))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return c.mapError(err)
	}

	var r response
	decodeErr := json.Unmarshal(raw, &r)

	// servers report query errors with 4xx and a regular body, so errors
	// win over the status code
	if decodeErr == nil && len(r.Errors) > 0 {
		msgs := make([]string, len(r.Errors))
		for i, m := range r.Errors {
			msgs[i] = string(m)
		}
		return &GraphQLError{Messages: msgs}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s returned %s", ErrProtocol, op, resp.Status)
	}
	if decodeErr != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrProtocol, op, decodeErr)
	}
	if len(r.Data) == 0 || string(r.Data) == "null" {
		return fmt.Errorf("%w: %s response has no data", ErrProtocol, op)
	}
	if err := json.Unmarshal(r.Data, out); err != nil {
		return fmt.Errorf("%w: decode %s data: %v", ErrProtocol, op, err)
	}
	return nil
}

func (c *GraphQLClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnavailable) || errors.Is(err, ErrProtocol) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

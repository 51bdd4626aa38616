package client

import (
	"context"

	"github.com/dmitrijs2005/myblog/internal/client/models"
)

// Client is the blog API as seen by the services.
type Client interface {
	Login(ctx context.Context, username, password string) (*models.AuthResult, error)
	Register(ctx context.Context, username, password, displayName string) (*models.AuthResult, error)

	// Me returns nil when the server does not accept the token.
	Me(ctx context.Context, token string) (*models.Profile, error)

	Posts(ctx context.Context) ([]models.Post, error)

	// Post returns nil when no post has the id.
	Post(ctx context.Context, id string) (*models.Post, error)

	CreatePost(ctx context.Context, title, content, token string) (*models.PostResult, error)
	UpdatePost(ctx context.Context, id, title, content, token string) (*models.PostResult, error)
}

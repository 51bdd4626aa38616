package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/myblog/internal/client/client"
	"github.com/dmitrijs2005/myblog/internal/client/content"
	"github.com/dmitrijs2005/myblog/internal/client/models"
	"github.com/dmitrijs2005/myblog/internal/common"
	"github.com/dmitrijs2005/myblog/internal/logging"
)

// PostService reads and writes posts. Create and Update take Markdown and
// send HTML.
type PostService interface {
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)

	// Mine returns the current user's display name and posts.
	Mine(ctx context.Context) (string, []models.Post, error)
	Profile(ctx context.Context) (*models.Profile, error)

	Create(ctx context.Context, title, markdown string) (string, *models.Post, error)
	Update(ctx context.Context, id, title, markdown string) (string, *models.Post, error)

	// UpdateHTML sends html as the post body without Markdown rendering.
	// It is used when the stored body is kept as is.
	UpdateHTML(ctx context.Context, id, title, html string) (string, *models.Post, error)

	// CanEdit reports whether the logged in user wrote p.
	CanEdit(p models.Post) bool
}

type postService struct {
	client  client.Client
	session Session
	log     logging.Logger
}

func NewPostService(c client.Client, s Session, log logging.Logger) PostService {
	if log == nil {
		log = logging.NewNop()
	}
	return &postService{client: c, session: s, log: log}
}

func (s *postService) List(ctx context.Context) ([]models.Post, error) {
	return s.client.Posts(ctx)
}

func (s *postService) Get(ctx context.Context, id string) (*models.Post, error) {
	p, err := s.client.Post(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}
	return p, nil
}

func (s *postService) Mine(ctx context.Context) (string, []models.Post, error) {
	me, err := s.Profile(ctx)
	if err != nil {
		return "", nil, err
	}
	return common.FirstNonEmpty(me.DisplayName, me.Username, "User"), me.Posts, nil
}

func (s *postService) Profile(ctx context.Context) (*models.Profile, error) {
	token := s.session.Token()
	if token == "" {
		return nil, &ValidationError{Message: "You must be logged in."}
	}

	me, err := s.client.Me(ctx, token)
	if err != nil {
		return nil, err
	}
	if me == nil {
		s.log.Warn(ctx, "server rejected stored token")
		return nil, ErrSessionRejected
	}
	return me, nil
}

func (s *postService) Create(ctx context.Context, title, markdown string) (string, *models.Post, error) {
	token := s.session.Token()
	if token == "" {
		return "", nil, &ValidationError{Message: "You must be logged in to publish a post."}
	}
	html, err := prepare(title, markdown)
	if err != nil {
		return "", nil, err
	}

	res, err := s.client.CreatePost(ctx, strings.TrimSpace(title), html, token)
	if err != nil {
		return "", nil, err
	}
	if !res.OK {
		return "", nil, &RejectedError{Message: common.FirstNonEmpty(res.Message, "Failed to create post.")}
	}
	return common.FirstNonEmpty(res.Message, "Post created"), res.Post, nil
}

func (s *postService) Update(ctx context.Context, id, title, markdown string) (string, *models.Post, error) {
	if s.session.Token() == "" {
		return "", nil, &ValidationError{Message: "You must be logged in to update a post."}
	}
	html, err := prepare(title, markdown)
	if err != nil {
		return "", nil, err
	}
	return s.update(ctx, id, title, html)
}

func (s *postService) UpdateHTML(ctx context.Context, id, title, html string) (string, *models.Post, error) {
	if s.session.Token() == "" {
		return "", nil, &ValidationError{Message: "You must be logged in to update a post."}
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(html) == "" {
		return "", nil, &ValidationError{Message: "Title and content cannot be empty."}
	}
	return s.update(ctx, id, title, html)
}

func (s *postService) update(ctx context.Context, id, title, html string) (string, *models.Post, error) {
	res, err := s.client.UpdatePost(ctx, id, strings.TrimSpace(title), html, s.session.Token())
	if err != nil {
		return "", nil, err
	}
	if !res.OK {
		return "", nil, &RejectedError{Message: common.FirstNonEmpty(res.Message, "Failed to update post.")}
	}
	return common.FirstNonEmpty(res.Message, "Post updated successfully!"), res.Post, nil
}

func (s *postService) CanEdit(p models.Post) bool {
	uid := s.session.Identity().UserID
	return uid != "" && s.session.Token() != "" && uid == p.AuthorID()
}

func prepare(title, markdown string) (string, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(markdown) == "" {
		return "", &ValidationError{Message: "Title and content cannot be empty."}
	}
	return content.FromMarkdown(markdown)
}

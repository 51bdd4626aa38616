// Package services contains the application services of the myblog client.
// This file defines the authentication service: login, registration and
// logout on top of the API client and the session store.
package services

import (
	"bytes"
	"context"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/myblog/internal/client/client"
	"github.com/dmitrijs2005/myblog/internal/client/session"
	"github.com/dmitrijs2005/myblog/internal/common"
	"github.com/dmitrijs2005/myblog/internal/logging"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// Session is the part of the session store the services use.
type Session interface {
	Token() string
	Identity() session.Identity
	Login(ctx context.Context, token string, id session.Identity) error
	Logout(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: validate, call the login mutation, store the session on success.
//     Returns the message to show.
//   - Register: validate, call the register mutation. The session is not
//     touched; the user logs in afterwards.
//   - Logout: clear the session.
//
// Input problems are *ValidationError, ok:false replies are *RejectedError.
// Passwords are not retained; callers wipe their buffers afterwards.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) (string, error)
	Register(ctx context.Context, username string, password []byte, displayName string) (string, error)
	Logout(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session Session
	log     logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and session.
func NewAuthService(c client.Client, s Session, log logging.Logger) AuthService {
	if log == nil {
		log = logging.NewNop()
	}
	return &authService{client: c, session: s, log: log}
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (string, error) {
	if strings.TrimSpace(username) == "" || len(bytes.TrimSpace(password)) == 0 {
		return "", &ValidationError{Message: "Username and password cannot be empty."}
	}

	res, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return "", err
	}

	if !res.OK || res.Token == "" || res.User == nil {
		a.log.Info(ctx, "login rejected", "user", username)
		return "", &RejectedError{Message: common.FirstNonEmpty(res.Message, "Login failed. Please check credentials.")}
	}

	id := session.Identity{
		UserID:      res.User.ID,
		Username:    common.FirstNonEmpty(res.User.Username, username),
		DisplayName: common.FirstNonEmpty(res.User.DisplayName, res.User.Username, username),
	}
	if err := a.session.Login(ctx, res.Token, id); err != nil {
		return "", err
	}

	return common.FirstNonEmpty(res.Message, "Login successful!"), nil
}

func (a *authService) Register(ctx context.Context, username string, password []byte, displayName string) (string, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(displayName) == "" || len(bytes.TrimSpace(password)) == 0 {
		return "", &ValidationError{Message: "Username, author name, and password cannot be empty."}
	}
	if utf8.RuneCount(password) < MinPasswordLength {
		return "", &ValidationError{Message: "Password must be at least 6 characters long."}
	}

	res, err := a.client.Register(ctx, username, string(password), displayName)
	if err != nil {
		return "", err
	}
	if !res.OK {
		a.log.Info(ctx, "registration rejected", "user", username)
		return "", &RejectedError{Message: common.FirstNonEmpty(res.Message, "Registration failed. Please try again.")}
	}

	return common.FirstNonEmpty(res.Message, "Registration successful! Please log in."), nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

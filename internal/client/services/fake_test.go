package services

import (
	"context"

	"github.com/dmitrijs2005/myblog/internal/client/models"
)

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	LoginRet    *models.AuthResult
	LoginErr    error
	RegisterRet *models.AuthResult
	RegisterErr error
	MeRet       *models.Profile
	MeErr       error
	PostsRet    []models.Post
	PostsErr    error
	PostRet     *models.Post
	PostErr     error
	CreateRet   *models.PostResult
	CreateErr   error
	UpdateRet   *models.PostResult
	UpdateErr   error

	Calls           int
	LastUsername    string
	LastPassword    string
	LastDisplayName string
	LastToken       string
	LastID          string
	LastTitle       string
	LastContent     string
}

func (f *fakeClient) Login(_ context.Context, username, password string) (*models.AuthResult, error) {
	f.Calls++
	f.LastUsername, f.LastPassword = username, password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, username, password, displayName string) (*models.AuthResult, error) {
	f.Calls++
	f.LastUsername, f.LastPassword, f.LastDisplayName = username, password, displayName
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) Me(_ context.Context, token string) (*models.Profile, error) {
	f.Calls++
	f.LastToken = token
	return f.MeRet, f.MeErr
}

func (f *fakeClient) Posts(context.Context) ([]models.Post, error) {
	f.Calls++
	return f.PostsRet, f.PostsErr
}

func (f *fakeClient) Post(_ context.Context, id string) (*models.Post, error) {
	f.Calls++
	f.LastID = id
	return f.PostRet, f.PostErr
}

func (f *fakeClient) CreatePost(_ context.Context, title, content, token string) (*models.PostResult, error) {
	f.Calls++
	f.LastTitle, f.LastContent, f.LastToken = title, content, token
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) UpdatePost(_ context.Context, id, title, content, token string) (*models.PostResult, error) {
	f.Calls++
	f.LastID, f.LastTitle, f.LastContent, f.LastToken = id, title, content, token
	return f.UpdateRet, f.UpdateErr
}

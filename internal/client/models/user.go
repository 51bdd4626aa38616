// Package models defines the remote resources the client works with.
// They are fetched on demand from the GraphQL API and never persisted.
package models

// UnknownAuthor is shown for posts whose author could not be resolved.
const UnknownAuthor = "Unknown Author"

type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// Name is the display name, falling back to the username.
func (u *User) Name() string {
	if u == nil {
		return UnknownAuthor
	}
	switch {
	case u.DisplayName != "":
		return u.DisplayName
	case u.Username != "":
		return u.Username
	default:
		return UnknownAuthor
	}
}

// Profile is the current user together with their posts.
type Profile struct {
	User
	Posts []Post `json:"posts"`
}

// AuthResult is the envelope returned by the login and register mutations.
type AuthResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

package models

// Post is a blog post. Content is HTML.
type Post struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  *User  `json:"author"`
}

// AuthorID returns the author's id or "" when the author is unknown.
func (p Post) AuthorID() string {
	if p.Author == nil {
		return ""
	}
	return p.Author.ID
}

// PostResult is the envelope returned by the post mutations.
type PostResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Post    *Post  `json:"post"`
}

// Package domain defines core types and interfaces for code snippets
package domain

import "time"

// DefaultTitle is stored when a snippet is created without a title
const DefaultTitle = "Untitled Snippet"

// Snippet is the stored entity; Content is plaintext at this layer,
// the repo encrypts it on the way to disk
type Snippet struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Language  string    `json:"language"`
	Tags      []string  `json:"tags"`
	Favourite bool      `json:"favourite"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicView strips owner-only fields for the unauthenticated read
type PublicView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Language  string    `json:"language"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// Public converts a Snippet to its public view
func (s Snippet) Public() PublicView {
	return PublicView{
		ID:        s.ID,
		Title:     s.Title,
		Content:   s.Content,
		Language:  s.Language,
		Tags:      s.Tags,
		CreatedAt: s.CreatedAt,
	}
}

package domain

// CreateInput is the payload for creating a snippet
type CreateInput struct {
	Title    string   `json:"title" validate:"omitempty,max=200"`
	Content  string   `json:"content" validate:"required"`
	Language string   `json:"language" validate:"omitempty,max=60"`
	Tags     []string `json:"tags" validate:"omitempty,max=3,dive,max=40"`
	IsPublic bool     `json:"is_public"`
}

// EditInput updates a snippet; nil fields are left untouched
type EditInput struct {
	Title    *string   `json:"title" validate:"omitempty,max=200"`
	Content  *string   `json:"content" validate:"omitempty"`
	Language *string   `json:"language" validate:"omitempty,max=60"`
	Tags     *[]string `json:"tags" validate:"omitempty,max=3,dive,max=40"`
	IsPublic *bool     `json:"is_public"`
}

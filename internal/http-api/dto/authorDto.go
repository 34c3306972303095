package dto

import "bookstore/internal/http-api/models"

type CreateAuthorDTO struct {
	Name string `json:"name" binding:"required,max=100"`
	Bio  string `json:"bio"`
}

// UpdateAuthorDTO allows changing name, bio or both; at least one must be
// present.
type UpdateAuthorDTO struct {
	Name *string `json:"name,omitempty"`
	Bio  *string `json:"bio,omitempty"`
}

type AuthorResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio,omitempty"`
}

func FromAuthorToResponse(a models.Author) AuthorResponse {
	return AuthorResponse{ID: a.ID, Name: a.Name, Bio: a.Bio}
}

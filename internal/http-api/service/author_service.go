package service

import (
	"context"
	"errors"

	"bookstore/internal/http-api/dto"
	"bookstore/internal/http-api/models"
	"bookstore/internal/http-api/repository"
)

var ErrNothingToUpdate = errors.New("bio or name are required")

// defaultBio is used when an author is created without one.
const defaultBio = "No bio available"

type AuthorService interface {
	GetByID(ctx context.Context, id int64) (*models.Author, error)
	List(ctx context.Context, page, pageSize int, includeTotal bool) ([]models.Author, int64, error)
	Create(ctx context.Context, in dto.CreateAuthorDTO) (*models.Author, error)
	Update(ctx context.Context, id int64, in dto.UpdateAuthorDTO) (*models.Author, error)
}

type authorService struct {
	repo *repository.AuthorRepo
}

func NewAuthorService(r *repository.AuthorRepo) AuthorService {
	return &authorService{repo: r}
}

func (s *authorService) GetByID(ctx context.Context, id int64) (*models.Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) List(ctx context.Context, page, pageSize int, includeTotal bool) ([]models.Author, int64, error) {
	return s.repo.List(ctx, page, pageSize, includeTotal)
}

func (s *authorService) Create(ctx context.Context, in dto.CreateAuthorDTO) (*models.Author, error) {
	bio := in.Bio
	if bio == "" {
		bio = defaultBio
	}
	author := &models.Author{Name: in.Name, Bio: bio}
	if err := s.repo.Create(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *authorService) Update(ctx context.Context, id int64, in dto.UpdateAuthorDTO) (*models.Author, error) {
	if in.Name == nil && in.Bio == nil {
		return nil, ErrNothingToUpdate
	}

	author, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		author.Name = *in.Name
	}
	if in.Bio != nil {
		author.Bio = *in.Bio
	}
	if err := s.repo.Update(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

package repository

import (
	"context"
	"fmt"

	"bookstore/internal/http-api/models"

	"gorm.io/gorm"
)

type AuthorRepo struct {
	db *gorm.DB
}

func NewAuthorRepo(db *gorm.DB) *AuthorRepo {
	return &AuthorRepo{db: db}
}

func (r *AuthorRepo) GetByID(ctx context.Context, id int64) (*models.Author, error) {
	var a models.Author
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AuthorRepo) Create(ctx context.Context, a *models.Author) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("create author: %w", err)
	}
	return nil
}

func (r *AuthorRepo) Update(ctx context.Context, a *models.Author) error {
	if err := r.db.WithContext(ctx).Save(a).Error; err != nil {
		return fmt.Errorf("update author: %w", err)
	}
	return nil
}

// FindOrCreateByName reuses an author row with the given name or inserts
// a new one. Books referencing an unknown author by name go through here.
func (r *AuthorRepo) FindOrCreateByName(ctx context.Context, name, bio string) (*models.Author, error) {
	var a models.Author
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Attrs(models.Author{Bio: bio}).
		FirstOrCreate(&a, models.Author{Name: name}).Error
	if err != nil {
		return nil, fmt.Errorf("find or create author: %w", err)
	}
	return &a, nil
}

// List returns authors ordered by id. total is only computed when
// includeTotal is set; otherwise it is -1.
func (r *AuthorRepo) List(ctx context.Context, page, pageSize int, includeTotal bool) ([]models.Author, int64, error) {
	var list []models.Author
	total := int64(-1)

	if includeTotal {
		if err := r.db.WithContext(ctx).Model(&models.Author{}).Count(&total).Error; err != nil {
			return nil, 0, fmt.Errorf("count authors: %w", err)
		}
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Order("id asc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list authors: %w", err)
	}
	return list, total, nil
}

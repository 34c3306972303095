package repository

import (
	"context"
	"fmt"
	"strings"

	"bookstore/internal/http-api/models"

	"gorm.io/gorm"
)

// BookQuery carries resolved catalog search filters. Status group names
// ("available" and friends) are resolved to literal values by the service
// before the query reaches the repository.
type BookQuery struct {
	AuthorID      *int64
	Statuses      []string
	Keywords      []string
	TitleContains string
	Page          int
	PageSize      int
	IncludeTotal  bool
}

type BookRepo struct {
	db *gorm.DB
}

func NewBookRepo(db *gorm.DB) *BookRepo {
	return &BookRepo{db: db}
}

func (r *BookRepo) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Keywords").
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// Search returns one page of books matching q, ordered by id ascending so
// pagination stays deterministic across calls. total is -1 unless
// q.IncludeTotal is set (counting is a separate, opt-in query).
//
// Keyword filtering uses OR semantics: a book matches when it carries any
// of the given words. When both keywords and a title filter are present
// the keyword filter wins and the title filter is ignored.
func (r *BookRepo) Search(ctx context.Context, q BookQuery) ([]models.Book, int64, error) {
	var list []models.Book
	total := int64(-1)

	apply := func(db *gorm.DB) *gorm.DB {
		if q.AuthorID != nil {
			db = db.Where("books.author_id = ?", *q.AuthorID)
		}
		if len(q.Statuses) > 0 {
			db = db.Where("books.status IN ?", q.Statuses)
		}
		if len(q.Keywords) > 0 {
			db = db.
				Joins("JOIN book_keywords bk ON bk.book_id = books.id").
				Joins("JOIN keywords k ON k.id = bk.keyword_id").
				Where("k.word IN ?", q.Keywords).
				Distinct("books.*")
		} else if q.TitleContains != "" {
			// LOWER/LIKE instead of ILIKE so the same query runs on
			// postgres and the sqlite test database
			db = db.Where("LOWER(books.title) LIKE ?", "%"+strings.ToLower(q.TitleContains)+"%")
		}
		return db
	}

	if q.IncludeTotal {
		countQ := apply(r.db.WithContext(ctx).Model(&models.Book{}))
		if len(q.Keywords) > 0 {
			countQ = countQ.Distinct("books.id")
		}
		if err := countQ.Count(&total).Error; err != nil {
			return nil, 0, fmt.Errorf("count books: %w", err)
		}
	}

	offset := (q.Page - 1) * q.PageSize
	err := apply(r.db.WithContext(ctx).Model(&models.Book{})).
		Preload("Author").
		Preload("Keywords").
		Order("books.id asc").
		Limit(q.PageSize).
		Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("search books: %w", err)
	}
	return list, total, nil
}

// Create inserts the book and associates its keywords in one transaction.
// Keyword rows are shared: existing words are reused, new ones inserted.
func (r *BookRepo) Create(ctx context.Context, b *models.Book, keywords []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return fmt.Errorf("create book: %w", err)
		}
		kws, err := findOrCreateKeywords(tx, keywords)
		if err != nil {
			return err
		}
		if len(kws) > 0 {
			if err := tx.Model(b).Association("Keywords").Append(&kws); err != nil {
				return fmt.Errorf("associate keywords: %w", err)
			}
		}
		return nil
	})
}

// Update persists already-merged book fields. Keyword changes go through
// ReplaceKeywords.
func (r *BookRepo) Update(ctx context.Context, b *models.Book) error {
	if err := r.db.WithContext(ctx).Omit("Keywords", "Author").Save(b).Error; err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

// ReplaceKeywords diffs the book's keyword set against words: associations
// for words no longer present are removed (the keyword rows themselves
// stay, they are shared across books) and new words are find-or-created.
func (r *BookRepo) ReplaceKeywords(ctx context.Context, b *models.Book, words []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		kws, err := findOrCreateKeywords(tx, words)
		if err != nil {
			return err
		}
		if err := tx.Model(b).Association("Keywords").Replace(&kws); err != nil {
			return fmt.Errorf("replace keywords: %w", err)
		}
		return nil
	})
}

// UpdateStatus writes the status directly, bypassing the transition graph.
// Reserved for the manager-only administrative override.
func (r *BookRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Book{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update book status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// findOrCreateKeywords resolves each distinct word to a keyword row,
// inserting the words that do not exist yet. Words are case-sensitive as
// stored.
func findOrCreateKeywords(tx *gorm.DB, words []string) ([]models.Keyword, error) {
	seen := make(map[string]bool, len(words))
	kws := make([]models.Keyword, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true

		var kw models.Keyword
		if err := tx.Where("word = ?", w).FirstOrCreate(&kw, models.Keyword{Word: w}).Error; err != nil {
			return nil, fmt.Errorf("find or create keyword %q: %w", w, err)
		}
		kws = append(kws, kw)
	}
	return kws, nil
}

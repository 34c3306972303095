package repository

import (
	"context"
	"fmt"

	"bookstore/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepo holds the storage side of the order lifecycle. Methods that
// take a tx parameter are meant to run inside a transaction owned by the
// service, so a failed order rolls back book status changes with it.
type OrderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// GetBookForUpdate fetches a book under a row lock so that concurrent
// orders against the same book serialize; the loser re-reads the already
// transitioned status and fails its availability check.
func (r *OrderRepo) GetBookForUpdate(ctx context.Context, tx *gorm.DB, bookID int64) (*models.Book, error) {
	var b models.Book
	if err := lockForUpdate(tx.WithContext(ctx)).First(&b, bookID).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// SetBookStatus updates a book's status inside the caller's transaction.
func (r *OrderRepo) SetBookStatus(ctx context.Context, tx *gorm.DB, bookID int64, status string) error {
	if err := tx.WithContext(ctx).Model(&models.Book{}).Where("id = ?", bookID).Update("status", status).Error; err != nil {
		return fmt.Errorf("set book status: %w", err)
	}
	return nil
}

// InsertOrder persists the order together with its lines.
func (r *OrderRepo) InsertOrder(ctx context.Context, tx *gorm.DB, o *models.Order) error {
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// HasRentLine reports whether the user owns an order containing a rent
// line for the given book. Used as the ownership gate for returns.
func (r *OrderRepo) HasRentLine(ctx context.Context, tx *gorm.DB, userID, bookID int64) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.OrderLine{}).
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("orders.user_id = ? AND order_lines.book_id = ? AND order_lines.type = ?",
			userID, bookID, models.LineTypeRent).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("look up rent line: %w", err)
	}
	return count > 0, nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	if err := r.db.WithContext(ctx).Preload("OrderLines").First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns one page of orders, optionally filtered by payment status,
// ordered by id ascending. total is -1 unless includeTotal is set.
func (r *OrderRepo) List(ctx context.Context, paymentStatus string, page, pageSize int, includeTotal bool) ([]models.Order, int64, error) {
	var list []models.Order
	total := int64(-1)

	base := func(db *gorm.DB) *gorm.DB {
		if paymentStatus != "" {
			db = db.Where("payment_status = ?", paymentStatus)
		}
		return db
	}

	if includeTotal {
		if err := base(r.db.WithContext(ctx).Model(&models.Order{})).Count(&total).Error; err != nil {
			return nil, 0, fmt.Errorf("count orders: %w", err)
		}
	}

	offset := (page - 1) * pageSize
	err := base(r.db.WithContext(ctx)).
		Preload("OrderLines").
		Order("id asc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return list, total, nil
}

// UpdatePaymentStatus overwrites the payment status. No transition graph
// applies to orders; enum validation happens in the service.
func (r *OrderRepo) UpdatePaymentStatus(ctx context.Context, id int64, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("payment_status", status)
	if res.Error != nil {
		return fmt.Errorf("update payment status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkEmailSent flips the email_sent flag after a receipt was delivered.
func (r *OrderRepo) MarkEmailSent(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("email_sent", true).Error; err != nil {
		return fmt.Errorf("mark email sent: %w", err)
	}
	return nil
}

// lockForUpdate adds SELECT ... FOR UPDATE on databases that support it.
// The sqlite test database serializes writers anyway and rejects the clause.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

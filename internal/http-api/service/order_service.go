package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"bookstore/internal/http-api/dto"
	"bookstore/internal/http-api/models"
	"bookstore/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrBookNotFound         = errors.New("book not found")
	ErrInvalidLineType      = errors.New("invalid order line type")
	ErrBookNotAvailable     = errors.New("book is not available")
	ErrBookNotRented        = errors.New("book is not rented")
	ErrNotYourRental        = errors.New("book was not rented by this user")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

type OrderService interface {
	// CreateOrder places an order for the given lines, transitions each
	// book's status and returns the persisted order with its receipt.
	// All-or-nothing: any failure leaves no order, no lines and no
	// status changes behind.
	CreateOrder(ctx context.Context, userID int64, lines []dto.OrderLineRequest) (*models.Order, *Receipt, error)

	// ReturnBook puts a rented book back into circulation, but only for
	// the user whose order rented it.
	ReturnBook(ctx context.Context, userID, bookID int64) error

	List(ctx context.Context, paymentStatus string, page, pageSize int, includeTotal bool) ([]models.Order, int64, error)
	UpdatePaymentStatus(ctx context.Context, orderID int64, status string) error
}

type orderService struct {
	db     *gorm.DB
	orders *repository.OrderRepo
	users  *repository.UserRepo
	mailer Mailer
	logger *slog.Logger
}

// NewOrderService wires the order lifecycle. mailer may be nil, in which
// case receipts are rendered but never delivered and email_sent stays false.
func NewOrderService(db *gorm.DB, orders *repository.OrderRepo, users *repository.UserRepo, mailer Mailer, logger *slog.Logger) OrderService {
	return &orderService{db: db, orders: orders, users: users, mailer: mailer, logger: logger}
}

func (s *orderService) CreateOrder(ctx context.Context, userID int64, lines []dto.OrderLineRequest) (*models.Order, *Receipt, error) {
	// Reject unknown line types before touching any book.
	for _, l := range lines {
		if l.Type != models.LineTypeBuy && l.Type != models.LineTypeRent {
			return nil, nil, fmt.Errorf("%w: %q for book %d", ErrInvalidLineType, l.Type, l.BookID)
		}
	}

	order := &models.Order{UserID: userID, PaymentStatus: models.PaymentStatusPending}
	titles := make(map[int64]string, len(lines))

	// One transaction for the whole order: book status transitions and
	// order/line inserts commit or roll back together.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total float64
		for _, l := range lines {
			book, err := s.orders.GetBookForUpdate(ctx, tx, l.BookID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: id %d", ErrBookNotFound, l.BookID)
				}
				return err
			}

			var price float64
			var target string
			if l.Type == models.LineTypeBuy {
				price = book.PriceBuy
				target = models.BookStatusSold
			} else {
				price = book.PriceRent
				target = models.BookStatusRented
			}

			if !models.CanTransition(book.Status, target) {
				return fmt.Errorf("%w: book %d is %s", ErrBookNotAvailable, book.ID, book.Status)
			}
			if err := s.orders.SetBookStatus(ctx, tx, book.ID, target); err != nil {
				return err
			}

			titles[book.ID] = book.Title
			total += price
			order.OrderLines = append(order.OrderLines, models.OrderLine{
				BookID: book.ID,
				Type:   l.Type,
				Price:  round2(price),
			})
		}

		order.TotalPrice = round2(total)
		return s.orders.InsertOrder(ctx, tx, order)
	})
	if err != nil {
		return nil, nil, err
	}

	receipt := GenerateReceipt(order, titles)
	s.deliverReceipt(ctx, order, &receipt)

	return order, &receipt, nil
}

// deliverReceipt emails the rendered receipt to the buyer, best-effort.
// Delivery failure never fails the order; email_sent records the outcome.
func (s *orderService) deliverReceipt(ctx context.Context, order *models.Order, receipt *Receipt) {
	if s.mailer == nil {
		return
	}
	user, err := s.users.FindByID(ctx, order.UserID)
	if err != nil {
		s.logger.Warn("receipt not delivered: user lookup failed", "order_id", order.ID, "error", err)
		return
	}
	subject := fmt.Sprintf("Your bookstore receipt %s", receipt.Number)
	if err := s.mailer.SendReceipt(user.Email, subject, receipt.Render()); err != nil {
		s.logger.Warn("receipt delivery failed", "order_id", order.ID, "error", err)
		return
	}
	if err := s.orders.MarkEmailSent(ctx, order.ID); err != nil {
		s.logger.Warn("could not record email_sent", "order_id", order.ID, "error", err)
		return
	}
	order.EmailSent = true
}

func (s *orderService) ReturnBook(ctx context.Context, userID, bookID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		book, err := s.orders.GetBookForUpdate(ctx, tx, bookID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrBookNotFound, bookID)
			}
			return err
		}
		if book.Status != models.BookStatusRented {
			return ErrBookNotRented
		}

		owns, err := s.orders.HasRentLine(ctx, tx, userID, bookID)
		if err != nil {
			return err
		}
		if !owns {
			// Deliberately the same answer whether nobody or somebody
			// else rented the book: ownership is not leaked.
			return ErrNotYourRental
		}

		return s.orders.SetBookStatus(ctx, tx, bookID, models.BookStatusReturned)
	})
}

func (s *orderService) List(ctx context.Context, paymentStatus string, page, pageSize int, includeTotal bool) ([]models.Order, int64, error) {
	if paymentStatus != "" && !models.IsValidPaymentStatus(paymentStatus) {
		return nil, 0, ErrInvalidPaymentStatus
	}
	return s.orders.List(ctx, paymentStatus, page, pageSize, includeTotal)
}

// UpdatePaymentStatus is a plain administrative override: any valid enum
// value is accepted, no transition graph applies (unlike book status).
func (s *orderService) UpdatePaymentStatus(ctx context.Context, orderID int64, status string) error {
	if !models.IsValidPaymentStatus(status) {
		return ErrInvalidPaymentStatus
	}
	return s.orders.UpdatePaymentStatus(ctx, orderID, status)
}

// round2 normalises currency values to two fractional digits.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"bookstore/database"
	"bookstore/internal/http-api/dto"
	"bookstore/internal/http-api/models"
	"bookstore/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newOrderService(t *testing.T, db *gorm.DB) OrderService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOrderService(db, repository.NewOrderRepo(db), repository.NewUserRepo(db), nil, logger)
}

func seedUser(t *testing.T, db *gorm.DB, id int64) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{
		ID:           id,
		Username:     "user" + string(rune('0'+id%10)),
		Email:        "user" + string(rune('0'+id%10)) + "@example.com",
		PasswordHash: "x",
		Role:         models.RoleCustomer,
	}).Error)
}

func seedBook(t *testing.T, db *gorm.DB, id int64, priceBuy, priceRent float64, status string) {
	t.Helper()
	author := models.Author{Name: "Author for book"}
	require.NoError(t, db.Create(&author).Error)
	require.NoError(t, db.Create(&models.Book{
		ID:        id,
		AuthorID:  author.ID,
		Title:     "Book",
		PriceBuy:  priceBuy,
		PriceRent: priceRent,
		Status:    status,
	}).Error)
}

func bookStatus(t *testing.T, db *gorm.DB, id int64) string {
	t.Helper()
	var b models.Book
	require.NoError(t, db.First(&b, id).Error)
	return b.Status
}

func TestCreateOrder_RentTransitionsBookAndSnapshotsPrice(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	seedUser(t, db, 7)
	seedBook(t, db, 5, 10.00, 2.00, models.BookStatusNew)

	order, receipt, err := svc.CreateOrder(context.Background(), 7, []dto.OrderLineRequest{
		{BookID: 5, Type: models.LineTypeRent},
	})
	require.NoError(t, err)

	assert.Equal(t, 2.00, order.TotalPrice)
	require.Len(t, order.OrderLines, 1)
	assert.Equal(t, 2.00, order.OrderLines[0].Price)
	assert.Equal(t, models.LineTypeRent, order.OrderLines[0].Type)
	assert.Equal(t, models.BookStatusRented, bookStatus(t, db, 5))

	require.NotNil(t, receipt)
	assert.Equal(t, order.ID, receipt.OrderID)
	assert.Equal(t, 2.00, receipt.Total)
}

func TestCreateOrder_RentedBookCannotBeBought(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	seedUser(t, db, 7)
	seedBook(t, db, 5, 10.00, 2.00, models.BookStatusRented)

	_, _, err := svc.CreateOrder(context.Background(), 7, []dto.OrderLineRequest{
		{BookID: 5, Type: models.LineTypeBuy},
	})
	assert.ErrorIs(t, err, ErrBookNotAvailable)
	assert.Equal(t, models.BookStatusRented, bookStatus(t, db, 5))
}

func TestCreateOrder_SoldBookStaysSold(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	seedUser(t, db, 7)
	seedBook(t, db, 5, 10.00, 2.00, models.BookStatusSold)

	_, _, err := svc.CreateOrder(context.Background(), 7, []dto.OrderLineRequest{
		{BookID: 5, Type: models.LineTypeBuy},
	})
	assert.ErrorIs(t, err, ErrBookNotAvailable)
}

func TestCreateOrder_ReturnedBookCanBeSoldAgain(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	seedUser(t, db, 7)
	seedBook(t, db, 5, 10.00, 2.00, models.BookStatusReturned)

	order, _, err := svc.CreateOrder(context.Background(), 7, []dto.OrderLineRequest{
		{BookID: 5, Type: models.LineTypeBuy},
	})
	require.NoError(t, err)
	assert.Equal(t, 10.00, order.TotalPrice)
	assert.Equal(t, models.BookStatusSold, bookStatus(t, db, 5))
}

func TestCreateOrder_MissingBookRollsBackEverything(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	seedUser(t, db, 7)
	seedBook(t, db, 1, 15.00, 3.00, models.BookStatusNew)

	_, _, err := svc.CreateOrder(context.Background(), 7, []dto.OrderLineRequest{
		{BookID: 1, Type: models.LineTypeBuy},
		{BookID: 999, Type: models.LineTypeRent},
	})
	assert.ErrorIs(t, err, ErrBookNotFound)

	// Nothing may survive the failed order: no order, no lines, and the
	// first book's status change must be rolled back.
	var orders, lines int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderLine{}).Count(&lines).Error)
	assert.Zero(t, orders)
	assert.Zero(t, lines)
	assert.Equal(t, models.BookStatusNew, bookStatus(t, db, 1))
}

func TestCreateOrder_InvalidLineTypeRejectedBeforeAnyWrite(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	seedUser(t, db, 7)
	seedBook(t, db, 1, 15.00, 3.00, models.BookStatusNew)

	_, _, err := svc.CreateOrder(context.Background(), 7, []dto.OrderLineRequest{
		{BookID: 1, Type: "borrow"},
	})
	assert.ErrorIs(t, err, ErrInvalidLineType)
	assert.Equal(t, models.BookStatusNew, bookStatus(t, db, 1))
}

func TestCreateOrder_TotalEqualsSumOfLinePrices(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	seedUser(t, db, 7)
	seedBook(t, db, 1, 12.50, 2.25, models.BookStatusNew)
	seedBook(t, db, 2, 8.00, 1.75, models.BookStatusNew)

	order, _, err := svc.CreateOrder(context.Background(), 7, []dto.OrderLineRequest{
		{BookID: 1, Type: models.LineTypeBuy},
		{BookID: 2, Type: models.LineTypeRent},
	})
	require.NoError(t, err)

	var sum float64
	for _, l := range order.OrderLines {
		sum += l.Price
	}
	assert.Equal(t, sum, order.TotalPrice)
	assert.Equal(t, 14.25, order.TotalPrice)
	assert.Equal(t, models.BookStatusSold, bookStatus(t, db, 1))
	assert.Equal(t, models.BookStatusRented, bookStatus(t, db, 2))
}

func TestReturnBook_OwnerReturnsRental(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	seedUser(t, db, 7)
	seedBook(t, db, 5, 10.00, 2.00, models.BookStatusNew)

	_, _, err := svc.CreateOrder(context.Background(), 7, []dto.OrderLineRequest{
		{BookID: 5, Type: models.LineTypeRent},
	})
	require.NoError(t, err)

	require.NoError(t, svc.ReturnBook(context.Background(), 7, 5))
	assert.Equal(t, models.BookStatusReturned, bookStatus(t, db, 5))
}

func TestReturnBook_OtherUserIsRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	seedUser(t, db, 7)
	seedUser(t, db, 8)
	seedBook(t, db, 5, 10.00, 2.00, models.BookStatusNew)

	_, _, err := svc.CreateOrder(context.Background(), 7, []dto.OrderLineRequest{
		{BookID: 5, Type: models.LineTypeRent},
	})
	require.NoError(t, err)

	err = svc.ReturnBook(context.Background(), 8, 5)
	assert.ErrorIs(t, err, ErrNotYourRental)
	assert.Equal(t, models.BookStatusRented, bookStatus(t, db, 5))

	// The rightful renter can still return it afterwards.
	require.NoError(t, svc.ReturnBook(context.Background(), 7, 5))
}

func TestReturnBook_NotRented(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	seedUser(t, db, 7)
	seedBook(t, db, 5, 10.00, 2.00, models.BookStatusNew)

	err := svc.ReturnBook(context.Background(), 7, 5)
	assert.ErrorIs(t, err, ErrBookNotRented)
}

func TestReturnBook_MissingBook(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	seedUser(t, db, 7)

	err := svc.ReturnBook(context.Background(), 7, 42)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestUpdatePaymentStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	seedUser(t, db, 7)
	seedBook(t, db, 5, 10.00, 2.00, models.BookStatusNew)

	order, _, err := svc.CreateOrder(context.Background(), 7, []dto.OrderLineRequest{
		{BookID: 5, Type: models.LineTypeBuy},
	})
	require.NoError(t, err)

	t.Run("InvalidValue", func(t *testing.T) {
		err := svc.UpdatePaymentStatus(context.Background(), order.ID, "paid")
		assert.ErrorIs(t, err, ErrInvalidPaymentStatus)
	})

	t.Run("AnyValidValueIsAccepted", func(t *testing.T) {
		// No transition graph on orders: pending -> cancelled -> completed is fine.
		require.NoError(t, svc.UpdatePaymentStatus(context.Background(), order.ID, models.PaymentStatusCancelled))
		require.NoError(t, svc.UpdatePaymentStatus(context.Background(), order.ID, models.PaymentStatusCompleted))

		var o models.Order
		require.NoError(t, db.First(&o, order.ID).Error)
		assert.Equal(t, models.PaymentStatusCompleted, o.PaymentStatus)
	})

	t.Run("MissingOrder", func(t *testing.T) {
		err := svc.UpdatePaymentStatus(context.Background(), 999, models.PaymentStatusCompleted)
		assert.Error(t, err)
	})
}

func TestListOrders_FilterAndPagination(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	seedUser(t, db, 7)
	for i := int64(1); i <= 5; i++ {
		seedBook(t, db, i, 10.00, 2.00, models.BookStatusNew)
		_, _, err := svc.CreateOrder(context.Background(), 7, []dto.OrderLineRequest{
			{BookID: i, Type: models.LineTypeBuy},
		})
		require.NoError(t, err)
	}
	require.NoError(t, svc.UpdatePaymentStatus(context.Background(), 1, models.PaymentStatusCompleted))
	require.NoError(t, svc.UpdatePaymentStatus(context.Background(), 2, models.PaymentStatusCompleted))

	t.Run("FilterByPaymentStatus", func(t *testing.T) {
		completed, _, err := svc.List(context.Background(), models.PaymentStatusCompleted, 1, 10, false)
		require.NoError(t, err)
		assert.Len(t, completed, 2)

		pending, total, err := svc.List(context.Background(), models.PaymentStatusPending, 1, 10, true)
		require.NoError(t, err)
		assert.Len(t, pending, 3)
		assert.Equal(t, int64(3), total)
	})

	t.Run("InvalidFilter", func(t *testing.T) {
		_, _, err := svc.List(context.Background(), "refunded", 1, 10, false)
		assert.ErrorIs(t, err, ErrInvalidPaymentStatus)
	})

	t.Run("PagesAreStableAndExhaustive", func(t *testing.T) {
		var seen []int64
		for page := 1; page <= 3; page++ {
			orders, _, err := svc.List(context.Background(), "", page, 2, false)
			require.NoError(t, err)
			for _, o := range orders {
				seen = append(seen, o.ID)
			}
		}
		assert.Equal(t, []int64{1, 2, 3, 4, 5}, seen)
	})
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidBookStatus(t *testing.T) {
	for _, s := range []string{BookStatusNew, BookStatusRented, BookStatusSold, BookStatusReturned} {
		assert.True(t, IsValidBookStatus(s), s)
	}
	for _, s := range []string{"", "NEW", "borrowed", "lost"} {
		assert.False(t, IsValidBookStatus(s), s)
	}
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{BookStatusNew, BookStatusSold},
		{BookStatusNew, BookStatusRented},
		{BookStatusRented, BookStatusReturned},
		{BookStatusReturned, BookStatusSold},
		{BookStatusReturned, BookStatusRented},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]string{
		{BookStatusSold, BookStatusRented},   // sold is terminal
		{BookStatusSold, BookStatusReturned}, // no refunds through this graph
		{BookStatusNew, BookStatusReturned},  // never rented
		{BookStatusRented, BookStatusSold},   // must come back first
		{BookStatusRented, BookStatusRented},
		{BookStatusNew, BookStatusNew},
	}
	for _, tr := range denied {
		assert.False(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}
}

func TestIsValidPaymentStatus(t *testing.T) {
	for _, s := range []string{PaymentStatusPending, PaymentStatusCompleted, PaymentStatusCancelled} {
		assert.True(t, IsValidPaymentStatus(s), s)
	}
	assert.False(t, IsValidPaymentStatus("paid"))
	assert.False(t, IsValidPaymentStatus(""))
}

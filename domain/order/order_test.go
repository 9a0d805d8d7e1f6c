package order

import (
	"errors"
	"testing"
	"time"
)

func mustItem(t *testing.T, bookID string, quantity int) OrderItem {
	t.Helper()
	item, err := NewOrderItem(bookID, quantity)
	if err != nil {
		t.Fatalf("NewOrderItem(%s, %d): %v", bookID, quantity, err)
	}
	return item
}

func TestNewOrderItem(t *testing.T) {
	if _, err := NewOrderItem("book-1", 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("quantity 0: got %v, want ErrInvalidQuantity", err)
	}
	if _, err := NewOrderItem("book-1", -3); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("negative quantity: got %v, want ErrInvalidQuantity", err)
	}
	item, err := NewOrderItem("book-1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.BookID() != "book-1" || item.Quantity() != 2 {
		t.Errorf("item = (%s, %d)", item.BookID(), item.Quantity())
	}
}

func TestNewOrder(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if _, err := NewOrder("o-1", nil, "r-1", DeliveryCourier, now); !errors.Is(err, ErrEmptyOrderItems) {
		t.Errorf("empty items: got %v, want ErrEmptyOrderItems", err)
	}

	items := []OrderItem{mustItem(t, "book-1", 2)}
	o, err := NewOrder("o-1", items, "r-1", DeliveryCourier, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Status() != StatusNew {
		t.Errorf("status = %s, want NEW", o.Status())
	}
	if !o.CreatedAt().Equal(now) || !o.UpdatedAt().Equal(now) {
		t.Errorf("timestamps = (%v, %v), want %v", o.CreatedAt(), o.UpdatedAt(), now)
	}

	// The aggregate owns its items; mutating the input or the returned
	// slice must not reach it.
	items[0] = mustItem(t, "book-2", 9)
	got := o.Items()
	got[0] = mustItem(t, "book-3", 9)
	if o.Items()[0].BookID() != "book-1" {
		t.Error("order items leaked through a shared slice")
	}
}

func TestOrderUpdateStatus(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	later := created.Add(time.Hour)

	o, err := NewOrder("o-1", []OrderItem{mustItem(t, "book-1", 1)}, "r-1", DeliverySelfPickup, created)
	if err != nil {
		t.Fatal(err)
	}

	result, err := o.UpdateStatus(StatusPaid, later)
	if err != nil {
		t.Fatalf("NEW -> PAID: %v", err)
	}
	if result.Revoked {
		t.Error("NEW -> PAID should not revoke stock")
	}
	if o.Status() != StatusPaid {
		t.Errorf("status = %s, want PAID", o.Status())
	}
	if !o.UpdatedAt().Equal(later) {
		t.Errorf("updatedAt = %v, want %v", o.UpdatedAt(), later)
	}

	// Illegal transition leaves the order untouched.
	if _, err := o.UpdateStatus(StatusCancelled, later.Add(time.Hour)); err == nil {
		t.Fatal("PAID -> CANCELLED should fail")
	}
	if o.Status() != StatusPaid {
		t.Errorf("status after failed transition = %s, want PAID", o.Status())
	}
	if !o.UpdatedAt().Equal(later) {
		t.Error("updatedAt changed on a failed transition")
	}
}

func TestRebuildFromDTO(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	o := RebuildFromDTO(ReconstructionDTO{
		ID:          "o-1",
		Status:      StatusPaid,
		Items:       []OrderItem{RebuildItem("book-1", 3)},
		RecipientID: "r-1",
		Delivery:    DeliveryCourier,
		CreatedAt:   created,
		UpdatedAt:   created,
	})

	if o.ID() != "o-1" || o.Status() != StatusPaid || o.RecipientID() != "r-1" {
		t.Errorf("rebuilt order = (%s, %s, %s)", o.ID(), o.Status(), o.RecipientID())
	}
	if len(o.Items()) != 1 || o.Items()[0].Quantity() != 3 {
		t.Errorf("rebuilt items = %+v", o.Items())
	}
}

package order

import (
	"context"
	"errors"
	"testing"

	"bookstore/domain/order"
	"bookstore/domain/shared"
)

func TestOrderPriceFinalPrice(t *testing.T) {
	price := OrderPrice{
		ItemsPrice:    shared.MustParseMoney("221.60"),
		DeliveryPrice: shared.MustParseMoney("9.90"),
		Discount:      shared.MustParseMoney("65.30"),
	}
	if got := price.FinalPrice().String(); got != "166.20" {
		t.Errorf("final = %s, want 166.20", got)
	}
}

func TestOrderPriceFinalPriceNeverNegative(t *testing.T) {
	price := OrderPrice{
		ItemsPrice:    shared.MustParseMoney("10.00"),
		DeliveryPrice: shared.Zero,
		Discount:      shared.MustParseMoney("15.00"),
	}
	if got := price.FinalPrice().String(); got != "0.00" {
		t.Errorf("final = %s, want 0.00", got)
	}
}

func TestQueryFindByIDPricesOrder(t *testing.T) {
	f := newFixture(t)
	f.seedBook(t, "b1", "Expensive Book", "110.80", 5)
	ctx := context.Background()
	orderID := f.place(t, "alice@example.com", OrderItemRequest{BookID: "b1", Quantity: 2})

	got, err := f.query.FindByID(ctx, owner, orderID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}

	if got.ItemsPrice != "221.60" {
		t.Errorf("items price = %s, want 221.60", got.ItemsPrice)
	}
	if got.DeliveryPrice != "9.90" {
		t.Errorf("delivery price = %s, want 9.90", got.DeliveryPrice)
	}
	// Free delivery (9.90) plus half the cheapest unit price (55.40).
	if got.Discount != "65.30" {
		t.Errorf("discount = %s, want 65.30", got.Discount)
	}
	if got.FinalPrice != "166.20" {
		t.Errorf("final price = %s, want 166.20", got.FinalPrice)
	}
	if len(got.Items) != 1 || got.Items[0].Title != "Expensive Book" || got.Items[0].LineTotal != "221.60" {
		t.Errorf("items = %+v", got.Items)
	}
	if got.Recipient.Email != "alice@example.com" {
		t.Errorf("recipient = %s", got.Recipient.Email)
	}
}

func TestQueryPricesFollowCatalog(t *testing.T) {
	f := newFixture(t)
	f.seedBook(t, "b1", "Book One", "50.00", 5)
	ctx := context.Background()
	orderID := f.place(t, "alice@example.com", OrderItemRequest{BookID: "b1", Quantity: 1})

	before, err := f.query.FindByID(ctx, owner, orderID)
	if err != nil {
		t.Fatal(err)
	}
	if before.ItemsPrice != "50.00" {
		t.Errorf("items price = %s, want 50.00", before.ItemsPrice)
	}

	// Reprice the book; the open order follows the current price.
	book, _ := f.books.FindByID(ctx, "b1")
	book.Price = shared.MustParseMoney("60.00")
	if err := f.books.Save(ctx, book); err != nil {
		t.Fatal(err)
	}

	after, err := f.query.FindByID(ctx, owner, orderID)
	if err != nil {
		t.Fatal(err)
	}
	if after.ItemsPrice != "60.00" {
		t.Errorf("items price after reprice = %s, want 60.00", after.ItemsPrice)
	}
}

func TestQueryAuthorization(t *testing.T) {
	f := newFixture(t)
	f.seedBook(t, "b1", "Book One", "10.00", 5)
	ctx := context.Background()
	orderID := f.place(t, "alice@example.com", OrderItemRequest{BookID: "b1", Quantity: 1})

	if _, err := f.query.FindByID(ctx, stranger, orderID); !errors.Is(err, order.ErrForbidden) {
		t.Errorf("stranger: got %v, want ErrForbidden", err)
	}
	if _, err := f.query.FindByID(ctx, admin, orderID); err != nil {
		t.Errorf("admin: %v", err)
	}
	if _, err := f.query.FindByID(ctx, owner, "missing"); !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("missing: got %v, want ErrOrderNotFound", err)
	}
}

func TestQueryFindPageFiltersByStatus(t *testing.T) {
	f := newFixture(t)
	f.seedBook(t, "b1", "Book One", "10.00", 10)
	ctx := context.Background()

	first := f.place(t, "alice@example.com", OrderItemRequest{BookID: "b1", Quantity: 1})
	f.clock.Advance(1)
	f.place(t, "bob@example.com", OrderItemRequest{BookID: "b1", Quantity: 1})
	if _, err := f.manipulate.UpdateOrderStatus(ctx, admin, first, "PAID"); err != nil {
		t.Fatal(err)
	}

	paid, total, err := f.query.FindPage(ctx, ListQuery{Status: "PAID", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(paid) != 1 || paid[0].ID != first {
		t.Errorf("paid page = %d items, total %d", len(paid), total)
	}

	all, total, err := f.query.FindPage(ctx, ListQuery{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(all) != 2 {
		t.Errorf("all page = %d items, total %d", len(all), total)
	}

	if _, _, err := f.query.FindPage(ctx, ListQuery{Status: "NONSENSE", Page: 1, PageSize: 10}); err == nil {
		t.Error("unknown status filter should fail")
	}
}

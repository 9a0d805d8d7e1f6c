package order

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"bookstore/domain/catalog"
	"bookstore/domain/order"
	"bookstore/domain/shared"
	"bookstore/domain/user"
	"bookstore/infrastructure/persistence/memory"
	"bookstore/pkg/clock"
)

type fixture struct {
	books      *memory.BookRepository
	orders     *memory.OrderRepository
	recipients *memory.RecipientRepository
	clock      *clock.Fake
	manipulate *ManipulateService
	query      *QueryService
	price      *PriceService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	books := memory.NewBookRepository(store)
	orders := memory.NewOrderRepository(store)
	recipients := memory.NewRecipientRepository(store)
	uow := memory.NewUnitOfWork(store)
	clk := clock.NewFake(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	price := NewPriceService(books)
	return &fixture{
		books:      books,
		orders:     orders,
		recipients: recipients,
		clock:      clk,
		manipulate: NewManipulateService(orders, recipients, books, uow, clk),
		query:      NewQueryService(orders, recipients, price),
		price:      price,
	}
}

func (f *fixture) seedBook(t *testing.T, id, title, price string, available int64) {
	t.Helper()
	now := f.clock.Now()
	err := f.books.Save(context.Background(), &catalog.Book{
		ID:        id,
		Title:     title,
		Price:     shared.MustParseMoney(price),
		Available: available,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed book %s: %v", id, err)
	}
}

func (f *fixture) available(t *testing.T, bookID string) int64 {
	t.Helper()
	book, err := f.books.FindByID(context.Background(), bookID)
	if err != nil {
		t.Fatalf("find book %s: %v", bookID, err)
	}
	return book.Available
}

func placeRequest(email string, delivery string, items ...OrderItemRequest) PlaceOrderRequest {
	return PlaceOrderRequest{
		Recipient: RecipientRequest{Email: email, Name: "Alice Smith"},
		Items:     items,
		Delivery:  delivery,
	}
}

var (
	owner    = user.Principal{Email: "alice@example.com", Role: user.RoleUser}
	stranger = user.Principal{Email: "mallory@example.com", Role: user.RoleUser}
	admin    = user.Principal{Email: "admin@example.com", Role: user.RoleAdmin}
)

func TestPlaceOrderDebitsStock(t *testing.T) {
	f := newFixture(t)
	f.seedBook(t, "b1", "The Go Programming Language", "110.80", 5)
	ctx := context.Background()

	orderID, err := f.manipulate.PlaceOrder(ctx, placeRequest("alice@example.com", "COURIER",
		OrderItemRequest{BookID: "b1", Quantity: 2}))
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if got := f.available(t, "b1"); got != 3 {
		t.Errorf("available = %d, want 3", got)
	}

	o, err := f.orders.FindByID(ctx, orderID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if o.Status() != order.StatusNew {
		t.Errorf("status = %s, want NEW", o.Status())
	}
	if o.Delivery() != order.DeliveryCourier {
		t.Errorf("delivery = %s, want COURIER", o.Delivery())
	}
}

func TestPlaceOrderReusesRecipientByEmail(t *testing.T) {
	f := newFixture(t)
	f.seedBook(t, "b1", "Book One", "10.00", 10)
	ctx := context.Background()

	first, err := f.manipulate.PlaceOrder(ctx, placeRequest("alice@example.com", "COURIER",
		OrderItemRequest{BookID: "b1", Quantity: 1}))
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.manipulate.PlaceOrder(ctx, placeRequest("ALICE@Example.COM", "COURIER",
		OrderItemRequest{BookID: "b1", Quantity: 1}))
	if err != nil {
		t.Fatal(err)
	}

	o1, _ := f.orders.FindByID(ctx, first)
	o2, _ := f.orders.FindByID(ctx, second)
	if o1.RecipientID() != o2.RecipientID() {
		t.Errorf("recipients differ: %s vs %s", o1.RecipientID(), o2.RecipientID())
	}
}

func TestPlaceOrderOutOfStock(t *testing.T) {
	f := newFixture(t)
	f.seedBook(t, "b1", "Scarce Book", "10.00", 1)
	f.seedBook(t, "b2", "Common Book", "10.00", 10)
	ctx := context.Background()

	_, err := f.manipulate.PlaceOrder(ctx, placeRequest("alice@example.com", "COURIER",
		OrderItemRequest{BookID: "b2", Quantity: 3},
		OrderItemRequest{BookID: "b1", Quantity: 2}))

	var outOfStock *order.OutOfStockError
	if !errors.As(err, &outOfStock) {
		t.Fatalf("expected OutOfStockError, got %v", err)
	}
	if outOfStock.BookID != "b1" || outOfStock.Requested != 2 || outOfStock.Available != 1 {
		t.Errorf("error fields = %+v", outOfStock)
	}

	// The failed order must not move any counter, including books checked
	// before the failing one.
	if got := f.available(t, "b1"); got != 1 {
		t.Errorf("b1 available = %d, want 1", got)
	}
	if got := f.available(t, "b2"); got != 10 {
		t.Errorf("b2 available = %d, want 10", got)
	}

	if _, total, err := f.orders.FindPage(ctx, order.PageQuery{Page: 1, PageSize: 10}); err != nil || total != 0 {
		t.Errorf("orders persisted after failed placement: total=%d err=%v", total, err)
	}
}

func TestConcurrentPlacementNeverOversells(t *testing.T) {
	f := newFixture(t)
	f.seedBook(t, "b1", "Last Copy", "10.00", 1)

	const placements = 20
	var wg sync.WaitGroup
	var placed int64
	for i := 0; i < placements; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.manipulate.PlaceOrder(context.Background(), placeRequest("alice@example.com", "COURIER",
				OrderItemRequest{BookID: "b1", Quantity: 1}))
			if err == nil {
				atomic.AddInt64(&placed, 1)
				return
			}
			var outOfStock *order.OutOfStockError
			if !errors.As(err, &outOfStock) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if placed != 1 {
		t.Errorf("placed = %d, want exactly 1", placed)
	}
	if got := f.available(t, "b1"); got != 0 {
		t.Errorf("available = %d, want 0", got)
	}
	if _, total, err := f.orders.FindPage(context.Background(), order.PageQuery{Page: 1, PageSize: 50}); err != nil || total != 1 {
		t.Errorf("persisted orders: total=%d err=%v", total, err)
	}
}

func TestPlaceOrderMergesDuplicateLines(t *testing.T) {
	f := newFixture(t)
	f.seedBook(t, "b1", "Book One", "10.00", 5)
	ctx := context.Background()

	// 3 + 3 exceeds the 5 available even though each line alone fits.
	_, err := f.manipulate.PlaceOrder(ctx, placeRequest("alice@example.com", "COURIER",
		OrderItemRequest{BookID: "b1", Quantity: 3},
		OrderItemRequest{BookID: "b1", Quantity: 3}))

	var outOfStock *order.OutOfStockError
	if !errors.As(err, &outOfStock) {
		t.Fatalf("expected OutOfStockError, got %v", err)
	}
	if outOfStock.Requested != 6 {
		t.Errorf("requested = %d, want merged 6", outOfStock.Requested)
	}
	if got := f.available(t, "b1"); got != 5 {
		t.Errorf("available = %d, want 5", got)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	f := newFixture(t)
	f.seedBook(t, "b1", "Book One", "10.00", 5)
	ctx := context.Background()

	if _, err := f.manipulate.PlaceOrder(ctx, placeRequest("alice@example.com", "DRONE",
		OrderItemRequest{BookID: "b1", Quantity: 1})); err == nil {
		t.Error("unknown delivery should fail")
	}
	if _, err := f.manipulate.PlaceOrder(ctx, placeRequest("alice@example.com", "COURIER",
		OrderItemRequest{BookID: "b1", Quantity: 0})); !errors.Is(err, order.ErrInvalidQuantity) {
		t.Errorf("zero quantity: got %v, want ErrInvalidQuantity", err)
	}
	if _, err := f.manipulate.PlaceOrder(ctx, placeRequest("alice@example.com", "COURIER")); !errors.Is(err, order.ErrEmptyOrderItems) {
		t.Errorf("no items: got %v, want ErrEmptyOrderItems", err)
	}
}

func (f *fixture) place(t *testing.T, email string, items ...OrderItemRequest) string {
	t.Helper()
	orderID, err := f.manipulate.PlaceOrder(context.Background(), placeRequest(email, "COURIER", items...))
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	return orderID
}

func TestUpdateOrderStatusAuthorization(t *testing.T) {
	f := newFixture(t)
	f.seedBook(t, "b1", "Book One", "10.00", 5)
	ctx := context.Background()
	orderID := f.place(t, "alice@example.com", OrderItemRequest{BookID: "b1", Quantity: 1})

	if _, err := f.manipulate.UpdateOrderStatus(ctx, stranger, orderID, "PAID"); !errors.Is(err, order.ErrForbidden) {
		t.Errorf("stranger: got %v, want ErrForbidden", err)
	}
	o, _ := f.orders.FindByID(ctx, orderID)
	if o.Status() != order.StatusNew {
		t.Errorf("status after forbidden attempt = %s, want NEW", o.Status())
	}

	// The owner matches case-insensitively; admins always pass.
	ownerUpper := user.Principal{Email: "ALICE@EXAMPLE.COM", Role: user.RoleUser}
	if _, err := f.manipulate.UpdateOrderStatus(ctx, ownerUpper, orderID, "PAID"); err != nil {
		t.Errorf("owner: %v", err)
	}
	if _, err := f.manipulate.UpdateOrderStatus(ctx, admin, orderID, "SHIPPED"); err != nil {
		t.Errorf("admin: %v", err)
	}
}

func TestCancelCreditsStockBack(t *testing.T) {
	f := newFixture(t)
	f.seedBook(t, "b1", "Book One", "10.00", 5)
	f.seedBook(t, "b2", "Book Two", "20.00", 4)
	ctx := context.Background()
	orderID := f.place(t, "alice@example.com",
		OrderItemRequest{BookID: "b1", Quantity: 2},
		OrderItemRequest{BookID: "b2", Quantity: 1})

	status, err := f.manipulate.UpdateOrderStatus(ctx, owner, orderID, "CANCELLED")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if status != order.StatusCancelled {
		t.Errorf("status = %s, want CANCELLED", status)
	}
	if got := f.available(t, "b1"); got != 5 {
		t.Errorf("b1 available = %d, want 5", got)
	}
	if got := f.available(t, "b2"); got != 4 {
		t.Errorf("b2 available = %d, want 4", got)
	}
}

func TestPaidOrderKeepsStockReserved(t *testing.T) {
	f := newFixture(t)
	f.seedBook(t, "b1", "Book One", "10.00", 5)
	ctx := context.Background()
	orderID := f.place(t, "alice@example.com", OrderItemRequest{BookID: "b1", Quantity: 2})

	if _, err := f.manipulate.UpdateOrderStatus(ctx, owner, orderID, "PAID"); err != nil {
		t.Fatal(err)
	}
	if got := f.available(t, "b1"); got != 3 {
		t.Errorf("available = %d, want 3", got)
	}

	if _, err := f.manipulate.UpdateOrderStatus(ctx, owner, orderID, "CANCELLED"); !errors.Is(err, order.ErrInvalidStatusTransition) {
		t.Errorf("PAID -> CANCELLED: got %v, want ErrInvalidStatusTransition", err)
	}
	if got := f.available(t, "b1"); got != 3 {
		t.Errorf("available after failed cancel = %d, want 3", got)
	}
}

func TestUpdateOrderStatusErrors(t *testing.T) {
	f := newFixture(t)
	f.seedBook(t, "b1", "Book One", "10.00", 5)
	ctx := context.Background()
	orderID := f.place(t, "alice@example.com", OrderItemRequest{BookID: "b1", Quantity: 1})

	if _, err := f.manipulate.UpdateOrderStatus(ctx, owner, "missing", "PAID"); !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("missing order: got %v, want ErrOrderNotFound", err)
	}
	if _, err := f.manipulate.UpdateOrderStatus(ctx, owner, orderID, "NONSENSE"); err == nil {
		t.Error("unknown status should fail")
	}
}

func TestDeleteOrder(t *testing.T) {
	f := newFixture(t)
	f.seedBook(t, "b1", "Book One", "10.00", 5)
	ctx := context.Background()
	orderID := f.place(t, "alice@example.com", OrderItemRequest{BookID: "b1", Quantity: 1})

	if err := f.manipulate.DeleteOrder(ctx, orderID); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}
	if _, err := f.orders.FindByID(ctx, orderID); !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("after delete: got %v, want ErrOrderNotFound", err)
	}
	if err := f.manipulate.DeleteOrder(ctx, orderID); !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("second delete: got %v, want ErrOrderNotFound", err)
	}
}

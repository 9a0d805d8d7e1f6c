package order

import (
	"context"

	"bookstore/domain/catalog"
	"bookstore/domain/order"
	"bookstore/domain/shared"
	"bookstore/domain/user"
	apperrors "bookstore/pkg/errors"

	"bookstore/pkg/clock"
)

// ManipulateService coordinates the write side of the order lifecycle:
// placement, status updates, deletion. Every stock movement runs inside a
// unit of work with the affected books locked.
type ManipulateService struct {
	orderRepo     order.Repository
	recipientRepo order.RecipientRepository
	bookRepo      catalog.BookRepository
	uow           shared.UnitOfWork
	clock         clock.Clock
}

// NewManipulateService creates the order write service.
func NewManipulateService(
	orderRepo order.Repository,
	recipientRepo order.RecipientRepository,
	bookRepo catalog.BookRepository,
	uow shared.UnitOfWork,
	clk clock.Clock,
) *ManipulateService {
	return &ManipulateService{
		orderRepo:     orderRepo,
		recipientRepo: recipientRepo,
		bookRepo:      bookRepo,
		uow:           uow,
		clock:         clk,
	}
}

// PlaceOrderRequest is the payload for placing an order.
type PlaceOrderRequest struct {
	Recipient RecipientRequest   `json:"recipient" binding:"required"`
	Items     []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Delivery  string             `json:"delivery" binding:"required"`
}

// RecipientRequest identifies and describes the recipient. Email is the
// identity; an existing recipient with the same email is reused as is.
type RecipientRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
}

// OrderItemRequest is one requested order line.
type OrderItemRequest struct {
	BookID   string `json:"book_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// PlaceOrder creates an order in status NEW and debits the stock of every
// ordered book, all inside one unit of work. Lines naming the same book are
// merged first, so availability is checked against the combined quantity.
// Any line exceeding availability fails the whole order and leaves every
// stock counter untouched.
func (s *ManipulateService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (string, error) {
	delivery, ok := order.ParseDelivery(req.Delivery)
	if !ok {
		return "", apperrors.Validation("unknown delivery method: " + req.Delivery)
	}

	items, err := mergeItems(req.Items)
	if err != nil {
		return "", err
	}

	var orderID string
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		books, err := s.debitStock(ctx, items)
		if err != nil {
			return err
		}

		recipient, err := s.findOrCreateRecipient(ctx, req.Recipient)
		if err != nil {
			return err
		}

		o, err := order.NewOrder(s.orderRepo.NextIdentity(), items, recipient.ID, delivery, s.clock.Now())
		if err != nil {
			return err
		}

		if err := s.bookRepo.SaveAll(ctx, books); err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		orderID = o.ID()
		return nil
	})
	if err != nil {
		return "", err
	}
	return orderID, nil
}

// mergeItems combines lines naming the same book, keeping first-seen order.
func mergeItems(requests []OrderItemRequest) ([]order.OrderItem, error) {
	quantities := make(map[string]int, len(requests))
	bookIDs := make([]string, 0, len(requests))
	for _, req := range requests {
		if _, seen := quantities[req.BookID]; !seen {
			bookIDs = append(bookIDs, req.BookID)
		}
		quantities[req.BookID] += req.Quantity
	}

	items := make([]order.OrderItem, 0, len(bookIDs))
	for _, bookID := range bookIDs {
		item, err := order.NewOrderItem(bookID, quantities[bookID])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// debitStock locks every ordered book, verifies availability, and returns
// the books with their counters already decremented. Nothing is persisted
// here; the caller saves all books atomically once every check passed.
func (s *ManipulateService) debitStock(ctx context.Context, items []order.OrderItem) ([]*catalog.Book, error) {
	books := make([]*catalog.Book, 0, len(items))
	for _, item := range items {
		book, err := s.bookRepo.FindByIDForUpdate(ctx, item.BookID())
		if err != nil {
			return nil, err
		}
		if book.Available < int64(item.Quantity()) {
			return nil, order.NewOutOfStockError(book.ID, item.Quantity(), book.Available)
		}
		book.Available -= int64(item.Quantity())
		book.UpdatedAt = s.clock.Now()
		books = append(books, book)
	}
	return books, nil
}

func (s *ManipulateService) findOrCreateRecipient(ctx context.Context, req RecipientRequest) (*order.Recipient, error) {
	existing, err := s.recipientRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	recipient := &order.Recipient{
		ID:        s.recipientRepo.NextIdentity(),
		Email:     req.Email,
		Name:      req.Name,
		Phone:     req.Phone,
		Street:    req.Street,
		City:      req.City,
		ZipCode:   req.ZipCode,
		CreatedAt: s.clock.Now(),
	}
	if err := s.recipientRepo.Save(ctx, recipient); err != nil {
		return nil, err
	}
	return recipient, nil
}

// UpdateOrderStatus moves an order through the state machine on behalf of
// the principal. Only the order's owner or an admin may change it. When
// the change revokes the order, the reserved stock is credited back in the
// same unit of work.
func (s *ManipulateService) UpdateOrderStatus(ctx context.Context, principal user.Principal, orderID, requested string) (order.Status, error) {
	status, ok := order.ParseStatus(requested)
	if !ok {
		return "", apperrors.Validation("unknown order status: " + requested)
	}
	return s.updateStatus(ctx, principal, orderID, status)
}

func (s *ManipulateService) updateStatus(ctx context.Context, principal user.Principal, orderID string, requested order.Status) (order.Status, error) {
	var updated order.Status
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		recipient, err := s.recipientRepo.FindByID(ctx, o.RecipientID())
		if err != nil {
			return err
		}
		if !principal.IsOwnerOrAdmin(recipient.Email) {
			return order.ErrForbidden
		}

		result, err := o.UpdateStatus(requested, s.clock.Now())
		if err != nil {
			return err
		}

		if result.Revoked {
			if err := s.creditStock(ctx, o.Items()); err != nil {
				return err
			}
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		updated = result.Status
		return nil
	})
	if err != nil {
		return "", err
	}
	return updated, nil
}

// creditStock returns the order's quantities to the books' counters.
func (s *ManipulateService) creditStock(ctx context.Context, items []order.OrderItem) error {
	books := make([]*catalog.Book, 0, len(items))
	for _, item := range items {
		book, err := s.bookRepo.FindByIDForUpdate(ctx, item.BookID())
		if err != nil {
			return err
		}
		book.Available += int64(item.Quantity())
		book.UpdatedAt = s.clock.Now()
		books = append(books, book)
	}
	return s.bookRepo.SaveAll(ctx, books)
}

// DeleteOrder removes an order outright. Stock is not credited back; the
// status change endpoints are the way to revoke a live order.
func (s *ManipulateService) DeleteOrder(ctx context.Context, orderID string) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		return s.orderRepo.Remove(ctx, orderID)
	})
}

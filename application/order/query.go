package order

import (
	"context"
	"time"

	"bookstore/domain/order"
	"bookstore/domain/user"
	apperrors "bookstore/pkg/errors"
)

// QueryService serves the read side of orders: single orders priced for
// their owner, and the admin listing.
type QueryService struct {
	orderRepo     order.Repository
	recipientRepo order.RecipientRepository
	priceService  *PriceService
}

// NewQueryService creates the order read service.
func NewQueryService(
	orderRepo order.Repository,
	recipientRepo order.RecipientRepository,
	priceService *PriceService,
) *QueryService {
	return &QueryService{
		orderRepo:     orderRepo,
		recipientRepo: recipientRepo,
		priceService:  priceService,
	}
}

// OrderResponse is the priced view of an order returned by the API.
type OrderResponse struct {
	ID            string              `json:"id"`
	Status        string              `json:"status"`
	Recipient     RecipientResponse   `json:"recipient"`
	Items         []OrderItemResponse `json:"items"`
	Delivery      string              `json:"delivery"`
	ItemsPrice    string              `json:"items_price"`
	DeliveryPrice string              `json:"delivery_price"`
	Discount      string              `json:"discount"`
	FinalPrice    string              `json:"final_price"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// RecipientResponse describes the order's recipient.
type RecipientResponse struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
}

// OrderItemResponse is one priced order line.
type OrderItemResponse struct {
	BookID    string `json:"book_id"`
	Title     string `json:"title"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

// FindByID returns one priced order. Only the order's owner or an admin
// may read it.
func (s *QueryService) FindByID(ctx context.Context, principal user.Principal, orderID string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	recipient, err := s.recipientRepo.FindByID(ctx, o.RecipientID())
	if err != nil {
		return nil, err
	}
	if !principal.IsOwnerOrAdmin(recipient.Email) {
		return nil, order.ErrForbidden
	}
	return s.toResponse(ctx, o, recipient)
}

// ListQuery filters and pages the admin order listing.
type ListQuery struct {
	Status   string
	Page     int
	PageSize int
}

// FindPage lists orders for administrators, optionally filtered by status.
func (s *QueryService) FindPage(ctx context.Context, query ListQuery) ([]*OrderResponse, int64, error) {
	pageQuery := order.PageQuery{Page: query.Page, PageSize: query.PageSize}
	if query.Status != "" {
		status, ok := order.ParseStatus(query.Status)
		if !ok {
			return nil, 0, apperrors.Validation("unknown order status: " + query.Status)
		}
		pageQuery.Status = &status
	}

	orders, total, err := s.orderRepo.FindPage(ctx, pageQuery)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		recipient, err := s.recipientRepo.FindByID(ctx, o.RecipientID())
		if err != nil {
			return nil, 0, err
		}
		response, err := s.toResponse(ctx, o, recipient)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, response)
	}
	return responses, total, nil
}

func (s *QueryService) toResponse(ctx context.Context, o *order.Order, recipient *order.Recipient) (*OrderResponse, error) {
	price, snapshot, err := s.priceService.Price(ctx, o)
	if err != nil {
		return nil, err
	}

	items := make([]OrderItemResponse, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		items = append(items, OrderItemResponse{
			BookID:    line.BookID,
			Title:     line.Title,
			UnitPrice: line.UnitPrice.String(),
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal().String(),
		})
	}

	return &OrderResponse{
		ID:     o.ID(),
		Status: string(o.Status()),
		Recipient: RecipientResponse{
			Email:   recipient.Email,
			Name:    recipient.Name,
			Phone:   recipient.Phone,
			Street:  recipient.Street,
			City:    recipient.City,
			ZipCode: recipient.ZipCode,
		},
		Items:         items,
		Delivery:      string(o.Delivery()),
		ItemsPrice:    price.ItemsPrice.String(),
		DeliveryPrice: price.DeliveryPrice.String(),
		Discount:      price.Discount.String(),
		FinalPrice:    price.FinalPrice().String(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}, nil
}

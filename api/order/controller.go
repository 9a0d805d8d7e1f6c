/*
Package order exposes the order endpoints. Controllers parse the request,
call the application services, and hand results or errors to the response
package; authorization beyond authentication lives in the services.
*/
package order

import (
	"net/http"
	"strconv"

	"bookstore/api/middleware"
	"bookstore/api/response"
	orderapp "bookstore/application/order"

	"github.com/gin-gonic/gin"
)

// Controller handles order requests.
type Controller struct {
	manipulate *orderapp.ManipulateService
	query      *orderapp.QueryService
}

// NewController creates the order controller.
func NewController(manipulate *orderapp.ManipulateService, query *orderapp.QueryService) *Controller {
	return &Controller{manipulate: manipulate, query: query}
}

// RegisterRoutes registers the order routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders", middleware.RequireAuth())
	{
		orders.POST("", c.PlaceOrder)
		orders.GET("", middleware.RequireAdmin(), c.ListOrders)
		orders.GET("/:id", c.GetOrder)
		orders.PUT("/:id/status", c.UpdateOrderStatus)
		orders.DELETE("/:id", middleware.RequireAdmin(), c.DeleteOrder)
	}
}

// PlaceOrder creates an order.
// POST /api/v1/orders
func (c *Controller) PlaceOrder(ctx *gin.Context) {
	var req orderapp.PlaceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	orderID, err := c.manipulate.PlaceOrder(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, gin.H{"id": orderID}, "order placed successfully")
}

// ListOrders lists orders for administrators.
// GET /api/v1/orders?status=NEW&page=1&page_size=20
func (c *Controller) ListOrders(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	orders, total, err := c.query.FindPage(ctx.Request.Context(), orderapp.ListQuery{
		Status:   ctx.Query("status"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, orders,
		response.NewPagination(page, pageSize, total),
		"orders retrieved successfully")
}

// GetOrder returns one priced order for its owner or an admin.
// GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(ctx)

	order, err := c.query.FindByID(ctx.Request.Context(), principal, ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order retrieved successfully")
}

// UpdateStatusRequest is the payload for a status change.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order through the state machine.
// PUT /api/v1/orders/:id/status
func (c *Controller) UpdateOrderStatus(ctx *gin.Context) {
	var req UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	principal, _ := middleware.CurrentPrincipal(ctx)

	status, err := c.manipulate.UpdateOrderStatus(ctx.Request.Context(), principal, ctx.Param("id"), req.Status)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, gin.H{"status": string(status)}, "order status updated successfully")
}

// DeleteOrder removes an order.
// DELETE /api/v1/orders/:id
func (c *Controller) DeleteOrder(ctx *gin.Context) {
	if err := c.manipulate.DeleteOrder(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

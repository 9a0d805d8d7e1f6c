// Package catalog exposes the book and author endpoints. Reads are public;
// writes and the CSV import require an admin.
package catalog

import (
	"io"
	"net/http"
	"strconv"

	"bookstore/api/middleware"
	"bookstore/api/response"
	catalogapp "bookstore/application/catalog"

	"github.com/gin-gonic/gin"
)

// maxCoverSize caps cover uploads at 5 MiB.
const maxCoverSize = 5 << 20

// Controller handles catalog requests.
type Controller struct {
	catalog *catalogapp.Service
}

// NewController creates the catalog controller.
func NewController(catalog *catalogapp.Service) *Controller {
	return &Controller{catalog: catalog}
}

// RegisterRoutes registers the catalog routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	books := router.Group("/books")
	{
		books.GET("", c.ListBooks)
		books.GET("/:id", c.GetBook)
		books.POST("", middleware.RequireAdmin(), c.CreateBook)
		books.PUT("/:id", middleware.RequireAdmin(), c.UpdateBook)
		books.DELETE("/:id", middleware.RequireAdmin(), c.DeleteBook)
		books.POST("/:id/cover", middleware.RequireAdmin(), c.UploadCover)
		books.POST("/import", middleware.RequireAdmin(), c.Import)
	}
	router.GET("/authors", c.ListAuthors)
}

// ListBooks lists books with optional title and author prefix filters.
// GET /api/v1/books?title=&author=&page=1&page_size=20
func (c *Controller) ListBooks(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	books, total, err := c.catalog.ListBooks(ctx.Request.Context(), catalogapp.ListQuery{
		Title:    ctx.Query("title"),
		Author:   ctx.Query("author"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, books,
		response.NewPagination(page, pageSize, total),
		"books retrieved successfully")
}

// GetBook returns one book.
// GET /api/v1/books/:id
func (c *Controller) GetBook(ctx *gin.Context) {
	book, err := c.catalog.GetBook(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, book, "book retrieved successfully")
}

// CreateBook adds a book.
// POST /api/v1/books
func (c *Controller) CreateBook(ctx *gin.Context) {
	var req catalogapp.BookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	book, err := c.catalog.CreateBook(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, book, "book created successfully")
}

// UpdateBook replaces a book's data.
// PUT /api/v1/books/:id
func (c *Controller) UpdateBook(ctx *gin.Context) {
	var req catalogapp.BookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	book, err := c.catalog.UpdateBook(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, book, "book updated successfully")
}

// DeleteBook removes a book and its cover.
// DELETE /api/v1/books/:id
func (c *Controller) DeleteBook(ctx *gin.Context) {
	if err := c.catalog.DeleteBook(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// UploadCover attaches a cover image to a book.
// POST /api/v1/books/:id/cover (multipart, field "cover")
func (c *Controller) UploadCover(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("cover")
	if err != nil {
		response.HandleError(ctx, err, "missing cover file", http.StatusBadRequest)
		return
	}
	if fileHeader.Size > maxCoverSize {
		response.HandleError(ctx, nil, "cover file too large", http.StatusBadRequest)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.HandleError(ctx, err, "unreadable cover file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.HandleError(ctx, err, "unreadable cover file", http.StatusBadRequest)
		return
	}

	coverID, err := c.catalog.UploadCover(ctx.Request.Context(),
		ctx.Param("id"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		data)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, gin.H{"cover_id": coverID}, "cover uploaded successfully")
}

// Import bulk-creates books from a CSV body.
// POST /api/v1/books/import (text/csv body or multipart field "file")
func (c *Controller) Import(ctx *gin.Context) {
	var input io.Reader = ctx.Request.Body
	if fileHeader, err := ctx.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			response.HandleError(ctx, err, "unreadable import file", http.StatusBadRequest)
			return
		}
		defer file.Close()
		input = file
	}

	result, err := c.catalog.Import(ctx.Request.Context(), input)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, result, "import finished")
}

// ListAuthors lists every author.
// GET /api/v1/authors
func (c *Controller) ListAuthors(ctx *gin.Context) {
	authors, err := c.catalog.ListAuthors(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, authors, "authors retrieved successfully")
}

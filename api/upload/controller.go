// Package upload serves stored files such as book covers.
package upload

import (
	"net/http"

	"bookstore/api/response"
	uploadapp "bookstore/application/upload"

	"github.com/gin-gonic/gin"
)

// Controller handles upload requests.
type Controller struct {
	uploads *uploadapp.Service
}

// NewController creates the upload controller.
func NewController(uploads *uploadapp.Service) *Controller {
	return &Controller{uploads: uploads}
}

// RegisterRoutes registers the upload routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/uploads/:id", c.GetUpload)
}

// GetUpload streams the raw file bytes with the stored content type.
// GET /api/v1/uploads/:id
func (c *Controller) GetUpload(ctx *gin.Context) {
	u, err := c.uploads.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	contentType := u.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ctx.Header("Content-Disposition", `inline; filename="`+u.Filename+`"`)
	ctx.Data(http.StatusOK, contentType, u.File)
}

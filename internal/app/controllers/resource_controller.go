// Package controllers translates HTTP requests into service calls and
// service results into response envelopes.
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/unisity/unisity/internal/app/models/dto"
	"github.com/unisity/unisity/internal/app/services"
	"github.com/unisity/unisity/internal/middleware"
)

// ResourceController exposes the uniform entity contract over HTTP for one
// entity kind. Request bodies bind straight onto the model type; gin's
// binding tags carry the per-kind validation rules.
type ResourceController[T any, P services.Entity[T]] struct {
	service *services.EntityService[T, P]
}

// NewResourceController creates a controller over an entity service.
func NewResourceController[T any, P services.Entity[T]](service *services.EntityService[T, P]) *ResourceController[T, P] {
	return &ResourceController[T, P]{service: service}
}

// List handles GET /<kind>
func (c *ResourceController[T, P]) List(ctx *gin.Context) {
	docs, err := c.service.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      docs,
		Timestamp: time.Now(),
	})
}

// GetByID handles GET /<kind>/:id
func (c *ResourceController[T, P]) GetByID(ctx *gin.Context) {
	doc, err := c.service.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      doc,
		Timestamp: time.Now(),
	})
}

// Create handles POST /<kind>
func (c *ResourceController[T, P]) Create(ctx *gin.Context) {
	var body T
	doc := P(&body)
	if err := ctx.ShouldBindJSON(doc); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.service.Create(ctx, doc); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      doc,
		Timestamp: time.Now(),
	})
}

// Update handles PUT /<kind>/:id
func (c *ResourceController[T, P]) Update(ctx *gin.Context) {
	var body T
	doc := P(&body)
	if err := ctx.ShouldBindJSON(doc); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	updated, err := c.service.Update(ctx, ctx.Param("id"), doc)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      updated,
		Timestamp: time.Now(),
	})
}

// Delete handles DELETE /<kind>/:id
func (c *ResourceController[T, P]) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Deleted successfully"))
}

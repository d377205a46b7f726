package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unisity/unisity/internal/app/models/dto"
	"github.com/unisity/unisity/internal/app/services"
	"github.com/unisity/unisity/internal/middleware"
)

// UsersController exposes the cross-kind principal listings.
type UsersController struct {
	service *services.UsersService
}

// NewUsersController creates a controller over the users service.
func NewUsersController(service *services.UsersService) *UsersController {
	return &UsersController{service: service}
}

// List handles GET /users
func (c *UsersController) List(ctx *gin.Context) {
	directory, err := c.service.Directory(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(directory, ""))
}

// MembersByOrganization handles GET /users/:id
func (c *UsersController) MembersByOrganization(ctx *gin.Context) {
	members, err := c.service.OrganizationMembers(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(members, ""))
}

package handler

import (
	"net/http"

	"github.com/Mehboob-alam1/mahir-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// CategoryHandler serves the read-only category lookup
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// GetAll lists all service categories
// @Summary List service categories
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Router /api/categories [get]
func (h *CategoryHandler) GetAll(c *gin.Context) {
	responses, err := h.categoryService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

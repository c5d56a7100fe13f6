package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playtone/prizeplay-backend/internal/models"
	"github.com/playtone/prizeplay-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DiscountHandler handles discount code HTTP requests
type DiscountHandler struct {
	discountService services.DiscountService
}

// NewDiscountHandler creates a new DiscountHandler
func NewDiscountHandler(discountService services.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

// GetDiscounts handles GET /admin/discounts
func (h *DiscountHandler) GetDiscounts(c *gin.Context) {
	discounts, err := h.discountService.GetDiscounts(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get discounts: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, discounts)
}

// CreateDiscount handles POST /admin/discounts
func (h *DiscountHandler) CreateDiscount(c *gin.Context) {
	var discount models.Discount
	if err := c.ShouldBindJSON(&discount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.discountService.CreateDiscount(c, &discount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, discount)
}

// UpdateDiscount handles PUT /admin/discounts/:id
func (h *DiscountHandler) UpdateDiscount(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var discount models.Discount
	if err := c.ShouldBindJSON(&discount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	discount.ID = id

	if err := h.discountService.UpdateDiscount(c, &discount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, discount)
}

// SetDiscountActive handles PATCH /admin/discounts/:id/active
func (h *DiscountHandler) SetDiscountActive(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var request struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.discountService.SetDiscountActive(c, id, *request.Active); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update discount: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Discount updated successfully"})
}

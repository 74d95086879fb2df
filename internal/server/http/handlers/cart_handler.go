package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/dealership/internal/server/http/dto"
)

// CartHandler manages the caller's cart.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.facade.Cart(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(*cart))
}

// AddLine handles POST /api/cart/lines.
func (h *CartHandler) AddLine(c *gin.Context) {
	var req dto.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ItemID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	cart, err := h.facade.AddCartLine(c.Request.Context(), CurrentUserID(c), req.ItemID, req.Quantity)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(*cart))
}

// RemoveLine handles DELETE /api/cart/lines/:itemID.
func (h *CartHandler) RemoveLine(c *gin.Context) {
	cart, err := h.facade.RemoveCartLine(c.Request.Context(), CurrentUserID(c), c.Param("itemID"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(*cart))
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.facade.ClearCart(c.Request.Context(), CurrentUserID(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Checkout handles POST /api/cart/checkout.
func (h *CartHandler) Checkout(c *gin.Context) {
	orders, err := h.facade.Checkout(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponses(orders))
}

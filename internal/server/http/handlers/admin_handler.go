package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/dealership/internal/domain/model"
	"github.com/polkiloo/dealership/internal/server/http/dto"
)

// AdminHandler serves staff workflows. Role checks happen in the use cases.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// CreateUser handles POST /api/admin/users.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user, err := h.facade.CreateUser(c.Request.Context(), CurrentActor(c), req.Login, req.Password, model.Role(req.Role))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.UserResponse{ID: user.ID, Login: user.Login, Role: string(user.Role)})
}

// PublishItem handles POST /api/admin/catalog.
func (h *AdminHandler) PublishItem(c *gin.Context) {
	var req dto.PublishItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	item, err := h.facade.PublishItem(c.Request.Context(), CurrentActor(c), model.CatalogItem{
		ID:        req.ID,
		Kind:      model.ItemKind(req.Kind),
		Name:      req.Name,
		Price:     req.Price,
		Available: available,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCatalogItemResponse(*item))
}

// UpdateItem handles PATCH /api/admin/catalog/:id.
func (h *AdminHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Price == nil && req.Available == nil) {
		c.Status(http.StatusBadRequest)
		return
	}

	item, err := h.facade.UpdateItem(c.Request.Context(), CurrentActor(c), c.Param("id"), req.Price, req.Available)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCatalogItemResponse(*item))
}

// Orders handles GET /api/admin/orders?status=.
func (h *AdminHandler) Orders(c *gin.Context) {
	orders, err := h.facade.AllOrders(c.Request.Context(), CurrentActor(c), model.OrderStatus(c.Query("status")))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// ConfirmOrder handles POST /api/admin/orders/:id/confirm.
func (h *AdminHandler) ConfirmOrder(c *gin.Context) {
	order, err := h.facade.ConfirmOrder(c.Request.Context(), CurrentActor(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// DeliverOrder handles POST /api/admin/orders/:id/deliver.
func (h *AdminHandler) DeliverOrder(c *gin.Context) {
	order, err := h.facade.DeliverOrder(c.Request.Context(), CurrentActor(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// SweepReservations handles POST /api/admin/reservations/sweep.
func (h *AdminHandler) SweepReservations(c *gin.Context) {
	n, err := h.facade.SweepReservations(c.Request.Context(), CurrentActor(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SweepResponse{Expired: n})
}

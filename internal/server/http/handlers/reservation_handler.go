package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/dealership/internal/server/http/dto"
)

// ReservationHandler manages holds on used vehicles.
type ReservationHandler struct {
	facade ReservationFacade
}

// NewReservationHandler constructs ReservationHandler.
func NewReservationHandler(facade ReservationFacade) *ReservationHandler {
	return &ReservationHandler{facade: facade}
}

// Create handles POST /api/reservations.
func (h *ReservationHandler) Create(c *gin.Context) {
	var req dto.ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.VehicleID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	res, err := h.facade.Reserve(c.Request.Context(), CurrentUserID(c), req.VehicleID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReservationResponse(*res))
}

// List handles GET /api/reservations.
func (h *ReservationHandler) List(c *gin.Context) {
	list, err := h.facade.Reservations(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if len(list) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.ReservationResponse, 0, len(list))
	for _, r := range list {
		resp = append(resp, toReservationResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/reservations/:id.
func (h *ReservationHandler) Get(c *gin.Context) {
	res, err := h.facade.Reservation(c.Request.Context(), CurrentActor(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(*res))
}

// Cancel handles POST /api/reservations/:id/cancel.
func (h *ReservationHandler) Cancel(c *gin.Context) {
	res, err := h.facade.CancelReservation(c.Request.Context(), CurrentActor(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(*res))
}

// Convert handles POST /api/reservations/:id/convert.
func (h *ReservationHandler) Convert(c *gin.Context) {
	order, err := h.facade.ConvertReservation(c.Request.Context(), CurrentActor(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

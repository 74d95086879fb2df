package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/dealership/internal/domain/errors"
	"github.com/polkiloo/dealership/internal/domain/model"
	"github.com/polkiloo/dealership/internal/server/http/dto"
	"github.com/polkiloo/dealership/internal/server/http/middleware"
)

// CurrentActor extracts the authenticated caller from context.
func CurrentActor(c *gin.Context) model.Actor {
	val, ok := c.Get(middleware.ActorContextKey)
	if !ok {
		return model.Actor{}
	}
	actor, _ := val.(model.Actor)
	return actor
}

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	return CurrentActor(c).UserID
}

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrAlreadyReserved),
		errors.Is(err, domainErrors.ErrAlreadyExists),
		errors.Is(err, domainErrors.ErrAlreadyTerminal),
		errors.Is(err, domainErrors.ErrInvalidState),
		errors.Is(err, domainErrors.ErrUnavailable):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrNotOwner), errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrInvalidQuantity),
		errors.Is(err, domainErrors.ErrEmptyCart),
		errors.Is(err, domainErrors.ErrInvalidKind),
		errors.Is(err, domainErrors.ErrInvalidItem):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes the mapped status. Internal errors are recorded on the
// context for the request logger and not echoed to the client.
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.AbortWithStatus(status)
		return
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: err.Error()})
}

func toCatalogItemResponse(item model.CatalogItem) dto.CatalogItemResponse {
	return dto.CatalogItemResponse{
		ID:        item.ID,
		Kind:      string(item.Kind),
		Name:      item.Name,
		Price:     item.Price,
		Available: item.Available,
		UpdatedAt: item.UpdatedAt,
	}
}

func toCartResponse(cart model.Cart) dto.CartResponse {
	resp := dto.CartResponse{Lines: make([]dto.CartLineResponse, 0, len(cart.Lines)), Total: cart.Total()}
	for _, line := range cart.Lines {
		resp.Lines = append(resp.Lines, dto.CartLineResponse{
			ItemID:    line.ItemID,
			Kind:      string(line.Kind),
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal(),
		})
	}
	return resp
}

func toReservationResponse(r model.Reservation) dto.ReservationResponse {
	return dto.ReservationResponse{
		ID:        r.ID,
		VehicleID: r.VehicleID,
		Price:     r.Price,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		ExpiresAt: r.ExpiresAt,
	}
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, dto.OrderLineResponse{
			ItemID:    line.ItemID,
			Kind:      string(line.Kind),
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	return dto.OrderResponse{
		ID:            order.ID,
		Kind:          string(order.Kind),
		Status:        string(order.Status),
		Lines:         lines,
		Total:         order.Total,
		Deposit:       order.Deposit,
		ReservationID: order.ReservationID,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	resp := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	return resp
}

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/dealership/internal/domain/errors"
	"github.com/polkiloo/dealership/internal/domain/model"
	pkgAuth "github.com/polkiloo/dealership/internal/pkg/auth"
)

// SignatureHeader carries the hex HMAC-SHA256 of the webhook body.
const SignatureHeader = "X-Signature"

// MaxWebhookBodySize bounds the notification body read before the signature check.
const MaxWebhookBodySize = 64 << 10

// PaymentHandler accepts payment provider notifications.
type PaymentHandler struct {
	facade   PaymentFacade
	verifier pkgAuth.SignatureVerifier
	logger   *slog.Logger
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade, verifier pkgAuth.SignatureVerifier, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{facade: facade, verifier: verifier, logger: logger}
}

// Webhook handles POST /api/payments/webhook. Only completed payments change
// state; replays of an already settled order are acknowledged.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxWebhookBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.AbortWithStatus(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusBadRequest)
		return
	}
	if err := h.verifier.Verify(body, c.GetHeader(SignatureHeader)); err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var event model.PaymentEvent
	if err := json.Unmarshal(body, &event); err != nil || event.OrderID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	if event.Type != model.PaymentCompleted {
		h.logger.Info("payment event ignored",
			slog.String("type", string(event.Type)),
			slog.String("order_id", event.OrderID),
		)
		c.Status(http.StatusAccepted)
		return
	}

	order, err := h.facade.MarkOrderPaid(c.Request.Context(), event.OrderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidState) {
			h.logger.Warn("payment for unpayable order",
				slog.String("order_id", event.OrderID),
				slog.String("payment_id", event.PaymentID),
			)
		}
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

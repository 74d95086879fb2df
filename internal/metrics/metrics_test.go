package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/polkiloo/dealership/internal/domain/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestObserveEvent(t *testing.T) {
	m := New()
	m.ObserveEvent(model.EventOrderCreated)
	m.ObserveEvent(model.EventOrderCreated)
	m.ObserveEvent(model.EventReservationExpired)

	if got := testutil.ToFloat64(m.events.WithLabelValues("order.created")); got != 2 {
		t.Fatalf("expected 2 order.created, got %v", got)
	}
	if got := testutil.ToFloat64(m.events.WithLabelValues("reservation.expired")); got != 1 {
		t.Fatalf("expected 1 reservation.expired, got %v", got)
	}
}

func TestMiddlewareRecordsRoute(t *testing.T) {
	m := New()
	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/orders/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/orders/abc", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/api/orders/:id", "200")); got != 1 {
		t.Fatalf("expected one request on the route template, got %v", got)
	}
	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "unmatched", "404")); got != 1 {
		t.Fatalf("expected one unmatched request, got %v", got)
	}
	if got := testutil.CollectAndCount(m.httpDuration); got != 2 {
		t.Fatalf("expected two latency series, got %d", got)
	}
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.ObserveEvent(model.EventOrderPaid)

	resp := httptest.NewRecorder()
	m.Handler().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `dealership_lifecycle_events_total{type="order.paid"} 1`) {
		t.Fatalf("metric missing from exposition:\n%s", body)
	}
}

func TestAsUsecaseMetrics(t *testing.T) {
	m := New()
	if asUsecaseMetrics(m) == nil {
		t.Fatalf("expected metrics adapter")
	}
}

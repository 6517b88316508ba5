package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/xmlorders/internal/domain"
	"github.com/Gunvolt24/xmlorders/internal/ports"
	"github.com/Gunvolt24/xmlorders/pkg/httpx"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Handler struct {
	service ports.OrderReadService
	log     ports.Logger
	timeout time.Duration
}

// NewHandler — timeout <= 0 означает без ограничения на запрос.
func NewHandler(service ports.OrderReadService, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{service: service, log: log, timeout: timeout}
}

// NewRouter — serviceName != "" включает otelgin (спаны на каждый запрос).
func NewRouter(h *Handler, serviceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	if serviceName != "" {
		r.Use(otelgin.Middleware(serviceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/orders/:id", h.getOrderByID)
	r.GET("/customers/:id/orders", h.listOrdersByCustomer)
	r.DELETE("/cache", h.purgeCache)

	return r
}

func (h *Handler) getOrderByID(c *gin.Context) {
	id, ok := httpx.ParseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	order, err := h.service.GetOrder(ctx, id)
	if err != nil {
		h.log.Errorf(ctx, "GetOrder failed id=%d err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) listOrdersByCustomer(c *gin.Context) {
	id, ok := httpx.ParseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}
	limit, offset := httpx.ParseLimitOffset(c, defaultLimit, maxLimit)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	orders, err := h.service.OrdersByCustomer(ctx, id, limit, offset)
	if err != nil {
		h.log.Errorf(ctx, "OrdersByCustomer failed id=%d err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if orders == nil {
		orders = []*domain.Order{}
	}

	c.JSON(http.StatusOK, orders)
}

// purgeCache — сброс кэша заказов (после повторного импорта).
func (h *Handler) purgeCache(c *gin.Context) {
	h.service.InvalidateCache(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

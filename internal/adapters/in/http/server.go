// Package http exposes the order core over a JSON API built on echo.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"buffet/internal/core/application/usecases/commands"
	"buffet/internal/core/application/usecases/queries"
	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Use cases served by the API. The command and query handlers satisfy them.
type (
	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	StatusChanger interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
	}
	PickupLookup interface {
		Handle(ctx context.Context, query queries.GetOrderByPickupCodeQuery) (queries.OrderView, error)
	}
	AllOrdersLister interface {
		Handle(ctx context.Context, query queries.GetAllOrdersQuery) ([]queries.OrderView, error)
	}
	MyOrdersLister interface {
		Handle(ctx context.Context, query queries.GetMyOrdersQuery) ([]queries.OrderView, error)
	}
	BuffetOrdersLister interface {
		Handle(ctx context.Context, query queries.GetBuffetOrdersQuery) ([]queries.OrderView, error)
	}
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	CreateOrder       OrderCreator
	ChangeOrderStatus StatusChanger
	GetByPickupCode   PickupLookup
	GetAllOrders      AllOrdersLister
	GetMyOrders       MyOrdersLister
	GetBuffetOrders   BuffetOrdersLister
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	verifier *TokenVerifier
	metrics  http.Handler
	logger   *slog.Logger
}

// NewServer creates a server. metrics may be nil to leave /metrics unrouted.
func NewServer(handlers Handlers, verifier *TokenVerifier, metrics http.Handler, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		verifier: verifier,
		metrics:  metrics,
		logger:   logger.With("component", "http"),
	}
}

// Register mounts the routes on e.
//
//	POST /api/orders                      optional auth
//	GET  /api/orders
//	GET  /api/orders/my                   auth
//	GET  /api/orders/buffet               buffet auth
//	GET  /api/orders/pickup/:pickupCode
//	PUT  /api/orders/:orderId/status
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)
	if s.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(s.metrics))
	}

	orders := e.Group("/api/orders")
	orders.POST("", s.CreateOrder, s.verifier.OptionalAuthenticate)
	orders.GET("", s.GetAllOrders)
	orders.GET("/my", s.GetMyOrders, s.verifier.Authenticate)
	orders.GET("/buffet", s.GetBuffetOrders, s.verifier.Authenticate, RequireBuffet)
	orders.GET("/pickup/:pickupCode", s.GetOrderByPickupCode)
	orders.PUT("/:orderId/status", s.UpdateOrderStatus)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "Healthy"})
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return writeErrorMessage(c, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(
		req.Items,
		req.PickupCode,
		req.PickupTime,
		req.BuffetID,
		req.Email,
		principalFrom(c),
	)
	if err != nil {
		return s.writeError(c, err)
	}

	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, CreateOrderResponse{
		Message: "Order created",
		Order:   fromAggregate(created),
	})
}

// GetAllOrders handles GET /api/orders.
func (s *Server) GetAllOrders(c echo.Context) error {
	views, err := s.handlers.GetAllOrders.Handle(c.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, fromViews(views))
}

// GetMyOrders handles GET /api/orders/my.
func (s *Server) GetMyOrders(c echo.Context) error {
	principal := principalFrom(c)
	if !principal.HasEmail() {
		return writeErrorMessage(c, http.StatusBadRequest, "Token carries no email")
	}

	query, err := queries.NewGetMyOrdersQuery(principal.Email)
	if err != nil {
		return s.writeError(c, err)
	}

	views, err := s.handlers.GetMyOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, fromViews(views))
}

// GetBuffetOrders handles GET /api/orders/buffet. The buffet is the
// authenticated principal.
func (s *Server) GetBuffetOrders(c echo.Context) error {
	query, err := queries.NewGetBuffetOrdersQuery(principalFrom(c).ID)
	if err != nil {
		return s.writeError(c, err)
	}

	views, err := s.handlers.GetBuffetOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, fromViews(views))
}

// GetOrderByPickupCode handles GET /api/orders/pickup/:pickupCode.
func (s *Server) GetOrderByPickupCode(c echo.Context) error {
	query, err := queries.NewGetOrderByPickupCodeQuery(c.Param("pickupCode"))
	if err != nil {
		return s.writeError(c, err)
	}

	view, err := s.handlers.GetByPickupCode.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, fromView(view))
}

// UpdateOrderStatus handles PUT /api/orders/:orderId/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("orderId"))
	if err != nil {
		return s.writeError(c, err)
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return writeErrorMessage(c, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, req.Status)
	if err != nil {
		return s.writeError(c, err)
	}

	updated, err := s.handlers.ChangeOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, fromAggregate(updated))
}

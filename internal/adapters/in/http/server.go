// Package http exposes the order lifecycle over a REST API.
package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler  commands.CreateOrderCommandHandler
	updateOrderHandler  commands.UpdateOrderCommandHandler
	searchOrdersHandler queries.SearchOrdersQueryHandler

	searchUser     string
	searchPassword string
}

// NewServer creates an HTTP server with the required command and query
// handlers. The credentials protect the search endpoint.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	searchOrdersHandler queries.SearchOrdersQueryHandler,
	searchUser string,
	searchPassword string,
) *Server {
	return &Server{
		createOrderHandler:  createOrderHandler,
		updateOrderHandler:  updateOrderHandler,
		searchOrdersHandler: searchOrdersHandler,
		searchUser:          searchUser,
		searchPassword:      searchPassword,
	}
}

// RegisterRoutes mounts the order API on the echo instance. Search requires
// basic auth; create and update are open.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.POST("/orders", s.CreateOrder)
	api.PUT("/orders/:id", s.UpdateOrder)

	search := api.Group("/orders/search", middleware.BasicAuth(s.checkCredentials))
	search.POST("", s.SearchOrders)
}

func (s *Server) checkCredentials(user, password string, _ echo.Context) (bool, error) {
	userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(s.searchUser)) == 1
	passwordMatch := subtle.ConstantTimeCompare([]byte(password), []byte(s.searchPassword)) == 1
	return userMatch && passwordMatch, nil
}

type orderRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	TelephoneNumber string `json:"telephoneNumber"`
	Email           string `json:"email"`
	DeliveryAddress string `json:"deliveryAddress"`
	CustomerCount   int    `json:"customerCount"`
}

func (r orderRequest) details() order.Details {
	return order.Details{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		TelephoneNumber: r.TelephoneNumber,
		Email:           r.Email,
		DeliveryAddress: r.DeliveryAddress,
		CustomerCount:   r.CustomerCount,
	}
}

type orderResponse struct {
	ID              int64  `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	TelephoneNumber string `json:"telephoneNumber"`
	Email           string `json:"email"`
	DeliveryAddress string `json:"deliveryAddress"`
	CustomerCount   int    `json:"customerCount"`
	OrderTotal      string `json:"orderTotal"`
	OrderDate       string `json:"orderDate"`
}

func toOrderResponse(aggregate *order.Order) orderResponse {
	details := aggregate.Details()
	return orderResponse{
		ID:              aggregate.ID(),
		FirstName:       details.FirstName,
		LastName:        details.LastName,
		TelephoneNumber: details.TelephoneNumber,
		Email:           details.Email,
		DeliveryAddress: details.DeliveryAddress,
		CustomerCount:   details.CustomerCount,
		OrderTotal:      aggregate.OrderTotal().StringFixed(2),
		OrderDate:       aggregate.OrderDate().Format("2006-01-02T15:04:05.999999999"),
	}
}

type errorResponse struct {
	Code     int      `json:"code"`
	Messages []string `json:"messages"`
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request orderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:     http.StatusBadRequest,
			Messages: []string{"Invalid request body"},
		})
	}

	cmd, err := commands.NewCreateOrderCommand(request.details())
	if err != nil {
		return validationError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(created))
}

// UpdateOrder handles PUT /api/orders/:id.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:     http.StatusBadRequest,
			Messages: []string{"Invalid order id"},
		})
	}

	var request orderRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:     http.StatusBadRequest,
			Messages: []string{"Invalid request body"},
		})
	}

	cmd, err := commands.NewUpdateOrderCommand(id, request.details())
	if err != nil {
		return validationError(ctx, err)
	}

	updated, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// SearchOrders handles POST /api/orders/search. The body carries a mapping of
// field names to substring filters; limit and offset arrive as query
// parameters and default to 10 and 0.
func (s *Server) SearchOrders(ctx echo.Context) error {
	filters := map[string]string{}
	if err := ctx.Bind(&filters); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:     http.StatusBadRequest,
			Messages: []string{"Invalid request body"},
		})
	}

	limit, err := boundParam(ctx, "limit", 10)
	if err != nil {
		return validationError(ctx, err)
	}
	offset, err := boundParam(ctx, "offset", 0)
	if err != nil {
		return validationError(ctx, err)
	}

	query, err := queries.NewSearchOrdersQuery(filters, limit, offset)
	if err != nil {
		return validationError(ctx, err)
	}

	seq, err := s.searchOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	response := make([]orderResponse, 0)
	for found, iterErr := range seq {
		if iterErr != nil {
			return mapDomainError(ctx, iterErr)
		}
		response = append(response, toOrderResponse(found))
	}

	return ctx.JSON(http.StatusOK, response)
}

func boundParam(ctx echo.Context, name string, fallback int) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, errs.NewValueIsInvalidError(name)
	}
	return value, nil
}

func validationError(ctx echo.Context, err error) error {
	messages := errs.ValidationMessages(err)
	if len(messages) == 0 {
		messages = []string{err.Error()}
	}
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:     http.StatusBadRequest,
		Messages: messages,
	})
}

func mapDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:     http.StatusNotFound,
			Messages: []string{"Order not found"},
		})
	case errors.Is(err, order.ErrUpdateWindowElapsed),
		errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired):
		return validationError(ctx, err)
	default:
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:     http.StatusInternalServerError,
			Messages: []string{"Internal server error"},
		})
	}
}

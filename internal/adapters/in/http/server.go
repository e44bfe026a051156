// Package http exposes the delivery backend over HTTP using echo.
// Controllers stay thin: they parse input, invoke a command or query handler
// and translate typed domain errors to status codes. No business rule lives here.
package http

import (
	"errors"
	"io"
	"net/http"

	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/application/usecases/queries"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/services"
	"parcelflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// accountHeader carries the acting account's ID. Authentication is handled
// upstream (gateway); the backend only needs the identity for authorization.
const accountHeader = "X-Account-ID"

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the payload for registering a new order.
type CreateOrderRequest struct {
	RecipientName string  `json:"recipientName"`
	Street        string  `json:"street"`
	Neighborhood  string  `json:"neighborhood"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	ZipCode       string  `json:"zipCode"`
	DeliverymanID *string `json:"deliverymanId,omitempty"`
}

// CreateOrderResponse returns the identifiers of the created order.
type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}

// TransitionRequest is the payload for a status transition.
type TransitionRequest struct {
	Status string `json:"status"`
}

// NearbyDeliveryResponse is one entry of the nearby ranking.
type NearbyDeliveryResponse struct {
	OrderID       string  `json:"orderId"`
	TrackingCode  string  `json:"trackingCode"`
	Status        string  `json:"status"`
	RecipientName string  `json:"recipientName"`
	FullAddress   string  `json:"fullAddress"`
	DistanceKm    float64 `json:"distanceKm"`
	Distance      string  `json:"distance"`
}

// AgentOrderResponse is one entry of an agent's order listing.
type AgentOrderResponse struct {
	OrderID      string `json:"orderId"`
	TrackingCode string `json:"trackingCode"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler      commands.CreateOrderCommandHandler
	transitionOrderHandler  commands.TransitionOrderCommandHandler
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler

	getNearbyDeliveriesHandler queries.GetNearbyDeliveriesQueryHandler
	getAgentOrdersHandler      queries.GetAgentOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	getNearbyDeliveriesHandler queries.GetNearbyDeliveriesQueryHandler,
	getAgentOrdersHandler queries.GetAgentOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		transitionOrderHandler:     transitionOrderHandler,
		completeDeliveryHandler:    completeDeliveryHandler,
		getNearbyDeliveriesHandler: getNearbyDeliveriesHandler,
		getAgentOrdersHandler:      getAgentOrdersHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/status", s.TransitionOrder)
	api.POST("/orders/:id/delivery", s.CompleteDelivery)
	api.GET("/deliverymen/:id/orders", s.GetAgentOrders)
	api.GET("/deliverymen/:id/orders/nearby", s.GetNearbyDeliveries)
}

// CreateOrder handles POST /api/v1/orders - registers a new order and recipient.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	var deliverymanID *kernel.UUID
	if req.DeliverymanID != nil {
		id, err := kernel.UUIDFromString(*req.DeliverymanID)
		if err != nil {
			return errorJSON(ctx, http.StatusBadRequest, "Invalid deliveryman ID")
		}
		deliverymanID = &id
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		req.RecipientName,
		req.Street,
		req.Neighborhood,
		req.City,
		req.State,
		req.ZipCode,
		deliverymanID,
	)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainErrorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{OrderID: orderID.String()})
}

// TransitionOrder handles POST /api/v1/orders/:id/status - moves an order
// along its lifecycle on behalf of the acting account.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order ID")
	}

	actorID, err := actingAccount(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Missing or invalid "+accountHeader+" header")
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	next, err := order.StatusFromString(req.Status)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid status: "+req.Status)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, next, actorID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid transition data: "+err.Error())
	}

	if err = s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainErrorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/orders/:id/delivery - marks an order
// delivered with a proof-of-delivery photo (multipart field "photo").
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order ID")
	}

	actorID, err := actingAccount(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Missing or invalid "+accountHeader+" header")
	}

	// An absent photo is a legal request here; the domain rejects it with
	// a typed error that maps to 422 below.
	photo, err := readPhoto(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Unreadable photo upload")
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID, actorID, photo)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid delivery data: "+err.Error())
	}

	if err = s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainErrorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetNearbyDeliveries handles GET /api/v1/deliverymen/:id/orders/nearby -
// ranks the agent's open orders by distance from the zipCode query parameter.
func (s *Server) GetNearbyDeliveries(ctx echo.Context) error {
	deliverymanID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid deliveryman ID")
	}

	query, err := queries.NewGetNearbyDeliveriesQuery(deliverymanID, ctx.QueryParam("zipCode"))
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	ranked, err := s.getNearbyDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	response := make([]NearbyDeliveryResponse, len(ranked))
	for i, delivery := range ranked {
		response[i] = NearbyDeliveryResponse{
			OrderID:       delivery.OrderID.String(),
			TrackingCode:  delivery.TrackingCode,
			Status:        delivery.Status,
			RecipientName: delivery.RecipientName,
			FullAddress:   delivery.FullAddress,
			DistanceKm:    delivery.DistanceKm,
			Distance:      delivery.DistanceLabel,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAgentOrders handles GET /api/v1/deliverymen/:id/orders - lists the
// agent's assigned orders.
func (s *Server) GetAgentOrders(ctx echo.Context) error {
	deliverymanID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid deliveryman ID")
	}

	query, err := queries.NewGetAgentOrdersQuery(deliverymanID)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	orders, err := s.getAgentOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	response := make([]AgentOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = AgentOrderResponse{
			OrderID:      o.ID.String(),
			TrackingCode: o.TrackingCode,
			Status:       o.Status,
			CreatedAt:    o.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// actingAccount extracts the acting account's ID from the request header.
func actingAccount(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Request().Header.Get(accountHeader))
}

// readPhoto reads the optional multipart photo upload.
// Returns nil bytes when no file was attached.
func readPhoto(ctx echo.Context) ([]byte, error) {
	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		// No multipart body at all also counts as "no photo attached".
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

// domainErrorJSON translates typed domain errors to HTTP status codes.
// The mapping relies on errors.Is only, never on message inspection.
func domainErrorJSON(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, queries.ErrNoDeliveriesFound),
		errors.Is(err, services.ErrNoNearbyDeliveries):
		return errorJSON(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrTransitionForbidden):
		return errorJSON(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, order.ErrInvalidTransition):
		return errorJSON(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrDeliveryProofIsRequired),
		errors.Is(err, queries.ErrOriginIsUnresolvable):
		return errorJSON(ctx, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, queries.ErrZipCodeIsMissing),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	default:
		return errorJSON(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

package http

import (
	"errors"
	"net/http"
	"time"

	"loadboard/internal/core/application/usecases/commands"
	"loadboard/internal/core/application/usecases/queries"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler   commands.CreateOrderCommandHandler
	placeBidHandler      commands.PlaceBidCommandHandler
	withdrawBidHandler   commands.WithdrawBidCommandHandler
	acceptBidHandler     commands.AcceptBidCommandHandler
	completeOrderHandler commands.CompleteOrderCommandHandler
	cancelOrderHandler   commands.CancelOrderCommandHandler

	// Query handlers
	getOpenOrdersHandler queries.GetOpenOrdersQueryHandler
	getOrderBidsHandler  queries.GetOrderBidsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	placeBidHandler commands.PlaceBidCommandHandler,
	withdrawBidHandler commands.WithdrawBidCommandHandler,
	acceptBidHandler commands.AcceptBidCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOpenOrdersHandler queries.GetOpenOrdersQueryHandler,
	getOrderBidsHandler queries.GetOrderBidsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:   createOrderHandler,
		placeBidHandler:      placeBidHandler,
		withdrawBidHandler:   withdrawBidHandler,
		acceptBidHandler:     acceptBidHandler,
		completeOrderHandler: completeOrderHandler,
		cancelOrderHandler:   cancelOrderHandler,
		getOpenOrdersHandler: getOpenOrdersHandler,
		getOrderBidsHandler:  getOrderBidsHandler,
	}
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderRequest is the body for POST /api/v1/orders.
type NewOrderRequest struct {
	CommodityID string `json:"commodity_id"`
	RecipientID string `json:"recipient_id"`
	AddressID   string `json:"address_id"`
}

// NewBidRequest is the body for POST /api/v1/orders/:orderId/bids.
type NewBidRequest struct {
	Price int64 `json:"price"`
}

// OrderCreatedResponse returns the identifier assigned to a new order.
type OrderCreatedResponse struct {
	ID string `json:"id"`
}

// BidCreatedResponse returns the identifier assigned to a new bid.
type BidCreatedResponse struct {
	ID string `json:"id"`
}

// OpenOrderResponse is one element of GET /api/v1/orders.
type OpenOrderResponse struct {
	ID          string    `json:"id"`
	MerchantID  string    `json:"merchant_id"`
	CommodityID string    `json:"commodity_id"`
	AddressID   string    `json:"address_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderBidResponse is one element of GET /api/v1/orders/:orderId/bids.
type OrderBidResponse struct {
	ID        string    `json:"id"`
	DriverID  string    `json:"driver_id"`
	Price     int64     `json:"price"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterRoutes wires the API endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo, secret []byte) {
	api := e.Group("/api/v1", AuthMiddleware(secret))

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOpenOrders)
	api.POST("/orders/:orderId/accept", s.AcceptBid)
	api.POST("/orders/:orderId/complete", s.CompleteOrder)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
	api.POST("/orders/:orderId/bids", s.PlaceBid)
	api.GET("/orders/:orderId/bids", s.GetOrderBids)
	api.DELETE("/bids/:bidId", s.WithdrawBid)
}

// CreateOrder handles POST /api/v1/orders - posts a new delivery order.
// Only merchants may post orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	identity := identityFrom(ctx)
	if identity.Role != RoleMerchant {
		return errorResponse(ctx, errs.NewPermissionDeniedError("role", identity.Role))
	}

	var request NewOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	commodityID, err := kernel.UUIDFromString(request.CommodityID)
	if err != nil {
		return badRequest(ctx, "Invalid commodity id: "+err.Error())
	}

	recipientID, err := kernel.UUIDFromString(request.RecipientID)
	if err != nil {
		return badRequest(ctx, "Invalid recipient id: "+err.Error())
	}

	addressID, err := kernel.UUIDFromString(request.AddressID)
	if err != nil {
		return badRequest(ctx, "Invalid address id: "+err.Error())
	}

	orderID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(
		orderID, identity.SubjectID, commodityID, recipientID, addressID)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, OrderCreatedResponse{ID: orderID.String()})
}

// PlaceBid handles POST /api/v1/orders/:orderId/bids - places or replaces
// the caller's bid on an open order. Only drivers may bid.
func (s *Server) PlaceBid(ctx echo.Context) error {
	identity := identityFrom(ctx)
	if identity.Role != RoleDriver {
		return errorResponse(ctx, errs.NewPermissionDeniedError("role", identity.Role))
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var request NewBidRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	price, err := kernel.NewPrice(request.Price)
	if err != nil {
		return badRequest(ctx, "Invalid price: "+err.Error())
	}

	bidID := kernel.NewUUID()

	cmd, err := commands.NewPlaceBidCommand(bidID, orderID, identity.SubjectID, price)
	if err != nil {
		return badRequest(ctx, "Invalid bid data: "+err.Error())
	}

	if handleErr := s.placeBidHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, BidCreatedResponse{ID: bidID.String()})
}

// WithdrawBid handles DELETE /api/v1/bids/:bidId - withdraws the caller's bid.
func (s *Server) WithdrawBid(ctx echo.Context) error {
	bidID, err := kernel.UUIDFromString(ctx.Param("bidId"))
	if err != nil {
		return badRequest(ctx, "Invalid bid id: "+err.Error())
	}

	cmd, err := commands.NewWithdrawBidCommand(bidID, identityFrom(ctx).SubjectID)
	if err != nil {
		return badRequest(ctx, "Invalid bid data: "+err.Error())
	}

	if handleErr := s.withdrawBidHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcceptBidRequest is the body for POST /api/v1/orders/:orderId/accept.
type AcceptBidRequest struct {
	BidID string `json:"bid_id"`
}

// AcceptBid handles POST /api/v1/orders/:orderId/accept - the merchant
// awards the order to one bid.
func (s *Server) AcceptBid(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var request AcceptBidRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	bidID, err := kernel.UUIDFromString(request.BidID)
	if err != nil {
		return badRequest(ctx, "Invalid bid id: "+err.Error())
	}

	cmd, err := commands.NewAcceptBidCommand(orderID, bidID, identityFrom(ctx).SubjectID)
	if err != nil {
		return badRequest(ctx, "Invalid accept data: "+err.Error())
	}

	if handleErr := s.acceptBidHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// CompleteOrder handles POST /api/v1/orders/:orderId/complete - the assigned
// driver (or an admin) marks the order delivered.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	identity := identityFrom(ctx)

	cmd, err := commands.NewCompleteOrderCommand(orderID, identity.SubjectID, identity.IsAdmin())
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel - the merchant
// cancels an open order; admins may force-cancel one already on transit.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	identity := identityFrom(ctx)

	cmd, err := commands.NewCancelOrderCommand(orderID, identity.SubjectID, identity.IsAdmin())
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// GetOpenOrders handles GET /api/v1/orders - lists orders open for bidding.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	query := queries.NewGetOpenOrdersQuery()

	orders, err := s.getOpenOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]OpenOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = OpenOrderResponse{
			ID:          o.ID.String(),
			MerchantID:  o.MerchantID.String(),
			CommodityID: o.CommodityID.String(),
			AddressID:   o.AddressID.String(),
			CreatedAt:   o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderBids handles GET /api/v1/orders/:orderId/bids - lists an order's bids.
func (s *Server) GetOrderBids(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderBidsQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	bids, err := s.getOrderBidsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]OrderBidResponse, len(bids))
	for i, b := range bids {
		response[i] = OrderBidResponse{
			ID:        b.ID.String(),
			DriverID:  b.DriverID.String(),
			Price:     b.Price,
			Status:    b.Status,
			CreatedAt: b.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps application errors onto HTTP statuses. Lifecycle
// conflicts (lost races, late withdrawals, closed bidding) all surface
// as 409 so clients can retry with fresh state.
func errorResponse(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrPermissionDenied):
		code = http.StatusForbidden
	case errors.Is(err, commands.ErrAlreadyAwarded),
		errors.Is(err, commands.ErrOrderNotBiddable),
		errors.Is(err, commands.ErrBidTooLate),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrObjectAlreadyExists):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}

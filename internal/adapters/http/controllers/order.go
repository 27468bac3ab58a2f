package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/orders/internal/adapters/http/handlers"
	"github.com/rafaelleal24/orders/internal/core/domain"
	"github.com/rafaelleal24/orders/internal/core/dto"
	"github.com/rafaelleal24/orders/internal/core/service"
	"github.com/rafaelleal24/orders/internal/core/serviceerrors"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type OrderController struct {
	orderService *service.OrderService
}

type OrderItemResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price" example:"10.00"`
}

type OrderResponse struct {
	ID          string              `json:"id"`
	CustomerID  string              `json:"customer_id"`
	Items       []OrderItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
	TotalAmount string              `json:"total_amount" example:"40.00"`
}

func NewOrderItemResponse(item domain.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:          string(item.ID),
		ProductID:   string(item.ProductID),
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice.StringFixed(2),
	}
}

func NewOrderResponse(order *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = NewOrderItemResponse(item)
	}
	return OrderResponse{
		ID:          string(order.ID),
		CustomerID:  string(order.CustomerID),
		Items:       items,
		CreatedAt:   order.CreatedAt,
		TotalAmount: order.TotalAmount.StringFixed(2),
	}
}

func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CreateOrder godoc
// @Summary     Create an order
// @Description Creates a new order, decrementing product stock in the same transaction. Supports idempotent retries.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header   string                 false "Idempotency key"
// @Param       request         body     dto.CreateOrderRequest  true  "Order data"
// @Success     201             {object} OrderResponse
// @Failure     400             {object} handlers.ErrorResponse
// @Failure     409             {object} handlers.ErrorResponse
// @Failure     422             {object} handlers.ErrorResponse
// @Failure     429             {object} handlers.ErrorResponse
// @Failure     500             {object} handlers.ErrorResponse
// @Router      /api/v1/orders [post]
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var request dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
	order, err := oc.orderService.CreateOrder(c.Request.Context(), idempotencyKey, &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewOrderResponse(order))
}

// GetOrderByID godoc
// @Summary     Get order by ID
// @Description Returns a single order by its ID
// @Tags        orders
// @Produce     json
// @Param       id  path     string true "Order ID"
// @Success     200 {object} OrderResponse
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/v1/orders/{id} [get]
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID := c.Param("id")
	if !domain.ValidateID(orderID) {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError("Invalid order ID"))
		return
	}
	order, err := oc.orderService.GetOrderByID(c.Request.Context(), domain.ID(orderID))
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewOrderResponse(order))
}

// ListCustomerOrders godoc
// @Summary     List a customer's orders
// @Description Returns the customer's orders, newest first
// @Tags        orders
// @Produce     json
// @Param       id     path     string true  "Customer ID"
// @Param       limit  query    int    false "Page size (default 20, max 100)"
// @Param       offset query    int    false "Number of orders to skip"
// @Success     200    {array}  OrderResponse
// @Failure     400    {object} handlers.ErrorResponse
// @Failure     404    {object} handlers.ErrorResponse
// @Failure     500    {object} handlers.ErrorResponse
// @Router      /api/v1/customers/{id}/orders [get]
func (oc *OrderController) ListCustomerOrders(c *gin.Context) {
	customerID := c.Param("id")
	if !domain.ValidateID(customerID) {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError("Invalid customer ID"))
		return
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	orders, err := oc.orderService.ListCustomerOrders(c.Request.Context(), domain.ID(customerID), limit, offset)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	response := make([]OrderResponse, len(orders))
	for i, order := range orders {
		response[i] = NewOrderResponse(order)
	}
	c.JSON(http.StatusOK, response)
}

func queryInt(c *gin.Context, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, serviceerrors.NewInvalidRequestError("Invalid " + name + " parameter")
	}
	return value, nil
}

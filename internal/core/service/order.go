package service

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/rafaelleal24/orders/internal/core/domain"
	"github.com/rafaelleal24/orders/internal/core/dto"
	"github.com/rafaelleal24/orders/internal/core/logger"
	"github.com/rafaelleal24/orders/internal/core/port"
	"github.com/rafaelleal24/orders/internal/core/serviceerrors"
)

const (
	ORDER_MAX_ITEMS = 100
	orderCacheTTL   = 15 * time.Minute

	defaultOrdersPageSize = 20
	maxOrdersPageSize     = 100
)

const (
	OutcomeCreated           = "created"
	OutcomeInvalidRequest    = "invalid_request"
	OutcomeInvalidCustomer   = "invalid_customer"
	OutcomeInvalidProduct    = "invalid_product"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeConflict          = "conflict"
	OutcomeError             = "error"
)

type OrderService struct {
	orderRepository port.OrderPort
	productService  *ProductService
	customerService *CustomerService
	orderCache      port.CachePort[domain.Order]
	idempotency     *IdempotencyService[domain.Order]
	txManager       port.TransactionManager
	metrics         port.OrderMetrics
}

func (s *OrderService) getCacheKey(orderID domain.ID) string {
	return fmt.Sprintf("order:%s", orderID)
}

func (s *OrderService) GetOrderByID(ctx context.Context, orderID domain.ID) (*domain.Order, error) {
	cached, err := s.orderCache.Get(ctx, s.getCacheKey(orderID))
	if err != nil {
		logger.Error(ctx, "cache: get order failed", err, map[string]any{
			"order_id": orderID,
		})
	}
	if cached != nil {
		logger.Debug(ctx, "order found in cache", map[string]any{
			"order_id": orderID,
		})
		return cached, nil
	}

	order, err := s.orderRepository.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.orderCache.Set(ctx, s.getCacheKey(orderID), order, orderCacheTTL); err != nil {
		logger.Error(ctx, "cache: set order failed", err, map[string]any{
			"order_id": orderID,
		})
	}

	return order, nil
}

// ListCustomerOrders pages through a customer's orders, newest first.
func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID domain.ID, limit, offset int64) ([]*domain.Order, error) {
	if offset < 0 {
		return nil, serviceerrors.NewInvalidRequestError("offset must not be negative")
	}
	if limit <= 0 {
		limit = defaultOrdersPageSize
	}
	limit = min(limit, maxOrdersPageSize)

	if _, err := s.customerService.FindByID(ctx, customerID); err != nil {
		return nil, err
	}

	return s.orderRepository.GetByCustomerID(ctx, customerID, limit, offset)
}

func validateCreateOrderRequest(request *dto.CreateOrderRequest) error {
	if request == nil || strings.TrimSpace(string(request.CustomerID)) == "" {
		return serviceerrors.NewInvalidRequestError("customer id is required")
	}
	if len(request.Items) == 0 {
		return serviceerrors.NewInvalidRequestError("order must have at least one item")
	}
	if len(request.Items) > ORDER_MAX_ITEMS {
		return serviceerrors.NewInvalidRequestError("order items limit exceeded")
	}
	for _, item := range request.Items {
		if strings.TrimSpace(string(item.ProductID)) == "" {
			return serviceerrors.NewInvalidRequestError("product id is required")
		}
		if item.Quantity <= 0 {
			return serviceerrors.NewInvalidRequestError("quantity must be greater than zero")
		}
	}
	return nil
}

// aggregateQuantities sums quantities per normalized product id. The
// returned ids keep the order in which each product first appears in the
// request. A total that does not fit in an int is rejected.
func aggregateQuantities(items []dto.OrderItem) (map[domain.ID]int, []domain.ID, error) {
	quantities := make(map[domain.ID]int, len(items))
	ids := make([]domain.ID, 0, len(items))
	for _, item := range items {
		id := domain.NormalizeID(item.ProductID)
		current, seen := quantities[id]
		if !seen {
			ids = append(ids, id)
		}
		if current > math.MaxInt-item.Quantity {
			return nil, nil, serviceerrors.NewInvalidRequestError(
				fmt.Sprintf("total quantity for product %s is too large", id))
		}
		quantities[id] = current + item.Quantity
	}
	return quantities, ids, nil
}

func (s *OrderService) buildOrderItems(ctx context.Context, quantities map[domain.ID]int, productIDs []domain.ID) ([]domain.OrderItem, []domain.StockUpdate, error) {
	products, err := s.productService.FindAllByID(ctx, productIDs)
	if err != nil {
		return nil, nil, err
	}
	productsByID := lo.KeyBy(products, func(p *domain.Product) domain.ID { return domain.NormalizeID(p.ID) })

	missing := lo.Reject(productIDs, func(id domain.ID, _ int) bool {
		_, ok := productsByID[id]
		return ok
	})
	if len(products) != len(productIDs) || len(missing) > 0 {
		return nil, nil, serviceerrors.NewInvalidProductError(
			fmt.Sprintf("products not found: %s", joinIDs(missing)))
	}

	short := lo.Filter(productIDs, func(id domain.ID, _ int) bool {
		return !productsByID[id].HasStock(quantities[id])
	})
	if len(short) > 0 {
		return nil, nil, serviceerrors.NewInsufficientStockError(
			fmt.Sprintf("insufficient stock for products: %s", joinIDs(short)))
	}

	items := make([]domain.OrderItem, 0, len(productIDs))
	updates := make([]domain.StockUpdate, 0, len(productIDs))
	for _, id := range productIDs {
		product := productsByID[id]
		items = append(items, *domain.NewOrderItem(product.ID, product.Name, quantities[id], product.Price))
		updates = append(updates, domain.NewStockUpdate(product, quantities[id]))
	}
	return items, updates, nil
}

func joinIDs(ids []domain.ID) string {
	return strings.Join(lo.Map(ids, func(id domain.ID, _ int) string { return string(id) }), ", ")
}

func (s *OrderService) processOrder(ctx context.Context, request *dto.CreateOrderRequest) (*domain.Order, error) {
	if err := validateCreateOrderRequest(request); err != nil {
		return nil, err
	}
	quantities, productIDs, err := aggregateQuantities(request.Items)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerService.FindByID(ctx, request.CustomerID)
	if err != nil {
		if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			return nil, serviceerrors.NewInvalidCustomerError(
				fmt.Sprintf("customer %s does not exist", request.CustomerID))
		}
		return nil, err
	}

	items, updates, err := s.buildOrderItems(ctx, quantities, productIDs)
	if err != nil {
		return nil, err
	}

	var order *domain.Order
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		// the callback may be retried, so every attempt starts from a fresh order
		order = domain.NewOrder(customer.ID, slices.Clone(items))
		if err := s.orderRepository.Create(txCtx, order); err != nil {
			return err
		}
		_, err := s.productService.UpdateQuantity(txCtx, updates)
		return err
	})
	if err != nil {
		logger.Error(ctx, "transaction: create order failed", err, map[string]any{
			"customer_id": customer.ID,
			"items":       len(items),
		})
		return nil, err
	}

	s.metrics.AddItemsSold(lo.SumBy(items, func(item domain.OrderItem) int { return item.Quantity }))
	logger.Info(ctx, "Order created successfully", map[string]any{
		"order_id":     order.ID,
		"customer_id":  order.CustomerID,
		"total_amount": order.TotalAmount.String(),
	})
	return order, nil
}

func (s *OrderService) observe(ctx context.Context, request *dto.CreateOrderRequest) (*domain.Order, error) {
	start := time.Now()
	order, err := s.processOrder(ctx, request)
	outcome := creationOutcome(err)
	s.metrics.ObserveOrderCreation(outcome, time.Since(start))

	if err != nil && outcome != OutcomeError {
		logger.Warn(ctx, "order rejected", map[string]any{
			"outcome": outcome,
			"reason":  err.Error(),
		})
	}
	return order, err
}

func creationOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeCreated
	case serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest):
		return OutcomeInvalidRequest
	case serviceerrors.IsOfKind(err, serviceerrors.KindInvalidCustomer):
		return OutcomeInvalidCustomer
	case serviceerrors.IsOfKind(err, serviceerrors.KindInvalidProduct):
		return OutcomeInvalidProduct
	case serviceerrors.IsOfKind(err, serviceerrors.KindInsufficientStock):
		return OutcomeInsufficientStock
	case serviceerrors.IsOfKind(err, serviceerrors.KindConflict):
		return OutcomeConflict
	default:
		return OutcomeError
	}
}

// CreateOrder validates the request, snapshots product prices and persists
// the order while decrementing stock in a single transaction. With an
// idempotency key, a repeated request returns the order created first.
func (s *OrderService) CreateOrder(ctx context.Context, idempotencyKey string, request *dto.CreateOrderRequest) (*domain.Order, error) {
	if idempotencyKey == "" {
		return s.observe(ctx, request)
	}

	return s.idempotency.Execute(ctx, idempotencyKey, request, func(ctx context.Context) (*domain.Order, error) {
		return s.observe(ctx, request)
	})
}

type noopOrderMetrics struct{}

func (noopOrderMetrics) ObserveOrderCreation(string, time.Duration) {}
func (noopOrderMetrics) AddItemsSold(int)                           {}

func NewOrderService(
	orderRepository port.OrderPort,
	productService *ProductService,
	customerService *CustomerService,
	orderCache port.CachePort[domain.Order],
	idempotency *IdempotencyService[domain.Order],
	txManager port.TransactionManager,
	metrics port.OrderMetrics,
) *OrderService {
	if metrics == nil {
		metrics = noopOrderMetrics{}
	}
	return &OrderService{
		orderRepository: orderRepository,
		productService:  productService,
		customerService: customerService,
		orderCache:      orderCache,
		idempotency:     idempotency,
		txManager:       txManager,
		metrics:         metrics,
	}
}

package service

import (
	"context"
	"strings"

	"github.com/rafaelleal24/orders/internal/core/domain"
	"github.com/rafaelleal24/orders/internal/core/dto"
	"github.com/rafaelleal24/orders/internal/core/logger"
	"github.com/rafaelleal24/orders/internal/core/port"
	"github.com/rafaelleal24/orders/internal/core/serviceerrors"
)

type ProductService struct {
	productRepository port.ProductPort
}

func NewProductService(productRepository port.ProductPort) *ProductService {
	return &ProductService{productRepository: productRepository}
}

func (s *ProductService) CreateProduct(ctx context.Context, request *dto.CreateProductRequest) (*domain.Product, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, serviceerrors.NewInvalidRequestError("product name is required")
	}
	if request.Price.IsNegative() {
		return nil, serviceerrors.NewInvalidRequestError("product price must not be negative")
	}
	if request.Stock < 0 {
		return nil, serviceerrors.NewInvalidRequestError("product stock must not be negative")
	}

	existing, err := s.productRepository.FindByName(ctx, name)
	if err != nil && !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
		logger.Error(ctx, "product: find by name failed", err, map[string]any{"name": name})
		return nil, err
	}
	if existing != nil {
		return nil, serviceerrors.NewConflictError("product with this name already exists")
	}

	product := domain.NewProduct(name, request.Description, request.Price, request.Stock)

	if err := s.productRepository.Create(ctx, product); err != nil {
		logger.Error(ctx, "product: create failed", err, map[string]any{
			"name":        name,
			"description": request.Description,
			"price":       request.Price.String(),
			"stock":       request.Stock,
		})
		return nil, err
	}

	logger.Info(ctx, "Product created", map[string]any{"product_id": product.ID})
	return product, nil
}

func (s *ProductService) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	return s.productRepository.GetByID(ctx, id)
}

func (s *ProductService) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepository.GetAll(ctx)
}

func (s *ProductService) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	return s.productRepository.FindByName(ctx, name)
}

func (s *ProductService) FindAllByID(ctx context.Context, ids []domain.ID) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return []*domain.Product{}, nil
	}
	return s.productRepository.FindAllByID(ctx, ids)
}

func (s *ProductService) UpdateQuantity(ctx context.Context, updates []domain.StockUpdate) ([]*domain.Product, error) {
	if len(updates) == 0 {
		return []*domain.Product{}, nil
	}
	for _, update := range updates {
		if update.Quantity < 0 {
			return nil, serviceerrors.NewInsufficientStockError("stock cannot go negative for product " + string(update.ProductID))
		}
	}
	return s.productRepository.UpdateQuantity(ctx, updates)
}

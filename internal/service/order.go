package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Skotchmaster/shop_api/internal/events"
	"github.com/Skotchmaster/shop_api/internal/models"
	"github.com/Skotchmaster/shop_api/internal/repo"
	"github.com/Skotchmaster/shop_api/internal/transport"
)

type ProductGetter interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type OrderService struct {
	Repo     OrderStore
	Products ProductGetter
	Events   events.Publisher
}

func (s *OrderService) GetOrders(ctx context.Context, offset, limit int) (int64, []models.Order, error) {
	total, orders, err := s.Repo.ListOrders(ctx, offset, limit)
	if err != nil {
		return 0, nil, fmt.Errorf("list orders: %w", err)
	}
	return total, orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// CreateOrder places an order for an existing product. Quantity defaults to 1.
func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: productId must be a uuid", ErrValidation)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	prod, err := s.Products.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	order := &models.Order{
		ID:        uuid.New(),
		ProductID: prod.ID,
		Quantity:  quantity,
	}
	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	order.Product = prod

	publish(ctx, s.Events, events.TopicOrder, events.New("order_created", order.ID.String(), map[string]any{
		"productId": prod.ID,
		"quantity":  quantity,
	}))
	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("%w: order %s", ErrNotFound, id)
		}
		return fmt.Errorf("delete order: %w", err)
	}

	publish(ctx, s.Events, events.TopicOrder, events.New("order_deleted", id.String(), nil))
	return nil
}

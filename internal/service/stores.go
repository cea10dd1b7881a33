package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/shop_api/internal/models"
)

type AccountStore interface {
	FindAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error)
	CreateAccount(ctx context.Context, account *models.Account) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

type ProductStore interface {
	ListProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, prod *models.Product) error
	UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type OrderStore interface {
	ListOrders(ctx context.Context, offset, limit int) (int64, []models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Skotchmaster/shop_api/internal/events"
	"github.com/Skotchmaster/shop_api/internal/logging"
	"github.com/Skotchmaster/shop_api/internal/models"
	"github.com/Skotchmaster/shop_api/internal/repo"
	"github.com/Skotchmaster/shop_api/internal/search"
	"github.com/Skotchmaster/shop_api/internal/storage"
	"github.com/Skotchmaster/shop_api/internal/transport"
)

var ErrSearchDisabled = search.ErrDisabled

// MaxProductNameLen bounds product names, in characters.
const MaxProductNameLen = 200

type CatalogService struct {
	Repo   ProductStore
	Images storage.ImageStore
	Index  search.Index
	Events events.Publisher
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return prod, nil
}

func (s *CatalogService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	total, items, err := s.Repo.ListProducts(ctx, offset, limit)
	if err != nil {
		return 0, nil, fmt.Errorf("list products: %w", err)
	}
	return total, items, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest, img transport.ImageUpload) (*models.Product, error) {
	name, err := productName(req.Name)
	if err != nil {
		return nil, err
	}
	if req.Price == nil || *req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if img.Body == nil {
		return nil, fmt.Errorf("%w: productImage required", ErrValidation)
	}

	imagePath, err := s.Images.Save(ctx, img.Name, img.ContentType, img.Body, img.Size)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) || errors.Is(err, storage.ErrTooLarge) {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return nil, fmt.Errorf("save image: %w", err)
	}

	prod := &models.Product{
		ID:           uuid.New(),
		Name:         name,
		Price:        *req.Price,
		ProductImage: imagePath,
	}
	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		if derr := s.Images.Delete(context.WithoutCancel(ctx), imagePath); derr != nil {
			logging.FromContext(ctx).Error("orphan_image", "image", imagePath, "error", derr)
		}
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.reindex(ctx, *prod)
	publish(ctx, s.Events, events.TopicProduct, events.New("product_created", prod.ID.String(), map[string]any{
		"name":  prod.Name,
		"price": prod.Price,
	}))
	return prod, nil
}

// PatchProduct applies property operations; only name and price are writable.
func (s *CatalogService) PatchProduct(ctx context.Context, id uuid.UUID, ops []transport.PatchOp) (*models.Product, error) {
	updates, err := patchUpdates(ops)
	if err != nil {
		return nil, err
	}

	prod, err := s.Repo.UpdateProduct(ctx, id, updates)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.reindex(ctx, *prod)
	publish(ctx, s.Events, events.TopicProduct, events.New("product_updated", prod.ID.String(), updates))
	return prod, nil
}

func patchUpdates(ops []transport.PatchOp) (map[string]any, error) {
	if len(ops) == 0 {
		return nil, fmt.Errorf("%w: no operations", ErrValidation)
	}

	updates := make(map[string]any, len(ops))
	for _, op := range ops {
		switch op.PropName {
		case "name":
			raw, ok := op.Value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: name must be a string", ErrValidation)
			}
			name, err := productName(raw)
			if err != nil {
				return nil, err
			}
			updates["name"] = name
		case "price":
			price, ok := toFloat(op.Value)
			if !ok || price < 0 {
				return nil, fmt.Errorf("%w: price must be a number >= 0", ErrValidation)
			}
			updates["price"] = price
		default:
			return nil, fmt.Errorf("%w: unknown property %q", ErrValidation, op.PropName)
		}
	}
	return updates, nil
}

func productName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("%w: name required", ErrValidation)
	}
	if utf8.RuneCountInString(name) > MaxProductNameLen {
		return "", fmt.Errorf("%w: name longer than %d characters", ErrValidation, MaxProductNameLen)
	}
	return name, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return fmt.Errorf("delete product: %w", err)
	}

	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id.String()); err != nil {
			logging.FromContext(ctx).Error("search_unindex_failed", "product_id", id, "error", err)
		}
	}
	publish(ctx, s.Events, events.TopicProduct, events.New("product_deleted", id.String(), nil))
	return nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return 0, nil, fmt.Errorf("%w: query required", ErrValidation)
	}
	if s.Index == nil {
		return 0, nil, ErrSearchDisabled
	}
	return s.Index.Search(ctx, q, offset, limit)
}

func (s *CatalogService) reindex(ctx context.Context, prod models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProduct(ctx, prod); err != nil {
		logging.FromContext(ctx).Error("search_index_failed", "product_id", prod.ID, "error", err)
	}
}

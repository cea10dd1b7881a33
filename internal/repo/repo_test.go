package repo

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_api/internal/db"
	"github.com/Skotchmaster/shop_api/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	gdb, err := db.Open(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	return &GormRepo{DB: gdb}
}

func TestAccounts(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	got, err := r.FindAccountByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, got)

	acc := &models.Account{ID: uuid.New(), Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, r.CreateAccount(ctx, acc))

	got, err = r.FindAccountByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, acc.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	byID, err := r.GetAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)

	dup := &models.Account{ID: uuid.New(), Email: "a@x.com", PasswordHash: "other"}
	require.Error(t, r.CreateAccount(ctx, dup))

	require.NoError(t, r.DeleteAccount(ctx, acc.ID))
	assert.ErrorIs(t, r.DeleteAccount(ctx, acc.ID), ErrNotFound)

	_, err = r.GetAccount(ctx, acc.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProducts(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, r.CreateProduct(ctx, &models.Product{ID: uuid.New(), Name: name, Price: 1}))
	}

	total, items, err := r.ListProducts(ctx, 1, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, items, 1)

	prod := items[0]
	updated, err := r.UpdateProduct(ctx, prod.ID, map[string]any{"name": "renamed", "price": 9.5})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, 9.5, updated.Price)

	_, err = r.UpdateProduct(ctx, uuid.New(), map[string]any{"name": "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, r.DeleteProduct(ctx, prod.ID))
	_, err = r.GetProduct(ctx, prod.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, r.DeleteProduct(ctx, prod.ID), ErrNotFound)
}

func TestOrders(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	prod := &models.Product{ID: uuid.New(), Name: "book", Price: 12}
	require.NoError(t, r.CreateProduct(ctx, prod))

	order := &models.Order{ID: uuid.New(), ProductID: prod.ID, Quantity: 2}
	require.NoError(t, r.CreateOrder(ctx, order))

	got, err := r.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
	require.NotNil(t, got.Product)
	assert.Equal(t, "book", got.Product.Name)

	total, orders, err := r.ListOrders(ctx, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].Product)

	require.NoError(t, r.DeleteOrder(ctx, order.ID))
	_, err = r.GetOrder(ctx, order.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

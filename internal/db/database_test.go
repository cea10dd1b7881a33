package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_api/internal/models"
)

func TestOpen_SQLiteMigrates(t *testing.T) {
	ctx := context.Background()
	gdb, err := Open(ctx, "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	require.NoError(t, Ping(ctx, gdb))
	for _, m := range models.All() {
		assert.True(t, gdb.Migrator().HasTable(m))
	}
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(context.Background(), "sqlite", "")
	require.Error(t, err)

	_, err = Open(context.Background(), "mongo", "mongodb://localhost")
	require.ErrorContains(t, err, "unsupported driver")
}

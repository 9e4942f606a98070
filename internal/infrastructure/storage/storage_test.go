package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/infrastructure/storage"
	"github.com/jhoicas/estoque-api/pkg/config"
)

func TestOpen_Memory(t *testing.T) {
	b, err := storage.Open(context.Background(), &config.Config{Store: config.StoreConfig{Driver: config.StoreDriverMemory}})
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, config.StoreDriverMemory, b.Driver)
	assert.NotNil(t, b.Products)
	assert.NotNil(t, b.Tx)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := storage.Open(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "sqlite"}})
	require.Error(t, err)
}

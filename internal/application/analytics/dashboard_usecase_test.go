package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/analytics"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
)

func seedProduct(t *testing.T, store *memory.Store, stock, minimum int64, active bool) string {
	t.Helper()
	p := &entity.Product{
		ID:           uuid.New().String(),
		Name:         "p",
		CurrentStock: decimal.NewFromInt(stock),
		MinimumStock: decimal.NewFromInt(minimum),
		Active:       active,
	}
	require.NoError(t, store.Products().Create(context.Background(), p))
	return p.ID
}

func seedMovement(t *testing.T, store *memory.Store, productID string, at time.Time) {
	t.Helper()
	require.NoError(t, store.Movements().Create(context.Background(), &entity.Movement{
		ID:        uuid.New().String(),
		ProductID: productID,
		Type:      entity.MovementEntrada,
		Quantity:  decimal.NewFromInt(1),
		CreatedAt: at,
	}))
}

func TestGetSummary_Contadores(t *testing.T) {
	store := memory.NewStore()
	a := seedProduct(t, store, 50, 10, true)
	seedProduct(t, store, 3, 10, true)  // bajo mínimo
	seedProduct(t, store, 10, 10, true) // en el mínimo
	seedProduct(t, store, 0, 10, false) // inactivo: no cuenta
	now := time.Now()
	seedMovement(t, store, a, now)
	seedMovement(t, store, a, now.AddDate(0, 0, -10))
	seedMovement(t, store, a, now.AddDate(0, 0, -45))

	uc := analytics.NewDashboardUseCase(store.Products(), store.Movements())
	sum, err := uc.GetSummary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, sum.TotalProducts)
	assert.Equal(t, 2, sum.LowStockProducts)
	assert.Equal(t, 1, sum.MovementsToday)
	assert.Equal(t, 2, sum.MovementsLast30Day)
}

func TestGetSummary_FalloDelAlmacenamiento(t *testing.T) {
	store := memory.NewStore()
	store.FailOn(memory.OpMovementList, errors.New("pool closed"))

	_, err := analytics.NewDashboardUseCase(store.Products(), store.Movements()).GetSummary(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsStoreError(err))
}

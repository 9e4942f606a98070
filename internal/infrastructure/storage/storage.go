// Package storage arma los repositorios según STORE_DRIVER (postgres o memory).
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-api/pkg/config"
)

// Backend repositorios listos para inyectar en los casos de uso.
type Backend struct {
	Driver      string
	Products    repository.ProductRepository
	Movements   repository.MovementRepository
	Corrections repository.StockCorrectionRepository
	Warehouses  repository.WarehouseRepository
	Suppliers   repository.SupplierRepository
	Tx          inventory.TxRunner

	close func()
}

// Close libera el pool de conexiones (no-op en memoria).
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open construye el backend configurado.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		s := memory.NewStore()
		return &Backend{
			Driver:      config.StoreDriverMemory,
			Products:    s.Products(),
			Movements:   s.Movements(),
			Corrections: s.Corrections(),
			Warehouses:  s.Warehouses(),
			Suppliers:   s.Suppliers(),
			Tx:          s,
		}, nil
	case config.StoreDriverPostgres, "":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.DB.AutoMigrate {
			if _, err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &Backend{
			Driver:      config.StoreDriverPostgres,
			Products:    postgres.NewProductRepository(pool),
			Movements:   postgres.NewMovementRepository(pool),
			Corrections: postgres.NewStockCorrectionRepository(pool),
			Warehouses:  postgres.NewWarehouseRepository(pool),
			Suppliers:   postgres.NewSupplierRepository(pool),
			Tx:          postgres.NewTxRunner(pool),
			close:       pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.Store.Driver)
}

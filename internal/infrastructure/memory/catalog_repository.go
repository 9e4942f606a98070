package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var (
	_ repository.StockCorrectionRepository = (*StockCorrectionRepo)(nil)
	_ repository.WarehouseRepository       = (*WarehouseRepo)(nil)
	_ repository.SupplierRepository        = (*SupplierRepo)(nil)
)

// StockCorrectionRepo correcciones de saldo en memoria.
type StockCorrectionRepo struct {
	s    *Store
	undo *undoLog
}

// Create agrega la corrección al historial.
func (r *StockCorrectionRepo) Create(_ context.Context, c *entity.StockCorrection) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(OpCorrectionCreate); err != nil {
		return err
	}
	r.undo.correction(c.ID)
	r.s.corrections = append(r.s.corrections, *c)
	return nil
}

// ListByProduct más reciente primero.
func (r *StockCorrectionRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockCorrection, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.StockCorrection, 0)
	for i := len(r.s.corrections) - 1; i >= 0; i-- {
		c := r.s.corrections[i]
		if c.ProductID == productID {
			out = append(out, &c)
		}
	}
	return out, nil
}

// WarehouseRepo depósitos en memoria.
type WarehouseRepo struct {
	s *Store
}

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.warehouses[w.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.warehouses[w.ID]; ok {
		r.s.warehouses[w.ID] = *w
	}
	return nil
}

func (r *WarehouseRepo) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Warehouse, 0, len(r.s.warehouses))
	for _, w := range r.s.warehouses {
		w := w
		list = append(list, &w)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

func (r *WarehouseRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.WarehouseID != nil && *p.WarehouseID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.warehouses, id)
	return nil
}

// SupplierRepo proveedores en memoria. TaxID es único.
type SupplierRepo struct {
	s *Store
}

func (r *SupplierRepo) Create(_ context.Context, sup *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.suppliers {
		if existing.ID == sup.ID || (sup.TaxID != "" && existing.TaxID == sup.TaxID) {
			return domain.ErrDuplicate
		}
	}
	r.s.suppliers[sup.ID] = *sup
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sup, nil
}

func (r *SupplierRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sup := range r.s.suppliers {
		if sup.TaxID == taxID {
			sup := sup
			return &sup, nil
		}
	}
	return nil, nil
}

func (r *SupplierRepo) Update(_ context.Context, sup *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[sup.ID]; ok {
		r.s.suppliers[sup.ID] = *sup
	}
	return nil
}

func (r *SupplierRepo) List(_ context.Context, limit, offset int) ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Supplier, 0, len(r.s.suppliers))
	for _, sup := range r.s.suppliers {
		sup := sup
		list = append(list, &sup)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

func (r *SupplierRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SupplierID != nil && *p.SupplierID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.suppliers, id)
	return nil
}

package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s    *Store
	undo *undoLog
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	r.undo.product(r.s, product.ID, true)
	r.s.products[product.ID] = *product
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure(OpProductGet); err != nil {
		return nil, err
	}
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetForUpdate equivale a GetByID: Store.Run ya serializa las transacciones.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// Update modifica datos descriptivos. No toca el saldo.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[product.ID]
	if !ok {
		return nil
	}
	r.undo.product(r.s, product.ID, true)
	stock := cur.CurrentStock
	cur = *product
	cur.CurrentStock = stock
	r.s.products[product.ID] = cur
	return nil
}

// AdjustStock suma delta al saldo y devuelve el resultado.
func (r *ProductRepo) AdjustStock(_ context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(OpProductAdjust); err != nil {
		return decimal.Zero, err
	}
	p, ok := r.s.products[id]
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	r.undo.product(r.s, id, false)
	p.CurrentStock = p.CurrentStock.Add(delta)
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return p.CurrentStock, nil
}

// SetStock sobrescribe el saldo.
func (r *ProductRepo) SetStock(_ context.Context, id string, balance decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(OpProductSetStock); err != nil {
		return err
	}
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.undo.product(r.s, id, false)
	p.CurrentStock = balance
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return nil
}

// List filtra y ordena por nombre e ID.
func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure(OpProductList); err != nil {
		return nil, err
	}
	list := r.filter(filter)
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return page(list, filter.Limit, filter.Offset), nil
}

// ListBelowMinimum productos activos con estoque_atual <= estoque_minimo, mayor déficit primero.
func (r *ProductRepo) ListBelowMinimum(_ context.Context, limit int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure(OpProductList); err != nil {
		return nil, err
	}
	list := r.filter(repository.ProductFilter{OnlyActive: true, BelowMinimum: true})
	sort.Slice(list, func(i, j int) bool {
		di := list[i].MinimumStock.Sub(list[i].CurrentStock)
		dj := list[j].MinimumStock.Sub(list[j].CurrentStock)
		if !di.Equal(dj) {
			return di.GreaterThan(dj)
		}
		return list[i].ID < list[j].ID
	})
	return page(list, limit, 0), nil
}

// Count cuenta productos con el filtro, ignorando la paginación.
func (r *ProductRepo) Count(_ context.Context, filter repository.ProductFilter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure(OpProductList); err != nil {
		return 0, err
	}
	return len(r.filter(filter)), nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.movements {
		if m.ProductID == id {
			return domain.ErrConflict
		}
	}
	r.undo.product(r.s, id, true)
	delete(r.s.products, id)
	return nil
}

// filter debe llamarse con s.mu tomado.
func (r *ProductRepo) filter(f repository.ProductFilter) []*entity.Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	list := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if f.OnlyActive && !p.Active {
			continue
		}
		if f.BelowMinimum && !p.BelowMinimum() {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		p := p
		list = append(list, &p)
	}
	return list
}

// page aplica limit/offset; limit <= 0 devuelve todo desde offset.
func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación en memoria del libro de movimientos.
type MovementRepo struct {
	s    *Store
	undo *undoLog
}

// Create persiste un movimiento; el producto debe existir (clave foránea).
func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(OpMovementCreate); err != nil {
		return err
	}
	if _, ok := r.s.products[m.ProductID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.movements[m.ID]; ok {
		return domain.ErrDuplicate
	}
	r.undo.movement(r.s, m.ID)
	r.s.movements[m.ID] = *m
	return nil
}

// GetByID obtiene un movimiento; (nil, nil) si no existe.
func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// Delete elimina el registro del movimiento; ErrNotFound si ya no existe.
func (r *MovementRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure(OpMovementDelete); err != nil {
		return err
	}
	if _, ok := r.s.movements[id]; !ok {
		return fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, id)
	}
	r.undo.movement(r.s, id)
	delete(r.s.movements, id)
	return nil
}

// List historial filtrado, más reciente primero.
func (r *MovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*repository.MovementWithProduct, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure(OpMovementList); err != nil {
		return nil, err
	}
	movs := r.filter(filter)
	out := make([]*repository.MovementWithProduct, 0, len(movs))
	for _, m := range page(movs, filter.Limit, filter.Offset) {
		p := r.s.products[m.ProductID]
		out = append(out, &repository.MovementWithProduct{
			Movement:    *m,
			ProductName: p.Name,
			UnitMeasure: p.UnitMeasure,
		})
	}
	return out, nil
}

// ListByProduct todos los movimientos del producto, sin paginar.
func (r *MovementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure(OpMovementList); err != nil {
		return nil, err
	}
	return r.filter(repository.MovementFilter{ProductID: productID}), nil
}

// Count cuenta movimientos con el filtro, ignorando la paginación.
func (r *MovementRepo) Count(_ context.Context, filter repository.MovementFilter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure(OpMovementList); err != nil {
		return 0, err
	}
	return len(r.filter(filter)), nil
}

// filter debe llamarse con s.mu tomado. Ordena por created_at descendente.
func (r *MovementRepo) filter(f repository.MovementFilter) []*entity.Movement {
	list := make([]*entity.Movement, 0)
	for _, m := range r.s.movements {
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.From != nil && m.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !m.CreatedAt.Before(*f.To) {
			continue
		}
		m := m
		list = append(list, &m)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list
}

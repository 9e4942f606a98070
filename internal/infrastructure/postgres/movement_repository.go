package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento del libro.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, product_id, tipo, quantidade, operador, observacao, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, string(movement.Type), movement.Quantity,
		movement.Operator, nilIfEmpty(movement.Note), movement.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `
		SELECT id, product_id, tipo, quantidade, operador, observacao, created_at
		FROM movements WHERE id = $1`
	var m entity.Movement
	var note *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Operator, &note, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	m.Note = derefString(note)
	return &m, nil
}

// Delete elimina el registro del movimiento. 0 filas afectadas es ErrNotFound, de modo que una
// transacción que leyó el movimiento antes de un borrado concurrente termina en rollback.
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, id)
	}
	return nil
}

// List historial filtrado con nombre y unidad del producto, más reciente primero.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*repository.MovementWithProduct, error) {
	where, args := movementWhere(filter)
	query := `
		SELECT m.id, m.product_id, m.tipo, m.quantidade, m.operador, m.observacao, m.created_at,
			p.nome, p.unidade_medida
		FROM movements m
		JOIN products p ON p.id = m.product_id` + where + `
		ORDER BY m.created_at DESC, m.id DESC`
	query, args = withPage(query, args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*repository.MovementWithProduct
	for rows.Next() {
		var m repository.MovementWithProduct
		var note *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Operator, &note, &m.CreatedAt,
			&m.ProductName, &m.UnitMeasure); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Note = derefString(note)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListByProduct todos los movimientos del producto, sin paginar.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	query := `
		SELECT id, product_id, tipo, quantidade, operador, observacao, created_at
		FROM movements WHERE product_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var note *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Operator, &note, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Note = derefString(note)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Count cuenta movimientos con el filtro, ignorando la paginación.
func (r *MovementRepo) Count(ctx context.Context, filter repository.MovementFilter) (int, error) {
	where, args := movementWhere(filter)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM movements m`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

// movementWhere arma la cláusula WHERE sobre el alias m. From inclusivo, To exclusivo.
func movementWhere(f repository.MovementFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID != "" {
		add("m.product_id = $%d", f.ProductID)
	}
	if f.Type != "" {
		add("m.tipo = $%d", string(f.Type))
	}
	if f.From != nil {
		add("m.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("m.created_at < $%d", *f.To)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

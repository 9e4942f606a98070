// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa con STORE_DRIVER=memory en desarrollo local y como almacenamiento de las pruebas.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store estado compartido por todos los repositorios en memoria.
// Run serializa las transacciones y, si fn falla, deshace solo lo que fn modificó.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	products    map[string]entity.Product
	movements   map[string]entity.Movement
	corrections []entity.StockCorrection
	warehouses  map[string]entity.Warehouse
	suppliers   map[string]entity.Supplier

	failures map[string]error
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{
		products:   make(map[string]entity.Product),
		movements:  make(map[string]entity.Movement),
		warehouses: make(map[string]entity.Warehouse),
		suppliers:  make(map[string]entity.Supplier),
		failures:   make(map[string]error),
	}
}

// Operaciones que admiten inyección de fallos con FailOn.
const (
	OpProductGet        = "products.get"
	OpProductList       = "products.list"
	OpProductAdjust     = "products.adjust_stock"
	OpProductSetStock   = "products.set_stock"
	OpMovementCreate    = "movements.create"
	OpMovementDelete    = "movements.delete"
	OpMovementList      = "movements.list"
	OpCorrectionCreate  = "corrections.create"
	OpTransactionCommit = "tx.commit"
)

// FailOn hace que la operación op devuelva err hasta que se llame a ClearFailures.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// ClearFailures elimina los fallos inyectados.
func (s *Store) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]error)
}

// failure debe llamarse con s.mu tomado.
func (s *Store) failure(op string) error {
	return s.failures[op]
}

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Movements devuelve el repositorio de movimientos.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// Corrections devuelve el repositorio de correcciones de saldo.
func (s *Store) Corrections() *StockCorrectionRepo { return &StockCorrectionRepo{s: s} }

// Warehouses devuelve el repositorio de depósitos.
func (s *Store) Warehouses() *WarehouseRepo { return &WarehouseRepo{s: s} }

// Suppliers devuelve el repositorio de proveedores.
func (s *Store) Suppliers() *SupplierRepo { return &SupplierRepo{s: s} }

// Run ejecuta fn con repositorios que registran lo que modifican. Si fn o el commit fallan,
// solo se deshacen esas claves: las escrituras de otras peticiones hechas mientras tanto se conservan.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	correctionRepo repository.StockCorrectionRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	undo := newUndoLog()
	err := fn(
		&MovementRepo{s: s, undo: undo},
		&ProductRepo{s: s, undo: undo},
		&StockCorrectionRepo{s: s, undo: undo},
	)
	if err == nil {
		s.mu.RLock()
		err = s.failure(OpTransactionCommit)
		s.mu.RUnlock()
	}
	if err != nil {
		s.mu.Lock()
		undo.rollback(s)
		s.mu.Unlock()
		return err
	}
	return nil
}

// productUndo estado de un producto antes de su primera modificación en la transacción.
// Con full=false la transacción solo cambió el saldo y el rollback restaura solo ese campo.
type productUndo struct {
	existed bool
	full    bool
	prev    entity.Product
}

type movementUndo struct {
	existed bool
	prev    entity.Movement
}

// undoLog valores previos de las claves que tocó una transacción. Un *undoLog nil no registra nada
// (repositorios usados fuera de Run).
type undoLog struct {
	products    map[string]*productUndo
	movements   map[string]movementUndo
	corrections map[string]struct{}
}

func newUndoLog() *undoLog {
	return &undoLog{
		products:    make(map[string]*productUndo),
		movements:   make(map[string]movementUndo),
		corrections: make(map[string]struct{}),
	}
}

// product debe llamarse con s.mu tomado y antes de modificar la clave.
func (u *undoLog) product(s *Store, id string, full bool) {
	if u == nil {
		return
	}
	if e, ok := u.products[id]; ok {
		e.full = e.full || full
		return
	}
	prev, existed := s.products[id]
	u.products[id] = &productUndo{existed: existed, full: full, prev: prev}
}

// movement debe llamarse con s.mu tomado y antes de modificar la clave.
func (u *undoLog) movement(s *Store, id string) {
	if u == nil {
		return
	}
	if _, ok := u.movements[id]; ok {
		return
	}
	prev, existed := s.movements[id]
	u.movements[id] = movementUndo{existed: existed, prev: prev}
}

func (u *undoLog) correction(id string) {
	if u == nil {
		return
	}
	u.corrections[id] = struct{}{}
}

// rollback debe llamarse con s.mu tomado.
func (u *undoLog) rollback(s *Store) {
	for id, e := range u.products {
		cur, ok := s.products[id]
		switch {
		case !e.existed:
			delete(s.products, id)
		case e.full || !ok:
			s.products[id] = e.prev
		default:
			cur.CurrentStock = e.prev.CurrentStock
			s.products[id] = cur
		}
	}
	for id, e := range u.movements {
		if e.existed {
			s.movements[id] = e.prev
		} else {
			delete(s.movements, id)
		}
	}
	if len(u.corrections) > 0 {
		kept := s.corrections[:0]
		for _, c := range s.corrections {
			if _, added := u.corrections[c.ID]; !added {
				kept = append(kept, c)
			}
		}
		s.corrections = kept
	}
}

package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// StoreError envuelve cualquier fallo del almacenamiento subyacente (conexión, query, commit).
// El mensaje expuesto es el del driver, sin reinterpretar.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError envuelve err como StoreError. Devuelve nil si err es nil y no re-envuelve
// un StoreError existente ni un error de dominio.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsStoreError(err) || isDomainError(err) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// IsStoreError indica si err (o alguno que envuelva) es un StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

func isDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrInvalidInput, ErrDuplicate, ErrUnauthorized,
		ErrForbidden, ErrConflict, ErrInsufficientStock,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

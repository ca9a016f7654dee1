package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrAlreadyCommitted   = errors.New("el documento ya fue confirmado")
	ErrInvalidState       = errors.New("estado de documento inválido para la operación")
	ErrUnknownProduct     = errors.New("producto inexistente en el catálogo")
)

// CommitError envuelve cualquier falla durante la fase de aplicación de un
// commit (resolución de productos, deltas de stock, historial). La transacción
// se revierte completa: ninguna mutación parcial queda visible y el documento
// conserva su estado abierto. La causa original se recupera con errors.Is/As.
type CommitError struct {
	DocumentID string
	Err        error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit del documento %s falló: %v", e.DocumentID, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }

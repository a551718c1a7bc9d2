package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrReferenceNotFound = errors.New("referencia no encontrada en el inventario")
	ErrOrderProcessing   = errors.New("error procesando la orden")
	ErrConsolidation     = errors.New("error consolidando ventas")
	ErrInvalidWindow     = errors.New("tipo de ventana inválido")
	ErrCashierClosed     = errors.New("no hay caja abierta")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrConflict          = errors.New("conflicto con el estado actual")
)

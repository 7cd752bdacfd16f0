package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Reglas propias de compensación variable.
	ErrProtectedCurrency = errors.New("USD es la moneda base y no puede modificarse ni eliminarse")
	ErrCurrencyInUse     = errors.New("la moneda está referenciada y no puede eliminarse")
	ErrSystemRole        = errors.New("los roles de sistema no pueden eliminarse")
	ErrRunStatus         = errors.New("estado del payout run no permite la operación")
	ErrAllocationLocked  = errors.New("la asignación ya fue aprobada y es de solo lectura")
)

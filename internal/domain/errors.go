package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrInvalidCredentials se muestra tal cual al usuario en la pantalla de login.
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

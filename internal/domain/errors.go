package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInvalidCredentials = errors.New("usuario o contraseña incorrectos")
	ErrProtectedUser      = errors.New("no se puede eliminar el usuario maestro")
	ErrNoSession          = errors.New("no hay sesión activa")
	ErrForbidden          = errors.New("acceso denegado")
	ErrRemoteUnavailable  = errors.New("servidor remoto no disponible")
)

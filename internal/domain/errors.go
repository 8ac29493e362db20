package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica los errores de dominio para que la capa de presentación
// pueda decidir el mensaje/código sin comparar textos.
type Kind string

const (
	KindUnauthenticated         Kind = "unauthenticated"
	KindAccessDenied            Kind = "access_denied"
	KindInsufficientPermissions Kind = "insufficient_permissions"
	KindNotFound                Kind = "not_found"
	KindConflict                Kind = "conflict"
	KindInvalidInput            Kind = "invalid_input"
	KindInvalidTransition       Kind = "invalid_transition"
	KindInternal                Kind = "internal"
)

// Error es un error de dominio con tipo estructurado.
type Error struct {
	Kind    Kind
	Message string
	Err     error // causa opcional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por Kind: errors.Is(err, domain.ErrNotFound) es verdadero para
// cualquier error de tipo not_found (orden, cliente, empresa...).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message || t.isKindSentinel())
}

func (e *Error) isKindSentinel() bool {
	return kindSentinels[e.Kind] == e
}

// New crea un error de dominio.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap crea un error de dominio con causa.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf devuelve el Kind del primer *Error en la cadena, o KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Sentinelas por tipo. errors.Is(x, ErrNotFound) acepta cualquier not_found.
var (
	ErrUnauthenticated         = New(KindUnauthenticated, "no autenticado")
	ErrAccessDenied            = New(KindAccessDenied, "acceso denegado")
	ErrInsufficientPermissions = New(KindInsufficientPermissions, "permisos insuficientes")
	ErrNotFound                = New(KindNotFound, "recurso no encontrado")
	ErrConflict                = New(KindConflict, "conflicto con el estado actual")
	ErrInvalidInput            = New(KindInvalidInput, "entrada inválida")
	ErrInvalidTransition       = New(KindInvalidTransition, "transición de estado no permitida")
)

var kindSentinels = map[Kind]*Error{
	KindUnauthenticated:         ErrUnauthenticated,
	KindAccessDenied:            ErrAccessDenied,
	KindInsufficientPermissions: ErrInsufficientPermissions,
	KindNotFound:                ErrNotFound,
	KindConflict:                ErrConflict,
	KindInvalidInput:            ErrInvalidInput,
	KindInvalidTransition:       ErrInvalidTransition,
}

// Errores específicos (mismo Kind que su sentinela genérica).
var (
	ErrCompanyNotFound      = New(KindNotFound, "empresa no encontrada")
	ErrCompanyInactive      = New(KindAccessDenied, "la empresa está desactivada")
	ErrClientNotFound       = New(KindNotFound, "cliente no encontrado")
	ErrOrderNotFound        = New(KindNotFound, "orden de servicio no encontrada")
	ErrUserNotFound         = New(KindNotFound, "usuario no encontrado")
	ErrClientAlreadyExists  = New(KindConflict, "el cliente ya existe en esta empresa")
	ErrDuplicateOrderNumber = New(KindConflict, "número de orden duplicado")
	ErrEmailAlreadyExists   = New(KindConflict, "el email ya está registrado")
	ErrInvalidCredentials   = New(KindUnauthenticated, "credenciales inválidas")
)

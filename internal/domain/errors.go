package domain

import (
	"errors"
	"sort"
	"strings"
)

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

// FieldErrors acumula mensajes de validación por campo del request (project, warehouse, lines...).
type FieldErrors map[string][]string

// Add agrega un mensaje al campo. Mensajes vacíos se ignoran.
func (f FieldErrors) Add(field, msg string) {
	if msg == "" {
		return
	}
	f[field] = append(f[field], msg)
}

// Merge copia los mensajes de otro conjunto.
func (f FieldErrors) Merge(other FieldErrors) {
	for field, msgs := range other {
		for _, m := range msgs {
			f.Add(field, m)
		}
	}
}

// HasErrors indica si hay al menos un campo con errores.
func (f FieldErrors) HasErrors() bool { return len(f) > 0 }

// Fields devuelve los nombres de campo ordenados.
func (f FieldErrors) Fields() []string {
	out := make([]string, 0, len(f))
	for k := range f {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ValidationError error de negocio con detalle por campo. Se compara con errors.Is(err, ErrInvalidInput).
type ValidationError struct {
	Fields FieldErrors
}

// NewValidationError construye el error a partir de los campos acumulados.
func NewValidationError(fields FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}

// FieldError atajo para un único campo.
func FieldError(field, msg string) *ValidationError {
	f := FieldErrors{}
	f.Add(field, msg)
	return &ValidationError{Fields: f}
}

func (e *ValidationError) Error() string {
	return "validación fallida: " + strings.Join(e.Fields.Fields(), ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

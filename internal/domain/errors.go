package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrMalformedInput = errors.New("XML de NF-e malformado o incompleto")
	ErrPersistence    = errors.New("falla de persistencia")
	ErrService        = errors.New("falla del servicio emisor de NF-e")
	ErrSyncInProgress = errors.New("sincronización ya en ejecución")
)

// MalformedInputError indica un XML que no se pudo interpretar o al que le falta un campo obligatorio.
// Field usa la ruta NF-e del campo (ej: "ide/nNF", "det[2]/prod/CFOP").
type MalformedInputError struct {
	Field  string
	Reason string
	Cause  error
}

func (e *MalformedInputError) Error() string {
	msg := "nfe malformada"
	if e.Field != "" {
		msg += " [" + e.Field + "]"
	}
	msg += ": " + e.Reason
	if e.Cause != nil {
		msg += fmt.Sprintf(" (%v)", e.Cause)
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error { return e.Cause }

// Is permite errors.Is(err, ErrMalformedInput).
func (e *MalformedInputError) Is(target error) bool { return target == ErrMalformedInput }

// NewMalformedInputError construye el error de entrada malformada.
func NewMalformedInputError(field, reason string, cause error) *MalformedInputError {
	return &MalformedInputError{Field: field, Reason: reason, Cause: cause}
}

// PersistenceError envuelve una falla de la capa de almacenamiento. La transacción ya fue revertida.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistencia [%s]: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error { return e.Cause }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// ServiceError falla del servicio remoto de emisión (listado o descarga de XML).
// StatusCode es 0 cuando la falla fue de red.
type ServiceError struct {
	Op         string
	StatusCode int
	Cause      error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("servicio emisor [%s]: HTTP %d: %v", e.Op, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("servicio emisor [%s]: %v", e.Op, e.Cause)
}

func (e *ServiceError) Unwrap() error { return e.Cause }

func (e *ServiceError) Is(target error) bool { return target == ErrService }

package ledger

import (
	"errors"
	"fmt"
)

// Kind classifies a ledger failure. Callers map it to a response status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindReferenceNotFound
	KindBusinessRule
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindReferenceNotFound:
		return "reference_not_found"
	case KindBusinessRule:
		return "business_rule_violation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal_error"
	}
}

// Sentinels for errors.Is. Any *Error of the matching kind compares equal.
var (
	ErrValidation        = errors.New("validation failed")
	ErrReferenceNotFound = errors.New("reference not found")
	ErrBusinessRule      = errors.New("business rule violation")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
)

// Entity names used in error details.
const (
	EntityPerson      = "pessoa"
	EntityCategory    = "categoria"
	EntityTransaction = "transacao"
)

// Error carries a user-facing message plus the kind that decides how it is reported.
type Error struct {
	Kind    Kind
	Entity  string
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrReferenceNotFound:
		return e.Kind == KindReferenceNotFound
	case ErrBusinessRule:
		return e.Kind == KindBusinessRule
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrConflict:
		return e.Kind == KindConflict
	}
	return false
}

func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: msg}
}

func ReferenceNotFound(entity string) *Error {
	return &Error{Kind: KindReferenceNotFound, Entity: entity, Message: notFoundMessage(entity)}
}

func BusinessRule(msg string) *Error {
	return &Error{Kind: KindBusinessRule, Message: msg}
}

func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Message: notFoundMessage(entity)}
}

func Conflict(entity, msg string) *Error {
	return &Error{Kind: KindConflict, Entity: entity, Message: msg}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindInternal
}

func notFoundMessage(entity string) string {
	switch entity {
	case EntityPerson:
		return "Pessoa não encontrada"
	case EntityCategory:
		return "Categoria não encontrada"
	case EntityTransaction:
		return "Transação não encontrada"
	default:
		return "Registro não encontrado"
	}
}

package services

import "errors"

// ErrorKind classifies a domain failure so the transport layer can pick a
// status code without inspecting messages.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindConflict
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Error is a domain failure carrying a human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func validationError(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func notFoundError(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// KindOf returns the kind of a domain error, or 0 for anything else.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Messages surfaced to API clients.
const (
	MsgNameRequired     = "Product name is required."
	MsgNameLength       = "Product name must be between 3 and 20 characters."
	MsgNameCharacters   = "Product name can only contain letters and numbers."
	MsgNameForbidden    = "Product name contains a forbidden word."
	MsgNameTaken        = "A product with this name already exists."
	MsgInvalidCategory  = "Invalid category."
	MsgNegativeQuantity = "Quantity cannot be negative."
	MsgProductNotFound  = "Product not found."
)

package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnavailable        = errors.New("item unavailable")
	ErrAlreadyReserved    = errors.New("vehicle already reserved")
	ErrAlreadyTerminal    = errors.New("reservation already terminal")
	ErrNotOwner           = errors.New("not owner")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidState       = errors.New("invalid order state")
	ErrInvalidKind        = errors.New("invalid item kind")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidItem        = errors.New("invalid catalog item")
)

package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"already exists", ErrAlreadyExists},
		{"not found", ErrNotFound},
		{"invalid credentials", ErrInvalidCredentials},
		{"unavailable", ErrUnavailable},
		{"already reserved", ErrAlreadyReserved},
		{"already terminal", ErrAlreadyTerminal},
		{"not owner", ErrNotOwner},
		{"invalid quantity", ErrInvalidQuantity},
		{"empty cart", ErrEmptyCart},
		{"invalid state", ErrInvalidState},
		{"invalid kind", ErrInvalidKind},
		{"forbidden", ErrForbidden},
		{"invalid item", ErrInvalidItem},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tc.err)
			if !stdErrors.Is(wrapped, tc.err) {
				t.Fatalf("expected wrapped error to match: %v", tc.err)
			}
		})
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	all := []error{
		ErrAlreadyExists, ErrNotFound, ErrInvalidCredentials, ErrUnavailable,
		ErrAlreadyReserved, ErrAlreadyTerminal, ErrNotOwner, ErrInvalidQuantity,
		ErrEmptyCart, ErrInvalidState, ErrInvalidKind, ErrForbidden, ErrInvalidItem,
	}
	for i := range all {
		for j := range all {
			if i != j && stdErrors.Is(all[i], all[j]) {
				t.Fatalf("expected %v and %v to differ", all[i], all[j])
			}
		}
	}
}

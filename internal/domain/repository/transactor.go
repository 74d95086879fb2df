package repository

import "context"

// Transactor runs fn inside a storage transaction carried by the context.
// Repository calls made with that context join the transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

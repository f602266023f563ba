package leave

import "context"

type StoreAPI interface {
	CreateRequest(ctx context.Context, req Request) error
	GetRequest(ctx context.Context, id string) (Request, error)
	// ListRequests returns matching requests newest first.
	ListRequests(ctx context.Context, filter Filter) ([]Request, error)
	// ApplyChange persists c only while the request is still in c.From,
	// debiting the balance in the same unit of work when c.Debit > 0. It
	// fails with ErrInvalidState when the request moved on and with
	// InsufficientBalanceError when the debit would go below zero.
	ApplyChange(ctx context.Context, c Change) (Request, error)
}

package shift

import "context"

type StoreAPI interface {
	CreateShift(ctx context.Context, s Shift) error
	GetShift(ctx context.Context, id string) (Shift, error)
	UpdateShift(ctx context.Context, s Shift) error
	DeleteShift(ctx context.Context, id string) error
	ListShifts(ctx context.Context, employeeID string) ([]Shift, error)
}

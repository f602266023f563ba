package employee

import "context"

type StoreAPI interface {
	CreateEmployee(ctx context.Context, emp Employee) error
	GetEmployee(ctx context.Context, id string) (Employee, error)
	ListEmployees(ctx context.Context, filter Filter) ([]Employee, error)
	UpdateEmployee(ctx context.Context, emp Employee) error
	DeleteEmployee(ctx context.Context, id string) error
}

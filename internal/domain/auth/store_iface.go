package auth

import "context"

type StoreAPI interface {
	CreateUser(ctx context.Context, user User) error
	FindUserByEmail(ctx context.Context, email string) (User, error)
	DeleteUsersByEmployee(ctx context.Context, employeeID string) error
}

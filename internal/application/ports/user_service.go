package ports

import (
	"context"

	"user-accounts-api/internal/domain/user"
)

type UserService interface {
	RegisterUser(ctx context.Context, r user.Registration) (*user.User, error)
	BulkRegisterUsers(ctx context.Context, rs []user.Registration) user.BulkResult
	FindUserByID(ctx context.Context, id user.ID) (*user.User, error)
	FindActiveUsers(ctx context.Context) (user.Users, error)
	FilterUsers(ctx context.Context, p user.FilterParams) (user.Users, error)
	UpdateUser(ctx context.Context, id user.ID, ch user.Changes) error
	DeleteUser(ctx context.Context, id user.ID) error
}

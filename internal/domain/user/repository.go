package user

import (
	"context"
)

type Repository interface {
	FetchUserByID(ctx context.Context, id ID) (*User, error)
	FetchUserByEmail(ctx context.Context, email string) (*User, error)
	FetchActiveUsers(ctx context.Context) (Users, error)
	FetchFilteredUsers(ctx context.Context, f Filter) (Users, error)
	CreateUser(ctx context.Context, req User) (*User, error)
	UpdateUser(ctx context.Context, id ID, upd Update) (*User, error)
	DeleteUser(ctx context.Context, id ID) (*User, error)
}

package user

import (
	"time"
)

type (
	User struct {
		ID           uint64
		Name         string
		Email        string
		PasswordHash string
		Cellphone    string
		Status       bool
		Roles        []string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)

func (u *User) scanFields() []any {
	return []any{
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Cellphone,
		&u.Status,
		&u.Roles,

		&u.CreatedAt,
		&u.UpdatedAt,
	}
}

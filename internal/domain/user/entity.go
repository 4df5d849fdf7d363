package user

import (
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type (
	ID   uint64
	User struct {
		ID           ID
		Name         string
		Email        string
		PasswordHash string
		Cellphone    string
		// false means soft-deleted
		Status bool
		Roles  []string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User

	// Registration is the raw sign-up payload.
	Registration struct {
		Name                 string
		Email                string
		Password             string
		PasswordConfirmation string
		Cellphone            string
	}

	// Changes is a partial profile edit as sent by the client; nil fields are
	// left untouched.
	Changes struct {
		Name      *string
		Password  *string
		Cellphone *string
	}

	// Update carries the columns to overwrite; nil keeps the stored value.
	Update struct {
		Name         *string
		PasswordHash *string
		Cellphone    *string
	}

	// FilterParams are the unparsed query values of a user search.
	FilterParams struct {
		Status         string
		Name           string
		LoggedInBefore string
		LoggedInAfter  string
	}

	// Filter is a conjunctive user search. A user matches the login bounds
	// when at least one of its sessions falls inside them.
	Filter struct {
		Status         *bool
		Name           string
		LoggedInBefore *time.Time
		LoggedInAfter  *time.Time
	}

	BulkResult struct {
		Created int
		Failed  int
	}
)

func (f Filter) HasLoginBounds() bool {
	return f.LoggedInBefore != nil || f.LoggedInAfter != nil
}

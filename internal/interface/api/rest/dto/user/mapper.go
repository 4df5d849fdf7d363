package user

import (
	"user-accounts-api/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	var u = User{
		ID:        uint64(uDomain.ID),
		Name:      uDomain.Name,
		Email:     uDomain.Email,
		Cellphone: uDomain.Cellphone,
	}

	return u
}

func ToResponseUsers(usDomain user.Users) Users {
	us := make(Users, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = ToResponseUser(*u)
	}

	return us
}

func ToResponseBulkResult(r user.BulkResult) BulkResult {
	return BulkResult{Created: r.Created, Failed: r.Failed}
}

func ToDomainRegistration(r RegisterRequest) user.Registration {
	return user.Registration{
		Name:                 r.Name,
		Email:                r.Email,
		Password:             r.Password,
		PasswordConfirmation: r.PasswordSecond,
		Cellphone:            r.Cellphone,
	}
}

func ToDomainRegistrations(rs []RegisterRequest) []user.Registration {
	out := make([]user.Registration, len(rs))
	for idx, r := range rs {
		out[idx] = ToDomainRegistration(r)
	}

	return out
}

func ToDomainChanges(r UpdateRequest) user.Changes {
	return user.Changes{
		Name:      r.Name,
		Password:  r.Password,
		Cellphone: r.Cellphone,
	}
}

package validator

import (
	"net/mail"
	"strings"

	"user-accounts-api/internal/interface/api/rest/dto/auth"
	"user-accounts-api/internal/interface/api/rest/dto/user"
)

const maxPasswordLen = 72 // bcrypt safe, in bytes

func ValidateRegistration(r user.RegisterRequest) map[string]string {
	errs := make(map[string]string)

	email := strings.ToLower(strings.TrimSpace(r.Email))

	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "name is required"
	}

	// email (required + format, no display name)
	if email == "" {
		errs["email"] = "email is required"
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		errs["email"] = "invalid email format"
	}

	if r.Password == "" {
		errs["password"] = "password is required"
	} else if len(r.Password) > maxPasswordLen {
		errs["password"] = "password must be at most 72 bytes"
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.Email) == "" {
		errs["email"] = "email is required"
	}
	// blank passwords count as missing; stored passwords are never trimmed
	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateUpdate checks only the fields present in the body.
func ValidateUpdate(r user.UpdateRequest) map[string]string {
	errs := make(map[string]string)

	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errs["name"] = "name must not be blank"
	}
	if r.Password != nil {
		if l := len(*r.Password); l == 0 || l > maxPasswordLen {
			errs["password"] = "password length must be 1-72 bytes"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

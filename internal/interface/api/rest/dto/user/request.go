package user

type (
	RegisterRequest struct {
		Name           string `json:"name"`
		Email          string `json:"email"`
		Password       string `json:"password"`
		PasswordSecond string `json:"password_second"`
		Cellphone      string `json:"cellphone"`
	}
	BulkRequest struct {
		Users []RegisterRequest `json:"users"`
	}
	// UpdateRequest fields left out of the body stay nil.
	UpdateRequest struct {
		Name      *string `json:"name"`
		Password  *string `json:"password"`
		Cellphone *string `json:"cellphone"`
	}
)

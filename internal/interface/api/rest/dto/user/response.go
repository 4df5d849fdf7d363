package user

type (
	User struct {
		ID        uint64 `json:"id"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		Cellphone string `json:"cellphone"`
	}
	Users      []User
	BulkResult struct {
		Created int `json:"created"`
		Failed  int `json:"failed"`
	}
)

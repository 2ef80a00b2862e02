package model

// UserData is a registered account. Password holds the bcrypt hash and is
// never written to the wire.
type UserData struct {
	Username string `json:"username"`
	Password string `json:"-"`
	Email    string `json:"email"`
}

type AuthData struct {
	AuthToken string `json:"authToken"`
	Username  string `json:"username"`
}

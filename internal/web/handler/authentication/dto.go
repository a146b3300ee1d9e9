package authentication

// LoginRequest is the body of the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest is the body of the registration endpoint. Roles is accepted
// for wire compatibility but ignored; the gateway assigns the default role.
type RegisterRequest struct {
	Username  string   `json:"username" validate:"required"`
	Email     string   `json:"email" validate:"required,email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Password  string   `json:"password" validate:"required"`
	Roles     []string `json:"roles"`
}

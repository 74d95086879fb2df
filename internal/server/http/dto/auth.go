package dto

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// CreateUserRequest lets staff open an account with a role.
type CreateUserRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserResponse describes a created account.
type UserResponse struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Role  string `json:"role"`
}

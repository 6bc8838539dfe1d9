package dto

// RegisterUserRequestBody defines a request body for RegisterUser service.
type RegisterUserRequestBody struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,password_strength"`
}

// AssignRoleRequestBody defines a request body for AssignRole service.
type AssignRoleRequestBody struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=Admin User"`
}

// ResetUserPasswordRequestBody defines a request body for ResetUserPassword service.
type ResetUserPasswordRequestBody struct {
	Email       string `json:"email" validate:"required,email"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,password_strength"`
}

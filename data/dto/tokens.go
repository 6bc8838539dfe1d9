package dto

// LoginRequestBody defines a request body for Login service.
type LoginRequestBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequestBody defines a request body for CreatePasswordResetToken service.
type ForgotPasswordRequestBody struct {
	Email string `json:"email"`
}

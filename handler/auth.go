package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emzola/bookstore/data/dto"
	"github.com/emzola/bookstore/service"
)

// @Summary Register a user
// @Description Creates an account with the User role and emails a confirmation link.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterUserRequestBody true "New user"
// @Success 200
// @Failure 400
// @Failure 500
// @Router /auth/register [post]
func (h *Handler) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.RegisterUserRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	_, err = h.service.RegisterUser(r.Context(), requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	h.messageResponse(w, r, "User registered successfully")
}

// @Summary Confirm an email address
// @Tags auth
// @Produce json
// @Param email query string true "Email address"
// @Param token query string true "Confirmation token"
// @Success 200
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /auth/confirm-email [get]
func (h *Handler) confirmEmailHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	_, err := h.service.ConfirmEmail(r.Context(), qs.Get("email"), qs.Get("token"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.recordNotFoundResponse(w, r, "User not found")
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	h.messageResponse(w, r, "Email confirmed successfully")
}

// @Summary Log in
// @Description Returns a bearer token for a user with a confirmed email.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequestBody true "Credentials"
// @Success 200
// @Failure 400
// @Failure 401
// @Failure 500
// @Router /auth/login [post]
func (h *Handler) loginHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.LoginRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	token, err := h.service.Login(r.Context(), requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrInvalidCredentials):
			h.invalidCredentialsResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"token": token}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// @Summary Assign a role to a user
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AssignRoleRequestBody true "Email and role"
// @Success 200
// @Failure 400
// @Failure 401
// @Failure 403
// @Failure 404
// @Failure 500
// @Router /auth/assign-role [post]
func (h *Handler) assignRoleHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.AssignRoleRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	_, err = h.service.AssignRole(r.Context(), requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.recordNotFoundResponse(w, r, "User not found")
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	h.messageResponse(w, r, fmt.Sprintf("Role '%s' assigned to %s", requestBody.Role, requestBody.Email))
}

// @Summary Request a password reset
// @Description Always answers with the same message, whether or not the account exists.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ForgotPasswordRequestBody true "Email address"
// @Success 200
// @Failure 400
// @Failure 500
// @Router /auth/forgot-password [post]
func (h *Handler) forgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.ForgotPasswordRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	err = h.service.CreatePasswordResetToken(r.Context(), requestBody.Email)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	h.messageResponse(w, r, "A reset link has been sent to your email")
}

// @Summary Reset a password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ResetUserPasswordRequestBody true "Email, reset token and new password"
// @Success 200
// @Failure 400
// @Failure 500
// @Router /auth/reset-password [post]
func (h *Handler) resetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.ResetUserPasswordRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	err = h.service.ResetPassword(r.Context(), requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadRequest):
			h.errorResponse(w, r, http.StatusBadRequest, "Invalid request")
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	h.messageResponse(w, r, "Password has been reset successfully")
}

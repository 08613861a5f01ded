package handler

import (
	"net/http"

	"github.com/isodigm/blogcms/internal/api"
	"github.com/isodigm/blogcms/internal/domain"
	"github.com/isodigm/blogcms/internal/errors"
	"github.com/isodigm/blogcms/internal/middleware"
	"github.com/isodigm/blogcms/internal/utils"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	token, user, err := h.auth.Login(domain.Credentials{Username: body.Username, Password: body.Password})
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.LoginResponse{
		Login: true,
		Token: token,
		User:  api.NewUserResponse(user),
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body api.RegisterRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	user, err := h.auth.Register(registration(body))
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.RegisterResponse{
		Registered: true,
		User:       api.NewUserResponse(user),
	})
}

// RegisterUser creates an account on behalf of an admin; the email skips
// verification.
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var body api.AdminRegisterRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	user, err := h.auth.RegisterByAdmin(registration(body.RegisterRequest), body.Admin)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.RegisterResponse{
		Registered: true,
		User:       api.NewUserResponse(user),
	})
}

// VerifyEmail consumes the token from the emailed link's query string.
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.VerifyEmail(r.URL.Query().Get("token"))
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.VerifyEmailResponse{
		Verified: true,
		User:     api.NewUserResponse(user),
	})
}

func (h *Handler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var body api.ResendVerificationRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.auth.ResendVerification(body.Email); err != nil {
		utils.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Verification email sent"})
}

// Me returns the account behind the presented token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		utils.WriteError(w, errors.Unauthorized("Please sign in"))
		return
	}
	writeJSON(w, http.StatusOK, api.NewUserResponse(*user))
}

func registration(body api.RegisterRequest) domain.Registration {
	return domain.Registration{
		Username:   body.Username,
		Password:   body.Password,
		Email:      body.Email,
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		MiddleName: body.MiddleName,
	}
}

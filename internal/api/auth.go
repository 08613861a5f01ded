package api

import (
	"time"

	"github.com/isodigm/blogcms/internal/domain"
)

// Request DTOs

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	MiddleName string `json:"middle_name,omitempty"`
}

// AdminRegisterRequest is RegisterRequest plus the admin flag; only reachable
// through the admin-guarded route.
type AdminRegisterRequest struct {
	RegisterRequest
	Admin bool `json:"admin,omitempty"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Response DTOs

// UserResponse never carries the password hash or verification token.
type UserResponse struct {
	Id            domain.UserId `json:"id"`
	Username      string        `json:"username"`
	Email         string        `json:"email"`
	FirstName     string        `json:"first_name,omitempty"`
	LastName      string        `json:"last_name,omitempty"`
	MiddleName    string        `json:"middle_name,omitempty"`
	Admin         bool          `json:"admin"`
	EmailVerified bool          `json:"email_verified"`
	CreatedAt     time.Time     `json:"created_at"`
}

type LoginResponse struct {
	Login bool         `json:"login"`
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type RegisterResponse struct {
	Registered bool         `json:"registered"`
	User       UserResponse `json:"user"`
}

type VerifyEmailResponse struct {
	Verified bool         `json:"verified"`
	User     UserResponse `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func NewUserResponse(user domain.User) UserResponse {
	return UserResponse{
		Id:            user.Id,
		Username:      user.Username,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		MiddleName:    user.MiddleName,
		Admin:         user.Admin,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}
}

package domain

import (
	"strings"
	"time"
)

type UserId = int64

// User is an account record. Password is stored only as a bcrypt hash.
// VerificationToken and VerificationSentAt are either both set or both empty:
// they exist only while the account is unverified with a pending token.
type User struct {
	Id                 UserId
	Username           string
	PassHash           string
	Email              string
	FirstName          string
	LastName           string
	MiddleName         string
	Admin              bool
	EmailVerified      bool
	VerificationToken  string
	VerificationSentAt *time.Time
	CreatedAt          time.Time
}

// DisplayName is what verification emails address the user by.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// HasPendingVerification reports whether a verification token is outstanding.
func (u *User) HasPendingVerification() bool {
	return u.VerificationToken != "" && u.VerificationSentAt != nil
}

// Credentials is the login request payload at the service boundary.
type Credentials struct {
	Username string
	Password string
}

// Registration carries the validated register request fields. Password is
// plaintext here and must never be persisted or logged as-is.
type Registration struct {
	Username   string
	Password   string
	Email      string
	FirstName  string
	LastName   string
	MiddleName string
}

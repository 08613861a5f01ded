package service

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isodigm/blogcms/internal/config"
	"github.com/isodigm/blogcms/internal/domain"
	"github.com/isodigm/blogcms/internal/errors"
	"github.com/isodigm/blogcms/internal/logger"
	"github.com/isodigm/blogcms/internal/sanitize"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(creds domain.Credentials) (string, domain.User, error)
	Register(reg domain.Registration) (domain.User, error)
	RegisterByAdmin(reg domain.Registration, admin bool) (domain.User, error)
	VerifyEmail(token string) (domain.User, error)
	ResendVerification(email string) error
	User(id domain.UserId) (domain.User, error)
}

type Auth struct {
	storage AuthStorage
	email   Email
	jwt     Jwt
	cfg     *config.Config
	now     func() time.Time
}

type AuthStorage interface {
	SaveUser(user domain.User) (domain.UserId, error)
	User(id domain.UserId) (domain.User, error)
	UserByUsername(username string) (domain.User, error)
	UserByEmail(email string) (domain.User, error)
	UserByVerificationToken(token string) (domain.User, error)
	UpdateUser(user domain.User) error
}

type Email interface {
	SendVerificationEmail(toAddress, displayName, token string) error
	IsCorrect(email string) error
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

func NewAuth(storage AuthStorage, email Email, jwt Jwt, cfg *config.Config) *Auth {
	return &Auth{
		storage: storage,
		email:   email,
		jwt:     jwt,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Login checks the credentials and returns an access token with the account.
// Non-admin accounts with an unverified email are rejected even on a correct
// password, with an error the client can tell apart from bad credentials.
func (a *Auth) Login(creds domain.Credentials) (string, domain.User, error) {
	user, err := a.storage.UserByUsername(creds.Username)
	if err != nil {
		// to not leak existing users
		if errors.IsNotFound(err) {
			return "", domain.User{}, errors.Unauthorized("Invalid credentials")
		}
		return "", domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		logger.Log.Warn("password verification failed", "username", creds.Username)
		return "", domain.User{}, errors.Unauthorized("Invalid credentials")
	}

	// Admins stay functional even if their email flag is flipped out-of-band.
	if !user.Admin && !user.EmailVerified {
		return "", domain.User{}, errors.VerificationRequired()
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		return "", domain.User{}, err
	}
	return token, user, nil
}

// Register creates an unverified account and emails a verification link.
// A mail delivery failure does not fail registration; the user can request
// a resend later.
func (a *Auth) Register(reg domain.Registration) (domain.User, error) {
	user, err := a.newUser(reg)
	if err != nil {
		return domain.User{}, err
	}

	sentAt := a.now().UTC()
	user.VerificationToken = generateVerificationToken()
	user.VerificationSentAt = &sentAt

	id, err := a.storage.SaveUser(user)
	if err != nil {
		return domain.User{}, err
	}
	user.Id = id

	if err := a.email.SendVerificationEmail(user.Email, user.DisplayName(), user.VerificationToken); err != nil {
		logger.Log.Warn("failed to send verification email", "user_id", user.Id, "error", err)
	}
	return user, nil
}

// RegisterByAdmin creates an account on behalf of an administrator. The email
// is trusted, so the account is verified immediately and no mail is sent.
func (a *Auth) RegisterByAdmin(reg domain.Registration, admin bool) (domain.User, error) {
	user, err := a.newUser(reg)
	if err != nil {
		return domain.User{}, err
	}
	user.Admin = admin
	user.EmailVerified = true

	id, err := a.storage.SaveUser(user)
	if err != nil {
		return domain.User{}, err
	}
	user.Id = id
	return user, nil
}

// VerifyEmail consumes a verification token: the account is marked verified
// and the token cleared in one write, so a second use of the same link fails.
func (a *Auth) VerifyEmail(token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, errors.BadRequest("Verification token is required")
	}

	user, err := a.storage.UserByVerificationToken(token)
	if err != nil {
		if errors.IsNotFound(err) {
			return domain.User{}, &errors.ErrorWithStatusCode{
				Message:    "Invalid verification token",
				StatusCode: http.StatusBadRequest,
				Code:       errors.CodeInvalidToken,
			}
		}
		return domain.User{}, err
	}

	if user.VerificationSentAt == nil || a.now().After(user.VerificationSentAt.Add(a.cfg.VerificationTTL())) {
		return domain.User{}, &errors.ErrorWithStatusCode{
			Message:    "Verification token expired. Please request a new one",
			StatusCode: http.StatusBadRequest,
			Code:       errors.CodeExpiredToken,
		}
	}

	user.EmailVerified = true
	user.VerificationToken = ""
	user.VerificationSentAt = nil
	if err := a.storage.UpdateUser(user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// ResendVerification issues a fresh token and emails it. The new token
// replaces the old one, so earlier links stop working. An unknown email
// returns success to avoid leaking which addresses are registered.
func (a *Auth) ResendVerification(email string) error {
	email = strings.ToLower(email)
	if err := a.email.IsCorrect(email); err != nil {
		return err
	}

	user, err := a.storage.UserByEmail(email)
	if err != nil {
		if errors.IsNotFound(err) {
			logger.Log.Warn("verification resend requested for unknown email")
			return nil
		}
		return err
	}
	if user.EmailVerified {
		return errors.AlreadyVerified()
	}

	sentAt := a.now().UTC()
	user.VerificationToken = generateVerificationToken()
	user.VerificationSentAt = &sentAt
	if err := a.storage.UpdateUser(user); err != nil {
		return err
	}

	// The fresh token is already persisted; delivery trouble must not turn
	// into an error response the caller can use to probe for addresses.
	if err := a.email.SendVerificationEmail(user.Email, user.DisplayName(), user.VerificationToken); err != nil {
		logger.Log.Error("failed to send verification email", "user_id", user.Id, "error", err)
	}
	return nil
}

func (a *Auth) User(id domain.UserId) (domain.User, error) {
	return a.storage.User(id)
}

func (a *Auth) newUser(reg domain.Registration) (domain.User, error) {
	email := strings.ToLower(reg.Email)
	if err := a.email.IsCorrect(email); err != nil {
		return domain.User{}, err
	}
	username := sanitize.Strict(reg.Username)
	if username == "" {
		return domain.User{}, errors.BadRequest("Username is required")
	}
	firstName := sanitize.Strict(reg.FirstName)
	lastName := sanitize.Strict(reg.LastName)
	if firstName == "" || lastName == "" {
		return domain.User{}, errors.BadRequest("First and last name are required")
	}
	if len(reg.Password) < 8 {
		return domain.User{}, errors.BadRequest("Password must be at least 8 characters")
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, err
	}

	return domain.User{
		Username:   username,
		PassHash:   string(passHash),
		Email:      email,
		FirstName:  firstName,
		LastName:   lastName,
		MiddleName: sanitize.Strict(reg.MiddleName),
	}, nil
}

// generateVerificationToken returns 64 hex characters, matching the column
// width and the link format.
func generateVerificationToken() string {
	raw := uuid.NewString() + uuid.NewString()
	return strings.ReplaceAll(raw, "-", "")
}

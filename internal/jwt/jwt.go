// Package jwt issues and verifies the signed bearer tokens that back
// sessions. Tokens are self-contained: nothing is persisted and there is no
// server-side revocation, expiry is the only termination mechanism.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/isodigm/blogcms/internal/domain"
	internal_errors "github.com/isodigm/blogcms/internal/errors"
	"github.com/isodigm/blogcms/internal/logger"
)

type TokenService interface {
	NewToken(user domain.User) (string, error)
	DecodeToken(jwtStr string) (domain.UserId, bool, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
	now       func() time.Time // test seam
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey: secretKey, ttl: ttl, now: time.Now}
}

// NewToken signs a token binding the user id, issued-at and expiry.
// The admin claim lets the access guard short-circuit before a storage hit;
// admin-gated operations still reload the account.
func (j *Jwt) NewToken(user domain.User) (string, error) {
	issuedAt := j.now()
	claims := jwt.MapClaims{
		"uid":   user.Id,
		"admin": user.Admin,
		"iat":   issuedAt.Unix(),
		"exp":   issuedAt.Add(j.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", internal_errors.New("Can't create token", 500)
	}

	return tokenString, nil
}

// DecodeToken verifies signature and expiry and returns the subject's user id
// and admin claim. Expired, malformed and tampered tokens are deliberately
// indistinguishable to the caller: all yield the same invalid-token error.
func (j *Jwt) DecodeToken(jwtStr string) (domain.UserId, bool, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, invalidTokenError()
		}
		return []byte(j.secretKey), nil
	}, jwt.WithTimeFunc(func() time.Time { return j.now() }))
	if err != nil {
		logger.Log.Warn("token verification failed", "error", err)
		return 0, false, invalidTokenError()
	}
	if !token.Valid {
		return 0, false, invalidTokenError()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false, invalidTokenError()
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return 0, false, invalidTokenError()
	}
	admin, _ := claims["admin"].(bool)

	return domain.UserId(uid), admin, nil
}

func invalidTokenError() *internal_errors.ErrorWithStatusCode {
	e := internal_errors.Unauthorized("Invalid or expired token")
	e.Code = internal_errors.CodeInvalidToken
	return e
}

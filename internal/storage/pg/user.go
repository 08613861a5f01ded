package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/isodigm/blogcms/internal/domain"
	internal_errors "github.com/isodigm/blogcms/internal/errors"
)

const userColumns = `id, username, password_hash, email, first_name, last_name, middle_name,
	is_admin, email_verified, verification_token, verification_sent_at, created_at`

// =========================================================================
// Public Methods (satisfy the service.AuthStorage interface)
// =========================================================================

// SaveUser inserts a new account inside a transaction so a uniqueness
// violation never leaves a partial record.
func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	ctx, cancel := opContext()
	defer cancel()

	var id domain.UserId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveUser(tx, user)
		return err
	})
	return id, err
}

// User fetches an account by id using the main connection pool.
func (s *Storage) User(id domain.UserId) (domain.User, error) {
	return s.scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

func (s *Storage) UserByUsername(username string) (domain.User, error) {
	return s.scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE username = $1", username))
}

func (s *Storage) UserByEmail(email string) (domain.User, error) {
	return s.scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = $1", email))
}

func (s *Storage) UserByVerificationToken(token string) (domain.User, error) {
	return s.scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE verification_token = $1", token))
}

// UpdateUser persists verification state and profile changes for an existing
// account. The whole record is written so token clearing and the verified
// flag land atomically.
func (s *Storage) UpdateUser(user domain.User) error {
	ctx, cancel := opContext()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updateUser(tx, user)
	})
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) saveUser(q Querier, user domain.User) (domain.UserId, error) {
	var id domain.UserId
	err := q.QueryRow(`
        INSERT INTO users(username, password_hash, email, first_name, last_name, middle_name,
                          is_admin, email_verified, verification_token, verification_sent_at)
        VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		user.Username, user.PassHash, user.Email, user.FirstName, user.LastName, user.MiddleName,
		user.Admin, user.EmailVerified, nullString(user.VerificationToken), user.VerificationSentAt,
	).Scan(&id)
	if err != nil {
		return -1, conflictOr(err, "Username or email already exists", "failed to insert user")
	}
	return id, nil
}

func (s *Storage) updateUser(q Querier, user domain.User) error {
	result, err := q.Exec(`
        UPDATE users SET username = $1, password_hash = $2, email = $3,
            first_name = $4, last_name = $5, middle_name = $6,
            is_admin = $7, email_verified = $8,
            verification_token = $9, verification_sent_at = $10
        WHERE id = $11`,
		user.Username, user.PassHash, user.Email,
		user.FirstName, user.LastName, user.MiddleName,
		user.Admin, user.EmailVerified,
		nullString(user.VerificationToken), user.VerificationSentAt,
		user.Id,
	)
	if err != nil {
		return conflictOr(err, "Username or email already exists", "failed to update user")
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for user update: %w", err)
	}
	if rowsAffected == 0 {
		return internal_errors.NotFound("User not found")
	}
	return nil
}

func (s *Storage) scanUser(row *sql.Row) (domain.User, error) {
	var user domain.User
	var verificationToken sql.NullString
	err := row.Scan(&user.Id, &user.Username, &user.PassHash, &user.Email,
		&user.FirstName, &user.LastName, &user.MiddleName,
		&user.Admin, &user.EmailVerified, &verificationToken, &user.VerificationSentAt,
		&user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	user.VerificationToken = verificationToken.String
	return user, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

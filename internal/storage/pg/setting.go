package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/isodigm/blogcms/internal/domain"
	internal_errors "github.com/isodigm/blogcms/internal/errors"
)

// =========================================================================
// Public Methods (satisfy the service.SettingsStorage interface)
// =========================================================================

func (s *Storage) Setting(key string) (domain.Setting, error) {
	var setting domain.Setting
	err := s.db.QueryRow("SELECT key, value FROM settings WHERE key = $1", key).
		Scan(&setting.Key, &setting.Value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Setting{}, internal_errors.NotFound("Setting not found")
		}
		return domain.Setting{}, fmt.Errorf("failed to query setting: %w", err)
	}
	return setting, nil
}

func (s *Storage) Settings() ([]domain.Setting, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings ORDER BY key ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	var settings []domain.Setting
	for rows.Next() {
		var setting domain.Setting
		if err := rows.Scan(&setting.Key, &setting.Value); err != nil {
			return nil, fmt.Errorf("failed to scan setting row: %w", err)
		}
		settings = append(settings, setting)
	}
	return settings, rows.Err()
}

func (s *Storage) UpsertSetting(setting domain.Setting) error {
	ctx, cancel := opContext()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.upsertSetting(tx, setting)
	})
}

// UpsertSettings writes a batch atomically so a partial site configuration is
// never observable.
func (s *Storage) UpsertSettings(settings []domain.Setting) error {
	ctx, cancel := opContext()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, setting := range settings {
			if err := s.upsertSetting(tx, setting); err != nil {
				return err
			}
		}
		return nil
	})
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) upsertSetting(q Querier, setting domain.Setting) error {
	_, err := q.Exec(`
        INSERT INTO settings(key, value) VALUES($1, $2)
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		setting.Key, setting.Value,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert setting %q: %w", setting.Key, err)
	}
	return nil
}

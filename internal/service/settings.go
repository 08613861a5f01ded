package service

import (
	"github.com/isodigm/blogcms/internal/domain"
	"github.com/isodigm/blogcms/internal/errors"
	"github.com/isodigm/blogcms/internal/sanitize"
)

type SettingsService interface {
	Settings() (map[string]string, error)
	UpdateSettings(values map[string]string) (map[string]string, error)
}

type SettingsStorage interface {
	Setting(key string) (domain.Setting, error)
	Settings() ([]domain.Setting, error)
	UpsertSetting(setting domain.Setting) error
	UpsertSettings(settings []domain.Setting) error
}

type Settings struct {
	storage SettingsStorage
}

func NewSettings(storage SettingsStorage) *Settings {
	return &Settings{storage: storage}
}

// Settings returns the whole key/value map with defaults filled in for keys
// that were never written.
func (s *Settings) Settings() (map[string]string, error) {
	stored, err := s.storage.Settings()
	if err != nil {
		return nil, err
	}
	values := map[string]string{
		"site_name": domain.DefaultSiteName,
	}
	for _, setting := range stored {
		values[setting.Key] = setting.Value
	}
	return values, nil
}

// UpdateSettings writes the given keys atomically and returns the resulting
// map. Values are stored as plain text.
func (s *Settings) UpdateSettings(values map[string]string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, errors.BadRequest("No settings provided")
	}

	batch := make([]domain.Setting, 0, len(values))
	for key, value := range values {
		if key == "" {
			return nil, errors.BadRequest("Setting key must not be empty")
		}
		batch = append(batch, domain.Setting{Key: key, Value: sanitize.Strict(value)})
	}
	if err := s.storage.UpsertSettings(batch); err != nil {
		return nil, err
	}
	return s.Settings()
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isodigm/blogcms/internal/domain"
)

// --- Mocks ---

type MockSettingsStorage struct {
	SettingFunc        func(key string) (domain.Setting, error)
	SettingsFunc       func() ([]domain.Setting, error)
	UpsertSettingFunc  func(setting domain.Setting) error
	UpsertSettingsFunc func(settings []domain.Setting) error
}

func (m *MockSettingsStorage) Setting(key string) (domain.Setting, error) {
	if m.SettingFunc != nil {
		return m.SettingFunc(key)
	}
	return domain.Setting{}, nil
}

func (m *MockSettingsStorage) Settings() ([]domain.Setting, error) {
	if m.SettingsFunc != nil {
		return m.SettingsFunc()
	}
	return nil, nil
}

func (m *MockSettingsStorage) UpsertSetting(setting domain.Setting) error {
	if m.UpsertSettingFunc != nil {
		return m.UpsertSettingFunc(setting)
	}
	return nil
}

func (m *MockSettingsStorage) UpsertSettings(settings []domain.Setting) error {
	if m.UpsertSettingsFunc != nil {
		return m.UpsertSettingsFunc(settings)
	}
	return nil
}

func TestSettingsDefaults(t *testing.T) {
	settings := NewSettings(&MockSettingsStorage{})

	values, err := settings.Settings()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSiteName, values["site_name"])
}

func TestSettingsStoredValuesOverrideDefaults(t *testing.T) {
	storage := &MockSettingsStorage{
		SettingsFunc: func() ([]domain.Setting, error) {
			return []domain.Setting{{Key: "site_name", Value: "My Blog"}}, nil
		},
	}
	settings := NewSettings(storage)

	values, err := settings.Settings()
	require.NoError(t, err)
	assert.Equal(t, "My Blog", values["site_name"])
}

func TestUpdateSettings(t *testing.T) {
	var written []domain.Setting
	storage := &MockSettingsStorage{
		UpsertSettingsFunc: func(settings []domain.Setting) error {
			written = settings
			return nil
		},
		SettingsFunc: func() ([]domain.Setting, error) {
			return []domain.Setting{{Key: "site_tagline", Value: "notes"}}, nil
		},
	}
	settings := NewSettings(storage)

	values, err := settings.UpdateSettings(map[string]string{"site_tagline": "notes"})
	require.NoError(t, err)
	require.Len(t, written, 1)
	assert.Equal(t, "site_tagline", written[0].Key)
	assert.Equal(t, "notes", values["site_tagline"])
}

func TestUpdateSettingsValidation(t *testing.T) {
	settings := NewSettings(&MockSettingsStorage{})

	_, err := settings.UpdateSettings(nil)
	require.Error(t, err)

	_, err = settings.UpdateSettings(map[string]string{"": "x"})
	require.Error(t, err)
}

func TestUpdateSettingsStripsMarkup(t *testing.T) {
	var written []domain.Setting
	storage := &MockSettingsStorage{
		UpsertSettingsFunc: func(settings []domain.Setting) error {
			written = settings
			return nil
		},
	}
	settings := NewSettings(storage)

	_, err := settings.UpdateSettings(map[string]string{"site_name": "<b>My</b> Blog"})
	require.NoError(t, err)
	require.Len(t, written, 1)
	assert.Equal(t, "My Blog", written[0].Value)
}

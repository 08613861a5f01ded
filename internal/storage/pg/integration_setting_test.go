package pg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isodigm/blogcms/internal/domain"
)

func TestUpsertSetting(t *testing.T) {
	require.NoError(t, storage.UpsertSetting(domain.Setting{Key: "site_name", Value: "My Blog"}))

	got, err := storage.Setting("site_name")
	require.NoError(t, err)
	assert.Equal(t, "My Blog", got.Value)

	// Upsert overwrites.
	require.NoError(t, storage.UpsertSetting(domain.Setting{Key: "site_name", Value: "Renamed"}))
	got, err = storage.Setting("site_name")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Value)

	_, err = storage.Setting("no_such_key")
	requireStatusCode(t, err, 404)
}

func TestUpsertSettingsBatch(t *testing.T) {
	batch := []domain.Setting{
		{Key: "site_tagline", Value: "Thoughts and notes"},
		{Key: "posts_per_page", Value: "10"},
	}
	require.NoError(t, storage.UpsertSettings(batch))

	settings, err := storage.Settings()
	require.NoError(t, err)

	values := make(map[string]string, len(settings))
	for _, setting := range settings {
		values[setting.Key] = setting.Value
	}
	assert.Equal(t, "Thoughts and notes", values["site_tagline"])
	assert.Equal(t, "10", values["posts_per_page"])
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/utilization-engine/config"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "https://api.teamup.com", cfg.Teamup.BaseURL)
	assert.Equal(t, "Holidays", cfg.HolidaySubcalendar)
	assert.Empty(t, cfg.FullyExcluded)
}

func TestLoad_FileAndEnvOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen: ":9090"
holiday_subcalendar: "Company Holidays"
teamup:
  calendar_key: "ks1234"
fully_excluded:
  - "Shared Calendar"
utilization_exempt:
  - "Pat"
status_synonyms:
  client_site: field
`), 0o600))

	t.Setenv("TEAMUP_API_KEY", "env-secret")
	t.Setenv("TEAMUP_CALENDAR_KEY", "")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "ks1234", cfg.Teamup.CalendarKey)
	assert.Equal(t, "env-secret", cfg.Teamup.APIKey)
	assert.Equal(t, []string{"Shared Calendar"}, cfg.FullyExcluded)
	assert.Equal(t, []string{"Pat"}, cfg.UtilizationExempt)
	assert.Equal(t, "field", cfg.StatusSynonyms["client_site"])
	assert.NoError(t, cfg.Validate())
}

func TestValidate_RequiresCredentials(t *testing.T) {
	cfg := config.Default()
	assert.Error(t, cfg.Validate())

	cfg.Teamup.CalendarKey = "ks1234"
	assert.Error(t, cfg.Validate(), "still missing the api key")

	cfg.Teamup.APIKey = "secret"
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MalformedFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [unclosed"), 0o600))

	_, err := config.Load(path)
	assert.Error(t, err)
}

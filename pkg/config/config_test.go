package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"RiskFill/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, "environment: test\n"))
	require.NoError(t, err)

	assert.Equal(t, "test", c.Environment)
	assert.Equal(t, 10*time.Second, c.Fred.Timeout)
	assert.Equal(t, 730, c.Backfill.WindowDays)
	assert.Equal(t, "risk_history.json", c.Backfill.Output)
	assert.Equal(t, "json", c.Backfill.Format)
	assert.Equal(t, models.DefaultSeries(), c.Fred.Series)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, 5*time.Minute, c.Cache.CleanupInterval)
	assert.Equal(t, 64, c.Cache.MemoryMaxSize)
	assert.Equal(t, 10*time.Minute, c.Cache.L1TTL)
}

func TestLoadRejectsUnknownIndicator(t *testing.T) {
	_, err := Load(writeConfig(t, `
fred:
  series:
    - id: VIXCLS
      indicator: volatility
`))
	assert.Error(t, err)
}

func TestLoadRejectsDuplicateIndicator(t *testing.T) {
	_, err := Load(writeConfig(t, `
fred:
  series:
    - id: DGS10
      indicator: yield_10y
    - id: GS10
      indicator: yield_10y
`))
	assert.ErrorContains(t, err, "listed twice")
}

func TestLoadRejectsBadFormat(t *testing.T) {
	_, err := Load(writeConfig(t, "backfill:\n  format: csv\n"))
	assert.Error(t, err)
}

func TestLoadWithEnvRequiresCredential(t *testing.T) {
	t.Setenv("FRED_API_KEY", "")
	_, err := LoadWithEnv(writeConfig(t, "environment: test\n"))
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("FRED_API_KEY", "secret")
	t.Setenv("RISKFILL_WINDOW_DAYS", "30")
	t.Setenv("RISKFILL_OUTPUT", "/tmp/out.json")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	c, err := LoadWithEnv(writeConfig(t, "fred:\n  api_key: from-yaml\n"))
	require.NoError(t, err)
	assert.Equal(t, "secret", c.Fred.APIKey)
	assert.Equal(t, 30, c.Backfill.WindowDays)
	assert.Equal(t, "/tmp/out.json", c.Backfill.Output)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
}

func TestLoadWithEnvMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("FRED_API_KEY", "secret")
	c, err := LoadWithEnv(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "dev", c.Environment)
	assert.Len(t, c.Fred.Series, 9)
}

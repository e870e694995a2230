package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_CreatesDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.xml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8089, cfg.Server.Port)
	assert.Equal(t, filepath.Join(dir, "data", "historian.duckdb"), cfg.Storage.HistorianPath)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<EquipmentEngine>")
	assert.Contains(t, string(data), "<PollIntervalSeconds>5</PollIntervalSeconds>")
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.xml")
	xmlDoc := `<EquipmentEngine>
  <Server><Port>9000</Port></Server>
  <Soe><TotalCap>500</TotalCap></Soe>
  <Advanced><TimeZone>UTC</TimeZone></Advanced>
</EquipmentEngine>`
	require.NoError(t, os.WriteFile(path, []byte(xmlDoc), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 500, cfg.Soe.TotalCap)
	assert.Equal(t, 2000, cfg.Soe.PerEquipmentCap)
	assert.Equal(t, "STW", cfg.Soe.StatusItem)
	assert.Equal(t, 60, cfg.Trend.WindowMinutes)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("malformed xml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.xml")
		require.NoError(t, os.WriteFile(path, []byte("<EquipmentEngine>"), 0644))
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("unknown time zone", func(t *testing.T) {
		path := filepath.Join(dir, "tz.xml")
		doc := "<EquipmentEngine><Advanced><TimeZone>Mars/Olympus</TimeZone></Advanced></EquipmentEngine>"
		require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestEnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "plant")

	t.Setenv("PORT", "7000")
	t.Setenv("DATA_DIR", dataDir)
	t.Setenv("EQUIPMENT_CATALOG", "/etc/engine/equipment.yaml")
	t.Setenv("ENGINE_TZ", "Europe/Berlin")

	cfg, err := LoadConfig(filepath.Join(dir, "config.xml"))
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, dataDir, cfg.Storage.DataDirectory)
	assert.Equal(t, filepath.Join(dataDir, "historian.duckdb"), cfg.Storage.HistorianPath)
	assert.Equal(t, "/etc/engine/equipment.yaml", cfg.Storage.EquipmentCatalog)
	assert.Equal(t, "Europe/Berlin", cfg.Advanced.TimeZone)

	t.Setenv("HISTORIAN_PATH", "/var/lib/engine/h.duckdb")
	cfg, err = LoadConfig(filepath.Join(dir, "config.xml"))
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/engine/h.duckdb", cfg.Storage.HistorianPath)
}

func TestDerivedSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trend.NavDebounceMs = 100
	cfg.Soe.StatusItem = "SW"

	opts := cfg.SoeOptions()
	assert.Equal(t, 2000, opts.PerEquipmentCap)
	assert.Equal(t, "SW", opts.Item)

	tc := cfg.TrendSettings(time.UTC)
	assert.Equal(t, 100*time.Millisecond, tc.NavDebounce)
	assert.Equal(t, time.Hour, tc.HistoryChunk)
	assert.Equal(t, time.UTC, tc.Location)

	assert.Equal(t, 5*time.Second, cfg.PollInterval())
	assert.Equal(t, 5*time.Minute, cfg.CleanupInterval())
	assert.Equal(t, "0.0.0.0:8089", cfg.GetServerAddr())
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Storage.DataDirectory = filepath.Join(dir, "data")
	cfg.Storage.HistorianPath = filepath.Join(dir, "hist", "h.duckdb")

	require.NoError(t, cfg.EnsureDirectories())
	assert.DirExists(t, filepath.Join(dir, "data"))
	assert.DirExists(t, filepath.Join(dir, "hist"))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gabrielcapilla/musify/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViperConfigService_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := NewViperConfigService(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, domain.SongCollection, cfg.SongCollection)
	assert.Equal(t, filepath.Join(dir, "musify.db"), cfg.DBPath)
	assert.Equal(t, 50, cfg.HistoryLimit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.MetricsAddr)

	_, err = os.Stat(filepath.Join(dir, "config.yml"))
	require.NoError(t, err, "defaults should be written on first load")
}

func TestViperConfigService_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	content := "songCollection: tracks\nhistoryLimit: 5\nuserAgent: test-agent\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0644))

	cfg, err := NewViperConfigService(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, "tracks", cfg.SongCollection)
	assert.Equal(t, 5, cfg.HistoryLimit)
	assert.Equal(t, "test-agent", cfg.UserAgent)
}

func TestViperConfigService_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MUSIFY_SONGCOLLECTION", "from-env")

	cfg, err := NewViperConfigService(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.SongCollection)
}

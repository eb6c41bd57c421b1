package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "data/knowledge_base.yaml", cfg.Data.KnowledgeBase)
	assert.Equal(t, "data/faq_index.json", cfg.Data.FAQIndex)
	assert.Equal(t, 0.2, cfg.Matcher.Threshold)
	assert.Equal(t, 3, cfg.Matcher.Related)
	assert.Equal(t, ":8080", cfg.Server.Listen)
}

func TestLoad_PartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data:\n  knowledge_base: /srv/kb.yaml\nmatcher:\n  threshold: 0.35\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/kb.yaml", cfg.Data.KnowledgeBase)
	assert.Equal(t, "data/faq_index.json", cfg.Data.FAQIndex)
	assert.Equal(t, 0.35, cfg.Matcher.Threshold)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data: [oops"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADVISOR_INDEX_PATH", "/tmp/idx.json")
	t.Setenv("ADVISOR_LISTEN", ":9090")
	t.Setenv("ADVISOR_MATCH_THRESHOLD", "0.4")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/idx.json", cfg.Data.FAQIndex)
	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, 0.4, cfg.Matcher.Threshold)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := defaultConfig()
	want.Server.Listen = ":7000"
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

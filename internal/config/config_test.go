package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.toml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "vmap-rag", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr())
	assert.Equal(t, 800, cfg.RAG.ChunkSize)
	assert.Equal(t, 100, cfg.RAG.ChunkOverlap)
	assert.Equal(t, 5, cfg.RAG.TopK)
	assert.Equal(t, "memory", cfg.VectorStore.Driver)
	assert.Equal(t, "uploads", cfg.Upload.Dir)
	assert.Equal(t, "rag.query.log", cfg.RabbitMQ.QueryLogQueue)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[app]
port = 9000

[rag]
chunk_size = 400

[vector_store]
driver = "mysql"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("RAG_CHUNK_SIZE", "256")
	t.Setenv("LLM_MODEL", "qwen2.5:7b")

	cfg, err := Load()
	require.NoError(t, err)

	// Env beats file beats defaults.
	assert.Equal(t, 9000, cfg.App.Port)
	assert.Equal(t, "mysql", cfg.VectorStore.Driver)
	assert.Equal(t, 256, cfg.RAG.ChunkSize)
	assert.Equal(t, "qwen2.5:7b", cfg.LLM.Model)
	assert.Equal(t, 100, cfg.RAG.ChunkOverlap)
}

func TestGetEnvAsInt_IgnoresGarbage(t *testing.T) {
	t.Setenv("RAG_TOP_K", "not-a-number")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.RAG.TopK)
}

func TestMySQLDSN(t *testing.T) {
	cfg := defaultConfig()
	cfg.MySQL.User = "app"
	cfg.MySQL.Password = "pw"
	cfg.MySQL.Host = "db"
	cfg.MySQL.Port = 3307
	cfg.MySQL.DB = "vmap"
	cfg.MySQL.Params = "parseTime=true"

	assert.Equal(t, "app:pw@tcp(db:3307)/vmap?parseTime=true", cfg.MySQLDSN())
}

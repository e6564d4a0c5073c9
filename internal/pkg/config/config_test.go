package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullYAML задает все разделы конфигурации.
const fullYAML = `
server:
  host: "127.0.0.1"
  port: 8081
  shutdown_timeout: 5s
  pid_file: "/tmp/fb.pid"
export:
  root: "~/facebook-export"
  datasets: ["posts", "messages"]
  patterns_file: "locales/en.yml"
layout:
  posts_dir: "your_activity/posts"
output:
  dir: "result"
  format: "sqlite"
processing:
  task_timeout: 120s
  cache_ttl: 30m
client:
  server_url: "http://fb.local:9000"
  poll_interval: 2s
logging:
  level: "debug"
  format: "text"
`

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func TestLoadFromYAML(t *testing.T) {
	t.Run("success with full config", func(t *testing.T) {
		path := createTempConfigFile(t, fullYAML)
		cfg := defaultConfig()
		err := loadFromYAML(path, cfg)
		require.NoError(t, err)

		assert.Equal(t, "127.0.0.1", cfg.Server.Host)
		assert.Equal(t, 8081, cfg.Server.Port)
		assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, "/tmp/fb.pid", cfg.Server.PidFile)
		assert.Equal(t, "127.0.0.1:8081", cfg.Address())

		assert.Equal(t, "~/facebook-export", cfg.Export.Root)
		assert.Equal(t, []string{"posts", "messages"}, cfg.Export.Datasets)
		assert.Equal(t, "locales/en.yml", cfg.Export.PatternsFile)

		assert.Equal(t, "your_activity/posts", cfg.Layout.PostsDir)
		assert.Equal(t, DefaultMessagesDir, cfg.Layout.MessagesDir, "незаданные пути остаются по умолчанию")

		assert.Equal(t, "sqlite", cfg.Output.Format)
		assert.Equal(t, 120*time.Second, cfg.Processing.TaskTimeout)
		assert.Equal(t, 30*time.Minute, cfg.Processing.CacheTTL)
		assert.Equal(t, DefaultTaskTTL, cfg.Processing.TaskTTL)
		assert.Equal(t, "http://fb.local:9000", cfg.Client.ServerURL)
		assert.Equal(t, 2*time.Second, cfg.Client.PollInterval)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "text", cfg.Logging.Format)

		assert.NoError(t, cfg.Validate())
	})

	t.Run("file not found is not an error", func(t *testing.T) {
		cfg := defaultConfig()
		err := loadFromYAML("non_existent_file.yml", cfg)
		assert.NoError(t, err)
		assert.Equal(t, defaultConfig(), cfg)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := createTempConfigFile(t, "invalid yaml: {")
		cfg := defaultConfig()
		err := loadFromYAML(path, cfg)
		assert.Error(t, err)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("переменные окружения перекрывают YAML", func(t *testing.T) {
		path := createTempConfigFile(t, fullYAML)
		t.Setenv("FBREADER_SERVER_PORT", "9090")
		t.Setenv("FBREADER_EXPORT_DATASETS", "comments,interests")
		t.Setenv("FBREADER_PROCESSING_CACHE_TTL", "5m")
		t.Setenv("FBREADER_LAYOUT_MESSAGES_DIR", "inbox")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "127.0.0.1", cfg.Server.Host)
		assert.Equal(t, []string{"comments", "interests"}, cfg.Export.Datasets)
		assert.Equal(t, 5*time.Minute, cfg.Processing.CacheTTL)
		assert.Equal(t, "inbox", cfg.Layout.MessagesDir)
	})

	t.Run("без файла используются значения по умолчанию", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultServerPort, cfg.Server.Port)
		assert.Equal(t, DefaultOutputFormat, cfg.Output.Format)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("некорректное значение окружения", func(t *testing.T) {
		t.Setenv("FBREADER_SERVER_PORT", "many")
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
		assert.Error(t, err)
	})
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FBREADER_OUTPUT_FORMAT=xlsx\n"), 0644))
	t.Setenv("FBREADER_OUTPUT_FORMAT", "")
	os.Unsetenv("FBREADER_OUTPUT_FORMAT")

	require.NoError(t, loadDotEnv(path, filepath.Join(t.TempDir(), "absent.env")))
	cfg := defaultConfig()
	require.NoError(t, loadFromEnv(cfg))
	assert.Equal(t, "xlsx", cfg.Output.Format)
}

func TestValidate(t *testing.T) {
	validConfig := func(t *testing.T) *Config {
		cfg := defaultConfig()
		err := loadFromYAML(createTempConfigFile(t, fullYAML), cfg)
		require.NoError(t, err)
		return cfg
	}

	testCases := []struct {
		name    string
		mutator func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"invalid port", func(c *Config) { c.Server.Port = 0 }, true},
		{"invalid shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, true},
		{"invalid read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, true},
		{"unknown dataset", func(c *Config) { c.Export.Datasets = []string{"likes"} }, true},
		{"empty layout path", func(c *Config) { c.Layout.Comments = "" }, true},
		{"invalid output format", func(c *Config) { c.Output.Format = "pdf" }, true},
		{"empty output dir", func(c *Config) { c.Output.Dir = "" }, true},
		{"console without dir", func(c *Config) { c.Output.Format = "console"; c.Output.Dir = "" }, false},
		{"invalid task_timeout", func(c *Config) { c.Processing.TaskTimeout = -1 }, true},
		{"no task timeout", func(c *Config) { c.Processing.TaskTimeout = 0 }, false},
		{"invalid cache_ttl", func(c *Config) { c.Processing.CacheTTL = 0 }, true},
		{"invalid task_ttl", func(c *Config) { c.Processing.TaskTTL = 0 }, true},
		{"empty server url", func(c *Config) { c.Client.ServerURL = "" }, true},
		{"invalid logging level", func(c *Config) { c.Logging.Level = "wrong" }, true},
		{"invalid logging format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig(t)
			tc.mutator(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

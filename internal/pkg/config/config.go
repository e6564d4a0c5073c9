// Package config предоставляет управление конфигурацией приложения
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"facebook-data-reader/internal/domain"
)

// Server содержит конфигурацию сервера
type Server struct {
	Host            string        `json:"host" yaml:"host"`
	Port            int           `json:"port" yaml:"port"`
	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout" split_words:"true"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout" split_words:"true"`
	IdleTimeout     time.Duration `json:"idle_timeout" yaml:"idle_timeout" split_words:"true"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" split_words:"true"`
	CleanupInterval time.Duration `json:"cleanup_interval" yaml:"cleanup_interval" split_words:"true"`
	// Файлы фонового режима
	PidFile string `json:"pid_file" yaml:"pid_file" split_words:"true"`
	LogFile string `json:"log_file" yaml:"log_file" split_words:"true"`
}

// Export содержит параметры загружаемого экспорта
type Export struct {
	Root         string   `json:"root" yaml:"root"`
	Datasets     []string `json:"datasets" yaml:"datasets"` // пусто - все наборы
	PatternsFile string   `json:"patterns_file" yaml:"patterns_file" split_words:"true"`
}

// Layout содержит относительные пути файлов внутри экспорта
type Layout struct {
	Friends       string `json:"friends" yaml:"friends"`
	AddressBook   string `json:"address_book" yaml:"address_book" split_words:"true"`
	Comments      string `json:"comments" yaml:"comments"`
	Interests     string `json:"interests" yaml:"interests"`
	SearchHistory string `json:"search_history" yaml:"search_history" split_words:"true"`
	PostsDir      string `json:"posts_dir" yaml:"posts_dir" split_words:"true"`
	MessagesDir   string `json:"messages_dir" yaml:"messages_dir" split_words:"true"`
}

// Output содержит параметры сохранения результата
type Output struct {
	Dir    string `json:"dir" yaml:"dir"`
	Format string `json:"format" yaml:"format"` // csv, xlsx, sqlite, console
	Force  bool   `json:"force" yaml:"force"`
}

// Processing содержит конфигурацию обработки
type Processing struct {
	TaskTimeout time.Duration `json:"task_timeout" yaml:"task_timeout" split_words:"true"` // 0 - без ограничений
	CacheTTL    time.Duration `json:"cache_ttl" yaml:"cache_ttl" split_words:"true"`
	TaskTTL     time.Duration `json:"task_ttl" yaml:"task_ttl" split_words:"true"`
}

// Client содержит конфигурацию HTTP-клиента
type Client struct {
	ServerURL    string        `json:"server_url" yaml:"server_url" split_words:"true"`
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval" split_words:"true"`
	PollTimeout  time.Duration `json:"poll_timeout" yaml:"poll_timeout" split_words:"true"`
}

// Logging содержит конфигурацию логирования
type Logging struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // text, json
}

// Config содержит конфигурацию приложения
type Config struct {
	Server     Server     `json:"server" yaml:"server"`
	Export     Export     `json:"export" yaml:"export"`
	Layout     Layout     `json:"layout" yaml:"layout"`
	Output     Output     `json:"output" yaml:"output"`
	Processing Processing `json:"processing" yaml:"processing"`
	Client     Client     `json:"client" yaml:"client"`
	Logging    Logging    `json:"logging" yaml:"logging"`
}

// LoadConfig загружает конфигурацию: значения по умолчанию, затем YAML-файл,
// затем .env файл и переменные окружения с префиксом FBREADER_.
// Отсутствие YAML-файла или .env не является ошибкой.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	cfg := defaultConfig()
	if err := loadFromYAML(path, cfg); err != nil {
		return nil, err
	}

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromYAML загружает конфигурацию из YAML-файла поверх уже заданных значений
func loadFromYAML(filename string, cfg *Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("не удалось прочитать файл конфигурации %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("не удалось разобрать YAML конфигурацию: %w", err)
	}

	return nil
}

// loadDotEnv загружает переменные из .env файлов, не перезаписывая уже установленные
func loadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("не удалось загрузить %s: %w", f, err)
		}
	}
	return nil
}

// loadFromEnv перекрывает значения переменными окружения
func loadFromEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("не удалось загрузить конфигурацию из env: %w", err)
	}
	return nil
}

// Address возвращает адрес сервера в формате "host:port"
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate проверяет, являются ли значения конфигурации допустимыми
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port должен быть действительным номером порта (1-65535)")
	}

	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.IdleTimeout <= 0 {
		return fmt.Errorf("server: таймауты должны быть положительными")
	}

	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout должно быть положительным")
	}

	if c.Server.CleanupInterval <= 0 {
		return fmt.Errorf("server.cleanup_interval должно быть положительным")
	}

	for _, name := range c.Export.Datasets {
		if _, ok := domain.ParseDataset(name); !ok {
			return fmt.Errorf("export.datasets: неизвестный набор данных %q", name)
		}
	}

	if c.Layout.Friends == "" || c.Layout.AddressBook == "" || c.Layout.Comments == "" ||
		c.Layout.Interests == "" || c.Layout.SearchHistory == "" ||
		c.Layout.PostsDir == "" || c.Layout.MessagesDir == "" {
		return fmt.Errorf("layout: все пути должны быть заданы")
	}

	switch c.Output.Format {
	case "csv", "xlsx", "sqlite", "console":
	default:
		return fmt.Errorf("output.format должен быть одним из: csv, xlsx, sqlite, console")
	}

	if c.Output.Format != "console" && c.Output.Dir == "" {
		return fmt.Errorf("output.dir не может быть пустым")
	}

	if c.Processing.TaskTimeout < 0 {
		return fmt.Errorf("processing.task_timeout должно быть неотрицательным (0 для отсутствия ограничений)")
	}

	if c.Processing.CacheTTL <= 0 {
		return fmt.Errorf("processing.cache_ttl должно быть положительным")
	}

	if c.Processing.TaskTTL <= 0 {
		return fmt.Errorf("processing.task_ttl должно быть положительным")
	}

	if c.Client.ServerURL == "" {
		return fmt.Errorf("client.server_url не может быть пустым")
	}

	if c.Client.PollInterval <= 0 || c.Client.PollTimeout <= 0 {
		return fmt.Errorf("client: интервал и таймаут опроса должны быть положительными")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// all good
	default:
		return fmt.Errorf("logging.level должен быть одним из: debug, info, warn, error")
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format должен быть одним из: text, json")
	}

	return nil
}

package config

import "time"

// Default values for configuration.
const (
	// Server defaults
	DefaultServerHost      = "0.0.0.0"
	DefaultServerPort      = 8080
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultCleanupInterval = 1 * time.Hour
	DefaultPidFile         = "fbreader-server.pid"
	DefaultDaemonLogFile   = "fbreader-server.log"

	// Processing defaults
	DefaultTaskTimeout = 600 * time.Second
	DefaultCacheTTL    = 60 * time.Minute
	DefaultTaskTTL     = 24 * time.Hour

	// Output defaults
	DefaultOutputDir    = "out"
	DefaultOutputFormat = "csv"

	// Client defaults
	DefaultClientServerURL    = "http://localhost:8080"
	DefaultClientPollInterval = 1 * time.Second
	DefaultClientPollTimeout  = 10 * time.Minute

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Layout defaults
	DefaultFriendsPath       = "friends/friends.json"
	DefaultAddressBookPath   = "about_you/your_address_books.json"
	DefaultCommentsPath      = "comments/comments.json"
	DefaultInterestsPath     = "ads_and_businesses/ads_interests.json"
	DefaultSearchHistoryPath = "search_history/your_search_history.json"
	DefaultPostsDir          = "posts"
	DefaultMessagesDir       = "messages"
)

// EnvPrefix - префикс переменных окружения.
const EnvPrefix = "FBREADER"

// DefaultConfigFile - файл конфигурации по умолчанию.
const DefaultConfigFile = "config.yml"

func defaultConfig() *Config {
	return &Config{
		Server: Server{
			Host:            DefaultServerHost,
			Port:            DefaultServerPort,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
			CleanupInterval: DefaultCleanupInterval,
			PidFile:         DefaultPidFile,
			LogFile:         DefaultDaemonLogFile,
		},
		Layout: Layout{
			Friends:       DefaultFriendsPath,
			AddressBook:   DefaultAddressBookPath,
			Comments:      DefaultCommentsPath,
			Interests:     DefaultInterestsPath,
			SearchHistory: DefaultSearchHistoryPath,
			PostsDir:      DefaultPostsDir,
			MessagesDir:   DefaultMessagesDir,
		},
		Output: Output{
			Dir:    DefaultOutputDir,
			Format: DefaultOutputFormat,
		},
		Processing: Processing{
			TaskTimeout: DefaultTaskTimeout,
			CacheTTL:    DefaultCacheTTL,
			TaskTTL:     DefaultTaskTTL,
		},
		Client: Client{
			ServerURL:    DefaultClientServerURL,
			PollInterval: DefaultClientPollInterval,
			PollTimeout:  DefaultClientPollTimeout,
		},
		Logging: Logging{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

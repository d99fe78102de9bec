package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Resolver ResolverConfig
	Download DownloadConfig
	Settings SettingsConfig
	Server   ServerConfig

	LogLevel  log.Level
	LogFormat LogFormat
}

type ResolverConfig struct {
	Timeout    time.Duration
	SecretPath string
}

type DownloadConfig struct {
	Dir           string
	Timeout       time.Duration
	Interval      time.Duration
	StatusDisplay time.Duration
}

type SettingsConfig struct {
	Dir           string
	RedisAddress  string
	RedisPassword string
}

type ServerConfig struct {
	Port               int
	RateLimitPerMinute int
}

type LogFormat string

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

const (
	defaultResolverTimeout    = 30 * time.Second
	defaultDownloadDir        = "downloads"
	defaultDownloadTimeout    = 10 * time.Minute
	defaultDownloadInterval   = 500 * time.Millisecond
	defaultStatusDisplay      = 3 * time.Second
	defaultServerPort         = 8080
	defaultRateLimitPerMinute = 60
)

type EnvfileKey string

const (
	// Timeout for a single call to the resolver API, in seconds
	EnvfileKeyResolverTimeout = "RESOLVER_TIMEOUT"
	// AWS Secrets Manager path where the resolver API token can be found.
	// When set, the token overrides the one in the stored settings.
	EnvfileKeyResolverSecretsPath = "RESOLVER_SECRETS_PATH"

	// Directory that downloaded assets are written to
	EnvfileKeyDownloadDir = "DOWNLOAD_DIR"
	// Timeout for fetching a single asset, in seconds
	EnvfileKeyDownloadTimeout = "DOWNLOAD_TIMEOUT"
	// Pause between two assets of a batch, in milliseconds
	EnvfileKeyDownloadInterval = "DOWNLOAD_INTERVAL_MS"
	// How long a finished batch status is shown before it resets, in milliseconds
	EnvfileKeyStatusDisplay = "STATUS_DISPLAY_MS"

	// Directory holding the settings file
	EnvfileKeySettingsDir = "SETTINGS_DIR"
	// Redis address for settings; the settings file is used when empty
	EnvfileKeySettingsRedisAddress = "SETTINGS_REDIS_ADDRESS"
	// Redis password for settings
	EnvfileKeySettingsRedisPassword = "SETTINGS_REDIS_PASSWORD"

	// Port the HTTP API listens on
	EnvfileKeyServerPort = "SERVER_PORT"
	// Requests per minute allowed for each client of the HTTP API
	EnvfileKeyRateLimitPerMinute = "RATE_LIMIT_PER_MINUTE"

	// Log level (e.g. "debug", "info", "warn", "error")
	EnvfileKeyLogLevel = "LOG_LEVEL"
	// Log output format (e.g. "text", "json")
	EnvfileKeyLogFormat = "LOG_FORMAT"
)

// FromEnvfile reads the configuration from env vars and an optional .env file
// in the working directory. Every key has a default.
func FromEnvfile() Config {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("dotenv")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatalf("error reading config: %v", err)
		}
	}

	logLevel, err := log.ParseLevel(getConfigString(EnvfileKeyLogLevel))
	if err != nil {
		logLevel = log.InfoLevel
	}

	logFormat, err := parseLogFormat(getConfigString(EnvfileKeyLogFormat))
	if err != nil {
		logFormat = LogFormatText
	}

	downloadDir := getConfigString(EnvfileKeyDownloadDir)
	if downloadDir == "" {
		downloadDir = defaultDownloadDir
	}

	settingsDir := getConfigString(EnvfileKeySettingsDir)
	if settingsDir == "" {
		settingsDir = defaultSettingsDir()
	}

	return Config{
		Resolver: ResolverConfig{
			Timeout:    durationOr(EnvfileKeyResolverTimeout, time.Second, defaultResolverTimeout),
			SecretPath: getConfigString(EnvfileKeyResolverSecretsPath),
		},
		Download: DownloadConfig{
			Dir:           downloadDir,
			Timeout:       durationOr(EnvfileKeyDownloadTimeout, time.Second, defaultDownloadTimeout),
			Interval:      durationOr(EnvfileKeyDownloadInterval, time.Millisecond, defaultDownloadInterval),
			StatusDisplay: durationOr(EnvfileKeyStatusDisplay, time.Millisecond, defaultStatusDisplay),
		},
		Settings: SettingsConfig{
			Dir:           settingsDir,
			RedisAddress:  getConfigString(EnvfileKeySettingsRedisAddress),
			RedisPassword: getConfigString(EnvfileKeySettingsRedisPassword),
		},
		Server: ServerConfig{
			Port:               intOr(EnvfileKeyServerPort, defaultServerPort),
			RateLimitPerMinute: intOr(EnvfileKeyRateLimitPerMinute, defaultRateLimitPerMinute),
		},
		LogLevel:  logLevel,
		LogFormat: logFormat,
	}
}

func parseLogFormat(raw string) (LogFormat, error) {
	switch strings.ToLower(raw) {
	case LogFormatJSON:
		return LogFormatJSON, nil
	case LogFormatText:
		return LogFormatText, nil
	default:
		return "", fmt.Errorf("unidentified log format: %s", raw)
	}
}

func defaultSettingsDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".postgrab"
	}
	return filepath.Join(dir, "postgrab")
}

// durationOr reads key as a count of unit, falling back when unset or not positive
func durationOr(key string, unit time.Duration, fallback time.Duration) time.Duration {
	value := getConfigInt(key)
	if value <= 0 {
		return fallback
	}
	return time.Duration(value) * unit
}

func intOr(key string, fallback int) int {
	value := getConfigInt(key)
	if value <= 0 {
		return fallback
	}
	return value
}

// Gets a config value as a string from env vars or a .env file
func getConfigString(key string) string {
	value := os.Getenv(key)
	if value == "" {
		value = viper.GetString(key)
	}
	return value
}

// Gets a config value as an int from env vars or a .env file
func getConfigInt(key string) int {
	envVarValue := os.Getenv(key)
	if envVarValue == "" {
		return viper.GetInt(key)
	}
	value, err := strconv.Atoi(strings.TrimSpace(envVarValue))
	if err != nil {
		return 0
	}
	return value
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	// Directory holding one sub-directory per site.
	SitesRoot = defaultSitesRoot()

	// HTTP server settings
	ServerBind    = "127.0.0.1"
	ServerPort    = "8080"
	SessionSecret = "quiqr-cms-local"

	// Upper bound of concurrent file loads per request.
	LoadConcurrency = 20

	// Log settings
	LogLevel  = "info"
	LogFormat = "text"
)

// Settings mirrors the package variables for viper.
type Settings struct {
	SitesRoot       string `mapstructure:"sites_root"`
	ServerBind      string `mapstructure:"server_bind"`
	ServerPort      string `mapstructure:"server_port"`
	SessionSecret   string `mapstructure:"session_secret"`
	LoadConcurrency int    `mapstructure:"load_concurrency"`
	LogLevel        string `mapstructure:"log_level"`
	LogFormat       string `mapstructure:"log_format"`
}

func defaultSitesRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("Quiqr", "sites")
	}
	return filepath.Join(home, "Quiqr", "sites")
}

// Init loads .env, the environment (QUIQR_ prefix) and an optional config
// file into the package variables. configFile may be empty.
func Init(configFile string) error {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded", "err", err)
	}

	v := viper.New()
	v.SetDefault("sites_root", SitesRoot)
	v.SetDefault("server_bind", ServerBind)
	v.SetDefault("server_port", ServerPort)
	v.SetDefault("session_secret", SessionSecret)
	v.SetDefault("load_concurrency", LoadConcurrency)
	v.SetDefault("log_level", LogLevel)
	v.SetDefault("log_format", LogFormat)

	v.SetEnvPrefix("QUIQR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return fmt.Errorf("unable to decode config: %w", err)
	}
	return Apply(s)
}

// Apply copies s into the package variables.
func Apply(s Settings) error {
	if s.LoadConcurrency < 1 {
		return fmt.Errorf("load_concurrency must be at least 1, got %d", s.LoadConcurrency)
	}
	SitesRoot = s.SitesRoot
	ServerBind = s.ServerBind
	ServerPort = s.ServerPort
	SessionSecret = s.SessionSecret
	LoadConcurrency = s.LoadConcurrency
	LogLevel = s.LogLevel
	LogFormat = s.LogFormat
	return nil
}

// Current returns the package variables as Settings.
func Current() Settings {
	return Settings{
		SitesRoot:       SitesRoot,
		ServerBind:      ServerBind,
		ServerPort:      ServerPort,
		SessionSecret:   SessionSecret,
		LoadConcurrency: LoadConcurrency,
		LogLevel:        LogLevel,
		LogFormat:       LogFormat,
	}
}

// ListenAddr is the address the HTTP server binds to.
func ListenAddr() string {
	return ServerBind + ":" + ServerPort
}

// NewLogger builds the application logger from LogLevel and LogFormat.
func NewLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", LogLevel, err)
	}

	var formatter log.Formatter
	switch strings.ToLower(LogFormat) {
	case "", "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("invalid log format %q", LogFormat)
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "quiqr",
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
	}), nil
}

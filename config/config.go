package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/angas/esios-go/logging"
	"github.com/spf13/viper"
)

type AppConfigApi struct {
	Address string
	Port    int16
	// If not assigned, the server will serve embedded files.
	// If assigned, the server will serve files from the directory,
	// that must contain a "static" and "templates" directory.
	// This is useful for development.
	WwwDir *string `mapstructure:"www_dir"`
}

type AppConfigEsios struct {
	// Personal API token, requested from https://www.esios.ree.es/.
	// Can also be supplied via the ESIOS_API_TOKEN environment variable.
	Token string
	// Override of the API endpoint, default: https://api.esios.ree.es
	BaseUrl *string `mapstructure:"base_url"`
	// Round-trip timeout in seconds, default: 30
	TimeoutSeconds *int `mapstructure:"timeout_seconds"`
}

func (e AppConfigEsios) GetBaseUrl() string {
	if e.BaseUrl == nil {
		return ""
	}
	return *e.BaseUrl
}

func (e AppConfigEsios) GetTimeout() time.Duration {
	if e.TimeoutSeconds == nil {
		return 30 * time.Second
	}
	return time.Duration(*e.TimeoutSeconds) * time.Second
}

type AppConfigDatabase struct {
	// Path to the sqlite file holding the application log
	Path string
}

type AppConfigLive struct {
	// Cron schedule for refreshing the dashboard live ticker, default: every 15 minutes
	RunAt *string `mapstructure:"run_at"`
}

func (l AppConfigLive) GetRunAt() string {
	if l.RunAt == nil {
		return "@every 15m"
	}
	return *l.RunAt
}

type AppConfigGui struct {
	// Timezone for displaying times in the GUI, default: Europe/Madrid
	Timezone *string `mapstructure:"timezone"`
}

func (g AppConfigGui) GetTimezone() string {
	if g.Timezone == nil {
		return "Europe/Madrid"
	}
	return *g.Timezone
}

type AppConfigLogging struct {
	// Min log level for database : "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return "JSON"
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return "TEXT"
	}
	return "JSON"
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Api      AppConfigApi
	Esios    AppConfigEsios
	Database AppConfigDatabase
	Live     AppConfigLive
	Gui      AppConfigGui
	Logging  AppConfigLogging
}

func Load(path string) (*AppConfig, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("config")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The token may live outside the config file entirely.
	if err := v.BindEnv("esios.token", "ESIOS_API_TOKEN"); err != nil {
		return nil, fmt.Errorf("unable to bind token env var: %w", err)
	}

	var c AppConfig

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}

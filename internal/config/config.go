package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Config holds server settings. Every field can be overridden by a CHESS_* environment variable.
type Config struct {
	ListenAddr     string
	AllowedOrigins string // comma separated, passed to the CORS and websocket origin checks
	DataDir        string
	InMemory       bool
	LogLevel       string
	LogFormat      string // "console" or "json"
}

func Default() Config {
	return Config{
		ListenAddr:     ":3000",
		AllowedOrigins: "http://localhost:5173",
		DataDir:        "data",
		LogLevel:       "info",
		LogFormat:      "console",
	}
}

// FromEnv starts from Default and applies any CHESS_* variables found by lookup.
// Pass os.LookupEnv in production.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup("CHESS_LISTEN_ADDR"); ok {
		cfg.ListenAddr = v
	}
	if v, ok := lookup("CHESS_ALLOWED_ORIGINS"); ok {
		cfg.AllowedOrigins = v
	}
	if v, ok := lookup("CHESS_DATA_DIR"); ok {
		cfg.DataDir = v
	}
	if v, ok := lookup("CHESS_IN_MEMORY"); ok {
		inMemory, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("CHESS_IN_MEMORY: %w", err)
		}
		cfg.InMemory = inMemory
	}
	if v, ok := lookup("CHESS_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup("CHESS_LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}

	return cfg, cfg.Validate()
}

func Load() (Config, error) {
	return FromEnv(os.LookupEnv)
}

func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address is required")
	}
	if !c.InMemory && c.DataDir == "" {
		return fmt.Errorf("data dir is required unless running in memory")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log format %q: want console or json", c.LogFormat)
	}
	return nil
}

// Origins splits AllowedOrigins into its entries.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Logger builds the root logger.
func (c Config) Logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if c.LogFormat == "json" {
		log = zerolog.New(os.Stderr)
	} else {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return log.Level(level).With().Timestamp().Logger()
}

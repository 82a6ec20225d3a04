package main

import (
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Addr            string        `env:"MINITWIT_ADDR,default=:8080"`
	DBDriver        string        `env:"MINITWIT_DB_DRIVER,default=sqlite3"`
	DBDSN           string        `env:"MINITWIT_DB_DSN,default=/tmp/minitwit-api.db"`
	ResetDB         bool          `env:"MINITWIT_RESET_DB,default=true"`
	LogLevel        string        `env:"MINITWIT_LOG_LEVEL,default=info"`
	LogFormat       string        `env:"MINITWIT_LOG_FORMAT,default=text"`
	ShutdownTimeout time.Duration `env:"MINITWIT_SHUTDOWN_TIMEOUT,default=5s"`
}

// loadConfig reads an optional .env file and decodes the environment.
func loadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrap(err, "load .env")
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, errors.Wrap(err, "decode environment")
	}

	switch cfg.DBDriver {
	case driverSQLite, driverPostgres:
	default:
		return Config{}, errors.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
	return cfg, nil
}

// setupLogging applies the configured level and format to the standard logrus logger.
func setupLogging(cfg Config) error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "parse log level")
	}
	log.SetLevel(level)

	switch cfg.LogFormat {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return errors.Errorf("unsupported log format %q", cfg.LogFormat)
	}
	return nil
}

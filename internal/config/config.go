package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

type Config struct {
	ServerConfig ServerConfig
	MongoConfig  MongoConfig
	EventsConfig EventsConfig
}

type ServerConfig struct {
	Port            string
	StaticDir       string
	LogLevel        string
	ShutdownTimeout time.Duration
}

type MongoConfig struct {
	Driver        string
	URI           string
	Database      string
	Collection    string
	EnforceSchema bool
}

type EventsConfig struct {
	Topic string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3001")
	v.SetDefault("STATIC_DIR", "dist")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("STORE_DRIVER", StoreDriverMongo)
	v.SetDefault("MONGODB_URI", "")
	v.SetDefault("MONGODB_DATABASE", "noteApp")
	v.SetDefault("MONGODB_COLLECTION", "notes")
	v.SetDefault("MONGODB_ENFORCE_SCHEMA", true)
	v.SetDefault("NOTE_EVENTS_TOPIC", "notes.changed")
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info(".env file not found, using environment variables")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	config := &Config{
		ServerConfig: ServerConfig{
			Port:            v.GetString("PORT"),
			StaticDir:       v.GetString("STATIC_DIR"),
			LogLevel:        strings.ToLower(v.GetString("LOG_LEVEL")),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		MongoConfig: MongoConfig{
			Driver:        strings.ToLower(v.GetString("STORE_DRIVER")),
			URI:           v.GetString("MONGODB_URI"),
			Database:      v.GetString("MONGODB_DATABASE"),
			Collection:    v.GetString("MONGODB_COLLECTION"),
			EnforceSchema: v.GetBool("MONGODB_ENFORCE_SCHEMA"),
		},
		EventsConfig: EventsConfig{
			Topic: v.GetString("NOTE_EVENTS_TOPIC"),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.ServerConfig.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}

	switch c.MongoConfig.Driver {
	case StoreDriverMongo:
		if c.MongoConfig.URI == "" {
			return fmt.Errorf("MONGODB_URI is required when STORE_DRIVER is %q", StoreDriverMongo)
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.MongoConfig.Driver)
	}

	if _, ok := logLevels[c.ServerConfig.LogLevel]; !ok {
		return fmt.Errorf("unknown LOG_LEVEL %q", c.ServerConfig.LogLevel)
	}

	return nil
}

var logLevels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

// Level maps LOG_LEVEL to the fiber logger level.
func (c ServerConfig) Level() log.Level {
	return logLevels[c.LogLevel]
}

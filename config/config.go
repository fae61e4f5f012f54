package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is not set.
const DefaultPath = "configs/config.yaml"

// Preference store and event sink backends.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
	StoreSQLite = "sqlite"

	SinkNone     = "none"
	SinkKafka    = "kafka"
	SinkRabbitMQ = "rabbitmq"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Sentry struct {
		DSN         string  `yaml:"dsn"`
		Environment string  `yaml:"environment"`
		SampleRate  float64 `yaml:"sample_rate"`
	} `yaml:"sentry"`
	Dataset struct {
		Path string `yaml:"path"`
	} `yaml:"dataset"`
	Report struct {
		Analyst string `yaml:"analyst"`
	} `yaml:"report"`
	Dashboard struct {
		InitDelay time.Duration `yaml:"init_delay"`
	} `yaml:"dashboard"`
	Preferences struct {
		Store string `yaml:"store"`
	} `yaml:"preferences"`
	Mongo struct {
		URI        string `yaml:"uri"`
		Database   string `yaml:"database"`
		Collection string `yaml:"collection"`
	} `yaml:"mongo"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Events struct {
		Sink string `yaml:"sink"`
	} `yaml:"events"`
	Kafka struct {
		BootstrapServers string `yaml:"bootstrap_servers"`
		Topic            string `yaml:"topic"`
	} `yaml:"kafka"`
	RabbitMQ struct {
		Server   string `yaml:"server"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Queue    string `yaml:"queue"`
	} `yaml:"rabbitmq"`
}

// Path returns CONFIG_PATH or the default location.
func Path() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return DefaultPath
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error. Variables from a local .env file never
// replace ones already set in the environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	// Numeric defaults are seeded before the file so an explicit zero survives.
	cfg := &Config{}
	cfg.Sentry.SampleRate = 1.0
	cfg.Dashboard.InitDelay = 100 * time.Millisecond

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	override(&cfg.Server.Port, "PORT")
	override(&cfg.Log.Level, "LOG_LEVEL")
	override(&cfg.Sentry.DSN, "SENTRY_DSN")
	override(&cfg.Sentry.Environment, "ENVIRONMENT")
	if v := os.Getenv("SENTRY_SAMPLE_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Sentry.SampleRate = rate
		}
	}
	override(&cfg.Dataset.Path, "DATASET_PATH")
	override(&cfg.Report.Analyst, "REPORT_ANALYST")
	if v := os.Getenv("DASHBOARD_INIT_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Dashboard.InitDelay = d
		}
	}
	override(&cfg.Preferences.Store, "PREFERENCES_STORE")
	override(&cfg.Mongo.URI, "MONGO_URI")
	override(&cfg.Mongo.Database, "DATABASE")
	override(&cfg.Mongo.Collection, "PREFERENCES_COLLECTION")
	override(&cfg.SQLite.Path, "SQLITE_PATH")
	override(&cfg.Events.Sink, "EVENTS_SINK")
	override(&cfg.Kafka.BootstrapServers, "KAFKA_BOOTSTRAPSERVERS")
	override(&cfg.Kafka.Topic, "KAFKA_TOPIC")
	override(&cfg.RabbitMQ.Server, "RABBITMQ_SERVER")
	override(&cfg.RabbitMQ.Port, "RABBITMQ_PORT")
	override(&cfg.RabbitMQ.User, "RABBITMQ_USER")
	override(&cfg.RabbitMQ.Password, "RABBITMQ_PASS")
	override(&cfg.RabbitMQ.Queue, "RABBITMQ_QUEUE")

	// Defaults
	if cfg.Server.Port == "" {
		cfg.Server.Port = "4000"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Report.Analyst == "" {
		cfg.Report.Analyst = "Survesh Bajpai"
	}
	if cfg.Preferences.Store == "" {
		cfg.Preferences.Store = StoreMemory
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "itsector"
	}
	if cfg.Mongo.Collection == "" {
		cfg.Mongo.Collection = "preferences"
	}
	if cfg.SQLite.Path == "" {
		cfg.SQLite.Path = "data/itsector.db"
	}
	if cfg.Events.Sink == "" {
		cfg.Events.Sink = SinkNone
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "itsector-dashboard-events"
	}
	if cfg.RabbitMQ.Server == "" {
		cfg.RabbitMQ.Server = "localhost"
	}
	if cfg.RabbitMQ.Port == "" {
		cfg.RabbitMQ.Port = "5672"
	}
	if cfg.RabbitMQ.User == "" {
		cfg.RabbitMQ.User = "guest"
	}
	if cfg.RabbitMQ.Password == "" {
		cfg.RabbitMQ.Password = "guest"
	}
	if cfg.RabbitMQ.Queue == "" {
		cfg.RabbitMQ.Queue = "itsector"
	}

	return cfg, nil
}

func override(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks that the selected backends are known and configured.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("server.port must be numeric, got %q", c.Server.Port)
	}
	if c.Dashboard.InitDelay < 0 {
		return fmt.Errorf("dashboard.init_delay must not be negative")
	}
	if c.Sentry.SampleRate < 0 || c.Sentry.SampleRate > 1 {
		return fmt.Errorf("sentry.sample_rate must be between 0 and 1")
	}

	switch c.Preferences.Store {
	case StoreMemory, StoreSQLite:
	case StoreMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("mongo.uri is required for the mongo preference store")
		}
	default:
		return fmt.Errorf("unknown preferences.store %q", c.Preferences.Store)
	}

	switch c.Events.Sink {
	case SinkNone, SinkRabbitMQ:
	case SinkKafka:
		if c.Kafka.BootstrapServers == "" {
			return fmt.Errorf("kafka.bootstrap_servers is required for the kafka event sink")
		}
	default:
		return fmt.Errorf("unknown events.sink %q", c.Events.Sink)
	}
	return nil
}

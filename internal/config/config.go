package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Cheertaboi/voucher-service/pkg/db"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverRedis    = "redis"
)

const DefaultPath = "config/config.yaml"

type Config struct {
	App      AppConfig         `yaml:"app"`
	HTTP     HTTPConfig        `yaml:"http"`
	Store    StoreConfig       `yaml:"store"`
	Postgres db.PostgresConfig `yaml:"postgres"`
	MySQL    db.MySQLConfig    `yaml:"mysql"`
	Redis    db.RedisConfig    `yaml:"redis"`
}

type AppConfig struct {
	Name     string `yaml:"name"`
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
}

type HTTPConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"`
}

func Default() Config {
	return Config{
		App: AppConfig{
			Name:     "voucher-service",
			Env:      "local",
			LogLevel: "info",
		},
		HTTP: HTTPConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Store: StoreConfig{Driver: DriverMemory},
		Postgres: db.PostgresConfig{
			Host:    "localhost",
			Port:    5432,
			SSLMode: "disable",
		},
		Redis: db.RedisConfig{Addr: "localhost:6379"},
	}
}

// Load reads the YAML file at path on top of Default, then applies env overrides.
// A missing file is not an error; the service can run from env vars alone.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse yaml at %s", path)
		}
	case os.IsNotExist(err):
	default:
		return nil, errors.Wrapf(err, "failed to read config file at %s", path)
	}

	if err := overrideWithEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverPostgres, DriverMySQL, DriverRedis:
	default:
		return errors.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return errors.Errorf("invalid http port %d", c.HTTP.Port)
	}
	if c.Store.Driver == DriverMySQL && c.MySQL.DSN == "" {
		return errors.New("mysql driver requires mysql.dsn")
	}
	return nil
}

func overrideWithEnv(cfg *Config) error {
	if val := os.Getenv(EnvAppEnv); val != "" {
		cfg.App.Env = val
	}
	if val := os.Getenv(EnvLogLevel); val != "" {
		cfg.App.LogLevel = val
	}
	if val := os.Getenv(EnvPort); val != "" {
		p, err := strconv.Atoi(val)
		if err != nil {
			return errors.Wrapf(err, "parse %s", EnvPort)
		}
		cfg.HTTP.Port = p
	}
	if val := os.Getenv(EnvStoreDriver); val != "" {
		cfg.Store.Driver = val
	}

	// Postgres
	if val := os.Getenv(EnvDBHost); val != "" {
		cfg.Postgres.Host = val
	}
	if val := os.Getenv(EnvDBPort); val != "" {
		p, err := strconv.Atoi(val)
		if err != nil {
			return errors.Wrapf(err, "parse %s", EnvDBPort)
		}
		cfg.Postgres.Port = p
	}
	if val := os.Getenv(EnvDBUser); val != "" {
		cfg.Postgres.User = val
	}
	if val := os.Getenv(EnvDBPassword); val != "" {
		cfg.Postgres.Password = val
	}
	if val := os.Getenv(EnvDBName); val != "" {
		cfg.Postgres.DBName = val
	}
	if val := os.Getenv(EnvDBSSLMode); val != "" {
		cfg.Postgres.SSLMode = val
	}

	// MySQL
	if val := os.Getenv(EnvMySQLDSN); val != "" {
		cfg.MySQL.DSN = val
	}

	// Redis
	if val := os.Getenv(EnvRedisAddr); val != "" {
		cfg.Redis.Addr = val
	}
	if val := os.Getenv(EnvRedisPassword); val != "" {
		cfg.Redis.Password = val
	}
	return nil
}

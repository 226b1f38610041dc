package config

import "github.com/kelseyhightower/envconfig"

type Server struct {
	Host        string `envconfig:"METDASH_SERVER_HOST" default:""`
	Port        string `envconfig:"METDASH_SERVER_PORT" default:"8080"`
	ReadTimeout int    `envconfig:"METDASH_SERVER_TIMEOUT" default:"30"`
}

type AMD struct {
	URL      string  `envconfig:"AMD_URL" required:"true"`
	User     string  `envconfig:"AMD_USER"`
	Password string  `envconfig:"AMD_PASSWORD"`
	Timeout  int     `envconfig:"AMD_TIMEOUT" default:"60"`
	RatePerS float64 `envconfig:"AMD_RATE_PER_SEC" default:"2"`
	Burst    int     `envconfig:"AMD_RATE_BURST" default:"2"`
}

type Breaker struct {
	TimeInterval int    `envconfig:"BREAKER_INTERVAL" default:"30"`
	TimeTimeOut  int    `envconfig:"BREAKER_TIMEOUT" default:"10"`
	RepeatNumber uint32 `envconfig:"BREAKER_REPEAT_NUM" default:"5"`
}

// Redis is optional; an empty Addr keeps sessions in process memory.
type Redis struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	LiveTime int    `envconfig:"SESSION_TTL" default:"24"`
}

type DB struct {
	Dialect string `envconfig:"DB_DIALECT" default:"sqlite"`
	Source  string `envconfig:"DB_SOURCE" default:"metdash.db"`
}

type FetchLog struct {
	RetentionHours int    `envconfig:"FETCHLOG_RETENTION_HOURS" default:"720"`
	PruneSpec      string `envconfig:"FETCHLOG_PRUNE_SPEC" default:"0 0 * * * *"`
}

type Config struct {
	Server   Server
	AMD      AMD
	Breaker  Breaker
	Redis    Redis
	DB       DB
	FetchLog FetchLog

	LogsPath     string `envconfig:"LOGS_PATH" default:"./log/metdash.log"`
	HTTPLogsPath string `envconfig:"HTTP_LOGS_PATH" default:"./log/metdash-http.log"`
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewDBConfig reads only the database settings, for tools that never reach AMD.
func NewDBConfig() (*DB, error) {
	var db DB
	if err := envconfig.Process("", &db); err != nil {
		return nil, err
	}
	return &db, nil
}

func (c *Config) ServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

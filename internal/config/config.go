package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel    string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort    string        `yaml:"http-port" env:"GAME_PORT" env-default:"9090"`
	Storage     string        `yaml:"storage" env:"GAME_STORAGE" env-default:"memory"`
	SessionTTL  time.Duration `yaml:"session-ttl" env:"GAME_SESSION_TTL" env-default:"24h"`
	Redis       Redis         `yaml:"redis"`
	Board       Board         `yaml:"board"`
	MetricsName string        `yaml:"metrics-namespace" env:"METRICS_NAMESPACE" env-default:"tictactoe"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Board is the geometry of games created for new or reset sessions.
type Board struct {
	Rows      int `yaml:"rows" env:"BOARD_ROWS" env-default:"3"`
	Columns   int `yaml:"columns" env:"BOARD_COLUMNS" env-default:"3"`
	WinLength int `yaml:"win-length" env:"BOARD_WIN_LENGTH" env-default:"0"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/sos-backend/internal/entity"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis    Redis  `yaml:"redis"`
	Game     Game   `yaml:"game"`
	Kafka    Kafka  `yaml:"kafka"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Game struct {
	DefaultBoardSize int         `yaml:"default-board-size" env:"GAME_DEFAULT_BOARD_SIZE" env-default:"8"`
	DefaultMode      entity.Mode `yaml:"default-mode" env:"GAME_DEFAULT_MODE" env-default:"Simple"`
	// BotSeed seeds the heuristic's random source. Zero means time based.
	BotSeed uint64 `yaml:"bot-seed" env:"GAME_BOT_SEED" env-default:"0"`
}

// Kafka analytics are disabled when Brokers or Topic is empty.
type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	size := config.Game.DefaultBoardSize
	if size < entity.MinBoardSize || size > entity.MaxBoardSize {
		return nil, fmt.Errorf("game.default-board-size must be between %d and %d, got %d",
			entity.MinBoardSize, entity.MaxBoardSize, size)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

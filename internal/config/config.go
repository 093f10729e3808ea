package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Bot      BotConfig      `mapstructure:"bot"`
	Notifier NotifierConfig `mapstructure:"notifier"`
	Log      LogConfig      `mapstructure:"log"`
}

type TelegramConfig struct {
	Token          string `mapstructure:"token"`
	UpdateTimeout  int    `mapstructure:"update_timeout"`
	SendRatePerSec int    `mapstructure:"send_rate_per_sec"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type BotConfig struct {
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type NotifierConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	HTTPAddr     string        `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// secrets are never read from the config file
type secrets struct {
	TelegramToken string `envconfig:"TELEGRAM_TOKEN"`
	DBPassword    string `envconfig:"DB_PASSWORD"`
	RedisURL      string `envconfig:"REDIS_URL"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("telegram.update_timeout", 60)
	viper.SetDefault("telegram.send_rate_per_sec", 25)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("http.addr", ":8080")
	viper.SetDefault("bot.session_ttl", 30*time.Minute)
	viper.SetDefault("notifier.poll_interval", time.Minute)
	viper.SetDefault("notifier.http_addr", ":8081")
	viper.SetDefault("log.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var sec secrets
	if err := envconfig.Process("", &sec); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if sec.TelegramToken != "" {
		cfg.Telegram.Token = sec.TelegramToken
	}
	if sec.DBPassword != "" {
		cfg.Database.Password = sec.DBPassword
	}
	if sec.RedisURL != "" {
		cfg.Redis.URL = sec.RedisURL
	}

	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("telegram token is not set")
	}

	return &cfg, nil
}

// DSN builds a lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

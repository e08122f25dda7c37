package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from config files and
// environment variables. It is built once in main and passed into the
// components that need it.
type Config struct {
	Env      string   `mapstructure:"env"`
	SiteName string   `mapstructure:"site_name"`
	BaseURL  string   `mapstructure:"base_url"` // public base URL used in emailed links
	Server   Server   `mapstructure:"server"`
	DB       DB       `mapstructure:"database"`
	JWT      JWT      `mapstructure:"jwt"`
	SMTP     SMTP     `mapstructure:"smtp"`
	RabbitMQ RabbitMQ `mapstructure:"rabbitmq"`
}

type Server struct {
	Port string `mapstructure:"port"`
}

type DB struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"-"`
	Password string `mapstructure:"-"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// DSN returns the lib/pq connection string.
func (db DB) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		db.Host, db.Port, db.User, db.Password, db.Name, db.SSLMode)
}

type JWT struct {
	Secret     string        `mapstructure:"-"`
	AccessTTL  time.Duration `mapstructure:"access_ttl"`
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
	ResetTTL   time.Duration `mapstructure:"reset_ttl"` // password reset token lifetime
}

type SMTP struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"-"`
	Password string `mapstructure:"-"`
	From     string `mapstructure:"from"`
}

type RabbitMQ struct {
	URL string `mapstructure:"-"`
}

// Load reads configuration from an optional config.yaml, a local .env file
// and the process environment.
func Load() (*Config, error) {
	// A missing .env is fine outside development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("site_name", "QuizBank")
	v.SetDefault("base_url", "http://localhost:8000")
	v.SetDefault("server.port", "8000")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "quizbank")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("jwt.access_ttl", "1h")
	v.SetDefault("jwt.refresh_ttl", "24h")
	v.SetDefault("jwt.reset_ttl", "1h")
	v.SetDefault("smtp.host", "localhost")
	v.SetDefault("smtp.port", 25)
	v.SetDefault("smtp.from", "noreply@quizbank.xyz")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("db_user", "DB_USER")
	_ = v.BindEnv("db_pass", "DB_PASS")
	_ = v.BindEnv("jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("smtp_user", "SMTP_USER")
	_ = v.BindEnv("smtp_pass", "SMTP_PASS")
	_ = v.BindEnv("rabbitmq_url", "RABBITMQ_URL")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.DB.User = v.GetString("db_user")
	cfg.DB.Password = v.GetString("db_pass")
	cfg.SMTP.Username = v.GetString("smtp_user")
	cfg.SMTP.Password = v.GetString("smtp_pass")
	cfg.RabbitMQ.URL = v.GetString("rabbitmq_url")

	cfg.JWT.Secret = v.GetString("jwt_secret")
	if cfg.JWT.Secret == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return &cfg, nil
}

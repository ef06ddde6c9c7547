package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"time"
	_ "time/tzdata"

	"buffet/internal/pkg/envelope"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST"     envDefault:"localhost"`
	DBPort     string `env:"DB_PORT"     envDefault:"5432"`
	DBUser     string `env:"DB_USER"     envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"     envDefault:"buffet"`
	DBSslMode  string `env:"DB_SSLMODE"  envDefault:"disable"`

	JWTSecret     string `env:"JWT_SECRET,required,notEmpty"`
	OrderEmailKey string `env:"ORDER_EMAIL_KEY,required,notEmpty"`

	RedisAddr string `env:"REDIS_ADDR"`

	SMTPHost     string `env:"SMTP_HOST" envDefault:"localhost"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM,required,notEmpty"`

	MailLanguage string        `env:"MAIL_LANGUAGE" envDefault:"hu"`
	MailTimezone string        `env:"MAIL_TIMEZONE" envDefault:"Europe/Budapest"`
	MailTimeout  time.Duration `env:"MAIL_TIMEOUT"  envDefault:"10s"`

	BacklogJobSchedule string `env:"BACKLOG_JOB_SCHEDULE" envDefault:"0 * * * * *"`
}

// LoadConfig reads the configuration from the environment and validates the
// values env tags cannot express.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects an email key that is not 32 bytes of hex and an unknown
// mail time zone. The service must not start with either.
func (c Config) Validate() error {
	var problems []error

	if _, err := envelope.ParseKey(c.OrderEmailKey); err != nil {
		problems = append(problems, fmt.Errorf("ORDER_EMAIL_KEY: %w", err))
	}
	if _, err := time.LoadLocation(c.MailTimezone); err != nil {
		problems = append(problems, fmt.Errorf("MAIL_TIMEZONE: %w", err))
	}

	return errors.Join(problems...)
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSslMode}}.Encode(),
	}
	return dsn.String()
}

// Location returns the time zone used in email copy.
func (c Config) Location() *time.Location {
	location, err := time.LoadLocation(c.MailTimezone)
	if err != nil {
		return time.UTC
	}
	return location
}

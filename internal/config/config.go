package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const envPrefix = "SMC_"

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Storage       StorageConfig       `toml:"storage"`
	Booking       BookingConfig       `toml:"booking"`
	BusinessHours BusinessHoursConfig `toml:"business_hours"`
	Auth          AuthConfig          `toml:"auth"`
	Redis         RedisConfig         `toml:"redis"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
	Events        EventsConfig        `toml:"events"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Tracing       TracingConfig       `toml:"tracing"`
	CORS          CORSConfig          `toml:"cors"`
	Logs          LogsConfig          `toml:"logs"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Driver          string `toml:"driver"` // postgres (lib/pq) | pgx
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	TxMaxAttempts   int    `toml:"tx_max_attempts"`
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// StorageConfig выбор хранилища бронирований
type StorageConfig struct {
	Backend           string `toml:"backend"` // postgres | firestore
	FirebaseProjectID string `toml:"firebase_project_id"`
	CredentialsFile   string `toml:"credentials_file"`
}

// BookingConfig параметры протокола бронирования
type BookingConfig struct {
	Timezone         string `toml:"timezone"`
	TxTimeoutSeconds int    `toml:"tx_timeout"`
}

func (b BookingConfig) TxTimeout() time.Duration {
	return time.Duration(b.TxTimeoutSeconds) * time.Second
}

// Location загружает часовой пояс бизнеса
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

// BusinessHoursConfig рабочие часы для витрины свободных слотов
type BusinessHoursConfig struct {
	Open               string `toml:"open"`  // HH:MM
	Close              string `toml:"close"` // HH:MM
	SlotStepMinutes    int    `toml:"slot_step_minutes"`
	MinNoticeMinutes   int    `toml:"min_notice_minutes"`
	AdvanceBookingDays int    `toml:"advance_booking_days"` // 0 = без ограничений
	ClosedWeekdays     []int  `toml:"closed_weekdays"`      // 0 = воскресенье
}

// ToDomain разбирает часы работы в domain.BusinessHours
func (h BusinessHoursConfig) ToDomain() (domain.BusinessHours, error) {
	open, err := time.Parse(domain.TimeFormat, h.Open)
	if err != nil {
		return domain.BusinessHours{}, fmt.Errorf("business_hours.open: %w", err)
	}
	closeAt, err := time.Parse(domain.TimeFormat, h.Close)
	if err != nil {
		return domain.BusinessHours{}, fmt.Errorf("business_hours.close: %w", err)
	}
	if h.SlotStepMinutes <= 0 {
		return domain.BusinessHours{}, errors.New("business_hours.slot_step_minutes must be positive")
	}
	if h.MinNoticeMinutes < 0 || h.AdvanceBookingDays < 0 {
		return domain.BusinessHours{}, errors.New("business_hours notice and advance days must not be negative")
	}

	weekdays := make([]time.Weekday, 0, len(h.ClosedWeekdays))
	for _, d := range h.ClosedWeekdays {
		if d < 0 || d > 6 {
			return domain.BusinessHours{}, fmt.Errorf("business_hours.closed_weekdays: %d is not a weekday", d)
		}
		weekdays = append(weekdays, time.Weekday(d))
	}

	return domain.BusinessHours{
		OpenMinute:         open.Hour()*60 + open.Minute(),
		CloseMinute:        closeAt.Hour()*60 + closeAt.Minute(),
		SlotStepMinutes:    h.SlotStepMinutes,
		MinNoticeMinutes:   h.MinNoticeMinutes,
		AdvanceBookingDays: h.AdvanceBookingDays,
		ClosedWeekdays:     weekdays,
	}, nil
}

// AuthConfig способ проверки личности вызывающего
type AuthConfig struct {
	Mode      string `toml:"mode"` // firebase | jwt | header
	JWTSecret string `toml:"jwt_secret"`
	JWKSURL   string `toml:"jwks_url"`
	Issuer    string `toml:"issuer"`
	Audience  string `toml:"audience"`
}

type RedisConfig struct {
	Addr                 string `toml:"addr"` // пусто = Redis не используется
	Password             string `toml:"password"`
	DB                   int    `toml:"db"`
	RatingCacheTTLSecond int    `toml:"rating_cache_ttl"`
}

func (r RedisConfig) Enabled() bool { return r.Addr != "" }

func (r RedisConfig) RatingCacheTTL() time.Duration {
	return time.Duration(r.RatingCacheTTLSecond) * time.Second
}

// RateLimitConfig лимит на создание бронирований одним пользователем
type RateLimitConfig struct {
	Enabled       bool `toml:"enabled"`
	Limit         int  `toml:"limit"`
	WindowSeconds int  `toml:"window"`
}

func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// EventsConfig outbox relay в Kafka
type EventsConfig struct {
	Brokers             []string `toml:"brokers"` // пусто = relay выключен
	PollIntervalSeconds int      `toml:"poll_interval"`
	BatchSize           int      `toml:"batch_size"`
}

func (e EventsConfig) Enabled() bool { return len(e.Brokers) > 0 }

func (e EventsConfig) PollInterval() time.Duration {
	return time.Duration(e.PollIntervalSeconds) * time.Second
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type TracingConfig struct {
	Enabled      bool    `toml:"enabled"`
	OTLPEndpoint string  `toml:"otlp_endpoint"`
	SampleRatio  float64 `toml:"sample_ratio"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default значения по умолчанию, поверх которых декодируется файл
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          "postgres",
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "appointments",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			TxMaxAttempts:   5,
		},
		Storage: StorageConfig{Backend: "postgres"},
		Booking: BookingConfig{
			Timezone:         "Australia/Melbourne",
			TxTimeoutSeconds: 5,
		},
		BusinessHours: BusinessHoursConfig{
			Open:             "09:00",
			Close:            "18:00",
			SlotStepMinutes:  30,
			MinNoticeMinutes: 0,
		},
		Auth:      AuthConfig{Mode: "header"},
		Redis:     RedisConfig{RatingCacheTTLSecond: 60},
		RateLimit: RateLimitConfig{Limit: 10, WindowSeconds: 60},
		Events:    EventsConfig{PollIntervalSeconds: 2, BatchSize: 100},
		Metrics:   MetricsConfig{Path: "/metrics", ServiceName: "appointment-service"},
		Tracing:   TracingConfig{OTLPEndpoint: "localhost:4317", SampleRatio: 1},
		Logs:      LogsConfig{Level: "info"},
	}
}

// Load читает .env (если есть), TOML-файл и переменные окружения SMC_*
// Отсутствующий файл конфигурации не ошибка: используются значения по умолчанию
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			*dst = v
		}
	}
	setString("DB_HOST", &cfg.Database.Host)
	setString("DB_USER", &cfg.Database.User)
	setString("DB_PASSWORD", &cfg.Database.Password)
	setString("DB_NAME", &cfg.Database.DBName)
	setString("DB_DRIVER", &cfg.Database.Driver)
	setString("STORAGE_BACKEND", &cfg.Storage.Backend)
	setString("FIREBASE_PROJECT_ID", &cfg.Storage.FirebaseProjectID)
	setString("FIREBASE_CREDENTIALS", &cfg.Storage.CredentialsFile)
	setString("AUTH_MODE", &cfg.Auth.Mode)
	setString("JWT_SECRET", &cfg.Auth.JWTSecret)
	setString("JWKS_URL", &cfg.Auth.JWKSURL)
	setString("REDIS_ADDR", &cfg.Redis.Addr)
	setString("REDIS_PASSWORD", &cfg.Redis.Password)
	setString("TIMEZONE", &cfg.Booking.Timezone)
	setString("LOG_LEVEL", &cfg.Logs.Level)

	if v, ok := os.LookupEnv(envPrefix + "DB_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %sDB_PORT: %w", envPrefix, err)
		}
		cfg.Database.Port = port
	}
	if v, ok := os.LookupEnv(envPrefix + "KAFKA_BROKERS"); ok {
		cfg.Events.Brokers = splitList(v)
	}
	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port %d out of range", c.Server.HTTPPort))
	}

	switch c.Storage.Backend {
	case "postgres":
		if c.Database.Driver != "postgres" && c.Database.Driver != "pgx" {
			errs = append(errs, fmt.Errorf("database.driver %q must be postgres or pgx", c.Database.Driver))
		}
	case "firestore":
		if c.Storage.FirebaseProjectID == "" {
			errs = append(errs, errors.New("storage.firebase_project_id is required for firestore"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend %q must be postgres or firestore", c.Storage.Backend))
	}

	if _, err := c.Booking.Location(); err != nil {
		errs = append(errs, fmt.Errorf("booking.timezone: %w", err))
	}
	if c.Booking.TxTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("booking.tx_timeout must be positive"))
	}
	if _, err := c.BusinessHours.ToDomain(); err != nil {
		errs = append(errs, err)
	}

	switch c.Auth.Mode {
	case "header", "firebase":
	case "jwt":
		if c.Auth.JWTSecret == "" && c.Auth.JWKSURL == "" {
			errs = append(errs, errors.New("auth.jwt_secret or auth.jwks_url is required for jwt mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("auth.mode %q must be firebase, jwt or header", c.Auth.Mode))
	}

	if c.Events.Enabled() && c.Events.BatchSize <= 0 {
		errs = append(errs, errors.New("events.batch_size must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

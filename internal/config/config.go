package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/wahidman/serverr/internal/domain"
)

// Политики подтверждения уведомлений платёжного провайдера
const (
	AckPolicyAlways    = "always"
	AckPolicyOnSuccess = "on_success"
)

var (
	// ErrInvalidConfig возвращается, если конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Slots        SlotsConfig        `toml:"slots"`
	Payment      PaymentConfig      `toml:"payment"`
	Notification NotificationConfig `toml:"notification"`
	Operator     OperatorConfig     `toml:"operator"`
	Redis        RedisConfig        `toml:"redis"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
	RequestTimeout  int `toml:"request_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	DBName          string `toml:"dbname"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	MigrateOnStart  bool   `toml:"migrate_on_start"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SlotsConfig каталог слотов
type SlotsConfig struct {
	Times []string `toml:"times"`
	// ReleaseFailed не считать FAILED заказы занятыми при расчёте доступности
	ReleaseFailed bool `toml:"release_failed"`
}

// PaymentConfig настройки Midtrans Snap
type PaymentConfig struct {
	ServerKey         string `toml:"server_key"`
	IsProduction      bool   `toml:"is_production"`
	Timeout           int    `toml:"timeout"`
	MaxRetries        uint64 `toml:"max_retries"`
	RetryInitialMs    int    `toml:"retry_initial_ms"`
	RetryMaxMs        int    `toml:"retry_max_ms"`
	SandboxBaseURL    string `toml:"sandbox_base_url"`
	ProductionBaseURL string `toml:"production_base_url"`
}

// NotificationConfig обработка уведомлений провайдера
type NotificationConfig struct {
	AckPolicy       string `toml:"ack_policy"`
	VerifySignature bool   `toml:"verify_signature"`
	DedupEnabled    bool   `toml:"dedup_enabled"`
	DedupTTL        int    `toml:"dedup_ttl"` // секунды
}

// OperatorConfig контакт оператора для ссылки wa.me
type OperatorConfig struct {
	Phone string `toml:"phone"`
}

// RedisConfig подключение к Redis
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        5000,
			ReadTimeout:     10,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
			RequestTimeout:  25,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			DBName:          "booking",
			User:            "postgres",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			MigrateOnStart:  true,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "booking_service",
		},
		Slots: SlotsConfig{
			Times: append([]string(nil), domain.DefaultSlotTimes...),
		},
		Payment: PaymentConfig{
			Timeout:           10,
			MaxRetries:        3,
			RetryInitialMs:    200,
			RetryMaxMs:        2000,
			SandboxBaseURL:    "https://app.sandbox.midtrans.com",
			ProductionBaseURL: "https://app.midtrans.com",
		},
		Notification: NotificationConfig{
			AckPolicy: AckPolicyAlways,
			DedupTTL:  48 * 60 * 60,
		},
		Operator: OperatorConfig{
			Phone: "6282251892599",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
	}
}

// Load загружает конфигурацию: значения по умолчанию, затем TOML файл (если есть),
// затем .env и переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
		}
	}

	// .env не обязателен
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Payment.ServerKey, "MIDTRANS_SERVER_KEY")
	setString(&c.Operator.Phone, "ADMIN_PHONE")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Logs.Level, "LOG_LEVEL")

	if err := setInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&c.Server.HTTPPort, "PORT"); err != nil {
		return err
	}
	if err := setBool(&c.Payment.IsProduction, "MIDTRANS_IS_PRODUCTION"); err != nil {
		return err
	}

	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}

	if c.Database.Port <= 0 {
		return fmt.Errorf("%w: database.port must be positive", ErrInvalidConfig)
	}

	if _, err := domain.NewSlotCatalog(c.Slots.Times); err != nil {
		return fmt.Errorf("%w: slots.times: %v", ErrInvalidConfig, err)
	}

	switch c.Notification.AckPolicy {
	case AckPolicyAlways, AckPolicyOnSuccess:
	default:
		return fmt.Errorf("%w: notification.ack_policy must be %q or %q, got %q",
			ErrInvalidConfig, AckPolicyAlways, AckPolicyOnSuccess, c.Notification.AckPolicy)
	}

	if c.Notification.VerifySignature && c.Payment.ServerKey == "" {
		return fmt.Errorf("%w: notification.verify_signature requires payment.server_key", ErrInvalidConfig)
	}

	if c.Payment.Timeout <= 0 {
		return fmt.Errorf("%w: payment.timeout must be positive", ErrInvalidConfig)
	}

	return nil
}

// DSN возвращает URL подключения к PostgreSQL, спецсимволы в значениях экранируются
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.DBName,
	}
	if d.SSLMode != "" {
		q := url.Values{}
		q.Set("sslmode", d.SSLMode)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// BaseURL возвращает базовый URL Snap API в зависимости от окружения
func (p PaymentConfig) BaseURL() string {
	if p.IsProduction {
		return p.ProductionBaseURL
	}
	return p.SandboxBaseURL
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidConfig, key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%w: %s must be a boolean: %v", ErrInvalidConfig, key, err)
	}
	*dst = b
	return nil
}

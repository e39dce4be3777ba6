package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/ptr"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Redis         RedisConfig         `toml:"redis"`
	Notifications NotificationsConfig `toml:"notifications"`
	UserService   UserServiceConfig   `toml:"user_service"`
	Booking       BookingConfig       `toml:"booking"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int     `toml:"http_port"`
	ReadTimeout     int     `toml:"read_timeout"`
	WriteTimeout    int     `toml:"write_timeout"`
	IdleTimeout     int     `toml:"idle_timeout"`
	ShutdownTimeout int     `toml:"shutdown_timeout"`
	RateLimitRPS    float64 `toml:"rate_limit_rps"`
	RateLimitBurst  int     `toml:"rate_limit_burst"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig настройки Redis для хранения корзин
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// NotificationsConfig настройки отправки уведомлений
type NotificationsConfig struct {
	Driver           string   `toml:"driver"` // kafka | asynq | log
	KafkaBrokers     []string `toml:"kafka_brokers"`
	KafkaTopic       string   `toml:"kafka_topic"`
	AsynqQueue       string   `toml:"asynq_queue"`
	PublishTimeoutMs int      `toml:"publish_timeout_ms"`
}

// PublishTimeout возвращает ограничение на одну публикацию уведомления
func (n NotificationsConfig) PublishTimeout() time.Duration {
	return time.Duration(n.PublishTimeoutMs) * time.Millisecond
}

// UserServiceConfig настройки клиента UserService
type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// BookingConfig бизнес-настройки записи и расчетов
type BookingConfig struct {
	Timezone          string `toml:"timezone"`
	DefaultStepPolicy string `toml:"default_step_policy"` // margin | hourly
	MarginMinutes     int    `toml:"margin_minutes"`
	// nil - ключ не задан, 0 - мастер не получает долю
	CommissionBasisPoints *int `toml:"commission_basis_points"`
	CartTTLMinutes        int  `toml:"cart_ttl_minutes"`
}

// Location возвращает часовой пояс филиалов
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

// CartTTL возвращает время жизни корзины
func (b BookingConfig) CartTTL() time.Duration {
	return time.Duration(b.CartTTLMinutes) * time.Minute
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load читает TOML файл, подставляет переменные окружения ${VAR},
// заполняет значения по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(string(raw))
}

// Parse разбирает содержимое TOML конфигурации
func Parse(content string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(os.ExpandEnv(content), &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}
	if c.Server.RateLimitRPS == 0 {
		c.Server.RateLimitRPS = 20
	}
	if c.Server.RateLimitBurst == 0 {
		c.Server.RateLimitBurst = 40
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Notifications.Driver == "" {
		c.Notifications.Driver = "log"
	}
	if c.Notifications.KafkaTopic == "" {
		c.Notifications.KafkaTopic = "barber.notifications"
	}
	if c.Notifications.AsynqQueue == "" {
		c.Notifications.AsynqQueue = "notifications"
	}
	if c.Notifications.PublishTimeoutMs == 0 {
		c.Notifications.PublishTimeoutMs = 500
	}
	if c.UserService.Timeout == 0 {
		c.UserService.Timeout = 5
	}
	if c.Booking.Timezone == "" {
		c.Booking.Timezone = "UTC"
	}
	if c.Booking.DefaultStepPolicy == "" {
		c.Booking.DefaultStepPolicy = "margin"
	}
	if c.Booking.CommissionBasisPoints == nil {
		c.Booking.CommissionBasisPoints = ptr.Ptr(domain.DefaultCommissionBasisPoints)
	}
	if c.Booking.CartTTLMinutes == 0 {
		c.Booking.CartTTLMinutes = 24 * 60
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "smc-barberservice"
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Server.RateLimitRPS < 0 || c.Server.RateLimitBurst < 0 {
		return fmt.Errorf("%w: server rate limit must be non-negative", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	switch c.Notifications.Driver {
	case "log":
	case "kafka":
		if len(c.Notifications.KafkaBrokers) == 0 {
			return fmt.Errorf("%w: notifications.kafka_brokers is required for kafka driver", ErrInvalidConfig)
		}
	case "asynq":
	default:
		return fmt.Errorf("%w: unknown notifications.driver %q", ErrInvalidConfig, c.Notifications.Driver)
	}
	if c.UserService.URL == "" {
		return fmt.Errorf("%w: user_service.url is required", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	switch c.Booking.DefaultStepPolicy {
	case "margin", "hourly":
	default:
		return fmt.Errorf("%w: unknown booking.default_step_policy %q", ErrInvalidConfig, c.Booking.DefaultStepPolicy)
	}
	if c.Booking.MarginMinutes < 0 {
		return fmt.Errorf("%w: booking.margin_minutes must be non-negative", ErrInvalidConfig)
	}
	if c.Notifications.PublishTimeoutMs < 0 {
		return fmt.Errorf("%w: notifications.publish_timeout_ms must be non-negative", ErrInvalidConfig)
	}
	if bp := c.Booking.CommissionBasisPoints; bp != nil && (*bp < 0 || *bp > domain.BasisPointsDenominator) {
		return fmt.Errorf("%w: booking.commission_basis_points must be in 0..10000", ErrInvalidConfig)
	}
	if c.Booking.CartTTLMinutes < 0 {
		return fmt.Errorf("%w: booking.cart_ttl_minutes must be non-negative", ErrInvalidConfig)
	}
	return nil
}

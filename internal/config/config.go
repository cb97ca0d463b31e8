package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/intellifit/GymBookingService/internal/domain"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	Slots           SlotsConfig           `toml:"slots"`
	UserService     IntegrationConfig     `toml:"user_service"`
	FacilityService IntegrationConfig     `toml:"facility_service"`
	TokenService    IntegrationConfig     `toml:"token_service"`
	NATS            NATSConfig            `toml:"nats"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SlotsConfig настройки календаря слотов
// Рабочее окно зала фиксированное: один часовой слот на каждый час
// от open_hour до close_hour
type SlotsConfig struct {
	OpenHour               int `toml:"open_hour"`
	CloseHour              int `toml:"close_hour"`
	SlotDurationMinutes    int `toml:"slot_duration_minutes"`
	CacheTTLMinutes        int `toml:"cache_ttl_minutes"`
	RetentionDays          int `toml:"retention_days"`
	JanitorIntervalMinutes int `toml:"janitor_interval_minutes"`
}

// IntegrationConfig настройки HTTP клиента внешнего сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// NATSConfig настройки подключения к NATS для событий бронирования
type NATSConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
}

// Load загружает конфигурацию из TOML файла и применяет значения по умолчанию
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Slots.OpenHour == 0 && c.Slots.CloseHour == 0 {
		c.Slots.OpenHour = domain.DefaultOpenHour
		c.Slots.CloseHour = domain.DefaultCloseHour
	}
	if c.Slots.SlotDurationMinutes == 0 {
		c.Slots.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if c.Slots.CacheTTLMinutes == 0 {
		c.Slots.CacheTTLMinutes = domain.DefaultCacheTTLMinutes
	}
	if c.Slots.RetentionDays == 0 {
		c.Slots.RetentionDays = domain.DefaultSlotRetentionDays
	}
	if c.Slots.JanitorIntervalMinutes == 0 {
		c.Slots.JanitorIntervalMinutes = 60
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "gym-booking-service"
	}
}

func (c *Config) validate() error {
	if c.Slots.OpenHour < 0 || c.Slots.CloseHour > 24 || c.Slots.OpenHour >= c.Slots.CloseHour {
		return fmt.Errorf("config: invalid slots window %d-%d", c.Slots.OpenHour, c.Slots.CloseHour)
	}
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	return nil
}

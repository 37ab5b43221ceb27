// Package config предоставляет функции для работы с конфигурацией приложения
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config основная структура конфигурации приложения
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Report   ReportConfig   `yaml:"report"`
}

// ServerConfig конфигурация веб-сервера
type ServerConfig struct {
	Port            int           `yaml:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig конфигурация базы данных
type DatabaseConfig struct {
	Driver         string        `yaml:"driver" validate:"required,oneof=sqlite postgres"`
	DSN            string        `yaml:"dsn"`
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	DBName         string        `yaml:"dbname"`
	SSLMode        string        `yaml:"sslmode"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// ReportConfig настройки отчета
type ReportConfig struct {
	// CurrentYear фиксирует текущий год отчета; 0 означает год по системным часам
	CurrentYear int `yaml:"current_year" validate:"min=0"`
}

// GetDSN возвращает строку подключения к базе данных
func (d DatabaseConfig) GetDSN() string {
	if d.DSN != "" || d.Driver != "postgres" {
		return d.DSN
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Year возвращает год отчета: зафиксированный в конфигурации или текущий
func (r ReportConfig) Year(now time.Time) int {
	if r.CurrentYear > 0 {
		return r.CurrentYear
	}
	return now.Year()
}

// LoadConfig загружает конфигурацию из YAML файла.
// Отсутствующий файл не является ошибкой: используются значения по умолчанию
// и переменные окружения ROSTER_*.
func LoadConfig(filename string) (*Config, error) {
	cfg := &Config{}

	file, err := os.Open(filename)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", filename, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to open config file %s: %w", filename, err)
	}

	// .env необязателен
	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.Driver == "sqlite" && cfg.Database.DSN == "" {
		cfg.Database.DSN = "students.db"
	}
	if cfg.Database.Driver == "postgres" {
		if cfg.Database.Port == 0 {
			cfg.Database.Port = 5432
		}
		if cfg.Database.SSLMode == "" {
			cfg.Database.SSLMode = "disable"
		}
	}
	if cfg.Database.ConnectTimeout == 0 {
		cfg.Database.ConnectTimeout = 5 * time.Second
	}
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("ROSTER_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("ROSTER_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("ROSTER_SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ROSTER_SERVER_PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("ROSTER_CURRENT_YEAR"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ROSTER_CURRENT_YEAR %q: %w", v, err)
		}
		cfg.Report.CurrentYear = year
	}
	return nil
}

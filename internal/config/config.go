package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config содержит конфигурацию сервера и расчетного ядра
type Config struct {
	Port             int
	MaxPrincipal     float64
	MaxMonths        int
	MaxRate          float64
	MaxEarlyPayments int
	MaxBodyBytes     int64
	LogLevel         string
	LogFormat        string
	OTELEndpoint     string
	OTELServiceName  string
	CORSOrigins      []string
	ShutdownTimeout  time.Duration
}

var defaults = map[string]interface{}{
	"PORT":                 8000,
	"MAX_PRINCIPAL":        1e11,
	"MAX_MONTHS":           600,
	"MAX_RATE":             100.0,
	"MAX_EARLY_PAYMENTS":   120,
	"MAX_BODY_BYTES":       1 << 20,
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "json",
	"OTEL_ENDPOINT":        "",
	"OTEL_SERVICE_NAME":    "mortgage-engine",
	"CORS_ALLOWED_ORIGINS": "*",
	"SHUTDOWN_TIMEOUT":     "10s",
}

// LoadConfig загружает конфигурацию из переменных окружения и необязательного
// YAML-файла configPath. Значения окружения имеют приоритет над файлом.
func LoadConfig(configPath string) (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("ошибка чтения файла конфигурации %s: %w", configPath, err)
		}
	}

	cfg := &Config{
		Port:             v.GetInt("PORT"),
		MaxPrincipal:     v.GetFloat64("MAX_PRINCIPAL"),
		MaxMonths:        v.GetInt("MAX_MONTHS"),
		MaxRate:          v.GetFloat64("MAX_RATE"),
		MaxEarlyPayments: v.GetInt("MAX_EARLY_PAYMENTS"),
		MaxBodyBytes:     v.GetInt64("MAX_BODY_BYTES"),
		LogLevel:         strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:        strings.ToLower(v.GetString("LOG_FORMAT")),
		OTELEndpoint:     v.GetString("OTEL_ENDPOINT"),
		OTELServiceName:  v.GetString("OTEL_SERVICE_NAME"),
		CORSOrigins:      splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		ShutdownTimeout:  v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию без чтения окружения
func Default() *Config {
	return &Config{
		Port:             8000,
		MaxPrincipal:     1e11,
		MaxMonths:        600,
		MaxRate:          100,
		MaxEarlyPayments: 120,
		MaxBodyBytes:     1 << 20,
		LogLevel:         "info",
		LogFormat:        "json",
		OTELServiceName:  "mortgage-engine",
		CORSOrigins:      []string{"*"},
		ShutdownTimeout:  10 * time.Second,
	}
}

// Validate проверяет, что лимиты имеют смысл
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT: недопустимый порт %d", c.Port)
	}
	if c.MaxPrincipal <= 0 || c.MaxRate <= 0 || c.MaxMonths < 1 {
		return fmt.Errorf("лимиты MAX_PRINCIPAL, MAX_RATE, MAX_MONTHS должны быть положительными")
	}
	if c.MaxEarlyPayments < 0 {
		return fmt.Errorf("MAX_EARLY_PAYMENTS не может быть отрицательным")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES должен быть положительным")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT должен быть положительным")
	}
	return nil
}

// Addr возвращает адрес для http.Server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

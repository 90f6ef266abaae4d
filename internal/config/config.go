package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	OCR      OCRConfig
	Upload   UploadConfig
	CORS     CORSConfig
	Database DatabaseConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"90s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// OCRConfig параметры внешнего OCR провайдера
type OCRConfig struct {
	BaseURL        string        `env:"OCR_BASE_URL" envDefault:"https://api.ocr.space"`
	Path           string        `env:"OCR_PATH" envDefault:"/parse/image"`
	APIKey         string        `env:"OCR_API_KEY" envDefault:""`
	RequestTimeout time.Duration `env:"OCR_REQUEST_TIMEOUT" envDefault:"30s"`
}

// URL возвращает полный адрес OCR endpoint'а
func (o OCRConfig) URL() string {
	return o.BaseURL + o.Path
}

// UploadConfig параметры приёма и временного хранения файлов
type UploadConfig struct {
	MaxSizeMB     int           `env:"UPLOAD_MAX_SIZE_MB" envDefault:"10"`
	TempDir       string        `env:"UPLOAD_TEMP_DIR" envDefault:"tmp/uploads"`
	OrphanTTL     time.Duration `env:"UPLOAD_ORPHAN_TTL" envDefault:"15m"`
	SweepInterval time.Duration `env:"UPLOAD_SWEEP_INTERVAL" envDefault:"5m"`
}

// MaxSizeBytes возвращает лимит размера файла в байтах
func (u UploadConfig) MaxSizeBytes() int64 {
	return int64(u.MaxSizeMB) << 20
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

type DatabaseConfig struct {
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            int           `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"receiptgate"`
	Password        string        `env:"DB_PASSWORD" envDefault:"secret"`
	Name            string        `env:"DB_NAME" envDefault:"receiptgate"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	MaxConns        int           `env:"DB_MAX_CONNS" envDefault:"10"`
	MinConns        int           `env:"DB_MIN_CONNS" envDefault:"2"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	// json или console
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

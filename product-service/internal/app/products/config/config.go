package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Фиксированные имена секретов во внешнем хранилище.
// Значения из хранилища перекрывают настройки файла и окружения.
const (
	SecretDbUserID   = "product-service-db-user-id"
	SecretDbPassword = "product-service-db-password"
)

// Config содержит все настройки Product Service
type Config struct {
	Environment string         `yaml:"environment"`
	Server      ServerConfig   `yaml:"server"`
	Database    DatabaseConfig `yaml:"database"`
	CORS        CORSConfig     `yaml:"cors"`
	Log         LogConfig      `yaml:"log"`
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string `yaml:"host"` // Адрес хоста (по умолчанию 0.0.0.0)
	Port string `yaml:"port"` // Порт сервера (по умолчанию 8080)
}

// DatabaseConfig - дескриптор подключения к PostgreSQL.
// Учетные данные могут быть перекрыты внешним хранилищем секретов.
type DatabaseConfig struct {
	Server      string `yaml:"server"`       // Хост PostgreSQL
	Database    string `yaml:"database"`     // Имя базы данных
	UserID      string `yaml:"user_id"`      // Имя пользователя БД
	Password    string `yaml:"password"`     // Пароль БД
	OtherParams string `yaml:"other_params"` // Дополнительные параметры DSN (port, sslmode и т.п.)
}

// CORSConfig - список разрешенных origins.
// Пустой список: в development разрешено все, в production доступ закрыт.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LogConfig - настройки логирования
type LogConfig struct {
	Level string `yaml:"level"`
}

// SecretSource возвращает секрет по фиксированному имени.
// Внешний коллаборатор: реализация по умолчанию читает файлы-секреты.
type SecretSource interface {
	Secret(name string) (string, bool)
}

// FileSecretSource читает секреты из файлов каталога dir (Docker secrets)
type FileSecretSource struct {
	dir string
}

func NewFileSecretSource(dir string) FileSecretSource {
	return FileSecretSource{dir: dir}
}

func (s FileSecretSource) Secret(name string) (string, bool) {
	data, err := os.ReadFile(s.dir + "/" + name)
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", false
	}
	return value, true
}

// Load собирает конфигурацию из слоев: значения по умолчанию,
// YAML файл (CONFIG_FILE или ./config.yaml), переменные окружения,
// затем внешнее хранилище секретов для учетных данных БД.
func Load() (*Config, error) {
	secrets := NewFileSecretSource(getEnv("SECRETS_DIR", "/run/secrets"))
	return LoadWithSources(getEnv("CONFIG_FILE", "config.yaml"), secrets)
}

// LoadWithSources собирает конфигурацию с явными источниками
func LoadWithSources(configFile string, secrets SecretSource) (*Config, error) {
	cfg := &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
		},
		Database: DatabaseConfig{
			Server:      "localhost",
			Database:    "demo_store",
			OtherParams: "port=5432 sslmode=disable",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if err := applyFile(cfg, configFile); err != nil {
		return nil, err
	}
	applyEnv(cfg)
	applySecrets(cfg, secrets)

	// Без учетных данных сервис не может стать готовым
	if cfg.Database.UserID == "" || cfg.Database.Password == "" {
		return nil, fmt.Errorf("database credentials are not configured: user id and password are required")
	}

	return cfg, nil
}

// applyFile накладывает настройки из YAML файла, если он существует
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnv накладывает переменные окружения поверх файла
func applyEnv(cfg *Config) {
	cfg.Environment = getEnv("APP_ENV", cfg.Environment)
	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnv("SERVER_PORT", cfg.Server.Port)
	cfg.Database.Server = getEnv("DB_SERVER", cfg.Database.Server)
	cfg.Database.Database = getEnv("DB_NAME", cfg.Database.Database)
	cfg.Database.UserID = getEnv("DB_USER_ID", cfg.Database.UserID)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.OtherParams = getEnv("DB_OTHER_PARAMS", cfg.Database.OtherParams)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		allowed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				allowed = append(allowed, p)
			}
		}
		cfg.CORS.AllowedOrigins = allowed
	}
}

// applySecrets перекрывает учетные данные значениями из хранилища секретов
func applySecrets(cfg *Config, secrets SecretSource) {
	if secrets == nil {
		return
	}
	if userID, ok := secrets.Secret(SecretDbUserID); ok {
		cfg.Database.UserID = userID
	}
	if password, ok := secrets.Secret(SecretDbPassword); ok {
		cfg.Database.Password = password
	}
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s dbname=%s user=%s password=%s",
		c.Server, c.Database, c.UserID, c.Password,
	)
	if c.OtherParams != "" {
		dsn += " " + c.OtherParams
	}
	return dsn
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// IsProduction сообщает, работает ли сервис в production окружении
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

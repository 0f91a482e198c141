package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	AIClientOpenAI = "openai"
	AIClientOllama = "ollama"
)

// secretsDir - путь по умолчанию для Docker Secrets. Переменная, чтобы тесты могли подменить каталог.
var secretsDir = "/run/secrets"

// Config содержит конфигурацию приложения
type Config struct {
	Env       string          `yaml:"env" env:"APP_ENV" env-default:"development"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	AI        AIConfig        `yaml:"ai"`
	Prompt    PromptConfig    `yaml:"prompt"`
	CORS      CORSConfig      `yaml:"cors"`
	Admin     AdminConfig     `yaml:"admin"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Batch     BatchConfig     `yaml:"batch"`
}

// ServerConfig содержит конфигурацию HTTP сервера
type ServerConfig struct {
	Port            string        `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"300s"` // пакетная генерация может идти долго
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`
	// TrustedProxies - адреса/CIDR прокси, чьим X-Forwarded-For можно верить. Пусто: только адрес сокета.
	TrustedProxies []string `yaml:"trusted_proxies" env:"SERVER_TRUSTED_PROXIES" env-separator:","`
}

// LogConfig содержит настройки логгера
type LogConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Encoding   string `yaml:"encoding" env:"LOG_ENCODING" env-default:"json"`
	OutputPath string `yaml:"output_path" env:"LOG_OUTPUT_PATH"`
}

// DatabaseConfig содержит конфигурацию базы данных
type DatabaseConfig struct {
	Host              string        `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port              string        `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User              string        `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password          string        `yaml:"-" env:"DB_PASSWORD"`
	Name              string        `yaml:"name" env:"DB_NAME" env-default:"timeless"`
	SSLMode           string        `yaml:"ssl_mode" env:"DB_SSL_MODE" env-default:"disable"`
	MaxConns          int           `yaml:"max_connections" env:"DB_MAX_CONNECTIONS" env-default:"10"`
	MaxConnIdleTime   time.Duration `yaml:"max_conn_idle_time" env:"DB_MAX_IDLE_TIME" env-default:"5m"`
	ConnectRetries    int           `yaml:"connect_retries" env:"DB_CONNECT_RETRIES" env-default:"10"`
	ConnectRetryDelay time.Duration `yaml:"connect_retry_delay" env:"DB_CONNECT_RETRY_DELAY" env-default:"3s"`
	AutoMigrate       bool          `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"true"`
	SeedDefaultPrompt bool          `yaml:"seed_default_prompt" env:"DB_SEED_DEFAULT_PROMPT" env-default:"true"`
}

// RedisConfig - пустой URL отключает Redis (сессии и rate limit хранятся в памяти).
type RedisConfig struct {
	URL string `yaml:"url" env:"REDIS_URL"`
}

// RabbitMQConfig - пустой URL отключает публикацию событий.
type RabbitMQConfig struct {
	URL             string `yaml:"url" env:"RABBITMQ_URL"`
	ContentExchange string `yaml:"content_exchange" env:"RABBITMQ_CONTENT_EXCHANGE" env-default:"timeless_content_updates"`
}

// AIConfig содержит конфигурацию провайдера генерации
type AIConfig struct {
	ClientType  string        `yaml:"client_type" env:"AI_CLIENT_TYPE" env-default:"openai"`
	APIKey      string        `yaml:"-" env:"AI_API_KEY"`
	BaseURL     string        `yaml:"base_url" env:"AI_BASE_URL" env-default:"https://api.openai.com/v1"`
	Model       string        `yaml:"model" env:"AI_MODEL" env-default:"gpt-4o"`
	MaxTokens   int           `yaml:"max_tokens" env:"AI_MAX_TOKENS" env-default:"1000"`
	Temperature float32       `yaml:"temperature" env:"AI_TEMPERATURE" env-default:"0.8"`
	Timeout     time.Duration `yaml:"timeout" env:"AI_TIMEOUT" env-default:"120s"`
}

// PromptConfig задает заголовок и метки блока примеров в собранном промпте.
type PromptConfig struct {
	ExamplesHeader string `yaml:"examples_header" env:"PROMPT_EXAMPLES_HEADER" env-default:"## Examples:"`
	InputLabel     string `yaml:"input_label" env:"PROMPT_INPUT_LABEL" env-default:"### Input:"`
	OutputLabel    string `yaml:"output_label" env:"PROMPT_OUTPUT_LABEL" env-default:"### Output:"`
}

// CORSConfig содержит конфигурацию CORS
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000,http://localhost:8080"`
}

// AdminConfig - учетные данные единственного администратора и параметры сессии.
type AdminConfig struct {
	Username      string        `yaml:"username" env:"ADMIN_USERNAME"`
	Password      string        `yaml:"-" env:"ADMIN_PASSWORD"`
	PasswordHash  string        `yaml:"-" env:"ADMIN_PASSWORD_HASH"`
	JWTSecret     string        `yaml:"-" env:"JWT_SECRET"`
	SessionTTL    time.Duration `yaml:"session_ttl" env:"ADMIN_SESSION_TTL" env-default:"24h"`
	SecureCookies bool          `yaml:"secure_cookies" env:"ADMIN_SECURE_COOKIES" env-default:"false"`
}

// RateLimitConfig ограничивает попытки входа с одного IP.
type RateLimitConfig struct {
	LoginLimit  uint          `yaml:"login_limit" env:"LOGIN_RATE_LIMIT" env-default:"10"`
	LoginWindow time.Duration `yaml:"login_window" env:"LOGIN_RATE_WINDOW" env-default:"1m"`
}

// BatchConfig ограничивает пакетную генерацию: каждая фраза - отдельный запрос к провайдеру.
type BatchConfig struct {
	MaxPhrases int `yaml:"max_phrases" env:"BATCH_MAX_PHRASES" env-default:"10"`
}

// Load загружает конфигурацию: .env, затем YAML-файл (если есть), затем переменные окружения
// и секреты Docker для незаполненных секретных полей.
func Load(configPath string) (*Config, error) {
	cfg, err := Read(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("Конфигурация загружена (env=%s, ai=%s, db=%s)", cfg.Env, cfg.AI.ClientType, cfg.Database.MaskedDSN())
	return cfg, nil
}

// Read читает конфигурацию без проверки обязательных полей.
// Нужен утилитам, которым достаточно настроек базы данных (cmd/migrate).
func Read(configPath string) (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку, если файла нет)
	_ = godotenv.Load()

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	var cfg Config
	if configPath != "" {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("ошибка чтения файла конфигурации '%s': %w", configPath, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	cfg.AI.APIKey = secretOrValue("ai_api_key", cfg.AI.APIKey)
	cfg.Database.Password = secretOrValue("db_password", cfg.Database.Password)
	cfg.Admin.JWTSecret = secretOrValue("jwt_secret", cfg.Admin.JWTSecret)
	cfg.Admin.Password = secretOrValue("admin_password", cfg.Admin.Password)
	cfg.Admin.PasswordHash = secretOrValue("admin_password_hash", cfg.Admin.PasswordHash)

	cfg.AI.ClientType = strings.ToLower(strings.TrimSpace(cfg.AI.ClientType))
	return &cfg, nil
}

// Validate проверяет обязательные настройки.
func (c *Config) Validate() error {
	var errs []error
	if c.Admin.Username == "" {
		errs = append(errs, errors.New("ADMIN_USERNAME not set"))
	}
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set"))
	}
	if c.Admin.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET not set"))
	}
	if c.Admin.SessionTTL <= 0 {
		errs = append(errs, errors.New("ADMIN_SESSION_TTL must be positive"))
	}
	switch c.AI.ClientType {
	case AIClientOpenAI:
		if c.AI.APIKey == "" {
			errs = append(errs, errors.New("AI_API_KEY (or OPENAI_API_KEY) not set"))
		}
	case AIClientOllama:
	default:
		errs = append(errs, fmt.Errorf("unknown AI_CLIENT_TYPE '%s'", c.AI.ClientType))
	}
	if c.Batch.MaxPhrases < 0 {
		errs = append(errs, errors.New("BATCH_MAX_PHRASES must not be negative"))
	}
	if c.AI.MaxTokens <= 0 {
		errs = append(errs, errors.New("AI_MAX_TOKENS must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// IsDevelopment сообщает, запущен ли сервис в режиме разработки.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// LogSummary логирует загруженную конфигурацию без секретов.
func (c *Config) LogSummary(logger *zap.Logger) {
	logger.Info("Configuration loaded",
		zap.String("env", c.Env),
		zap.String("serverPort", c.Server.Port),
		zap.Strings("serverTrustedProxies", c.Server.TrustedProxies),
		zap.String("dbDSN", c.Database.MaskedDSN()),
		zap.Int("dbMaxConns", c.Database.MaxConns),
		zap.Bool("redisEnabled", c.Redis.URL != ""),
		zap.Bool("rabbitmqEnabled", c.RabbitMQ.URL != ""),
		zap.String("aiClientType", c.AI.ClientType),
		zap.String("aiBaseURL", c.AI.BaseURL),
		zap.String("aiModel", c.AI.Model),
		zap.Int("aiMaxTokens", c.AI.MaxTokens),
		zap.Float32("aiTemperature", c.AI.Temperature),
		zap.Duration("aiTimeout", c.AI.Timeout),
		zap.Int("batchMaxPhrases", c.Batch.MaxPhrases),
		zap.String("promptExamplesHeader", c.Prompt.ExamplesHeader),
		zap.Strings("corsAllowedOrigins", c.CORS.AllowedOrigins),
		zap.String("adminUsername", c.Admin.Username),
		zap.Duration("adminSessionTTL", c.Admin.SessionTTL),
	)
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL
func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// MaskedDSN возвращает DSN с замаскированным паролем для логирования
func (c DatabaseConfig) MaskedDSN() string {
	return fmt.Sprintf("postgres://%s:********@%s:%s/%s?sslmode=%s",
		c.User, c.Host, c.Port, c.Name, c.SSLMode)
}

// secretOrValue возвращает значение из окружения, а если оно пустое - содержимое файла секрета.
func secretOrValue(secretName, value string) string {
	if value != "" {
		return value
	}
	secret, err := readSecret(secretName)
	if err != nil {
		return ""
	}
	return secret
}

// readSecret читает секрет из файла в стандартном пути Docker Secrets.
func readSecret(secretName string) (string, error) {
	filePath := filepath.Join(secretsDir, secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file %s: %w", filePath, err)
	}
	secret := strings.TrimSpace(string(secretBytes))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty", filePath)
	}
	return secret, nil
}

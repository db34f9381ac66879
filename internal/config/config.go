// config предоставляет структуру конфигурации tender-service
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/ilyakaznacheev/cleanenv"
)

// Поддерживаемые драйверы хранилища.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config - корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env          string        `yaml:"env"     env:"ENV"        env-default:"local"`
	HTTP         HTTPConfig    `yaml:"http"`
	GRPC         GRPCConfig    `yaml:"grpc"`
	DB           DBConfig      `yaml:"db"`
	Feed         FeedConfig    `yaml:"feed"`
	Extract      ExtractConfig `yaml:"extract"`
	Ingest       IngestConfig  `yaml:"ingest"`
	Redis        RedisConfig   `yaml:"redis"`
	Archive      ArchiveConfig `yaml:"archive"`
	LimitsConfig LimitsConfig  `yaml:"limits"`
	Timeouts     TimeoutConfig `yaml:"timeouts"`
}

// TimeoutConfig - таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
}

// GRPCConfig - сетевые настройки gRPC-сервера (health-check).
type GRPCConfig struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50053"`
}

// HTTPConfig - сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50083"`
}

// Addr возвращает адрес в формате host:port.
func (g GRPCConfig) Addr() string {
	return net.JoinHostPort(g.Host, g.Port)
}

// Addr возвращает адрес в формате host:port.
func (g HTTPConfig) Addr() string {
	return net.JoinHostPort(g.Host, g.Port)
}

// DBConfig - настройки подключения к хранилищу.
type DBConfig struct {
	// Driver - postgres (по умолчанию) или mongo.
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
	URL    string `yaml:"url"    env:"DATABASE_URL" env-required:"true"`
}

// FeedConfig - источник тендеров и параметры HTTP-запроса к нему.
type FeedConfig struct {
	URL            string        `yaml:"url"             env:"FEED_URL"             env-default:"https://www.service.bund.de/Content/Globals/Functions/RSSFeed/RSSGenerator_Ausschreibungen.xml"`
	SourceName     string        `yaml:"source_name"     env:"FEED_SOURCE_NAME"     env-default:"service.bund.de Tenders"`
	UserAgent      string        `yaml:"user_agent"      env:"FEED_USER_AGENT"      env-default:"Mozilla/5.0 (compatible; TenderIngest/1.0)"`
	Accept         string        `yaml:"accept"          env:"FEED_ACCEPT"          env-default:"application/rss+xml,application/xml;q=0.9,*/*;q=0.8"`
	AcceptLanguage string        `yaml:"accept_language" env:"FEED_ACCEPT_LANGUAGE" env-default:"de-DE,de;q=0.9,en-US;q=0.8,en;q=0.7"`
	Timeout        time.Duration `yaml:"timeout"         env:"FEED_TIMEOUT"         env-default:"10s"`
	MaxRedirects   int           `yaml:"max_redirects"   env:"FEED_MAX_REDIRECTS"   env-default:"5"`
	// MaxBodyBytes - верхняя граница размера ленты.
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"FEED_MAX_BODY_BYTES" env-default:"16777216"`
}

// ExtractConfig - параметры эвристик извлечения.
type ExtractConfig struct {
	// Timezone - зона, в которой трактуются даты вида DD.MM.YYYY.
	Timezone string `yaml:"timezone" env:"EXTRACT_TIMEZONE" env-default:"Europe/Berlin"`
	// DefaultDeadline - срок по умолчанию от момента загрузки.
	DefaultDeadline time.Duration `yaml:"default_deadline" env:"EXTRACT_DEFAULT_DEADLINE" env-default:"720h"`
}

// IngestConfig - параметры прогонов конвейера.
type IngestConfig struct {
	// Interval - период планировщика внутри tender-service.
	Interval time.Duration `yaml:"interval" env:"INGEST_INTERVAL" env-default:"1h"`
	// ItemTimeout - таймаут каждого обращения к хранилищу в рамках одного элемента.
	ItemTimeout time.Duration `yaml:"item_timeout" env:"INGEST_ITEM_TIMEOUT" env-default:"5s"`
	// RunTimeout - верхняя граница длительности прогона.
	RunTimeout time.Duration `yaml:"run_timeout" env:"INGEST_RUN_TIMEOUT" env-default:"10m"`
}

// RedisConfig - run-lock планировщика. Пустой URL отключает распределённую блокировку.
type RedisConfig struct {
	URL     string        `yaml:"url"      env:"REDIS_URL"`
	LockKey string        `yaml:"lock_key" env:"REDIS_LOCK_KEY" env-default:"tenders:ingest:lock"`
	LockTTL time.Duration `yaml:"lock_ttl" env:"REDIS_LOCK_TTL" env-default:"15m"`
}

// ArchiveConfig - архив «сырых» лент в S3/MinIO. Пустой Endpoint отключает архив.
type ArchiveConfig struct {
	Endpoint     string `yaml:"endpoint"      env:"ARCHIVE_ENDPOINT"`
	Bucket       string `yaml:"bucket"        env:"ARCHIVE_BUCKET" env-default:"tender-feeds"`
	RootUser     string `yaml:"root_user"     env:"ARCHIVE_ROOT_USER"`
	RootPassword string `yaml:"root_password" env:"ARCHIVE_ROOT_PASSWORD"`
}

// LimitsConfig - серверные лимиты на выдачу.
type LimitsConfig struct {
	// Применяется при запросе с limit=0.
	Default int32 `yaml:"default" env:"DEFAULT_LIMIT" env-default:"20"`
	// Верхняя граница для limit.
	Max int32 `yaml:"max" env:"MAX_LIMIT" env-default:"100"`
}

// MustLoad - обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return &cfg, nil
	}

	switch {
	case path != "":
		// 1) Явный путь.
	case os.Getenv("CONFIG_PATH") != "":
		// 2) CONFIG_PATH.
		path = os.Getenv("CONFIG_PATH")
	default:
		// 3) ./local.yaml.
		if _, err := os.Stat("local.yaml"); err == nil {
			path = "local.yaml"
		}
	}

	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate - базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}
	if c.DB.Driver != DriverPostgres && c.DB.Driver != DriverMongo {
		return fmt.Errorf("db.driver must be %q or %q", DriverPostgres, DriverMongo)
	}
	if c.Feed.URL == "" {
		return fmt.Errorf("feed.url is required")
	}
	if c.Feed.Timeout <= 0 {
		return fmt.Errorf("feed.timeout must be > 0")
	}
	if c.Feed.MaxRedirects < 0 {
		return fmt.Errorf("feed.max_redirects must be >= 0")
	}
	if _, err := c.Extract.Location(); err != nil {
		return fmt.Errorf("extract.timezone: %w", err)
	}
	if c.Extract.DefaultDeadline <= 0 {
		return fmt.Errorf("extract.default_deadline must be > 0")
	}
	if c.Ingest.Interval < time.Minute {
		return fmt.Errorf("ingest.interval must be at least 1m")
	}
	if c.Ingest.ItemTimeout <= 0 {
		return fmt.Errorf("ingest.item_timeout must be > 0")
	}
	if c.Redis.URL != "" && c.Redis.LockTTL <= 0 {
		return fmt.Errorf("redis.lock_ttl must be > 0")
	}
	if c.Archive.Endpoint != "" && c.Archive.Bucket == "" {
		return fmt.Errorf("archive.bucket is required when archive.endpoint is set")
	}
	if c.LimitsConfig.Default <= 0 {
		return fmt.Errorf("limits.default must be > 0")
	}
	if c.LimitsConfig.Max <= 0 {
		return fmt.Errorf("limits.max must be > 0")
	}
	if c.LimitsConfig.Default > c.LimitsConfig.Max {
		return fmt.Errorf("limits.default must be <= limits.max")
	}
	return nil
}

// Location загружает часовой пояс для разбора немецких дат.
func (e ExtractConfig) Location() (*time.Location, error) {
	return time.LoadLocation(e.Timezone)
}

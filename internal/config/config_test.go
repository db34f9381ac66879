package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeFile - утилита записи временного файла конфигурации.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

// chdir - смена текущего рабочего каталога с автоматическим откатом.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// Полный корректный YAML (не зависит от дефолтов).
const sampleYAML = `
env: "prod"
http:
  host: "127.0.0.1"
  port: "8080"
grpc:
  host: "127.0.0.1"
  port: "6000"
db:
  driver: "mongo"
  url: "mongodb://localhost:27017/tenders"
feed:
  url: "https://feeds.example/tenders.xml"
  source_name: "example tenders"
  user_agent: "test-agent/1.0"
  timeout: "7s"
  max_redirects: 3
extract:
  timezone: "UTC"
  default_deadline: "240h"
ingest:
  interval: "30m"
  item_timeout: "2s"
  run_timeout: "5m"
redis:
  url: "redis://localhost:6379/0"
  lock_key: "custom:lock"
  lock_ttl: "20m"
archive:
  endpoint: "http://localhost:9000"
  bucket: "feeds"
limits:
  default: 15
  max: 200
`

// Минимально валидный YAML (только обязательные поля).
const minimalYAML = `
db:
  url: "postgres://localhost/min"
`

// Некорректный YAML - для проверки ошибок парсинга.
const brokenYAML = `
db:
  url: "postgres://broken"
feed:
  url: ["https://example.org/rss.xml"
`

func TestAddr(t *testing.T) {
	t.Parallel()

	require.Equal(t, "127.0.0.1:50051", GRPCConfig{Host: "127.0.0.1", Port: "50051"}.Addr())
	require.Equal(t, "0.0.0.0:8080", HTTPConfig{Host: "0.0.0.0", Port: "8080"}.Addr())
}

// TestLoad_WithExplicitPath_OK - явный путь имеет высший приоритет, все поля читаются.
func TestLoad_WithExplicitPath_OK(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr())
	require.Equal(t, "6000", cfg.GRPC.Port)
	require.Equal(t, DriverMongo, cfg.DB.Driver)
	require.Equal(t, "mongodb://localhost:27017/tenders", cfg.DB.URL)
	require.Equal(t, "https://feeds.example/tenders.xml", cfg.Feed.URL)
	require.Equal(t, "example tenders", cfg.Feed.SourceName)
	require.Equal(t, "test-agent/1.0", cfg.Feed.UserAgent)
	require.Equal(t, 7*time.Second, cfg.Feed.Timeout)
	require.Equal(t, 3, cfg.Feed.MaxRedirects)
	require.Equal(t, "UTC", cfg.Extract.Timezone)
	require.Equal(t, 240*time.Hour, cfg.Extract.DefaultDeadline)
	require.Equal(t, 30*time.Minute, cfg.Ingest.Interval)
	require.Equal(t, 2*time.Second, cfg.Ingest.ItemTimeout)
	require.Equal(t, 5*time.Minute, cfg.Ingest.RunTimeout)
	require.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	require.Equal(t, "custom:lock", cfg.Redis.LockKey)
	require.Equal(t, 20*time.Minute, cfg.Redis.LockTTL)
	require.Equal(t, "http://localhost:9000", cfg.Archive.Endpoint)
	require.Equal(t, "feeds", cfg.Archive.Bucket)
	require.EqualValues(t, 15, cfg.LimitsConfig.Default)
	require.EqualValues(t, 200, cfg.LimitsConfig.Max)
}

// TestLoad_Minimal_Defaults - дефолты повторяют параметры исходного ETL-скрипта.
func TestLoad_Minimal_Defaults(t *testing.T) {
	t.Parallel()

	cfgPath := writeFile(t, t.TempDir(), "min.yaml", minimalYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "local", cfg.Env)
	require.Equal(t, DriverPostgres, cfg.DB.Driver)
	require.Equal(t, "https://www.service.bund.de/Content/Globals/Functions/RSSFeed/RSSGenerator_Ausschreibungen.xml", cfg.Feed.URL)
	require.Equal(t, "service.bund.de Tenders", cfg.Feed.SourceName)
	require.Equal(t, 10*time.Second, cfg.Feed.Timeout)
	require.Equal(t, 5, cfg.Feed.MaxRedirects)
	require.Equal(t, "Europe/Berlin", cfg.Extract.Timezone)
	require.Equal(t, 30*24*time.Hour, cfg.Extract.DefaultDeadline)
	require.Empty(t, cfg.Redis.URL)
	require.Empty(t, cfg.Archive.Endpoint)
	require.EqualValues(t, 20, cfg.LimitsConfig.Default)
	require.EqualValues(t, 100, cfg.LimitsConfig.Max)

	loc, err := cfg.Extract.Location()
	require.NoError(t, err)
	require.Equal(t, "Europe/Berlin", loc.String())
}

func TestLoad_WithExplicitPath_FileDoesNotExist(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "config file does not exist")
}

func TestLoad_WithExplicitPath_BrokenYAML(t *testing.T) {
	t.Parallel()

	cfgPath := writeFile(t, t.TempDir(), "broken.yaml", brokenYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read config")
}

// TestLoad_WithCONFIG_PATH_OK - путь берётся из CONFIG_PATH.
func TestLoad_WithCONFIG_PATH_OK(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "from_env_path.yaml", minimalYAML)
	t.Setenv("CONFIG_PATH", cfgPath)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "postgres://localhost/min", cfg.DB.URL)
}

// TestLoad_WithLocalYAML_OK - если нет CONFIG_PATH, берётся ./local.yaml.
func TestLoad_WithLocalYAML_OK(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, ".", "local.yaml", sampleYAML)
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.Env)
}

// TestLoad_EnvOnly_OK - конфигурация полностью из ENV без YAML-файлов.
func TestLoad_EnvOnly_OK(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")

	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("FEED_URL", "https://env.example/feed.xml")
	t.Setenv("INGEST_INTERVAL", "13m")
	t.Setenv("ENV", "dev")
	t.Setenv("DEFAULT_LIMIT", "21")
	t.Setenv("MAX_LIMIT", "333")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "postgres://env/db", cfg.DB.URL)
	require.Equal(t, "https://env.example/feed.xml", cfg.Feed.URL)
	require.Equal(t, 13*time.Minute, cfg.Ingest.Interval)
	require.EqualValues(t, 21, cfg.LimitsConfig.Default)
	require.EqualValues(t, 333, cfg.LimitsConfig.Max)
}

// TestLoad_Priority_ENVWinsOverLocal - CONFIG_PATH важнее local.yaml.
func TestLoad_Priority_ENVWinsOverLocal(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	writeFile(t, dir, "local.yaml", `
env: "local"
db: { url: "postgres://local/db" }
`)
	envPath := writeFile(t, dir, "from_env.yaml", `
env: "dev"
db: { url: "postgres://env/db" }
`)
	t.Setenv("CONFIG_PATH", envPath)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "postgres://env/db", cfg.DB.URL)
}

func TestLoad_EnvOnly_NoConfigInEnv_ReturnsDescriptiveError(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_URL", "")
	_ = os.Unsetenv("DATABASE_URL")

	_, err := Load("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "config not found: provide --config, CONFIG_PATH, local.yaml or env vars")
}

// TestValidate - инварианты конфигурации.
func TestValidate(t *testing.T) {
	t.Parallel()

	base := func() Config {
		return Config{
			DB:           DBConfig{Driver: DriverPostgres, URL: "postgres://x"},
			Feed:         FeedConfig{URL: "https://x", Timeout: time.Second, MaxRedirects: 5},
			Extract:      ExtractConfig{Timezone: "Europe/Berlin", DefaultDeadline: time.Hour},
			Ingest:       IngestConfig{Interval: time.Hour, ItemTimeout: time.Second},
			LimitsConfig: LimitsConfig{Default: 10, Max: 20},
		}
	}

	ok := base()
	require.NoError(t, ok.validate())

	cases := map[string]func(c *Config){
		"db.url":              func(c *Config) { c.DB.URL = "" },
		"db.driver":           func(c *Config) { c.DB.Driver = "sqlite" },
		"feed.url":            func(c *Config) { c.Feed.URL = "" },
		"feed.timeout":        func(c *Config) { c.Feed.Timeout = 0 },
		"feed.max_redirects":  func(c *Config) { c.Feed.MaxRedirects = -1 },
		"extract.timezone":    func(c *Config) { c.Extract.Timezone = "Mars/Olympus" },
		"ingest.interval":     func(c *Config) { c.Ingest.Interval = time.Second },
		"ingest.item_timeout": func(c *Config) { c.Ingest.ItemTimeout = 0 },
		"redis.lock_ttl":      func(c *Config) { c.Redis.URL = "redis://x"; c.Redis.LockTTL = 0 },
		"archive.bucket":      func(c *Config) { c.Archive.Endpoint = "http://minio"; c.Archive.Bucket = "" },
		"limits.default":      func(c *Config) { c.LimitsConfig.Default = 30 },
	}

	for name, mutate := range cases {
		c := base()
		mutate(&c)
		err := c.validate()
		require.Error(t, err, name)
		require.Contains(t, err.Error(), name)
	}
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_ = MustLoad(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}

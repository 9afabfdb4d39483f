package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	CatalogSourceFile     = "file"
	CatalogSourceHTTP     = "http"
	CatalogSourcePostgres = "postgres"

	devSessionSecret = "dev_session_secret_change_me"
)

// Configはアプリ全体の設定
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`      // サーバーポート
	GoEnv    string `env:"GO_ENV" envDefault:"dev"`     // dev/prod
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"` // debug/info/warn/error

	SessionSecret        string        `env:"SESSION_SECRET"` // セッションcookieの署名
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`

	CatalogSource string `env:"CATALOG_SOURCE" envDefault:"file"` // file/http/postgres
	CatalogPath   string `env:"CATALOG_PATH" envDefault:"web/static/catalog.json"`
	CatalogURL    string `env:"CATALOG_URL"`

	DatabaseURL      string `env:"DATABASE_URL"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"storefront"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	DBAutoMigrate    bool   `env:"DB_AUTO_MIGRATE" envDefault:"false"`

	SiteTitle       string        `env:"SITE_TITLE" envDefault:"Storefront"`
	StaticDir       string        `env:"STATIC_DIR" envDefault:"web/static"`
	AckDismissDelay time.Duration `env:"ACK_DISMISS_DELAY" envDefault:"5s"` // 注文完了メッセージの自動クローズ
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

func (c Config) Addr() string {
	if c.Port != "" && c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}

// Loadは .env（あれば）と環境変数
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	//必須チェック
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.SessionSecret == "" {
		if c.IsProd() {
			return fmt.Errorf("SESSION_SECRET is required")
		}
		c.SessionSecret = devSessionSecret
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.SessionSweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}
	if c.AckDismissDelay <= 0 {
		return fmt.Errorf("ACK_DISMISS_DELAY must be positive")
	}

	switch c.CatalogSource {
	case CatalogSourceFile:
		if c.CatalogPath == "" {
			return fmt.Errorf("CATALOG_PATH is required")
		}
	case CatalogSourceHTTP:
		if c.CatalogURL == "" {
			return fmt.Errorf("CATALOG_URL is required")
		}
	case CatalogSourcePostgres:
		if c.DatabaseURL == "" && c.PostgresHost == "" {
			return fmt.Errorf("DATABASE_URL or POSTGRES_HOST is required")
		}
	default:
		return fmt.Errorf("CATALOG_SOURCE must be one of file, http, postgres: %q", c.CatalogSource)
	}
	return nil
}

// PostgresDSN は DATABASE_URL を優先してDSNを返す。
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configはアプリ全体の設定
type Config struct {
	Port     string // サーバーポート（3000）
	GoEnv    string // development/production
	LogLevel string

	APIBaseURL        string        // リモートAPI（http://localhost:8080/api）
	APITimeout        time.Duration // リモート呼び出しのタイムアウト
	SessionCookieName string        // リモートのセッションCookie名

	SessionHintSecret string        // ユーザー表示用Cookieの署名
	SessionHintTTL    time.Duration // ユーザー表示用Cookieの有効期限
	CookieSecure      bool

	RedisAddr       string // 空ならキャッシュなし
	RedisPassword   string
	RedisDB         int
	CatalogCacheTTL time.Duration

	CheckoutDraftTTL time.Duration

	// 監査ログDB（空ならメモリ）
	DatabaseURL      string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

func (c Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// 監査ログをDBに書くか
func (c Config) AuditDBEnabled() bool {
	return c.DatabaseURL != "" || c.PostgresHost != ""
}

const devHintSecret = "dev_secret_change_me"

// Loadは.env（任意）と環境変数
func Load() (Config, error) {
	// .envは無くてもよい
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("GO_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("API_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("API_TIMEOUT", "30s")
	v.SetDefault("API_SESSION_COOKIE", "SESSION")
	v.SetDefault("SESSION_HINT_TTL", "15m")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CATALOG_CACHE_TTL", "60s")
	v.SetDefault("CHECKOUT_DRAFT_TTL", "30m")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_SSLMODE", "disable")

	cfg := Config{
		Port:     strings.TrimPrefix(v.GetString("PORT"), ":"),
		GoEnv:    v.GetString("GO_ENV"),
		LogLevel: v.GetString("LOG_LEVEL"),

		APIBaseURL:        strings.TrimSuffix(v.GetString("API_BASE_URL"), "/"),
		APITimeout:        v.GetDuration("API_TIMEOUT"),
		SessionCookieName: v.GetString("API_SESSION_COOKIE"),

		SessionHintSecret: v.GetString("SESSION_HINT_SECRET"),
		SessionHintTTL:    v.GetDuration("SESSION_HINT_TTL"),

		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		RedisDB:         v.GetInt("REDIS_DB"),
		CatalogCacheTTL: v.GetDuration("CATALOG_CACHE_TTL"),

		CheckoutDraftTTL: v.GetDuration("CHECKOUT_DRAFT_TTL"),

		DatabaseURL:      v.GetString("DATABASE_URL"),
		PostgresHost:     v.GetString("POSTGRES_HOST"),
		PostgresPort:     v.GetString("POSTGRES_PORT"),
		PostgresUser:     v.GetString("POSTGRES_USER"),
		PostgresPassword: v.GetString("POSTGRES_PASSWORD"),
		PostgresDB:       v.GetString("POSTGRES_DB"),
		PostgresSSLMode:  v.GetString("POSTGRES_SSLMODE"),
	}

	// 本番はSecure。明示されていればそれに従う
	cfg.CookieSecure = cfg.IsProduction()
	if v.IsSet("COOKIE_SECURE") {
		cfg.CookieSecure = v.GetBool("COOKIE_SECURE")
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("API_BASE_URL is required")
	}
	if !strings.HasPrefix(cfg.APIBaseURL, "http://") && !strings.HasPrefix(cfg.APIBaseURL, "https://") {
		return Config{}, fmt.Errorf("API_BASE_URL must start with http:// or https://")
	}
	if cfg.SessionCookieName == "" {
		return Config{}, fmt.Errorf("API_SESSION_COOKIE is required")
	}
	if cfg.SessionHintSecret == "" {
		if cfg.IsProduction() {
			return Config{}, fmt.Errorf("SESSION_HINT_SECRET is required")
		}
		cfg.SessionHintSecret = devHintSecret
	}
	if cfg.SessionHintTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_HINT_TTL must be positive")
	}
	if cfg.CheckoutDraftTTL <= 0 {
		return Config{}, fmt.Errorf("CHECKOUT_DRAFT_TTL must be positive")
	}
	if cfg.PostgresHost != "" && cfg.PostgresDB == "" {
		return Config{}, fmt.Errorf("POSTGRES_DB is required when POSTGRES_HOST is set")
	}

	return cfg, nil
}

// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"devfolio_backend/internal/platform/db"
	jwtmw "devfolio_backend/internal/platform/jwt"
	"devfolio_backend/internal/platform/redis"
)

const minProductionSecretLen = 32

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"APP_ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DBDriver         string `mapstructure:"DB_DRIVER"`
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DBHost           string `mapstructure:"DB_HOST"`
	DBPort           string `mapstructure:"DB_PORT"`
	DBUser           string `mapstructure:"DB_USER"`
	DBPassword       string `mapstructure:"DB_PASSWORD"`
	DBName           string `mapstructure:"DB_NAME"`
	DBSSLMode        string `mapstructure:"DB_SSLMODE"`
	SQLitePath       string `mapstructure:"SQLITE_PATH"`
	RunMigrations    bool   `mapstructure:"RUN_MIGRATIONS"`
	DBConnectTimeout string `mapstructure:"DB_CONNECT_TIMEOUT"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	JWTAccessSecret     string `mapstructure:"JWT_ACCESS_SECRET"`
	JWTRefreshSecret    string `mapstructure:"JWT_REFRESH_SECRET"`
	AccessTokenExpires  string `mapstructure:"ACCESS_TOKEN_EXPIRES"`
	RefreshTokenExpires string `mapstructure:"REFRESH_TOKEN_EXPIRES"`

	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	FrontendURL    string `mapstructure:"FRONTEND_URL"`
	AdminSecret    string `mapstructure:"ADMIN_SECRET"`
	TrustedProxies string `mapstructure:"TRUSTED_PROXIES"`

	ProfileCacheTTL string `mapstructure:"PROFILE_CACHE_TTL"`
	AuthRateLimit   int    `mapstructure:"AUTH_RATE_LIMIT"`
	AuthRateWindow  string `mapstructure:"AUTH_RATE_WINDOW"`
}

var defaults = map[string]any{
	"PORT":                  "5000",
	"APP_ENV":               "development",
	"LOG_LEVEL":             "info",
	"DB_DRIVER":             db.DriverPostgres,
	"DATABASE_URL":          "",
	"DB_HOST":               "localhost",
	"DB_PORT":               "5432",
	"DB_USER":               "postgres",
	"DB_PASSWORD":           "",
	"DB_NAME":               "devfolio",
	"DB_SSLMODE":            "disable",
	"SQLITE_PATH":           "devfolio.db",
	"RUN_MIGRATIONS":        true,
	"DB_CONNECT_TIMEOUT":    "60s",
	"REDIS_ADDR":            "",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"JWT_ACCESS_SECRET":     "",
	"JWT_REFRESH_SECRET":    "",
	"ACCESS_TOKEN_EXPIRES":  "15d",
	"REFRESH_TOKEN_EXPIRES": "30d",
	"ALLOWED_ORIGINS":       "http://localhost:3000",
	"FRONTEND_URL":          "",
	"ADMIN_SECRET":          "",
	"TRUSTED_PROXIES":       "",
	"PROFILE_CACHE_TTL":     "1m",
	"AUTH_RATE_LIMIT":       20,
	"AUTH_RATE_WINDOW":      "1m",
}

// Load は.env、config.yml、環境変数の順に設定を読み込み、検証済みのConfigを返します。
// 環境変数が最も優先されます。
func Load() (*Config, error) {
	// .envは任意。存在しない場合は環境変数のみで動作します。
	if err := godotenv.Load(".env"); err == nil {
		slog.Info(".env loaded")
	}

	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	// APP_ENVが未設定の場合はNODE_ENVを参照します。
	if err := v.BindEnv("APP_ENV", "APP_ENV", "NODE_ENV"); err != nil {
		return nil, fmt.Errorf("bind APP_ENV: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	cfg.DBSSLMode = strings.ToLower(strings.TrimSpace(cfg.DBSSLMode))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWTAccessSecret == "" {
		return errors.New("JWT_ACCESS_SECRET is required")
	}
	if c.JWTRefreshSecret == "" {
		return errors.New("JWT_REFRESH_SECRET is required")
	}
	if c.JWTAccessSecret == c.JWTRefreshSecret {
		return errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	if c.DBDriver != db.DriverPostgres && c.DBDriver != db.DriverSQLite {
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.AuthRateLimit <= 0 {
		return errors.New("AUTH_RATE_LIMIT must be positive")
	}

	for _, p := range c.Proxies() {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return fmt.Errorf("TRUSTED_PROXIES: invalid IP or CIDR %q", p)
			}
		}
	}

	durations := map[string]string{
		"ACCESS_TOKEN_EXPIRES":  c.AccessTokenExpires,
		"REFRESH_TOKEN_EXPIRES": c.RefreshTokenExpires,
		"PROFILE_CACHE_TTL":     c.ProfileCacheTTL,
		"AUTH_RATE_WINDOW":      c.AuthRateWindow,
		"DB_CONNECT_TIMEOUT":    c.DBConnectTimeout,
	}
	for key, raw := range durations {
		if _, err := ParseExpiry(raw); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	if c.IsProduction() {
		if len(c.JWTAccessSecret) < minProductionSecretLen || len(c.JWTRefreshSecret) < minProductionSecretLen {
			return fmt.Errorf("JWT secrets must be at least %d characters in production", minProductionSecretLen)
		}
		if c.AdminSecret != "" && len(c.AdminSecret) < minProductionSecretLen {
			return fmt.Errorf("ADMIN_SECRET must be at least %d characters in production", minProductionSecretLen)
		}
		if c.DBDriver == db.DriverPostgres && c.DBSSLMode == "disable" && c.DatabaseURL == "" {
			slog.Warn("DB_SSLMODE is 'disable' in production")
		}
	}
	return nil
}

// IsProduction は本番環境かどうかを返します。
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Origins はCORSで許可するオリジンの一覧を返します。FRONTEND_URLは常に追加されます。
func (c *Config) Origins() []string {
	seen := map[string]bool{}
	var origins []string
	for _, o := range append(strings.Split(c.AllowedOrigins, ","), c.FrontendURL) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		origins = append(origins, o)
	}
	return origins
}

// Proxies はX-Forwarded-Forを信頼するプロキシのIP/CIDR一覧を返します。
// 未設定の場合はnilを返し、クライアントIPは常に接続元アドレスになります。
func (c *Config) Proxies() []string {
	var proxies []string
	for _, p := range strings.Split(c.TrustedProxies, ",") {
		if p = strings.TrimSpace(p); p != "" {
			proxies = append(proxies, p)
		}
	}
	return proxies
}

// DB はデータベース接続設定を返します。
func (c *Config) DB() db.Config {
	timeout, _ := ParseExpiry(c.DBConnectTimeout)
	return db.Config{
		Driver:         c.DBDriver,
		URL:            c.DatabaseURL,
		User:           c.DBUser,
		Password:       c.DBPassword,
		Name:           c.DBName,
		Host:           c.DBHost,
		Port:           c.DBPort,
		SSLMode:        c.DBSSLMode,
		SQLitePath:     c.SQLitePath,
		ConnectTimeout: timeout,
		RunMigrations:  c.RunMigrations,
	}
}

// Redis はRedis接続設定を返します。REDIS_ADDRが空の場合Redisは無効です。
func (c *Config) Redis() redis.Config {
	return redis.Config{Addr: c.RedisAddr, Password: c.RedisPassword, DB: c.RedisDB}
}

// Tokens はトークンサービスの設定を返します。
func (c *Config) Tokens() jwtmw.Config {
	access, _ := ParseExpiry(c.AccessTokenExpires)
	refresh, _ := ParseExpiry(c.RefreshTokenExpires)
	return jwtmw.Config{
		AccessSecret:  c.JWTAccessSecret,
		RefreshSecret: c.JWTRefreshSecret,
		AccessTTL:     access,
		RefreshTTL:    refresh,
	}
}

// CacheTTL は公開プロフィールキャッシュのTTLを返します。
func (c *Config) CacheTTL() time.Duration {
	d, _ := ParseExpiry(c.ProfileCacheTTL)
	return d
}

// RateWindow は認証エンドポイントのレート制限ウィンドウを返します。
func (c *Config) RateWindow() time.Duration {
	d, _ := ParseExpiry(c.AuthRateWindow)
	return d
}

// ParseExpiry は"15d"、"12h"、"90m"形式の期間を解釈します。
// 日単位以外はtime.ParseDurationの書式をそのまま受け付けます。
func ParseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty duration")
	}

	var d time.Duration
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		d = time.Duration(n) * 24 * time.Hour
	} else {
		var err error
		if d, err = time.ParseDuration(s); err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
	}

	if d <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", s)
	}
	return d, nil
}

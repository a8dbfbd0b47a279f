package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	APIBaseURL string // 商品一覧APIのベースURL（http://localhost:8080）
	APIToken   string // Bearerトークン（任意）

	DebounceMS int // 条件変更のデバウンス（ミリ秒）
	PageSize   int // 1ページの件数

	DatabaseURL string // ローカルカタログ用DSN（任意。設定時はDBを使う）

	GoEnv string // dev/prod
}

// Loadは環境変数から読む
func Load() (Config, error) {
	cfg := Config{
		APIBaseURL:  os.Getenv("API_BASE_URL"),
		APIToken:    os.Getenv("API_TOKEN"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		GoEnv:       getenv("GO_ENV", "dev"),
	}

	//必須チェック（ローカルDBを使う場合はURL不要）
	if cfg.APIBaseURL == "" && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("API_BASE_URL is required")
	}

	debounce, err := atoiDefault("BROWSE_DEBOUNCE_MS", 300)
	if err != nil {
		return Config{}, err
	}
	if debounce < 0 {
		return Config{}, fmt.Errorf("BROWSE_DEBOUNCE_MS must be >= 0")
	}
	cfg.DebounceMS = debounce

	pageSize, err := atoiDefault("BROWSE_PAGE_SIZE", 12)
	if err != nil {
		return Config{}, err
	}
	if pageSize < 1 {
		return Config{}, fmt.Errorf("BROWSE_PAGE_SIZE must be >= 1")
	}
	cfg.PageSize = pageSize

	return cfg, nil
}

// DebounceDelay は Duration に変換した値
func (c Config) DebounceDelay() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

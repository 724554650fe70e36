package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ストレージの種類
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

const defaultServiceFeePercent = 3

// StorefrontConfig はストアフロント（クライアント側）の設定
type StorefrontConfig struct {
	Port  string // サーバーポート（8080）
	GoEnv string // development/production

	OrderServiceURL     string        // 注文サービスのURL
	OrderServiceTimeout time.Duration // 0ならタイムアウトなし

	StorageDriver string // memory/file/redis/postgres
	StoragePath   string // fileの保存先
	RedisURL      string
	DatabaseURL   string

	ServiceFeePercent int64  // チェックアウト時の手数料（%）
	AdminSecret       string // 注文一括削除トークンの署名鍵（空なら削除しない）
}

// OrderServiceConfig は注文サービスの設定
type OrderServiceConfig struct {
	Port  string
	GoEnv string

	DatabaseURL string // 空ならPOSTGRES_*から組み立てる
	RabbitMQURL string // 空ならキュー連携なし

	AdminSecret    string
	OutboxInterval time.Duration
}

// .envがあれば読む（無くてもよい）
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func LoadStorefront() (StorefrontConfig, error) {
	if err := loadDotEnv(); err != nil {
		return StorefrontConfig{}, err
	}

	timeout, err := optionalDuration("ORDER_SERVICE_TIMEOUT", 0)
	if err != nil {
		return StorefrontConfig{}, err
	}
	fee, err := optionalAtoi("SERVICE_FEE_PERCENT", defaultServiceFeePercent)
	if err != nil {
		return StorefrontConfig{}, err
	}

	cfg := StorefrontConfig{
		Port:  getenv("PORT", "8080"),
		GoEnv: getenv("GO_ENV", "development"),

		OrderServiceURL:     os.Getenv("ORDER_SERVICE_URL"),
		OrderServiceTimeout: timeout,

		StorageDriver: strings.ToLower(getenv("STORAGE_DRIVER", StorageMemory)),
		StoragePath:   getenv("STORAGE_PATH", "storefront.json"),
		RedisURL:      os.Getenv("REDIS_URL"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),

		ServiceFeePercent: int64(fee),
		AdminSecret:       os.Getenv("ADMIN_SECRET"),
	}

	//必須チェック
	if cfg.OrderServiceURL == "" {
		return StorefrontConfig{}, fmt.Errorf("ORDER_SERVICE_URL is required")
	}
	if cfg.ServiceFeePercent < 0 {
		return StorefrontConfig{}, fmt.Errorf("SERVICE_FEE_PERCENT must be >= 0")
	}

	switch cfg.StorageDriver {
	case StorageMemory, StorageFile:
	case StorageRedis:
		if cfg.RedisURL == "" {
			return StorefrontConfig{}, fmt.Errorf("REDIS_URL is required for redis storage")
		}
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return StorefrontConfig{}, fmt.Errorf("DATABASE_URL is required for postgres storage")
		}
	default:
		return StorefrontConfig{}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func LoadOrderService() (OrderServiceConfig, error) {
	if err := loadDotEnv(); err != nil {
		return OrderServiceConfig{}, err
	}

	interval, err := optionalDuration("OUTBOX_INTERVAL", 5*time.Second)
	if err != nil {
		return OrderServiceConfig{}, err
	}

	cfg := OrderServiceConfig{
		Port:  getenv("PORT", "5000"),
		GoEnv: getenv("GO_ENV", "development"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),

		AdminSecret:    os.Getenv("ADMIN_SECRET"),
		OutboxInterval: interval,
	}

	if cfg.AdminSecret == "" {
		return OrderServiceConfig{}, fmt.Errorf("ADMIN_SECRET is required")
	}
	if cfg.OutboxInterval <= 0 {
		return OrderServiceConfig{}, fmt.Errorf("OUTBOX_INTERVAL must be > 0")
	}

	return cfg, nil
}

// ":8080" 形式に揃える
func Addr(port string) string {
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func getenv(key string, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func optionalAtoi(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

// "5s" 形式、または秒数
func optionalDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}

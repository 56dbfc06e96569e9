// Package config 提供基于环境变量的应用配置加载与校验。
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig 应用基础配置
type AppConfig struct {
	Name            string
	Version         string
	Env             string // dev / test / prod
	Port            int
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string // debug / info / warn / error
	Encoding string // json / console
}

// JWTConfig JWT认证配置
type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

// CacheConfig 缓存配置
type CacheConfig struct {
	Enabled bool
	Type    string // redis / memory
	TTL     time.Duration
}

// RedisConfig Redis连接配置
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// UpstreamConfig 外部协作方服务地址配置
type UpstreamConfig struct {
	CatalogBaseURL string        // 商品目录服务
	EnquiryBaseURL string        // 询价服务
	CartBaseURL    string        // 购物车子系统
	Timeout        time.Duration // 上游请求超时
}

// ViewConfig 店面视图行为配置
type ViewConfig struct {
	PageSize int
	// ResetPageOnFilterChange 控制筛选条件变化时的页码策略：
	// false(默认) 保持当前页码，依赖切片裁剪得到空页；true 重置回第1页。
	ResetPageOnFilterChange bool
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled bool
	Rate    int64         // 时间窗口内允许的请求数
	Window  time.Duration // 时间窗口
	Burst   int64         // 突发容量
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// Config 汇总应用全部配置
type Config struct {
	App       AppConfig
	Log       LogConfig
	JWT       JWTConfig
	Cache     CacheConfig
	Redis     RedisConfig
	Upstream  UpstreamConfig
	View      ViewConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

// Load 从环境变量加载配置（优先读取.env文件）并做基本校验。
func Load() (*Config, error) {
	// .env 不存在时静默忽略，线上环境直接依赖进程环境变量
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:            getEnv("APP_NAME", "shop-front"),
			Version:         getEnv("APP_VERSION", "0.1.0"),
			Env:             getEnv("APP_ENV", "dev"),
			Port:            getEnvInt("APP_PORT", 8080),
			RequestTimeout:  getEnvDuration("APP_REQUEST_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDuration("APP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "json"),
		},
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET", ""),
			AccessTokenTTL: getEnvDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute),
		},
		Cache: CacheConfig{
			Enabled: getEnvBool("CACHE_ENABLED", true),
			Type:    getEnv("CACHE_TYPE", "memory"),
			TTL:     getEnvDuration("CACHE_TTL", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "127.0.0.1"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Upstream: UpstreamConfig{
			CatalogBaseURL: getEnv("UPSTREAM_CATALOG_BASE_URL", "http://localhost:9001"),
			EnquiryBaseURL: getEnv("UPSTREAM_ENQUIRY_BASE_URL", "http://localhost:9002"),
			CartBaseURL:    getEnv("UPSTREAM_CART_BASE_URL", "http://localhost:9003"),
			Timeout:        getEnvDuration("UPSTREAM_TIMEOUT", 5*time.Second),
		},
		View: ViewConfig{
			PageSize:                getEnvInt("VIEW_PAGE_SIZE", 20),
			ResetPageOnFilterChange: getEnvBool("VIEW_RESET_PAGE_ON_FILTER_CHANGE", false),
		},
		RateLimit: RateLimitConfig{
			Enabled: getEnvBool("RATE_LIMIT_ENABLED", false),
			Rate:    int64(getEnvInt("RATE_LIMIT_RATE", 10)),
			Window:  getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
			Burst:   int64(getEnvInt("RATE_LIMIT_BURST", 5)),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders: getEnvList("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization", "X-Request-ID"}),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate 校验配置的基本约束。
func (c *Config) validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid app port: %d", c.App.Port)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.View.PageSize <= 0 {
		return fmt.Errorf("invalid view page size: %d", c.View.PageSize)
	}
	if c.Upstream.CatalogBaseURL == "" || c.Upstream.EnquiryBaseURL == "" || c.Upstream.CartBaseURL == "" {
		return fmt.Errorf("upstream base URLs are required")
	}
	switch c.Cache.Type {
	case "redis", "memory":
	default:
		return fmt.Errorf("unknown cache type: %s", c.Cache.Type)
	}
	return nil
}

// getEnv 读取字符串环境变量，缺省时返回默认值。
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt 读取整型环境变量。
func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// getEnvBool 读取布尔环境变量。
func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// getEnvDuration 读取时长环境变量（如 5s、1m）。
func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// getEnvList 读取逗号分隔的列表环境变量。
func getEnvList(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return def
}

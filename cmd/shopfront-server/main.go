package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/MorseWayne/shop_front/internal/api"
	"github.com/MorseWayne/shop_front/internal/cache"
	"github.com/MorseWayne/shop_front/internal/client"
	"github.com/MorseWayne/shop_front/internal/config"
	"github.com/MorseWayne/shop_front/internal/limiter"
	"github.com/MorseWayne/shop_front/internal/logger"
	mw "github.com/MorseWayne/shop_front/internal/middleware"
	"github.com/MorseWayne/shop_front/internal/router"
	"github.com/MorseWayne/shop_front/internal/service"
)

// initConfigAndLogger 初始化配置和日志器
func initConfigAndLogger() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %v", err)
	}

	// init logger
	lg, err := logger.New(cfg.App.Env, cfg.Log.Level, cfg.Log.Encoding, cfg.App.Name, cfg.App.Version)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %v", err)
	}

	return cfg, lg, nil
}

// initCache 初始化缓存实例
func initCache(cfg *config.Config, lg *zap.Logger) cache.Cache {
	var cacheInstance cache.Cache
	if cfg.Cache.Enabled {
		switch cfg.Cache.Type {
		case "redis":
			redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
			redisCache, err := cache.NewRedisCache(redisAddr, cfg.Redis.Password, cfg.Redis.DB)
			if err != nil {
				lg.Sugar().Warnw("failed to connect to Redis, falling back to memory cache", "error", err)
				cacheInstance = cache.NewMemoryCache()
				lg.Sugar().Infow("cache enabled", "type", "memory (fallback)", "ttl", cfg.Cache.TTL)
			} else {
				cacheInstance = redisCache
				lg.Sugar().Infow("cache enabled", "type", "redis", "addr", redisAddr, "ttl", cfg.Cache.TTL)
			}
		case "memory":
			cacheInstance = cache.NewMemoryCache()
			lg.Sugar().Infow("cache enabled", "type", "memory", "ttl", cfg.Cache.TTL)
		default:
			lg.Sugar().Warnw("unknown cache type, using memory cache", "type", cfg.Cache.Type)
			cacheInstance = cache.NewMemoryCache()
			lg.Sugar().Infow("cache enabled", "type", "memory (default)", "ttl", cfg.Cache.TTL)
		}
	} else {
		cacheInstance = cache.NewNullCache()
		lg.Sugar().Infow("cache disabled")
	}
	return cacheInstance
}

// initSubmitLimiter 初始化提交类接口的限流器（仅在启用且Redis可用时）
func initSubmitLimiter(cfg *config.Config, lg *zap.Logger) limiter.Limiter {
	if !cfg.RateLimit.Enabled {
		lg.Sugar().Infow("rate limit disabled")
		return nil
	}

	redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	redisCache, err := cache.NewRedisCache(redisAddr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		lg.Sugar().Warnw("failed to connect to Redis, rate limit disabled", "error", err)
		return nil
	}

	tb, err := limiter.NewTokenBucketLimiter(redisCache.Client(), &limiter.Config{
		Rate:      cfg.RateLimit.Rate,
		Window:    cfg.RateLimit.Window,
		Burst:     cfg.RateLimit.Burst,
		KeyPrefix: "shopfront:limit",
	})
	if err != nil {
		lg.Sugar().Warnw("failed to create limiter, rate limit disabled", "error", err)
		return nil
	}

	lg.Sugar().Infow("rate limit enabled",
		"rate", cfg.RateLimit.Rate,
		"window", cfg.RateLimit.Window,
		"burst", cfg.RateLimit.Burst,
	)
	return tb
}

// initDependencies 初始化应用依赖（上游客户端、服务、处理器）
func initDependencies(cfg *config.Config, cacheInstance cache.Cache, lg *zap.Logger) *router.Dependencies {
	// 上游客户端
	baseCatalogClient := client.NewCatalogClient(cfg.Upstream.CatalogBaseURL, cfg.Upstream.Timeout, lg)
	enquiryClient := client.NewEnquiryClient(cfg.Upstream.EnquiryBaseURL, cfg.Upstream.Timeout, lg)
	cartClient := client.NewCartClient(cfg.Upstream.CartBaseURL, cfg.Upstream.Timeout, lg)

	// 可选缓存装饰器
	var catalogClient client.CatalogClient
	if cfg.Cache.Enabled {
		catalogClient = client.NewCachedCatalogClient(baseCatalogClient, cacheInstance, cfg.Cache.TTL)
	} else {
		catalogClient = baseCatalogClient
	}

	// 依赖注入链：客户端 -> 服务 -> API处理器
	catalogStore := service.NewCatalogStore(catalogClient, lg)
	cartBridge := service.NewCartBridge(cartClient, lg)
	newEnquiry := func() *service.EnquiryWorkflow { return service.NewEnquiryWorkflow(enquiryClient, lg) }
	viewService := service.NewViewService(catalogStore, newEnquiry, cartBridge, service.ViewConfig{
		PageSize:                cfg.View.PageSize,
		ResetPageOnFilterChange: cfg.View.ResetPageOnFilterChange,
	}, lg)
	jwtService := service.NewJWTService(cfg, lg)

	return &router.Dependencies{
		StorefrontHandler: api.NewStorefrontHandler(viewService, lg),
		EnquiryHandler:    api.NewEnquiryHandler(viewService, lg),
		CartHandler:       api.NewCartHandler(viewService, lg),
		JWTService:        jwtService,
		SubmitLimiter:     initSubmitLimiter(cfg, lg),
	}
}

// setupHandler 设置路由和外层中间件链
func setupHandler(cfg *config.Config, deps *router.Dependencies, lg *zap.Logger) http.Handler {
	inner := router.New().Setup(cfg, deps, lg)

	// 构建中间件链：请求进入时执行顺序为 access log → CORS → timeout → recovery → request ID
	// 响应返回时执行顺序为 request ID → recovery → timeout → CORS → access log
	handler := mw.RequestID(inner)
	handler = mw.Recovery(lg)(handler)
	handler = mw.Timeout(cfg.App.RequestTimeout)(handler)
	handler = mw.CORS(mw.CORSConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: cfg.CORS.AllowedMethods,
		AllowedHeaders: cfg.CORS.AllowedHeaders,
	})(handler)
	handler = mw.AccessLog(lg)(handler)

	return handler
}

// startServer 启动服务器并处理优雅关闭
func startServer(cfg *config.Config, handler http.Handler, lg *zap.Logger) {
	addr := fmt.Sprintf(":%d", cfg.App.Port)
	lg.Sugar().Infow("server starting", "addr", addr)
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}

	// 启动服务器（异步）
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	select {
	case err := <-serverErrCh:
		if err != nil && err != http.ErrServerClosed {
			lg.Sugar().Fatalw("server error", "err", err)
		}
	case <-quit:
		lg.Sugar().Infow("shutdown signal received")
	}

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Sugar().Errorw("server shutdown error", "err", err)
	}
	lg.Sugar().Infow("server exited")
}

// main 为应用入口，协调各个组件的初始化和启动
func main() {
	// 1) 加载配置和初始化日志
	cfg, lg, err := initConfigAndLogger()
	if err != nil {
		log.Fatalf("failed to initialize config and logger: %v", err)
	}

	// 2) 初始化缓存
	cacheInstance := initCache(cfg, lg)
	defer func() {
		if err := cacheInstance.Close(); err != nil {
			lg.Sugar().Errorw("failed to close cache", "err", err)
		}
	}()

	// 3) 初始化应用依赖（上游客户端、服务、处理器）
	deps := initDependencies(cfg, cacheInstance, lg)

	// 4) 设置路由和中间件
	handler := setupHandler(cfg, deps, lg)

	// 5) 启动 HTTP 服务器
	startServer(cfg, handler, lg)
}

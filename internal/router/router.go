// Package router 提供 HTTP 路由设置和中间件配置功能
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MorseWayne/shop_front/internal/api"
	"github.com/MorseWayne/shop_front/internal/config"
	"github.com/MorseWayne/shop_front/internal/limiter"
	"github.com/MorseWayne/shop_front/internal/middleware"
	"github.com/MorseWayne/shop_front/internal/service"
)

// Dependencies 包含路由设置所需的所有依赖
type Dependencies struct {
	StorefrontHandler *api.StorefrontHandler
	EnquiryHandler    *api.EnquiryHandler
	CartHandler       *api.CartHandler
	JWTService        service.JWTService

	// SubmitLimiter 为nil时不挂载提交类接口的限流
	SubmitLimiter limiter.Limiter
}

// Router 路由器接口
type Router interface {
	Setup(cfg *config.Config, deps *Dependencies, lg *zap.Logger) http.Handler
}

// GinRouter Gin路由器实现
type GinRouter struct {
	engine *gin.Engine
	deps   *Dependencies
	logger *zap.Logger
	cfg    *config.Config
}

// New 创建新的路由器实例
func New() Router {
	return &GinRouter{}
}

// Setup 设置路由和中间件
func (r *GinRouter) Setup(cfg *config.Config, deps *Dependencies, lg *zap.Logger) http.Handler {
	// 根据环境设置 Gin 模式
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r.engine = gin.New()
	r.deps = deps
	r.logger = lg
	r.cfg = cfg

	// panic兜底：外层Recovery之外再保一层gin自身的恢复
	r.engine.Use(gin.Recovery())

	// 设置路由
	r.setupRoutes()

	return r.engine
}

// setupRoutes 设置所有路由
func (r *GinRouter) setupRoutes() {
	// 健康检查
	r.engine.GET("/healthz", r.healthCheck)

	// API v1 路由组
	v1 := r.engine.Group("/api/v1")
	{
		// 店面路由（需要认证）
		storefront := v1.Group("/storefront")
		storefront.Use(r.authMiddleware())
		{
			storefront.POST("/activate", r.wrapHandler(r.deps.StorefrontHandler.Activate))
			storefront.GET("", r.wrapHandler(r.deps.StorefrontHandler.Render))
			storefront.POST("/page", r.wrapHandler(r.deps.StorefrontHandler.ChangePage))

			// 询价弹窗
			enquiry := storefront.Group("/enquiry")
			{
				enquiry.POST("/open", r.wrapHandler(r.deps.EnquiryHandler.Open))
				enquiry.PUT("", r.wrapHandler(r.deps.EnquiryHandler.Edit))
				enquiry.POST("/submit", r.submitLimit(), r.wrapHandler(r.deps.EnquiryHandler.Submit))
				enquiry.POST("/close", r.wrapHandler(r.deps.EnquiryHandler.Close))
			}

			// 加购转发
			storefront.POST("/cart", r.submitLimit(), r.wrapHandler(r.deps.CartHandler.AddToCart))
		}
	}
}

// healthCheck 健康检查处理器
func (r *GinRouter) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": r.cfg.App.Version,
	})
}

// wrapHandler 将标准的 http.HandlerFunc 包装为 gin.HandlerFunc
func (r *GinRouter) wrapHandler(handler func(http.ResponseWriter, *http.Request)) gin.HandlerFunc {
	return gin.WrapF(handler)
}

// authMiddleware 认证中间件
// 复用基于标准库的JWT中间件：认证通过时把携带用户信息的请求传回gin链
func (r *GinRouter) authMiddleware() gin.HandlerFunc {
	authMW := middleware.AuthMiddleware(r.deps.JWTService, r.logger)
	return func(c *gin.Context) {
		authorized := false
		authMW(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			authorized = true
			c.Request = req
		})).ServeHTTP(c.Writer, c.Request)

		if !authorized {
			c.Abort()
			return
		}
		c.Next()
	}
}

// submitLimit 提交类接口的限流中间件，未配置限流器时为直通
func (r *GinRouter) submitLimit() gin.HandlerFunc {
	if r.deps.SubmitLimiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return limiter.SubmitRateLimitMiddleware(r.deps.SubmitLimiter)
}

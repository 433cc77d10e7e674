package http

import (
	"github.com/gin-gonic/gin"
	"github.com/layer-3/goplus/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterConfig wires the gateway dependencies
type RouterConfig struct {
	RiskService *service.RiskService
	// AuthService enables bearer auth on /v1 and /v2 when set
	AuthService *service.AuthService
	Logger      *zap.Logger
	// Registry receives the gateway collectors and backs /metrics
	Registry *prometheus.Registry
}

// SetupRouter sets up the Gin router
func SetupRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Logger(cfg.Logger), NewHTTPMetrics(cfg.Registry).Middleware())

	handlers := NewRiskHandlers(cfg.RiskService)

	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	v2 := router.Group("/v2")
	if cfg.AuthService != nil {
		v1.Use(AuthMiddleware(cfg.AuthService))
		v2.Use(AuthMiddleware(cfg.AuthService))

		authHandlers := NewAuthHandlers(cfg.AuthService)
		v1.GET("/auth/me", authHandlers.Me)
		v1.POST("/auth/revoke", authHandlers.Revoke)
	}
	{
		v1.GET("/chains", handlers.Chains)
		v1.GET("/token/:chain", handlers.Token)
		v1.GET("/address/:address", handlers.Address)
		v1.GET("/approval/:chain", handlers.ApprovalV1)
		v1.POST("/abi/decode", handlers.AbiDecode)
		v1.GET("/nft/:chain", handlers.Nft)
		v1.GET("/phishing", handlers.Phishing)
		v1.GET("/rugpull/:chain", handlers.RugPull)
		v1.GET("/status/:code", handlers.Status)
	}
	{
		v2.GET("/approval/:kind/:chain", handlers.ApprovalV2)
	}

	return router
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/globalvoice/esim-balance/internal/config"
	"github.com/globalvoice/esim-balance/internal/metrics"
	"github.com/globalvoice/esim-balance/internal/service"
)

type Server struct {
	router  *gin.Engine
	handler *Handler
	cfg     *config.Config
	limiter *RateLimiter
}

func NewServer(cfg *config.Config, balanceService *service.BalanceService, plansService *service.PlansService) *Server {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(RequestIDMiddleware())
	router.Use(MetricsMiddleware())

	handler := NewHandler(cfg, balanceService, plansService)

	s := &Server{
		router:  router,
		handler: handler,
		cfg:     cfg,
		limiter: NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check and scrape endpoint, never rate limited
	s.router.GET("/health", s.handler.Health)
	s.router.GET("/metrics", gin.WrapH(metrics.Handler()))

	limited := RateLimitMiddleware(s.limiter)

	// Assistant integrations send any method with the identifier in the
	// path, query, headers, or body; routes stay method-agnostic.
	s.router.Any("/balance", limited, s.handler.Balance)
	s.router.Any("/balance/:iccid", limited, s.handler.Balance)
	s.router.Any("/balance-clean", limited, s.handler.BalanceClean)
	s.router.Any("/balance-clean/:iccid", limited, s.handler.BalanceClean)
	s.router.Any("/plans-by-destination", limited, s.handler.PlansByDestination)
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

package server

import (
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/nulzo/zoo-api/internal/server/middleware"
	v1 "github.com/nulzo/zoo-api/internal/server/v1"
)

func (s *Server) SetupRoutes() {
	// 1. Global Middleware
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.Logger(s.logger))
	if s.config.Tracing.Enabled {
		s.router.Use(middleware.Tracing(s.config.Tracing.ServiceName))
	}
	s.router.Use(middleware.SecureHeaders())
	s.router.Use(cors.New(s.corsConfig()))
	if s.config.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(s.config.RateLimit.RequestsPerSecond, s.config.RateLimit.Burst, s.logger)
		s.router.Use(limiter.Middleware())
	}
	s.router.Use(middleware.ErrorHandler(s.logger))

	// 2. Health Check
	healthHandler := v1.NewHealthHandler(s.repo, s.version)
	s.router.GET("/health", healthHandler.Health)

	// 3. Zoo resource
	api := s.router.Group("/api")
	{
		zooHandler := v1.NewZooHandler(s.repo.Zoos(), s.validator, s.logger)
		zooHandler.RegisterRoutes(api)
	}
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}

	origins := s.config.CORS.AllowedOrigins
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// Package server exposes the comparison pipeline over HTTP.
package server

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/agenthands/versus/internal/config"
	"github.com/agenthands/versus/internal/core/model"
)

// Comparer runs one comparison request.
type Comparer interface {
	Compare(ctx context.Context, product1, product2, userContext string) (*model.ComparisonResult, error)
}

type Server struct {
	Comparer       Comparer
	Logger         *zap.Logger
	RequestTimeout time.Duration
	mode           string
}

func NewServer(comparer Comparer, cfg config.ServerConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		Comparer:       comparer,
		Logger:         logger.Named("http"),
		RequestTimeout: config.Seconds(cfg.RequestTimeoutSeconds, 3*time.Minute),
		mode:           cfg.Mode,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	if s.mode != "" {
		gin.SetMode(s.mode)
	}

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(s.Logger))
	r.Use(LoggerMiddleware(s.Logger))

	r.GET("/health", s.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/compare_products", s.CompareProducts)

	return r
}

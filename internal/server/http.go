package server

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/neuraseek/neuraseek/internal/conf"
	"github.com/neuraseek/neuraseek/internal/pkg/logger"
	"github.com/neuraseek/neuraseek/internal/search/service"
)

type HTTPServer struct {
	server *http.Server
	logger *logger.Logger
}

func NewHTTPServer(
	config *conf.Config,
	log *logger.Logger,
	searchService *service.SearchService,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(logger.GinRecovery(log))
	router.Use(logger.GinLogger(log))
	router.Use(corsMiddleware(config.CORS.AllowOrigins))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// API routes
	api := router.Group("/api/v1")
	searchService.RegisterRoutes(api)

	return &HTTPServer{
		server: &http.Server{
			Addr:    config.Server.Addr(),
			Handler: router,
		},
		logger: log,
	}
}

func (s *HTTPServer) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}

func corsMiddleware(allowOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (len(allowOrigins) == 0 || slices.Contains(allowOrigins, origin)) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

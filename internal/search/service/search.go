// Package service exposes the aggregation pipeline over HTTP.
package service

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/neuraseek/neuraseek/internal/search/dispatch"
	"github.com/neuraseek/neuraseek/internal/search/enrich"
	"github.com/neuraseek/neuraseek/internal/search/types"
	"github.com/neuraseek/neuraseek/internal/suggest"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// SearchService binds the inbound endpoints to the dispatcher, the
// enrichment pipeline and the suggestions service.
type SearchService struct {
	dispatcher *dispatch.Dispatcher
	enricher   *enrich.Pipeline
	suggester  *suggest.Service
	logger     *zap.Logger
}

// NewSearchService creates the HTTP service.
func NewSearchService(dispatcher *dispatch.Dispatcher, enricher *enrich.Pipeline, suggester *suggest.Service, logger *zap.Logger) *SearchService {
	return &SearchService{
		dispatcher: dispatcher,
		enricher:   enricher,
		suggester:  suggester,
		logger:     logger.Named("search-service"),
	}
}

// RegisterRoutes mounts the service under the given router group.
func (s *SearchService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", s.handleSearch)
	rg.GET("/suggestions", s.handleSuggestions)
}

type searchQuery struct {
	Q         string `form:"q" binding:"required"`
	Type      string `form:"type,default=all"`
	Page      int    `form:"page,default=1"`
	PageSize  int    `form:"pageSize,default=20"`
	PageToken string `form:"pageToken"`
}

// handleSearch always answers HTTP 200 with a SearchResponse document.
// Faults of any kind are logged and degrade to the canonical empty response.
func (s *SearchService) handleSearch(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.logger.Warn("invalid search request", zap.Error(err))
		c.JSON(http.StatusOK, types.EmptyResponse())
		return
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > maxPageSize {
		q.PageSize = defaultPageSize
	}

	category, known := types.ParseCategory(q.Type)
	if !known {
		s.logger.Warn("unknown search type", zap.String("type", q.Type))
		c.JSON(http.StatusOK, types.EmptyResponse())
		return
	}

	ctx := c.Request.Context()
	resp := s.dispatcher.Search(ctx, q.Q, category, q.Page, q.PageSize, q.PageToken)
	s.enricher.Enrich(ctx, category, resp.Results)

	c.JSON(http.StatusOK, resp)
}

// handleSuggestions returns up to five suggestion strings, an empty array on
// any failure.
func (s *SearchService) handleSuggestions(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, []string{})
		return
	}
	c.JSON(http.StatusOK, s.suggester.Suggestions(c.Request.Context(), query))
}

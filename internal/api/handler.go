package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"go-linkedin-fetcher/internal/models"
	"go-linkedin-fetcher/internal/reporter"
	"go-linkedin-fetcher/internal/scraper"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultMaxResults = 50
	defaultRunsLimit  = 20
	maxRunsLimit      = 200
)

// Searcher runs one search. search.Service implements it.
type Searcher interface {
	Search(ctx context.Context, criteria scraper.SearchCriteria) (reporter.Run, error)
}

// RunStore reads past runs. database.Repository implements it.
type RunStore interface {
	RecentRuns(ctx context.Context, limit int) ([]models.SearchRun, error)
	RunRecords(ctx context.Context, runID string) ([]models.JobRecord, error)
}

type Handler struct {
	searcher Searcher
	store    RunStore
}

// NewRouter wires the routes. store may be nil when no database is set up.
func NewRouter(searcher Searcher, store RunStore) *gin.Engine {
	h := &Handler{searcher: searcher, store: store}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", h.health)
	r.POST("/search", h.search)
	r.GET("/runs", h.listRuns)
	r.GET("/runs/:id/records", h.runRecords)
	return r
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "LinkedIn job fetcher API is running!",
		"status":  "healthy",
	})
}

type searchRequest struct {
	Keywords   string `json:"keywords"`
	Location   string `json:"location"`
	MaxResults int    `json:"max_results"`
	AutoScroll *bool  `json:"auto_scroll"`
}

func (r searchRequest) criteria() scraper.SearchCriteria {
	c := scraper.SearchCriteria{
		Keywords:   r.Keywords,
		Location:   r.Location,
		MaxResults: r.MaxResults,
		AutoScroll: true,
	}
	if c.MaxResults == 0 {
		c.MaxResults = defaultMaxResults
	}
	if r.AutoScroll != nil {
		c.AutoScroll = *r.AutoScroll
	}
	return c
}

func (h *Handler) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	criteria := req.criteria()
	if criteria.Query() == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "keywords or location is required"})
		return
	}

	run, err := h.searcher.Search(c.Request.Context(), criteria)
	if err != nil {
		if errors.Is(err, scraper.ErrInvalidCriteria) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("❌ Search failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"layout":  run.Result.Layout,
		"state":   run.Result.State,
		"count":   len(run.Records()),
		"records": run.Records(),
	})
}

func (h *Handler) listRuns(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run history is not configured"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultRunsLimit)))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}
	limit = min(limit, maxRunsLimit)

	runs, err := h.store.RecentRuns(c.Request.Context(), limit)
	if err != nil {
		log.Printf("❌ Failed to list runs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (h *Handler) runRecords(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run history is not configured"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "run id must be a UUID"})
		return
	}
	records, err := h.store.RunRecords(c.Request.Context(), id.String())
	if err != nil {
		log.Printf("❌ Failed to list job records: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list job records"})
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found or empty"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

package contests

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"contest-compass/internal/models"
	"contest-compass/internal/repository"
)

// Store is what the API layer reads and writes.
type Store interface {
	ListContests(ctx context.Context, platform string, past *bool) ([]models.Contest, error)
	ListContestsBetween(ctx context.Context, from, to time.Time) ([]models.Contest, error)
	SetSolutionLink(ctx context.Context, id uuid.UUID, link string) error
}

// Ingestor runs one fetch-and-store cycle on demand.
type Ingestor interface {
	Run(ctx context.Context) (int, error)
}

type Handler struct {
	store    Store
	ingestor Ingestor
	ping     func(ctx context.Context) error
}

func NewHandler(store Store, ingestor Ingestor, ping func(ctx context.Context) error) *Handler {
	return &Handler{store: store, ingestor: ingestor, ping: ping}
}

// Register mounts all contest routes plus the health probe.
func (h *Handler) Register(router *gin.Engine) {
	router.GET("/api/health", h.Health)

	api := router.Group("/api/contests")
	{
		api.GET("", h.ListContests)
		api.GET("/today", h.TodaysContests)
		api.GET("/fetch", h.FetchContests)
		api.POST("/solution/:id", h.SubmitSolution)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
}

func (h *Handler) ListContests(c *gin.Context) {
	platform := c.Query("platform")

	var past *bool
	if v := c.Query("past"); v != "" {
		b := v == "true"
		past = &b
	}

	contests, err := h.store.ListContests(c.Request.Context(), platform, past)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contests"})
		return
	}
	c.JSON(http.StatusOK, contests)
}

func (h *Handler) TodaysContests(c *gin.Context) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Millisecond)

	contests, err := h.store.ListContestsBetween(c.Request.Context(), dayStart, dayEnd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve today's contests"})
		return
	}
	c.JSON(http.StatusOK, contests)
}

func (h *Handler) FetchContests(c *gin.Context) {
	stored, err := h.ingestor.Run(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Stored %d contests", stored)})
}

func (h *Handler) SubmitSolution(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var req struct {
		SolutionLink string `json:"solution_link"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !strings.HasPrefix(req.SolutionLink, "https://") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid YouTube link"})
		return
	}

	if err := h.store.SetSolutionLink(c.Request.Context(), id, req.SolutionLink); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update solution link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Solution link updated", "solution_link": req.SolutionLink})
}

func (h *Handler) Health(c *gin.Context) {
	database := "disconnected"
	if h.ping != nil && h.ping(c.Request.Context()) == nil {
		database = "connected"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"message":  "Server is running",
		"database": database,
	})
}

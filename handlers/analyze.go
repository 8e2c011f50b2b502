package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tubepulse/fetcher"
	"tubepulse/processor"
)

// AnalyzeRequest is the POST /analyze body.
type AnalyzeRequest struct {
	URL         string `json:"url" binding:"required"`
	MaxComments int    `json:"max_comments"`
}

// AnalyzeHandler runs the pipeline for one video and returns the full run.
func AnalyzeHandler(c *gin.Context, p *processor.Processor, defaultMax int) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required", "details": err.Error()})
		return
	}

	maxComments := req.MaxComments
	if maxComments < 1 {
		maxComments = defaultMax
	}

	run, err := p.Analyze(c.Request.Context(), req.URL, maxComments)
	if err != nil {
		switch {
		case errors.Is(err, fetcher.ErrInvalidVideoURL):
			c.JSON(http.StatusBadRequest, gin.H{"error": "not a valid YouTube URL or video ID"})
		case errors.Is(err, fetcher.ErrSourceUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not fetch comments from any source", "details": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, run)
}

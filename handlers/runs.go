package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tubepulse/db"
)

// ListRunsHandler returns recent run metadata, newest first.
func ListRunsHandler(c *gin.Context, store *db.Store) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}

	runs, err := store.ListRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}

// GetRunHandler returns one stored run with its comments.
func GetRunHandler(c *gin.Context, store *db.Store) {
	run, err := store.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load run", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, run)
}

// DeleteRunHandler removes a stored run.
func DeleteRunHandler(c *gin.Context, store *db.Store) {
	err := store.DeleteRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete run", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tubepulse/db"
	"tubepulse/export"
)

// ExportRunHandler streams a stored run as a CSV attachment. Every comment is
// included, unknown labels too.
func ExportRunHandler(c *gin.Context, store *db.Store) {
	run, err := store.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load run", "details": err.Error()})
		return
	}

	filename := fmt.Sprintf("comments_%s_%s.csv", run.VideoID, run.ID[:8])
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.WriteCSV(c.Writer, run.Comments); err != nil {
		// Headers are already out; all we can do is drop the connection.
		c.Abort()
	}
}

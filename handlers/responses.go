package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tubepulse/db"
	"tubepulse/responder"
)

// DraftResponsesHandler drafts a reply for every comment of a stored run.
func DraftResponsesHandler(c *gin.Context, store *db.Store, r *responder.Responder) {
	run, err := store.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load run", "details": err.Error()})
		return
	}

	replies := r.Draft(c.Request.Context(), run.Comments)
	c.JSON(http.StatusOK, gin.H{"run_id": run.ID, "responses": replies})
}

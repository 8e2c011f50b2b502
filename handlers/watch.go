package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tubepulse/db"
	"tubepulse/fetcher"
)

// WatchRequest is the POST /watch body.
type WatchRequest struct {
	URL string `json:"url" binding:"required"`
}

// AddWatchHandler puts a video on the scheduled re-analysis list.
func AddWatchHandler(c *gin.Context, store *db.Store) {
	var req WatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required", "details": err.Error()})
		return
	}

	videoID, err := fetcher.ExtractVideoID(req.URL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "not a valid YouTube URL or video ID"})
		return
	}

	if err := store.AddWatchedVideo(c.Request.Context(), videoID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add watched video", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"video_id": videoID})
}

// ListWatchHandler returns the watch list.
func ListWatchHandler(c *gin.Context, store *db.Store) {
	watched, err := store.ListWatchedVideos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list watched videos", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"watched": watched, "count": len(watched)})
}

// RemoveWatchHandler drops a video from the watch list.
func RemoveWatchHandler(c *gin.Context, store *db.Store) {
	err := store.RemoveWatchedVideo(c.Request.Context(), c.Param("videoID"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "video not watched"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove watched video", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": c.Param("videoID")})
}

package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tubepulse/db"
	"tubepulse/handlers"
	"tubepulse/processor"
	"tubepulse/responder"
)

// SetupRouter wires the API surface. The dashboard frontend consumes these
// endpoints; nothing here feeds back into the pipeline.
func SetupRouter(p *processor.Processor, store *db.Store, r *responder.Responder, defaultMaxComments int) *gin.Engine {
	engine := gin.Default()

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/tubepulse")
	{
		api.POST("/analyze", func(c *gin.Context) {
			handlers.AnalyzeHandler(c, p, defaultMaxComments)
		})

		api.GET("/runs", func(c *gin.Context) {
			handlers.ListRunsHandler(c, store)
		})
		api.GET("/runs/:id", func(c *gin.Context) {
			handlers.GetRunHandler(c, store)
		})
		api.DELETE("/runs/:id", func(c *gin.Context) {
			handlers.DeleteRunHandler(c, store)
		})
		api.GET("/runs/:id/export", func(c *gin.Context) {
			handlers.ExportRunHandler(c, store)
		})
		api.POST("/runs/:id/responses", func(c *gin.Context) {
			handlers.DraftResponsesHandler(c, store, r)
		})

		api.POST("/watch", func(c *gin.Context) {
			handlers.AddWatchHandler(c, store)
		})
		api.GET("/watch", func(c *gin.Context) {
			handlers.ListWatchHandler(c, store)
		})
		api.DELETE("/watch/:videoID", func(c *gin.Context) {
			handlers.RemoveWatchHandler(c, store)
		})
	}

	return engine
}

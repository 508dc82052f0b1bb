package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lvxn0va/legal-ease-ai/internal/database"
	"github.com/lvxn0va/legal-ease-ai/internal/pipeline"
)

type HealthHandler struct {
	db     *database.Database
	worker *pipeline.Worker
}

func NewHealthHandler(db *database.Database, worker *pipeline.Worker) *HealthHandler {
	return &HealthHandler{
		db:     db,
		worker: worker,
	}
}

// Health reports service liveness plus the pipeline's live counters, so a
// poller can watch the backlog drain.
func (h *HealthHandler) Health(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK

	if err := h.db.HealthCheck(c); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":           status,
		"queue_size":       h.worker.QueueDepth(),
		"processing_count": h.worker.InFlightCount(),
	})
}

package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-version"
	"github.com/nulzo/zoo-api/pkg/api"
)

// Pinger is satisfied by store.Repository.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db        Pinger
	version   string
	startTime time.Time
}

// NewHealthHandler normalises appVersion; an unparsable value is reported as-is.
func NewHealthHandler(db Pinger, appVersion string) *HealthHandler {
	v := appVersion
	if parsed, err := version.NewVersion(appVersion); err == nil {
		v = parsed.String()
	}

	return &HealthHandler{
		db:        db,
		version:   v,
		startTime: time.Now(),
	}
}

// Health returns the health status and uptime of the API.
//
// This endpoint is used by load balancers and monitoring systems
// to verify the service is running and its database answers.
func (h *HealthHandler) Health(c *gin.Context) {
	resp := api.HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Uptime:  time.Since(h.startTime).String(),
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		resp.Status = "unavailable"
		resp.Error = err.Error()
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

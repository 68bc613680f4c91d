package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaganyildiz/academix/internal/app/models/dto"
	"github.com/kaganyildiz/academix/internal/pkg/cache"
)

// HealthController reports service liveness and dependency reachability
type HealthController struct {
	pool      *pgxpool.Pool
	userCache *cache.UserCache
}

// NewHealthController creates a new HealthController. userCache may be nil.
func NewHealthController(pool *pgxpool.Pool, userCache *cache.UserCache) *HealthController {
	return &HealthController{pool: pool, userCache: userCache}
}

// Check handles GET /api/health
func (ctrl *HealthController) Check(c *gin.Context) {
	ctx := c.Request.Context()
	status := http.StatusOK

	checks := gin.H{}

	if err := ctrl.pool.Ping(ctx); err != nil {
		checks["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	if ctrl.userCache != nil {
		if err := ctrl.userCache.Ping(ctx); err != nil {
			// The cache is optional, its loss degrades latency not correctness
			checks["cache"] = "unreachable"
		} else {
			checks["cache"] = "ok"
		}
	}

	payload := gin.H{
		"status": "up",
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
	}
	if status != http.StatusOK {
		payload["status"] = "degraded"
		c.JSON(status, dto.NewErrorResponse("Service unhealthy"))
		return
	}

	c.JSON(status, dto.NewSuccessResponse(payload, ""))
}

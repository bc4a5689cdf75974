package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"gamecraft/internal/database"
)

// HealthHandler reports dependency connectivity.
type HealthHandler struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{DB: db, Redis: rdb}
}

// Check serves GET /api/health. Degraded dependencies flip the status
// and the HTTP code to 503 so load balancers can react.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()
	healthy := true

	dbStatus := "up"
	if err := database.Ping(ctx, h.DB); err != nil {
		dbStatus = "down"
		healthy = false
	}

	redisStatus := "up"
	if h.Redis == nil {
		redisStatus = "disabled"
	} else if err := h.Redis.Ping(ctx).Err(); err != nil {
		redisStatus = "down"
		healthy = false
	}

	status := http.StatusOK
	overall := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}
	c.JSON(status, gin.H{
		"status":   overall,
		"database": dbStatus,
		"redis":    redisStatus,
	})
}

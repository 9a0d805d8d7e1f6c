// Package health exposes liveness and readiness probes.
package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Controller answers health probes. db is nil when the memory backend is
// active; readiness then skips the database check.
type Controller struct {
	db        *gorm.DB
	appName   string
	version   string
	startedAt time.Time
}

// NewController creates the health controller.
func NewController(db *gorm.DB, appName, version string) *Controller {
	return &Controller{
		db:        db,
		appName:   appName,
		version:   version,
		startedAt: time.Now(),
	}
}

// RegisterRoutes registers the probe routes on the root router.
func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", c.Health)
	router.GET("/health/live", c.Live)
	router.GET("/health/ready", c.Ready)
}

// Health reports overall status with uptime and version.
// GET /health
func (c *Controller) Health(ctx *gin.Context) {
	status := http.StatusOK
	dbStatus := "skipped"
	if c.db != nil {
		if err := c.ping(); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "down"
		} else {
			dbStatus = "up"
		}
	}

	ctx.JSON(status, gin.H{
		"app":      c.appName,
		"version":  c.version,
		"status":   statusWord(status),
		"database": dbStatus,
		"uptime":   time.Since(c.startedAt).Round(time.Second).String(),
	})
}

// Live reports that the process is running.
// GET /health/live
func (c *Controller) Live(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the service can take traffic.
// GET /health/ready
func (c *Controller) Ready(ctx *gin.Context) {
	if c.db != nil {
		if err := c.ping(); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"error":  err.Error(),
			})
			return
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (c *Controller) ping() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func statusWord(status int) string {
	if status == http.StatusOK {
		return "ok"
	}
	return "degraded"
}

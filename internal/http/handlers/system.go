package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck pings one dependency.
type HealthCheck struct {
	Name string
	// Optional checks never turn the overall status red.
	Optional bool
	Ping     func(ctx context.Context) error
}

// Health reports per-store reachability. The service is up as long as the
// fallback store answers.
func (a *API) Health(c *gin.Context) {
	status := http.StatusOK
	stores := gin.H{}
	for _, hc := range a.Checks {
		if err := hc.Ping(c.Request.Context()); err != nil {
			stores[hc.Name] = gin.H{"ok": false, "error": err.Error()}
			if !hc.Optional {
				status = http.StatusServiceUnavailable
			}
			continue
		}
		stores[hc.Name] = gin.H{"ok": true}
	}

	msg := "ok"
	if status != http.StatusOK {
		msg = "degraded"
	}
	c.JSON(status, gin.H{"status": msg, "stores": stores})
}

// Routes lists registered routes.
func (a *API) Routes(c *gin.Context) {
	if a.Engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router belum siap"})
		return
	}
	routes := a.Engine.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{"method": rt.Method, "path": rt.Path})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}

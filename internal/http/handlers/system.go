package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "valley cars backend is running"})
}

// DBCheck pings MySQL and reports how many cars are stored.
func DBCheck(c *gin.Context) {
	db := deps().DB
	if db == nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database is not connected", nil)
		return
	}
	var count int
	if err := db.QueryRowContext(c.Request.Context(), "SELECT COUNT(*) FROM cars").Scan(&count); err != nil {
		logHandlerError(c, err)
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database query failed", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "cars_in_db": count})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		respondError(c, http.StatusServiceUnavailable, "router_not_ready", "router is not ready", nil)
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}

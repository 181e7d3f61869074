package api

import (
	"context"  // Probe timeout
	"net/http" // HTTP status codes
	"sort"     // Stable dependency order
	"time"     // Probe timeout

	"github.com/gin-gonic/gin" // Gin web framework
)

type dependencyStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string             `json:"status"`
	Dependencies []dependencyStatus `json:"dependencies"`
}

// LivenessHandler handles GET /health and confirms the process is alive
func LivenessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// ReadinessHandler handles GET /health/ready and pings every dependency
func ReadinessHandler(checks map[string]Pinger) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		resp := readinessResponse{Status: "ok", Dependencies: make([]dependencyStatus, 0, len(names))}
		httpStatus := http.StatusOK
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				resp.Dependencies = append(resp.Dependencies, dependencyStatus{Name: name, Status: "unhealthy", Error: err.Error()})
				resp.Status = "degraded"
				httpStatus = http.StatusServiceUnavailable
				continue
			}
			resp.Dependencies = append(resp.Dependencies, dependencyStatus{Name: name, Status: "ok"})
		}
		c.JSON(httpStatus, resp)
	}
}

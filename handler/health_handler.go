package handler

import (
	"net/http"

	"main/utils"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health. Reports database reachability and basic system
// load so deploys and probes have one endpoint to watch.
func Health(c *gin.Context) {
	status := "ok"
	code := http.StatusOK

	mongoStatus := "up"
	if err := utils.PingMongo(c.Request.Context()); err != nil {
		mongoStatus = "down"
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status": status,
		"mongo":  mongoStatus,
		"system": gin.H{
			"cpu_percent":    utils.GetCPUUsage(),
			"memory_percent": utils.GetMemoryUsage(),
		},
	})
}

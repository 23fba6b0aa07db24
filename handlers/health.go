package handlers

import (
	"net/http"

	"brightwash/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the latest external-service health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}

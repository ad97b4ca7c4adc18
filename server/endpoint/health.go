package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authgate/version"
)

// Health returns a handler reporting service liveness. The service holds no
// external connections, so healthy means the process is up.
func Health(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   serviceName,
			"version":   version.GetVersionInfo().Version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

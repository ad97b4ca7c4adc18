package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authgate/authctx"
)

// Me returns the authenticated caller's public profile. It runs behind the
// auth guard, which stores the resolved identity in the request context.
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := authctx.GetOrError(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": id.User.Public()})
	}
}

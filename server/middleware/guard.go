// Package middleware provides the gin middleware that gates routes on
// authentication and role requirements, plus the request plumbing (request
// ids, recovery, request logging, CORS) applied ahead of every handler.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authgate/authctx"
	"github.com/skillsenselab/authgate/authn"
	"github.com/skillsenselab/authgate/errors"
	"github.com/skillsenselab/authgate/logger"
	"github.com/skillsenselab/authgate/observability"
	"github.com/skillsenselab/authgate/user"
)

// RequireAuth returns middleware that resolves the caller identity and
// aborts with 401 when the request is unauthenticated. On success the
// identity is stored in the request context for downstream handlers.
func RequireAuth(resolver *authn.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := resolver.Resolve(c.Request)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), id))
	}
}

// RequireRole returns middleware that resolves the caller identity and
// additionally requires the given role: 401 when unauthenticated, 403 when
// authenticated with an insufficient role.
func RequireRole(resolver *authn.Resolver, role user.Role, metrics *observability.AuthMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := resolver.Resolve(c.Request)
		if err != nil {
			metrics.RecordRoleCheck(c.Request.Context(), string(role), "unauthenticated")
			abortWithError(c, err)
			return
		}

		if !meets(id.User.Role, role) {
			metrics.RecordRoleCheck(c.Request.Context(), string(role), "forbidden")
			logger.Warn("role check failed", logger.Fields(
				logger.FieldUserID, id.User.ID,
				logger.FieldRole, string(id.User.Role),
				"required", string(role),
			))
			abortWithError(c, errors.Forbidden(""))
			return
		}

		metrics.RecordRoleCheck(c.Request.Context(), string(role), "allowed")
		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), id))
	}
}

// meets reports whether the held role satisfies the required one. Admin
// satisfies every requirement.
func meets(held, required user.Role) bool {
	if held == user.RoleAdmin {
		return true
	}
	return held == required
}

// abortWithError converts an error to the JSON error envelope and aborts
// the chain. Internal detail is echoed only in gin debug mode.
func abortWithError(c *gin.Context, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.Internal(err)
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse(gin.Mode() == gin.DebugMode))
}

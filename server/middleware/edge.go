package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authgate/authn"
	"github.com/skillsenselab/authgate/logger"
	"github.com/skillsenselab/authgate/observability"
	"github.com/skillsenselab/authgate/user"
)

// EdgeConfig names the path prefixes the edge policy dispatches on.
type EdgeConfig struct {
	// AdminAPIPrefix routes require an authenticated admin (401/403 JSON).
	AdminAPIPrefix string `yaml:"admin_api_prefix" mapstructure:"admin_api_prefix"`
	// AdminUIPrefix routes require any structurally valid token; failures
	// redirect to LoginPath because this guards whole page flows.
	AdminUIPrefix string `yaml:"admin_ui_prefix" mapstructure:"admin_ui_prefix"`
	// LoginPath is where unauthenticated page requests are sent.
	LoginPath string `yaml:"login_path" mapstructure:"login_path"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *EdgeConfig) ApplyDefaults() {
	if c.AdminAPIPrefix == "" {
		c.AdminAPIPrefix = "/api/admin"
	}
	if c.AdminUIPrefix == "" {
		c.AdminUIPrefix = "/admin"
	}
	if c.LoginPath == "" {
		c.LoginPath = "/login"
	}
}

// EdgePolicy returns the path-prefix dispatch middleware that runs ahead of
// all route handlers. Admin API paths go through the admin role guard;
// admin UI paths need only a structurally valid access-or-refresh token
// (full role and store checks are deferred to the page handler); every
// other path passes through unchecked and decides its own auth needs.
func EdgePolicy(resolver *authn.Resolver, cfg EdgeConfig, metrics *observability.AuthMetrics) gin.HandlerFunc {
	cfg.ApplyDefaults()
	adminGuard := RequireRole(resolver, user.RoleAdmin, metrics)

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		switch {
		case strings.HasPrefix(path, cfg.AdminAPIPrefix):
			adminGuard(c)

		case strings.HasPrefix(path, cfg.AdminUIPrefix):
			if err := resolver.CheckToken(c.Request); err != nil {
				logger.Debug("page flow redirected to login", logger.Fields(
					"path", path,
				))
				c.Redirect(http.StatusFound, cfg.LoginPath)
				c.Abort()
				return
			}
		}
	}
}

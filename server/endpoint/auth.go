// Package endpoint implements the HTTP handlers for the authentication
// flows: login, register, refresh, and the authenticated profile endpoint.
package endpoint

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authgate/authn"
	"github.com/skillsenselab/authgate/errors"
	"github.com/skillsenselab/authgate/logger"
	"github.com/skillsenselab/authgate/observability"
	"github.com/skillsenselab/authgate/password"
	"github.com/skillsenselab/authgate/ratelimit"
	"github.com/skillsenselab/authgate/token"
	"github.com/skillsenselab/authgate/user"
)

// AuthDeps holds the collaborators of the auth endpoints.
type AuthDeps struct {
	Users   user.Store
	Tokens  *token.Service
	Hasher  password.Hasher
	Policy  password.Policy
	Limiter *ratelimit.Limiter
	Metrics *observability.AuthMetrics
	Log     *logger.Logger

	// Production controls the Secure attribute on the refresh cookie.
	Production bool
}

// Auth bundles the login, register, and refresh handlers around their
// shared collaborators.
type Auth struct {
	deps AuthDeps
	log  *logger.Logger
}

// NewAuth creates the auth endpoint set.
func NewAuth(deps AuthDeps) *Auth {
	log := deps.Log
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Auth{deps: deps, log: log.WithComponent("endpoint.auth")}
}

// authResponse is the success body shared by login, register, and refresh.
type authResponse struct {
	User        user.Public `json:"user"`
	AccessToken string      `json:"accessToken"`
}

// issuePair mints a fresh access/refresh token pair for the user and sets
// the refresh cookie. Returns the body to send.
func (a *Auth) issuePair(c *gin.Context, u *user.User) (*authResponse, error) {
	access, err := a.deps.Tokens.IssueAccess(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, errors.Internal(err)
	}
	refresh, err := a.deps.Tokens.IssueRefresh(u.ID)
	if err != nil {
		return nil, errors.Internal(err)
	}

	a.setRefreshCookie(c, refresh)
	return &authResponse{User: u.Public(), AccessToken: access}, nil
}

// setRefreshCookie sets or overwrites the http-only refresh cookie. SameSite
// is strict so the cookie never rides along on cross-site requests.
func (a *Auth) setRefreshCookie(c *gin.Context, value string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     authn.RefreshCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(a.deps.Tokens.RefreshTTL().Seconds()),
		HttpOnly: true,
		Secure:   a.deps.Production,
		SameSite: http.SameSiteStrictMode,
	})
}

// clientKey derives the rate-limit key for the request: the first hop of
// X-Forwarded-For when present, otherwise the transport peer address.
func clientKey(c *gin.Context) string {
	if fwd := c.Request.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

// respondError converts an error to the JSON error envelope. Internal
// detail is echoed only in gin debug mode.
func respondError(c *gin.Context, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.Internal(err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToResponse(gin.Mode() == gin.DebugMode))
}

package endpoint

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authgate/errors"
	"github.com/skillsenselab/authgate/logger"
	"github.com/skillsenselab/authgate/password"
	"github.com/skillsenselab/authgate/user"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates email/password credentials and issues a token pair.
// The rate limiter is consulted before anything else, so even malformed
// requests spend an attempt. Unknown email and wrong password produce the
// same generic 401; the remaining attempt budget is reported on both so
// the responses stay indistinguishable.
func (a *Auth) Login(c *gin.Context) {
	ctx := c.Request.Context()

	key := clientKey(c)
	res := a.deps.Limiter.Check(key)
	if res.Blocked {
		a.deps.Metrics.RecordRateLimitBlock(ctx)
		a.deps.Metrics.RecordLogin(ctx, "rate_limited")
		a.log.Warn("login rate limited", logger.Fields(
			logger.FieldClientKey, key,
			"reset_at", res.ResetAt,
		))
		respondError(c, errors.RateLimited(res.ResetAt))
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		respondError(c, errors.Validation("Email and password are required."))
		return
	}

	u, err := a.deps.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			a.failLogin(c, key, res.Remaining, "unknown email")
			return
		}
		respondError(c, errors.Internal(err))
		return
	}

	if err := a.deps.Hasher.Verify(req.Password, u.PasswordHash); err != nil {
		if stderrors.Is(err, password.ErrMismatch) {
			a.failLogin(c, key, res.Remaining, "password mismatch")
			return
		}
		respondError(c, errors.Internal(err))
		return
	}

	body, err := a.issuePair(c, u)
	if err != nil {
		respondError(c, err)
		return
	}

	a.deps.Metrics.RecordLogin(ctx, "success")
	a.log.Info("login succeeded", logger.Fields(
		logger.FieldUserID, u.ID,
		logger.FieldRole, string(u.Role),
	))
	c.JSON(http.StatusOK, body)
}

// failLogin sends the generic credential failure. The true reason is logged
// but never surfaced to the client.
func (a *Auth) failLogin(c *gin.Context, key string, remaining int, reason string) {
	a.deps.Metrics.RecordLogin(c.Request.Context(), "invalid_credentials")
	a.log.Info("login failed", logger.Fields(
		logger.FieldClientKey, key,
		logger.FieldReason, reason,
		"remaining_attempts", remaining,
	))
	respondError(c, errors.InvalidCredentials().WithDetail("remainingAttempts", remaining))
}

package endpoint

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authgate/authn"
	"github.com/skillsenselab/authgate/errors"
	"github.com/skillsenselab/authgate/logger"
	"github.com/skillsenselab/authgate/token"
	"github.com/skillsenselab/authgate/user"
)

// Refresh exchanges a valid refresh cookie for a brand-new token pair and
// overwrites the cookie (rotation). The superseded refresh token is not
// revoked and stays valid until its natural expiry.
//
// Failures are all 401 but carry distinguishing codes so clients can tell
// an expired cookie (re-login) from a wrong-class or tampered token.
func (a *Auth) Refresh(c *gin.Context) {
	ctx := c.Request.Context()

	cookie, err := c.Request.Cookie(authn.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		a.deps.Metrics.RecordRefresh(ctx, "missing_cookie")
		respondError(c, errors.Unauthorized("No refresh token provided."))
		return
	}

	claims, err := a.deps.Tokens.Verify(cookie.Value)
	if err != nil {
		a.failRefresh(c, err)
		return
	}
	if claims.TokenType != token.TypeRefresh {
		a.deps.Metrics.RecordRefresh(ctx, "wrong_type")
		a.deps.Metrics.RecordTokenFailure(ctx, "wrong_type")
		respondError(c, errors.WrongTokenType(string(token.TypeRefresh)))
		return
	}

	u, err := a.deps.Users.FindByID(ctx, claims.UserID)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			a.deps.Metrics.RecordRefresh(ctx, "unknown_user")
			respondError(c, errors.Unauthorized("User not found."))
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

	a.deps.Metrics.RecordRefresh(ctx, "success")
	a.log.Debug("token pair rotated", logger.Fields(
		logger.FieldUserID, u.ID,
	))
	c.JSON(http.StatusOK, body)
}

// failRefresh maps a verification failure to its distinguishing 401.
func (a *Auth) failRefresh(c *gin.Context, err error) {
	ctx := c.Request.Context()
	switch {
	case stderrors.Is(err, token.ErrExpired):
		a.deps.Metrics.RecordRefresh(ctx, "expired")
		a.deps.Metrics.RecordTokenFailure(ctx, "expired")
		respondError(c, errors.TokenExpired())
	case stderrors.Is(err, token.ErrInvalidSignature):
		a.deps.Metrics.RecordRefresh(ctx, "invalid")
		a.deps.Metrics.RecordTokenFailure(ctx, "invalid_signature")
		respondError(c, errors.InvalidToken())
	default:
		a.deps.Metrics.RecordRefresh(ctx, "invalid")
		a.deps.Metrics.RecordTokenFailure(ctx, "malformed")
		respondError(c, errors.TokenMalformed())
	}
}

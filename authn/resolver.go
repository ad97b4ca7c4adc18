// Package authn resolves the caller identity of an inbound request from its
// bearer access token or refresh cookie.
package authn

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/skillsenselab/authgate/authctx"
	"github.com/skillsenselab/authgate/errors"
	"github.com/skillsenselab/authgate/logger"
	"github.com/skillsenselab/authgate/token"
	"github.com/skillsenselab/authgate/user"
)

// RefreshCookieName is the dedicated cookie carrying the refresh token.
const RefreshCookieName = "refresh_token"

const bearerPrefix = "Bearer "

// Resolver determines a request's identity and validity state. It checks the
// Authorization header first (expecting an access-class token) and falls back
// to the refresh cookie (expecting a refresh-class token); the first
// structurally valid, class-correct, unexpired token wins. The subject is
// then looked up in the user store, so deleted accounts resolve to
// unauthenticated even while their tokens are cryptographically valid.
type Resolver struct {
	tokens *token.Service
	users  user.Store
	log    *logger.Logger
}

// NewResolver creates a Resolver.
func NewResolver(tokens *token.Service, users user.Store, log *logger.Logger) *Resolver {
	return &Resolver{
		tokens: tokens,
		users:  users,
		log:    log.WithComponent("authn"),
	}
}

// Resolve returns the caller's identity, or an *errors.AppError whose code
// names the failure reason (no token, malformed, invalid signature, wrong
// class, expired, or unknown user).
func (r *Resolver) Resolve(req *http.Request) (*authctx.Identity, error) {
	claims, err := r.extract(req)
	if err != nil {
		return nil, err
	}

	u, err := r.users.FindByID(req.Context(), claims.UserID)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			r.log.Warn("token subject not found", logger.Fields(
				logger.FieldUserID, claims.UserID,
			))
			return nil, errors.Unauthorized("User not found.")
		}
		return nil, errors.Internal(err)
	}

	return &authctx.Identity{User: u, Claims: claims}, nil
}

// CheckToken reports whether the request carries any structurally valid,
// unexpired token in either slot. It does not enforce token class and does
// not touch the user store: the coarse check used ahead of page flows,
// where the full resolution is deferred to the page's own handler.
func (r *Resolver) CheckToken(req *http.Request) error {
	var lastErr error

	if bearer, ok := bearerToken(req); ok {
		_, err := r.tokens.Verify(bearer)
		if err == nil {
			return nil
		}
		lastErr = r.classifyTokenError(err, "header")
	}

	if cookie, err := req.Cookie(RefreshCookieName); err == nil && cookie.Value != "" {
		_, err := r.tokens.Verify(cookie.Value)
		if err == nil {
			return nil
		}
		lastErr = r.classifyTokenError(err, "cookie")
	}

	if lastErr != nil {
		return lastErr
	}
	return errors.Unauthorized("No token provided.")
}

// extract walks the two token sources in preference order and returns the
// claims of the winning token.
func (r *Resolver) extract(req *http.Request) (*token.Claims, error) {
	var lastErr error

	if bearer, ok := bearerToken(req); ok {
		claims, err := r.verifyClass(bearer, token.TypeAccess, "header")
		if err == nil {
			return claims, nil
		}
		lastErr = err
	}

	if cookie, err := req.Cookie(RefreshCookieName); err == nil && cookie.Value != "" {
		claims, err := r.verifyClass(cookie.Value, token.TypeRefresh, "cookie")
		if err == nil {
			return claims, nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, errors.Unauthorized("No token provided.")
}

// verifyClass verifies one token and enforces the class the slot expects.
// Class is checked independently of cryptographic validity: a perfectly
// valid refresh token presented as an access token is still rejected.
func (r *Resolver) verifyClass(tokenString string, want token.Type, source string) (*token.Claims, error) {
	claims, err := r.tokens.Verify(tokenString)
	if err != nil {
		return nil, r.classifyTokenError(err, source)
	}
	if claims.TokenType != want {
		r.log.Warn("token class mismatch", logger.Fields(
			"source", source,
			logger.FieldTokenType, string(claims.TokenType),
			"expected", string(want),
		))
		return nil, errors.WrongTokenType(string(want))
	}
	return claims, nil
}

func (r *Resolver) classifyTokenError(err error, source string) error {
	var appErr *errors.AppError
	switch {
	case stderrors.Is(err, token.ErrExpired):
		appErr = errors.TokenExpired()
	case stderrors.Is(err, token.ErrInvalidSignature):
		appErr = errors.InvalidToken()
	default:
		appErr = errors.TokenMalformed()
	}
	r.log.Debug("token verification failed", logger.Fields(
		"source", source,
		logger.FieldReason, string(appErr.Code),
	))
	return appErr
}

func bearerToken(req *http.Request) (string, bool) {
	header := req.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	tok := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if tok == "" {
		return "", false
	}
	return tok, true
}

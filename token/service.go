// Package token issues and verifies the signed, expiring tokens that carry
// identity, role, and token-class claims.
//
// The service signs with HS256 over a single shared secret. Verification
// validates signature and expiry only; the token type claim is carried and
// exposed but not enforced here; each call site checks the
// type it expects, which lets one primitive serve both token kinds.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Type distinguishes the two token classes.
type Type string

const (
	// TypeAccess marks short-lived tokens presented on each request.
	TypeAccess Type = "access"
	// TypeRefresh marks long-lived tokens used only to mint new pairs.
	TypeRefresh Type = "refresh"
)

// Verification failure kinds. Verify always returns exactly one of these,
// wrapping the underlying parser error.
var (
	// ErrExpired means the token was well-formed and correctly signed but
	// its expiry has passed.
	ErrExpired = errors.New("token: expired")
	// ErrInvalidSignature means the signature does not verify or the
	// signing method is not the expected one.
	ErrInvalidSignature = errors.New("token: invalid signature")
	// ErrMalformed means the string is not structurally a JWT.
	ErrMalformed = errors.New("token: malformed")
)

// Claims is the signed claim set. On the wire it serializes as
// {id, email, role, type, iat, exp}. Refresh tokens carry only the subject
// id and type.
type Claims struct {
	UserID    string `json:"id"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType Type   `json:"type"`
	jwt.RegisteredClaims
}

// Service issues and verifies signed tokens. Safe for concurrent use; the
// config is read-only after construction.
type Service struct {
	cfg Config
}

// NewService creates a token service. The secret must be present; callers
// are expected to have resolved configuration (including any development
// fallback) before this point.
func NewService(cfg Config) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{cfg: cfg}, nil
}

// RefreshTTL returns the configured refresh token lifetime. Cookie max-age
// is derived from it so the cookie and the token expire together.
func (s *Service) RefreshTTL() time.Duration {
	return s.cfg.RefreshTokenTTL
}

// IssueAccess creates a signed access token for the given identity.
func (s *Service) IssueAccess(userID, email, role string) (string, error) {
	return s.issue(Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: TypeAccess,
	}, s.cfg.AccessTokenTTL)
}

// IssueRefresh creates a signed refresh token. Refresh tokens carry only
// the subject id; identity details are re-read from the store on refresh.
func (s *Service) IssueRefresh(userID string) (string, error) {
	return s.issue(Claims{
		UserID:    userID,
		TokenType: TypeRefresh,
	}, s.cfg.RefreshTokenTTL)
}

func (s *Service) issue(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    s.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify validates the signature and expiry of a token string and returns
// its claims. Failures are classified as ErrExpired, ErrInvalidSignature,
// or ErrMalformed. Callers must additionally check Claims.TokenType.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc, opts...)
	if err != nil {
		return nil, classify(err)
	}
	if !tok.Valid {
		return nil, fmt.Errorf("%w: claims rejected", ErrInvalidSignature)
	}
	return claims, nil
}

func (s *Service) keyFunc(tok *jwt.Token) (interface{}, error) {
	if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("unexpected signing method: %s", tok.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}

// classify maps golang-jwt parser errors onto the three failure kinds.
// Expiry is checked first: an expired-but-correctly-signed token must
// surface as expired so callers can trigger a refresh flow.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}

package authn_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/skillsenselab/authgate/authn"
	"github.com/skillsenselab/authgate/errors"
	"github.com/skillsenselab/authgate/logger"
	"github.com/skillsenselab/authgate/token"
	"github.com/skillsenselab/authgate/user"
)

const testSecret = "resolver-test-secret-resolver-test"

type fixture struct {
	resolver *authn.Resolver
	tokens   *token.Service
	users    *user.MemoryStore
	alice    *user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tokens, err := token.NewService(token.Config{Secret: testSecret})
	if err != nil {
		t.Fatalf("token.NewService: %v", err)
	}

	users := user.NewMemoryStore()
	alice := &user.User{Name: "Alice", Email: "alice@example.com", Role: user.RoleAdmin}
	if err := users.Create(context.Background(), alice); err != nil {
		t.Fatalf("Create: %v", err)
	}

	return &fixture{
		resolver: authn.NewResolver(tokens, users, logger.NewDefault("test")),
		tokens:   tokens,
		users:    users,
		alice:    alice,
	}
}

func reqWithBearer(tok string) *http.Request {
	req := httptest.NewRequest("GET", "/api/admin/products", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+tok)
	return req
}

func reqWithRefreshCookie(tok string) *http.Request {
	req := httptest.NewRequest("GET", "/api/auth/refresh", http.NoBody)
	req.AddCookie(&http.Cookie{Name: authn.RefreshCookieName, Value: tok})
	return req
}

func wantCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s", code, appErr.Code)
	}
}

func TestResolve_BearerAccessToken(t *testing.T) {
	f := newFixture(t)

	access, _ := f.tokens.IssueAccess(f.alice.ID, f.alice.Email, string(f.alice.Role))
	id, err := f.resolver.Resolve(reqWithBearer(access))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id.User.ID != f.alice.ID {
		t.Errorf("expected %s, got %s", f.alice.ID, id.User.ID)
	}
	if id.Claims.TokenType != token.TypeAccess {
		t.Errorf("expected access claims, got %s", id.Claims.TokenType)
	}
}

func TestResolve_FallsBackToRefreshCookie(t *testing.T) {
	f := newFixture(t)

	refresh, _ := f.tokens.IssueRefresh(f.alice.ID)
	id, err := f.resolver.Resolve(reqWithRefreshCookie(refresh))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id.Claims.TokenType != token.TypeRefresh {
		t.Errorf("expected refresh claims, got %s", id.Claims.TokenType)
	}
}

func TestResolve_NoToken(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest("GET", "/", http.NoBody)
	_, err := f.resolver.Resolve(req)
	wantCode(t, err, errors.ErrCodeUnauthorized)
}

func TestResolve_RefreshTokenInBearerSlot(t *testing.T) {
	f := newFixture(t)

	// A valid refresh token in the Authorization header must never be
	// accepted as an access token.
	refresh, _ := f.tokens.IssueRefresh(f.alice.ID)
	_, err := f.resolver.Resolve(reqWithBearer(refresh))
	wantCode(t, err, errors.ErrCodeWrongTokenType)
}

func TestResolve_AccessTokenInCookieSlot(t *testing.T) {
	f := newFixture(t)

	access, _ := f.tokens.IssueAccess(f.alice.ID, f.alice.Email, string(f.alice.Role))
	_, err := f.resolver.Resolve(reqWithRefreshCookie(access))
	wantCode(t, err, errors.ErrCodeWrongTokenType)
}

func TestResolve_ExpiredToken(t *testing.T) {
	f := newFixture(t)

	past := time.Now().Add(-time.Hour)
	claims := token.Claims{
		UserID:    f.alice.ID,
		TokenType: token.TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(15 * time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, rerr := f.resolver.Resolve(reqWithBearer(expired))
	wantCode(t, rerr, errors.ErrCodeTokenExpired)
}

func TestResolve_MalformedToken(t *testing.T) {
	f := newFixture(t)
	_, err := f.resolver.Resolve(reqWithBearer("not-a-token"))
	wantCode(t, err, errors.ErrCodeTokenMalformed)
}

func TestResolve_ForeignSignature(t *testing.T) {
	f := newFixture(t)

	other, _ := token.NewService(token.Config{Secret: "some-other-signing-secret-value"})
	forged, _ := other.IssueAccess(f.alice.ID, f.alice.Email, "admin")
	_, err := f.resolver.Resolve(reqWithBearer(forged))
	wantCode(t, err, errors.ErrCodeInvalidToken)
}

func TestResolve_DeletedUser(t *testing.T) {
	f := newFixture(t)

	access, _ := f.tokens.IssueAccess("ghost-id", "ghost@example.com", "standard")
	_, err := f.resolver.Resolve(reqWithBearer(access))
	wantCode(t, err, errors.ErrCodeUnauthorized)
}

func TestResolve_InvalidBearerFallsBackToCookie(t *testing.T) {
	f := newFixture(t)

	refresh, _ := f.tokens.IssueRefresh(f.alice.ID)
	req := reqWithRefreshCookie(refresh)
	req.Header.Set("Authorization", "Bearer not-a-token")

	id, err := f.resolver.Resolve(req)
	if err != nil {
		t.Fatalf("expected cookie fallback to win, got %v", err)
	}
	if id.User.ID != f.alice.ID {
		t.Errorf("unexpected identity %s", id.User.ID)
	}
}

func TestCheckToken_AcceptsEitherClass(t *testing.T) {
	f := newFixture(t)

	access, _ := f.tokens.IssueAccess(f.alice.ID, f.alice.Email, "admin")
	if err := f.resolver.CheckToken(reqWithBearer(access)); err != nil {
		t.Errorf("access token should pass the coarse check: %v", err)
	}

	refresh, _ := f.tokens.IssueRefresh(f.alice.ID)
	if err := f.resolver.CheckToken(reqWithRefreshCookie(refresh)); err != nil {
		t.Errorf("refresh token should pass the coarse check: %v", err)
	}
}

func TestCheckToken_NoToken(t *testing.T) {
	f := newFixture(t)
	err := f.resolver.CheckToken(httptest.NewRequest("GET", "/admin", http.NoBody))
	wantCode(t, err, errors.ErrCodeUnauthorized)
}

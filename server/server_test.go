package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authgate/authn"
	"github.com/skillsenselab/authgate/logger"
	"github.com/skillsenselab/authgate/password"
	"github.com/skillsenselab/authgate/ratelimit"
	"github.com/skillsenselab/authgate/server"
	"github.com/skillsenselab/authgate/server/endpoint"
	"github.com/skillsenselab/authgate/token"
	"github.com/skillsenselab/authgate/user"
)

const testSecret = "server-test-signing-secret"

// newTestServer wires a full server with its route table, returning the
// server and the token service for minting credentials.
func newTestServer(t *testing.T) (*server.Server, *token.Service, *user.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewDefault("server-test")

	tokens, err := token.NewService(token.Config{Secret: testSecret})
	if err != nil {
		t.Fatalf("token.NewService: %v", err)
	}

	users := user.NewMemoryStore()
	admin := &user.User{Name: "Root", Email: "root@example.com", PasswordHash: "x", Role: user.RoleAdmin}
	if err := users.Create(context.Background(), admin); err != nil {
		t.Fatalf("seeding admin: %v", err)
	}

	limiter := ratelimit.New(ratelimit.Config{})
	t.Cleanup(limiter.Stop)

	resolver := authn.NewResolver(tokens, users, log)
	auth := endpoint.NewAuth(endpoint.AuthDeps{
		Users:   users,
		Tokens:  tokens,
		Hasher:  password.NewBcryptHasher(),
		Policy:  password.DefaultPolicy(),
		Limiter: limiter,
		Log:     log,
	})

	cfg := server.Config{}
	cfg.ApplyDefaults()

	s := server.New(cfg, log)
	s.RegisterRoutes(server.Routes{
		ServiceName: "server-test",
		Resolver:    resolver,
		Auth:        auth,
	})
	return s, tokens, admin
}

func get(t *testing.T, s *server.Server, path, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rr := httptest.NewRecorder()
	s.GinEngine().ServeHTTP(rr, req)
	return rr
}

func TestServer_HealthEndpoint(t *testing.T) {
	s, _, _ := newTestServer(t)

	rr := get(t, s, "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
}

// Routes registered on the engine after RegisterRoutes still sit behind the
// globally applied edge policy.
func TestServer_LateAdminRouteIsGated(t *testing.T) {
	s, tokens, admin := newTestServer(t)

	s.GinEngine().GET("/api/admin/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})

	rr := get(t, s, "/api/admin/ping", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rr.Code)
	}

	access, err := tokens.IssueAccess(admin.ID, admin.Email, string(admin.Role))
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	rr = get(t, s, "/api/admin/ping", access)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with an admin token, got %d: %s", rr.Code, rr.Body.String())
	}
}

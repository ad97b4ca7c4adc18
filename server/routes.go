package server

import (
	"github.com/skillsenselab/authgate/authn"
	"github.com/skillsenselab/authgate/observability"
	"github.com/skillsenselab/authgate/server/endpoint"
	"github.com/skillsenselab/authgate/server/middleware"
)

// Routes bundles the collaborators needed to mount the HTTP surface.
type Routes struct {
	ServiceName string
	Resolver    *authn.Resolver
	Auth        *endpoint.Auth
	Metrics     *observability.AuthMetrics
}

// RegisterRoutes applies the middleware stack and mounts the route table.
// The edge policy runs globally so admin path prefixes are gated even for
// routes registered later by collaborating services (via GinEngine).
func (s *Server) RegisterRoutes(r Routes) {
	e := s.engine

	e.Use(middleware.Recovery())
	e.Use(middleware.RequestID())
	e.Use(middleware.Tracing())
	e.Use(middleware.CORS(s.config.CORS))
	e.Use(middleware.RequestLogger())
	e.Use(middleware.EdgePolicy(r.Resolver, s.config.Edge, r.Metrics))

	e.GET("/health", endpoint.Health(r.ServiceName))

	api := e.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/login", r.Auth.Login)
	auth.POST("/register", r.Auth.Register)
	auth.POST("/refresh", r.Auth.Refresh)

	api.GET("/me", middleware.RequireAuth(r.Resolver), endpoint.Me())
}

package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AuthMetrics holds metric instruments for authentication decision points.
// A nil *AuthMetrics is valid and records nothing, so callers can wire
// metrics only when an exporter is configured.
type AuthMetrics struct {
	loginTotal      metric.Int64Counter
	ratelimitBlocks metric.Int64Counter
	tokenFailures   metric.Int64Counter
	roleChecks      metric.Int64Counter
	registrations   metric.Int64Counter
	refreshTotal    metric.Int64Counter
}

// NewAuthMetrics creates authentication metric instruments on the given meter.
func NewAuthMetrics(meter metric.Meter) (*AuthMetrics, error) {
	loginTotal, err := meter.Int64Counter("auth.login.total",
		metric.WithDescription("Login attempts by result"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.login.total counter: %w", err)
	}

	ratelimitBlocks, err := meter.Int64Counter("auth.ratelimit.blocked.total",
		metric.WithDescription("Requests rejected by the login rate limiter"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.ratelimit.blocked.total counter: %w", err)
	}

	tokenFailures, err := meter.Int64Counter("auth.token.failure.total",
		metric.WithDescription("Token verification failures by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.token.failure.total counter: %w", err)
	}

	roleChecks, err := meter.Int64Counter("auth.role_check.total",
		metric.WithDescription("Role guard decisions by role and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.role_check.total counter: %w", err)
	}

	registrations, err := meter.Int64Counter("auth.register.total",
		metric.WithDescription("Registration attempts by result"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.register.total counter: %w", err)
	}

	refreshTotal, err := meter.Int64Counter("auth.refresh.total",
		metric.WithDescription("Token refresh attempts by result"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.refresh.total counter: %w", err)
	}

	return &AuthMetrics{
		loginTotal:      loginTotal,
		ratelimitBlocks: ratelimitBlocks,
		tokenFailures:   tokenFailures,
		roleChecks:      roleChecks,
		registrations:   registrations,
		refreshTotal:    refreshTotal,
	}, nil
}

// RecordLogin records a login attempt with its result
// (success, invalid_credentials, rate_limited).
func (m *AuthMetrics) RecordLogin(ctx context.Context, result string) {
	if m == nil {
		return
	}
	m.loginTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("result", result),
	))
}

// RecordRateLimitBlock records a request rejected by the rate limiter.
func (m *AuthMetrics) RecordRateLimitBlock(ctx context.Context) {
	if m == nil {
		return
	}
	m.ratelimitBlocks.Add(ctx, 1)
}

// RecordTokenFailure records a token verification failure
// (expired, invalid_signature, malformed, wrong_type).
func (m *AuthMetrics) RecordTokenFailure(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.tokenFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

// RecordRoleCheck records a role guard decision
// (allowed, forbidden, unauthenticated).
func (m *AuthMetrics) RecordRoleCheck(ctx context.Context, role, outcome string) {
	if m == nil {
		return
	}
	m.roleChecks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("role", role),
		attribute.String("outcome", outcome),
	))
}

// RecordRegister records a registration attempt with its result
// (success, invalid_input, email_taken).
func (m *AuthMetrics) RecordRegister(ctx context.Context, result string) {
	if m == nil {
		return
	}
	m.registrations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("result", result),
	))
}

// RecordRefresh records a token refresh attempt with its result
// (success, missing_cookie, expired, invalid, wrong_type, unknown_user).
func (m *AuthMetrics) RecordRefresh(ctx context.Context, result string) {
	if m == nil {
		return
	}
	m.refreshTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("result", result),
	))
}

// Package observability provides OpenTelemetry tracing and metrics
// integration for the authentication service.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.TracerConfig{ServiceName: "authgate"})
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.MeterConfig{ServiceName: "authgate"})
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewAuthMetrics(observability.Meter("authgate"))
//	metrics.RecordLogin(ctx, "success")
//
// All AuthMetrics methods are safe on a nil receiver, so handlers can
// take an optional *AuthMetrics and skip the nil checks.
package observability

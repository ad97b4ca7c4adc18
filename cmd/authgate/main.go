// Command authgate runs the authentication and access-control service.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsenselab/authgate/authn"
	"github.com/skillsenselab/authgate/config"
	"github.com/skillsenselab/authgate/logger"
	"github.com/skillsenselab/authgate/observability"
	"github.com/skillsenselab/authgate/password"
	"github.com/skillsenselab/authgate/ratelimit"
	"github.com/skillsenselab/authgate/server"
	"github.com/skillsenselab/authgate/server/endpoint"
	"github.com/skillsenselab/authgate/token"
	"github.com/skillsenselab/authgate/user"
	"github.com/skillsenselab/authgate/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewDefault("authgate").Fatal("failed to load configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()

	insecureSecret, err := cfg.ResolveSecret()
	if err != nil {
		log.Fatal("signing secret rejected", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if insecureSecret {
		log.Warn("no signing secret configured; using a generated development secret, all tokens are invalidated on restart")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log.Info("starting authgate", map[string]interface{}{
		"version":     version.GetVersionInfo().Version,
		"environment": cfg.Environment,
	})

	ctx := context.Background()

	var metrics *observability.AuthMetrics
	if cfg.Observability.Enabled {
		tp, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName:    cfg.Name,
			ServiceVersion: version.GetVersionInfo().Version,
			Environment:    cfg.Environment,
			Endpoint:       cfg.Observability.Endpoint,
			Insecure:       cfg.Observability.Insecure,
			SampleRate:     cfg.Observability.SampleRate,
		})
		if err != nil {
			log.Fatal("failed to initialize tracer", map[string]interface{}{
				"error": err.Error(),
			})
		}
		defer tp.Shutdown(ctx)

		mp, err := observability.InitMeter(ctx, observability.MeterConfig{
			ServiceName:    cfg.Name,
			ServiceVersion: version.GetVersionInfo().Version,
			Environment:    cfg.Environment,
			Endpoint:       cfg.Observability.Endpoint,
			Insecure:       cfg.Observability.Insecure,
			Interval:       cfg.Observability.Interval,
		})
		if err != nil {
			log.Fatal("failed to initialize meter", map[string]interface{}{
				"error": err.Error(),
			})
		}
		defer mp.Shutdown(ctx)

		metrics, err = observability.NewAuthMetrics(observability.Meter(cfg.Name))
		if err != nil {
			log.Fatal("failed to create metrics", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	tokens, err := token.NewService(cfg.Token)
	if err != nil {
		log.Fatal("failed to create token service", map[string]interface{}{
			"error": err.Error(),
		})
	}

	users := user.NewMemoryStore()
	limiter := ratelimit.New(cfg.RateLimit)
	defer limiter.Stop()

	resolver := authn.NewResolver(tokens, users, log)
	auth := endpoint.NewAuth(endpoint.AuthDeps{
		Users:      users,
		Tokens:     tokens,
		Hasher:     password.NewBcryptHasher(),
		Policy:     password.DefaultPolicy(),
		Limiter:    limiter,
		Metrics:    metrics,
		Log:        log,
		Production: cfg.IsProduction(),
	})

	srv := server.New(cfg.Server, log)
	srv.RegisterRoutes(server.Routes{
		ServiceName: cfg.Name,
		Resolver:    resolver,
		Auth:        auth,
		Metrics:     metrics,
	})

	if err := srv.Start(ctx); err != nil {
		log.Fatal("failed to start server", map[string]interface{}{
			"error": err.Error(),
		})
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("received shutdown signal", map[string]interface{}{
		"signal": sig.String(),
	})

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("shutdown error", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

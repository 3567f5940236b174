package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/flashcard-builder/internal/adapters/http"
	"github.com/jsamuelsen/flashcard-builder/internal/adapters/http/handlers"
	"github.com/jsamuelsen/flashcard-builder/internal/adapters/interchange"
	"github.com/jsamuelsen/flashcard-builder/internal/app"
	"github.com/jsamuelsen/flashcard-builder/internal/domain"
	"github.com/jsamuelsen/flashcard-builder/internal/platform/config"
	"github.com/jsamuelsen/flashcard-builder/internal/platform/telemetry"
	"github.com/jsamuelsen/flashcard-builder/internal/ports"
)

func newServeCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the study server",
		Long: `Run the HTTP study server. The session collection lives in memory.

When library.seed_file is set it is imported at startup, and with
library.export_on_shutdown the collection is written back to it on exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), e)
		},
	}

	return cmd
}

// service is a wired study server.
type service struct {
	cfg      *config.Config
	logger   *slog.Logger
	server   *http.Server
	session  *session
	seed     *interchange.SeedFile
	provider *telemetry.Provider
}

func runServe(ctx context.Context, e *env) error {
	svc, err := newService(ctx, e)
	if err != nil {
		return err
	}

	serverErr, err := svc.server.Start()
	if err != nil {
		return errors.Join(err, svc.close(context.Background()))
	}

	return svc.waitForShutdown(ctx, serverErr)
}

// newService wires the server: telemetry, study metrics, the session, the
// seed import, health checks and routes.
func newService(ctx context.Context, e *env) (*service, error) {
	cfg, logger := e.cfg, e.logger

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	provider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}

	svc := &service{cfg: cfg, logger: logger, provider: provider}

	metrics := telemetry.NewStudyMetrics()
	svc.session = newSession(e, metrics)

	registry := ports.NewHealthRegistry()
	if err := registry.Register(svc.session.store); err != nil {
		return nil, errors.Join(err, svc.close(ctx))
	}

	if cfg.Library.SeedFile != "" {
		svc.seed = interchange.NewSeedFile(cfg.Library.SeedFile)

		if err := svc.importSeed(ctx); err != nil {
			return nil, errors.Join(err, svc.close(ctx))
		}

		if err := registry.Register(svc.seed); err != nil {
			return nil, errors.Join(err, svc.close(ctx))
		}
	}

	quiz := app.NewQuizService(app.QuizServiceConfig{
		Navigator: svc.session.nav,
		Store:     svc.session.store,
		Shuffler:  domain.NewShuffler(cfg.Quiz.Seed),
		Recorder:  metrics,
		Logger:    logger,
	})
	builder := app.NewBuilderService(app.BuilderServiceConfig{
		Navigator: svc.session.nav,
		Store:     svc.session.store,
		Logger:    logger,
	})

	health := handlers.NewHealthHandler(registry, handlers.NewBuildInfo(Version, Commit, BuildTime)).
		WithMetrics(metrics.Handler())

	svc.server = http.New(&cfg.Server, logger)
	http.SetupRouter(svc.server.Engine(), http.RouterConfig{
		Logger:        logger,
		ServiceName:   cfg.Telemetry.ServiceName,
		HealthHandler: health,
		Library:       handlers.NewLibraryHandler(svc.session.library),
		Transfer:      handlers.NewTransferHandler(svc.session.transfer),
		View:          handlers.NewViewHandler(svc.session.nav, svc.session.library),
		Builder:       handlers.NewBuilderHandler(builder, svc.session.library),
		Quiz:          handlers.NewQuizHandler(quiz, svc.session.library),
		Timeout:       http.DefaultRequestTimeout,
	})

	return svc, nil
}

// Engine exposes the router for in-process tests.
func (s *service) Engine() *gin.Engine {
	return s.server.Engine()
}

func (s *service) importSeed(ctx context.Context) error {
	rc, err := s.seed.Open()
	if err != nil {
		if s.cfg.Library.ExportOnShutdown {
			s.logger.Warn("seed file missing, starting empty", slog.String("path", s.seed.Path()))
			return nil
		}

		return err
	}
	defer rc.Close()

	res, err := s.session.transfer.ImportCollection(ctx, rc)
	if err != nil {
		return fmt.Errorf("importing seed file: %w", err)
	}

	s.logger.Info("seed file imported",
		slog.String("path", s.seed.Path()),
		slog.Int("subjects", res.Stats.Subjects),
		slog.Int("topics", res.Stats.Topics),
		slog.Int("cards", res.Stats.Cards),
	)

	return nil
}

// waitForShutdown blocks until ctx is cancelled by a signal or the server
// fails, then shuts down within the configured timeout.
func (s *service) waitForShutdown(ctx context.Context, serverErr <-chan error) error {
	select {
	case err := <-serverErr:
		return errors.Join(fmt.Errorf("server error: %w", err), s.close(context.Background()))

	case <-ctx.Done():
		s.logger.Info("received shutdown signal")
	}

	timeout := s.cfg.Server.ShutdownTimeout

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	s.logger.Info("initiating graceful shutdown", slog.Duration("timeout", timeout))

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return errors.Join(fmt.Errorf("server shutdown: %w", err), s.close(shutdownCtx))
	}

	if err := s.close(shutdownCtx); err != nil {
		return err
	}

	s.logger.Info("shutdown complete")

	return nil
}

// close exports the collection when configured and flushes telemetry.
func (s *service) close(ctx context.Context) error {
	var errs []error

	if s.seed != nil && s.cfg.Library.ExportOnShutdown && s.session != nil {
		if err := s.exportSeed(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if s.provider != nil {
		if err := s.provider.Shutdown(context.WithoutCancel(ctx)); err != nil {
			s.logger.Error("telemetry shutdown error", slog.Any("error", err))
		}
	}

	return errors.Join(errs...)
}

func (s *service) exportSeed(ctx context.Context) error {
	artifact, err := s.session.transfer.ExportCollection(ctx)
	if err != nil {
		return fmt.Errorf("exporting collection: %w", err)
	}

	if err := s.seed.Write(artifact.Body); err != nil {
		return fmt.Errorf("writing seed file: %w", err)
	}

	s.logger.Info("collection exported", slog.String("path", s.seed.Path()))

	return nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mcdev12/kickoff/go/internal/admin"
	"github.com/mcdev12/kickoff/go/internal/leagues"
	"github.com/mcdev12/kickoff/go/internal/progress"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the admin server: health, metrics, live progress and onboarding triggers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), opts)
		},
	}
}

func serve(ctx context.Context, opts *rootOptions) error {
	cfg := opts.cfg

	services, err := setupServices(ctx, cfg, opts.dryRun)
	if err != nil {
		return err
	}
	defer closeServices(services)

	hub := progress.NewHub(progress.DefaultHubConfig())
	go hub.Start(ctx)

	source := func(ctx context.Context, discover bool) ([]leagues.LeagueDescriptor, error) {
		return services.LeaguesFor(ctx, discover, cfg.SeedFile, 0)
	}
	runner := admin.NewRunner(services.Bulk, services.Orchestrator, source, progress.Multi(services.Progress, hub.Sink()))

	if cfg.RefreshCron != "" {
		scheduler := admin.NewScheduler(runner, cfg.RefreshCron, cfg.RefreshDiscover)
		if err := scheduler.Start(ctx); err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	server := admin.NewServer(admin.ServerConfig{
		Port:           cfg.AdminPort,
		AllowedOrigins: cfg.AllowedOrigins,
		BaseContext:    ctx,
	}, runner, services.Health, hub)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("admin server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info().Msg("shutting down admin server")
	return server.Shutdown(shutdownCtx)
}

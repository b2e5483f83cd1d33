package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mcdev12/kickoff/go/internal/config"
	"github.com/mcdev12/kickoff/go/internal/leagues"
	"github.com/mcdev12/kickoff/go/internal/onboarding"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	dryRun   bool
	logLevel string
	cfg      *config.Config
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "kickoff",
		Short:         "Onboard football leagues, teams and venues from the upstream provider",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.cfg = cfg

			// JSON lines in production, console output everywhere else
			if cfg.IsProduction() {
				log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
			}

			level := cfg.Level()
			if opts.logLevel != "" {
				if level, err = zerolog.ParseLevel(opts.logLevel); err != nil {
					return fmt.Errorf("invalid --log-level: %w", err)
				}
			}
			zerolog.SetGlobalLevel(level)
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, "write to an in-memory store instead of Postgres")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override LOG_LEVEL")

	root.AddCommand(newOnboardCommand(opts), newBulkCommand(opts), newServeCommand(opts))
	return root
}

func newOnboardCommand(opts *rootOptions) *cobra.Command {
	var (
		seedFile string
		desc     leagues.LeagueDescriptor
		season   int
	)

	cmd := &cobra.Command{
		Use:   "onboard <league-external-id>",
		Short: "Onboard one league with its teams and venues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			desc.ExternalID = strings.TrimSpace(args[0])
			if season > 0 {
				desc.Season = &season
			}

			target, err := resolveLeague(desc, seedFile)
			if err != nil {
				return err
			}

			services, err := setupServices(ctx, opts.cfg, opts.dryRun)
			if err != nil {
				return err
			}
			defer closeServices(services)

			run, err := services.Bulk.Run(ctx, []leagues.LeagueDescriptor{target}, services.Progress)
			if err != nil {
				return err
			}
			return printSummary(run)
		},
	}

	cmd.Flags().StringVar(&seedFile, "seed-file", "", "seed list to look the league up in (default: embedded list)")
	cmd.Flags().StringVar(&desc.Name, "name", "", "league name, for leagues not in the seed list")
	cmd.Flags().StringVar(&desc.Country, "country", "", "league country, for leagues not in the seed list")
	cmd.Flags().IntVar(&season, "season", 0, "season start year (default: current season)")
	return cmd
}

// resolveLeague completes a descriptor from the seed list. Flags given on the
// command line win over the seed entry.
func resolveLeague(flags leagues.LeagueDescriptor, seedFile string) (leagues.LeagueDescriptor, error) {
	seed, err := config.LoadSeed(seedFile)
	if err != nil {
		return leagues.LeagueDescriptor{}, err
	}

	for _, l := range seed {
		if l.ExternalID != flags.ExternalID {
			continue
		}
		if flags.Name != "" {
			l.Name = flags.Name
		}
		if flags.Country != "" {
			l.Country = flags.Country
		}
		if flags.Season != nil {
			l.Season = flags.Season
		}
		return l, nil
	}

	if flags.Name == "" {
		return leagues.LeagueDescriptor{}, fmt.Errorf("league %s is not in the seed list; pass --name and --country", flags.ExternalID)
	}
	return flags, nil
}

func newBulkCommand(opts *rootOptions) *cobra.Command {
	var (
		discover bool
		seedFile string
		season   int
	)

	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Onboard every league of the seed list, or every usable league with --discover",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			services, err := setupServices(ctx, opts.cfg, opts.dryRun)
			if err != nil {
				return err
			}
			defer closeServices(services)

			if seedFile == "" {
				seedFile = opts.cfg.SeedFile
			}
			descs, err := services.LeaguesFor(ctx, discover, seedFile, season)
			if err != nil {
				return err
			}

			run, err := services.Bulk.Run(ctx, descs, services.Progress)
			if err != nil {
				return err
			}
			return printSummary(run)
		},
	}

	cmd.Flags().BoolVar(&discover, "discover", false, "onboard the provider's current leagues instead of the seed list")
	cmd.Flags().StringVar(&seedFile, "seed-file", "", "seed list (default: SEED_FILE or the embedded list)")
	cmd.Flags().IntVar(&season, "season", 0, "season to discover (default: current season)")
	return cmd
}

func printSummary(run *onboarding.RunReport) error {
	if err := onboarding.WriteSummary(os.Stdout, run); err != nil {
		return fmt.Errorf("failed to print summary: %w", err)
	}
	return nil
}

func closeServices(s *Services) {
	if err := s.Close(); err != nil {
		log.Warn().Err(err).Msg("shutdown")
	}
}

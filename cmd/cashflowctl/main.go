// Command cashflowctl runs operator tasks against the game store.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/ledger"
	portssvc "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/services"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/services"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/turn"
	"github.com/Garvkhullar/cashflow4.0-official/internal/platform/config"
	"github.com/Garvkhullar/cashflow4.0-official/internal/platform/store"
	"github.com/Garvkhullar/cashflow4.0-official/internal/seed"
	"github.com/Garvkhullar/cashflow4.0-official/internal/utils"
	"github.com/spf13/cobra"
)

const commandTimeout = 2 * time.Minute

// operator is the actor recorded on changes made from the CLI.
var operator = domain.Actor{ID: "cashflowctl", Role: domain.RoleAdmin}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	root := &cobra.Command{
		Use:          "cashflowctl",
		Short:        "Operator tools for the Cashflow game backend",
		SilenceUsage: true,
	}

	root.AddCommand(
		newMigrateCmd(logger),
		newSeedCmd(logger),
		newRecomputeExpensesCmd(logger),
		newMarketModeCmd(logger),
		newHashPasswordCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// withStore loads config, opens the store and hands both to fn.
func withStore(cmd *cobra.Command, logger *slog.Logger, opts store.Options, fn func(ctx context.Context, cfg *config.Config, st *store.Store) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	st, err := store.Open(ctx, logger, cfg, opts)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())
	return fn(ctx, cfg, st)
}

// newServices wires the same service graph the API server uses.
func newServices(cfg *config.Config, st *store.Store) (*portssvc.ServiceContainer, error) {
	rules, err := cfg.Rules()
	if err != nil {
		return nil, err
	}
	engine := ledger.NewEngine(rules)
	return services.NewServiceContainer(cfg, st.Repos, engine, turn.NewSequencer(engine, turn.NewRandomSource())), nil
}

func newMigrateCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply Postgres migrations or create Mongo indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, logger, store.Options{Migrate: true}, func(context.Context, *config.Config, *store.Store) error {
				fmt.Fprintln(cmd.OutOrStdout(), "store schema is up to date")
				return nil
			})
		},
	}
}

func newSeedCmd(logger *slog.Logger) *cobra.Command {
	var migrateFirst bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the bundled deal, chance and penalty catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := seed.Load()
			if err != nil {
				return err
			}
			return withStore(cmd, logger, store.Options{Migrate: migrateFirst}, func(ctx context.Context, _ *config.Config, st *store.Store) error {
				res, err := seed.Apply(ctx, catalog, st.Repos.DealRepo, st.Repos.CardRepo)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d deals, %d chances, %d penalties\n", res.Deals, res.Chances, res.Penalties)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", true, "apply migrations before seeding")
	return cmd
}

func newRecomputeExpensesCmd(logger *slog.Logger) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "recompute-expenses",
		Short: "Re-derive every team's expenses from its EMIs and personal loan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, logger, store.Options{}, func(ctx context.Context, cfg *config.Config, st *store.Store) error {
				svc, err := newServices(cfg, st)
				if err != nil {
					return err
				}
				fixes, err := svc.Maintenance.RecomputeExpenses(ctx, operator, dryRun)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, f := range fixes {
					fmt.Fprintf(out, "%s\t%s\t%s -> %s\n", f.TableID, f.TeamName, utils.FormatMoney(f.From), utils.FormatMoney(f.To))
				}
				verb := "corrected"
				if dryRun {
					verb = "would correct"
				}
				fmt.Fprintf(out, "%s %d team(s)\n", verb, len(fixes))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report drift without saving")
	return cmd
}

func newMarketModeCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:       "market-mode <bull|bear|normal|bull-stop|bear-stop>",
		Short:     "Switch the global market mode and rewrite every team",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bull", "bear", "normal", "bull-stop", "bear-stop"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, logger, store.Options{}, func(ctx context.Context, cfg *config.Config, st *store.Store) error {
				svc, err := newServices(cfg, st)
				if err != nil {
					return err
				}
				gc, err := svc.Market.SetMarketMode(ctx, operator, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "market mode is now %s\n", gc.MarketMode)
				return nil
			})
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := utils.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

// Command book runs bookings against a local session and prints the results.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	app "github.com/okian/ringside/internal/app"
	"github.com/okian/ringside/internal/config"
	"github.com/okian/ringside/internal/domain/model"
	"github.com/okian/ringside/pkg/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	_ = godotenv.Load()
	logger.SetOutput(os.Stderr)
	if err := logger.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logging:", err)
		os.Exit(1)
	}

	if err := Execute(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Execute runs the command tree with args, writing results to out.
func Execute(ctx context.Context, args []string, out io.Writer) error {
	root := newRootCommand(&cli{})
	root.SetArgs(args)
	root.SetOut(out)
	return root.ExecuteContext(ctx)
}

// cli carries flag values and the session shared by subcommands.
type cli struct {
	rosterPath  string
	catalogPath string
	seed        int64
	logLevel    string
	asJSON      bool

	session *app.Service
}

func newRootCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "book",
		Short:         "Simulate wrestling bookings from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.start(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.session != nil {
				c.session.Stop()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&c.rosterPath, "roster", "", "roster document (YAML or JSON)")
	flags.StringVar(&c.catalogPath, "catalog", "", "category document (YAML or JSON)")
	flags.Int64Var(&c.seed, "seed", 0, "seed for the first simulation")
	flags.StringVar(&c.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.BoolVar(&c.asJSON, "json", false, "print JSON instead of tables")

	cmd.AddCommand(newBookCommand(c), newRosterCommand(c), newCategoriesCommand(c))
	return cmd
}

// start layers flags over the RINGSIDE_ config and starts the session.
func (c *cli) start(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("roster") {
		cfg.RosterPath = c.rosterPath
	}
	if flags.Changed("catalog") {
		cfg.CatalogPath = c.catalogPath
	}
	if flags.Changed("seed") {
		cfg.Seed = c.seed
	}
	if err := logger.SetLevelString(c.logLevel); err != nil {
		return err
	}

	c.session = app.New(
		app.WithLogger(logger.Named("book")),
		app.WithRosterPath(cfg.RosterPath),
		app.WithCatalogPath(cfg.CatalogPath),
		app.WithInitialSeed(cfg.Seed),
		app.WithLedgerSize(cfg.LedgerSize),
	)
	return c.session.Start(ctx)
}

func newBookCommand(c *cli) *cobra.Command {
	var count int
	var preview bool

	cmd := &cobra.Command{
		Use:   "match A B CATEGORY",
		Short: "Book A against B and apply the result (repeat with --count for rematches)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", count)
			}
			ctx := cmd.Context()
			results := make([]model.MatchResult, 0, count)
			for i := 0; i < count; i++ {
				var res model.MatchResult
				var err error
				switch {
				case preview:
					res, err = c.session.Preview(ctx, args[0], args[1], args[2])
				case i == 0:
					res, err = c.session.Book(ctx, args[0], args[1], args[2])
				default:
					res, err = c.session.Rematch(ctx)
				}
				if err != nil {
					return err
				}
				results = append(results, res)
			}
			if c.asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			return printResults(cmd.OutOrStdout(), results, c.session.Roster())
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of matches to run")
	cmd.Flags().BoolVar(&preview, "preview", false, "simulate without applying")
	return cmd
}

func newRosterCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "roster",
		Short: "List competitors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := c.session.Roster()
			if c.asJSON {
				return writeJSON(cmd.OutOrStdout(), list)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tALIGNMENT\tPOP\tSTA\tPROFICIENCIES")
			for _, comp := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
					comp.ID, comp.Name, comp.Alignment, comp.Popularity, comp.Stamina,
					strings.Join(comp.ProficiencyList(), ","))
			}
			return tw.Flush()
		},
	}
}

func newCategoriesCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List match categories and their tuning",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := c.session.Categories()
			if c.asJSON {
				return writeJSON(cmd.OutOrStdout(), list)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tBONUS\tVARIANCE\tCOST W/L\tPOP W/L")
			for _, cat := range list {
				t := cat.Tuning
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d/%d\t%+d/%+d\n",
					cat.ID, cat.Name, t.RatingBonus, t.RatingVariance,
					t.StaminaCostWinner, t.StaminaCostLoser,
					t.PopularityDeltaWinner, t.PopularityDeltaLoser)
			}
			return tw.Flush()
		},
	}
}

func printResults(w io.Writer, results []model.MatchResult, roster []model.Competitor) error {
	names := make(map[string]string, len(roster))
	for _, comp := range roster {
		names[comp.ID] = comp.Name
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEED\tCATEGORY\tWINNER\tLOSER\tRATING\tWINNER Δ\tLOSER Δ")
	for _, r := range results {
		wd, ld := r.Deltas[r.WinnerID], r.Deltas[r.LoserID]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%+d/%+d\t%+d/%+d\n",
			r.Seed, r.Category.Name, names[r.WinnerID], names[r.LoserID], r.Rating,
			wd.Popularity, wd.Stamina, ld.Popularity, ld.Stamina)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

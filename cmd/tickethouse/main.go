package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bwmarrin/snowflake"
	"github.com/opsfoundry/tickethouse/internal/bridge"
	"github.com/opsfoundry/tickethouse/internal/config"
	"github.com/opsfoundry/tickethouse/internal/datedim"
	"github.com/opsfoundry/tickethouse/internal/dimension"
	"github.com/opsfoundry/tickethouse/internal/fact"
	"github.com/opsfoundry/tickethouse/internal/ingest"
	ingestdomain "github.com/opsfoundry/tickethouse/internal/ingest/domain"
	"github.com/opsfoundry/tickethouse/internal/migration"
	"github.com/opsfoundry/tickethouse/pkg/db"
	"github.com/opsfoundry/tickethouse/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func main() {
	root := &cobra.Command{
		Use:          "tickethouse",
		Short:        "Loads IT support ticket exports into a star-schema warehouse",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newStatsCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var opts ingestdomain.RunOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Ingest the available export files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), migration.Module, func(ctx context.Context, svc ingestdomain.Service) error {
				report, err := svc.Run(ctx, opts)
				if err != nil {
					return err
				}
				printReport(report)

				stats, err := svc.Stats(ctx)
				if err != nil {
					return err
				}
				printStats(stats)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.InteractionsPath, "interactions", "", "path to the interactions CSV export")
	cmd.Flags().StringVar(&opts.LinksPath, "ims-inc", "", "path to the IMS-INC links CSV export")
	cmd.Flags().StringVar(&opts.SysIDPath, "sysid", "", "path to the sys_id JSON export")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show warehouse row counts without mutating data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), fx.Options(), func(ctx context.Context, svc ingestdomain.Service) error {
				stats, err := svc.Stats(ctx)
				if err != nil {
					return err
				}
				printStats(stats)
				return nil
			})
		},
	}
}

// withService boots the application graph, hands the pipeline service
// to fn and tears the graph down afterwards. Migrations only belong in
// the extra options of commands that mutate the store; stats stays
// read-only and tolerates missing tables instead.
func withService(ctx context.Context, extra fx.Option, fn func(context.Context, ingestdomain.Service) error) error {
	var svc ingestdomain.Service
	app := fx.New(
		config.Module,
		log.Module,
		db.Module,
		extra,
		fx.Provide(newSnowflakeNode),

		dimension.Module,
		datedim.Module,
		fact.Module,
		bridge.Module,
		ingest.Module,

		fx.NopLogger,
		fx.Populate(&svc),
	)

	if err := app.Start(ctx); err != nil {
		return err
	}
	defer app.Stop(ctx)
	return fn(ctx, svc)
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func printReport(report *ingestdomain.Report) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Run\t%s\n", report.RunID)
	fmt.Fprintf(w, "Duration\t%s\n", report.Duration)
	fmt.Fprintf(w, "Users created\t%d\n", report.UsersCreated)
	fmt.Fprintf(w, "Technicians created\t%d\n", report.TechniciansCreated)
	fmt.Fprintf(w, "Locations created\t%d\n", report.LocationsCreated)
	fmt.Fprintf(w, "States created\t%d\n", report.StatesCreated)
	fmt.Fprintf(w, "Dates created\t%d\n", report.DatesCreated)
	fmt.Fprintf(w, "Interactions\t%d created, %d updated\n", report.InteractionsCreated, report.InteractionsUpdated)
	fmt.Fprintf(w, "Links\t%d created, %d updated\n", report.LinksCreated, report.LinksUpdated)
	fmt.Fprintf(w, "Skipped\t%d interactions, %d links, %d sysids\n",
		report.SkippedInteractions, report.SkippedLinks, report.SkippedSysIDs)
	w.Flush()
}

func printStats(stats *ingestdomain.Stats) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Table\tRows")
	fmt.Fprintf(w, "Users\t%d\n", stats.Users)
	fmt.Fprintf(w, "Technicians\t%d\n", stats.Technicians)
	fmt.Fprintf(w, "Locations\t%d\n", stats.Locations)
	fmt.Fprintf(w, "States\t%d\n", stats.States)
	fmt.Fprintf(w, "Dates\t%d\n", stats.Dates)
	fmt.Fprintf(w, "Interactions\t%d\n", stats.Interactions)
	fmt.Fprintf(w, "IMS-INC Links\t%d\n", stats.Links)
	w.Flush()
}

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/loadout-efficiency/internal/clients/catalogfile"
	"github.com/KirkDiggler/loadout-efficiency/internal/orchestrators/analysis"
	"github.com/KirkDiggler/loadout-efficiency/internal/pkg/clock"
	"github.com/KirkDiggler/loadout-efficiency/internal/pkg/idgen"
	"github.com/KirkDiggler/loadout-efficiency/internal/repositories/report"
)

var (
	rankBestOnly bool
	rankLoadouts []string
	rankTargets  []string
	rankExport   string
	rankName     string
)

var rankCmd = &cobra.Command{
	Use:   "rank <catalog.yaml>",
	Short: "Rank the loadouts of a catalog file by efficiency",
	Long: `Rank every loadout of a catalog file against its targets, most damage
per point first. Without --target the catalog targets are used. No Redis is
needed; --export also stores the ranking in a SQLite report database.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalogfile.Load(args[0])
		if err != nil {
			return err
		}

		rankings, err := analysis.RankCatalog(cat, &analysis.RankLoadoutsInput{
			LoadoutIDs: rankLoadouts,
			TargetIDs:  rankTargets,
			BestOnly:   rankBestOnly,
		})
		if err != nil {
			return err
		}

		if err := printRankings(cmd.OutOrStdout(), rankings); err != nil {
			return err
		}

		if rankExport == "" {
			return nil
		}
		db, err := report.Open(cmd.Context(), rankExport)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		repo, err := report.NewSQLite(&report.SQLiteConfig{
			DB:          db,
			Clock:       clock.New(),
			IDGenerator: idgen.NewUUID("report"),
		})
		if err != nil {
			return err
		}
		created, err := repo.Create(cmd.Context(), report.CreateInput{
			Name: override(rankName, args[0]),
			Rows: analysis.Rows(rankings),
		})
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.ErrOrStderr(), "report %s written to %s\n", created.Report.ID, rankExport)
		return err
	},
}

func init() {
	rankCmd.Flags().BoolVar(&rankBestOnly, "best-only", false, "print only the most efficient loadout per target")
	rankCmd.Flags().StringSliceVar(&rankLoadouts, "loadout", nil, "loadout label to rank (repeatable, default all)")
	rankCmd.Flags().StringSliceVar(&rankTargets, "target", nil, "target or model name to rank against (repeatable)")
	rankCmd.Flags().StringVar(&rankExport, "export", "", "SQLite file to store the ranking in")
	rankCmd.Flags().StringVar(&rankName, "name", "", "report name (default the catalog path)")
}

func printRankings(w io.Writer, rankings []*analysis.TargetRanking) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "TARGET\tLOADOUT\tPOINTS\tDAMAGE\tDAMAGE/POINT"); err != nil {
		return err
	}
	for _, ranking := range rankings {
		for _, row := range ranking.Rows {
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.4f\n",
				row.Target, row.Loadout, row.Points.FloatString(1), row.Output.FloatString(3), row.EfficiencyFloat()); err != nil {
				return err
			}
		}
	}
	return tw.Flush()
}

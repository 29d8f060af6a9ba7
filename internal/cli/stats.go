package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/kaenlabs/parallel-self-simulator/internal/store"
)

func init() {
	stats := &cobra.Command{
		Use:   "stats [PROFILE_ID]",
		Short: "Show a character's dashboard, or database totals without a profile",
		Args:  cobra.MaximumNArgs(1),
		Run:   runStats,
	}
	addOwnerFlag(stats)
	stats.Flags().Bool("rebuild", false, "Recompute the character's stats from its history first")

	trends := &cobra.Command{
		Use:   "trends [PROFILE_ID]",
		Short: "Analyse a character's latest days",
		Args:  cobra.MaximumNArgs(1),
		Run:   runTrends,
	}
	addOwnerFlag(trends)
	trends.Flags().Int("days", store.DefaultTrendDays, "Window size in days")

	RootCmd.AddCommand(stats, trends)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	owner, _ := cmd.Flags().GetString("owner")
	if owner == "" && len(args) == 0 {
		sum, err := s.Summary(cmd.Context(), getDBPath())
		if err != nil {
			exitErr("stats", err)
		}
		output(cmd, sum, func(w io.Writer) { renderSummary(w, sum) })
		return
	}

	p, err := resolveProfile(cmd.Context(), cmd, s, args)
	if err != nil {
		exitErr("stats", err)
	}
	if rebuild, _ := cmd.Flags().GetBool("rebuild"); rebuild {
		if _, err := s.RebuildStats(cmd.Context(), p.ID); err != nil {
			exitErr("rebuild stats", err)
		}
	}
	d, err := s.Dashboard(cmd.Context(), p.ID)
	if err != nil {
		exitErr("stats", err)
	}
	output(cmd, d, func(w io.Writer) { renderDashboard(w, d) })
}

func runTrends(cmd *cobra.Command, args []string) {
	days, _ := cmd.Flags().GetInt("days")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p, err := resolveProfile(cmd.Context(), cmd, s, args)
	if err != nil {
		exitErr("trends", err)
	}
	tr, err := s.Trends(cmd.Context(), p.ID, days)
	if err != nil {
		exitErr("trends", err)
	}
	output(cmd, tr, func(w io.Writer) { renderTrend(w, tr) })
}

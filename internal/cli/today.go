package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/kaenlabs/parallel-self-simulator/internal/model"
)

type todayResult struct {
	Event           *model.Event `json:"event"`
	CumulativeScore int          `json:"cumulative_score"`
	CurrentDay      int          `json:"current_day"`
}

func init() {
	today := &cobra.Command{
		Use:   "today [PROFILE_ID]",
		Short: "Live the character's next day",
		Long:  "Generates the character's next day, or returns it if it already exists.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runToday,
	}
	addOwnerFlag(today)

	generate := &cobra.Command{
		Use:   "generate [PROFILE_ID]",
		Short: "Generate a specific day",
		Args:  cobra.MaximumNArgs(1),
		Run:   runGenerate,
	}
	addOwnerFlag(generate)
	generate.Flags().Int("day", 0, "Day number (default: the next day)")

	event := &cobra.Command{
		Use:   "event EVENT_ID",
		Short: "Show an event and mark it viewed",
		Args:  cobra.ExactArgs(1),
		Run:   runEvent,
	}

	RootCmd.AddCommand(today, generate, event)
}

func runToday(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p, err := resolveProfile(cmd.Context(), cmd, s, args)
	if err != nil {
		exitErr("today", err)
	}
	ev, err := newGenerator(s).Today(cmd.Context(), p.ID)
	if err != nil {
		exitErr("today", err)
	}
	p, err = s.GetProfile(cmd.Context(), p.ID)
	if err != nil {
		exitErr("today", err)
	}

	res := todayResult{Event: ev, CumulativeScore: p.CumulativeScore, CurrentDay: p.CurrentDay}
	output(cmd, res, func(w io.Writer) {
		renderEvent(w, ev)
		renderScore(w, p)
	})
}

func runGenerate(cmd *cobra.Command, args []string) {
	day, _ := cmd.Flags().GetInt("day")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p, err := resolveProfile(cmd.Context(), cmd, s, args)
	if err != nil {
		exitErr("generate", err)
	}
	ev, err := newGenerator(s).Generate(cmd.Context(), p.ID, day)
	if err != nil {
		exitErr("generate", err)
	}
	output(cmd, ev, func(w io.Writer) { renderEvent(w, ev) })
}

func runEvent(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ev, err := s.MarkViewed(cmd.Context(), args[0])
	if err != nil {
		exitErr("event", err)
	}
	output(cmd, ev, func(w io.Writer) { renderEvent(w, ev) })
}

package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/kaenlabs/parallel-self-simulator/internal/store"
)

func init() {
	history := &cobra.Command{
		Use:   "history [PROFILE_ID]",
		Short: "Page through a character's past days, newest first",
		Args:  cobra.MaximumNArgs(1),
		Run:   runHistory,
	}
	addOwnerFlag(history)
	history.Flags().IntP("page", "p", 1, "Page number")
	history.Flags().IntP("limit", "l", 20, "Events per page")

	search := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search event titles and descriptions",
		Args:  cobra.ExactArgs(1),
		Run:   runSearch,
	}
	search.Flags().String("profile", "", "Restrict to one profile ID")
	search.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(history, search)
}

func runHistory(cmd *cobra.Command, args []string) {
	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p, err := resolveProfile(cmd.Context(), cmd, s, args)
	if err != nil {
		exitErr("history", err)
	}
	res, err := s.ListEvents(cmd.Context(), store.ListEventsParams{ProfileID: p.ID, Page: page, Limit: limit})
	if err != nil {
		exitErr("history", err)
	}
	output(cmd, res, func(w io.Writer) { renderPage(w, res) })
}

func runSearch(cmd *cobra.Command, args []string) {
	profileID, _ := cmd.Flags().GetString("profile")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	events, err := s.SearchEvents(cmd.Context(), store.SearchParams{
		ProfileID: profileID,
		Query:     args[0],
		Limit:     limit,
	})
	if err != nil {
		exitErr("search", err)
	}
	output(cmd, events, func(w io.Writer) {
		for i := range events {
			renderEventLine(w, &events[i])
		}
	})
}

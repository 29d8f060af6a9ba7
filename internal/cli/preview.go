package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kaenlabs/parallel-self-simulator/internal/catalog"
	"github.com/kaenlabs/parallel-self-simulator/internal/model"
	"github.com/kaenlabs/parallel-self-simulator/internal/seed"
)

type seedResult struct {
	Seed  string        `json:"seed"`
	Input model.Profile `json:"input"`
}

type previewResult struct {
	Seed       string        `json:"seed"`
	Events     []model.Event `json:"events"`
	FinalScore int           `json:"final_score"`
}

type templatesResult struct {
	Version   string                  `json:"version"`
	Total     int                     `json:"total"`
	ByType    map[model.EventType]int `json:"by_type"`
	Templates []catalog.Template      `json:"templates"`
}

func init() {
	preview := &cobra.Command{
		Use:   "preview",
		Short: "Preview the first days of a character without saving anything",
		Run:   runPreview,
	}
	addTraitFlags(preview)
	preview.Flags().Int("days", 7, "Number of days to simulate")

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Print the seed derived from a set of traits",
		Run:   runSeed,
	}
	addTraitFlags(seedCmd)

	templates := &cobra.Command{
		Use:   "templates",
		Short: "List the event templates",
		Run:   runTemplates,
	}
	templates.Flags().StringP("type", "t", "", "Filter by event type")

	RootCmd.AddCommand(preview, seedCmd, templates)
}

func traitsFromFlags(cmd *cobra.Command) model.Profile {
	name, _ := cmd.Flags().GetString("name")
	trait, _ := cmd.Flags().GetString("trait")
	weakness, _ := cmd.Flags().GetString("weakness")
	talent, _ := cmd.Flags().GetString("talent")
	goal, _ := cmd.Flags().GetString("goal")
	return model.Profile{
		CharacterName: name,
		MainTrait:     trait,
		Weakness:      weakness,
		Talent:        talent,
		DailyGoal:     goal,
	}
}

func runPreview(cmd *cobra.Command, args []string) {
	days, _ := cmd.Flags().GetInt("days")
	p := traitsFromFlags(cmd)
	p.ID = "preview"
	p.Seed = seed.Derive(p.MainTrait, p.Weakness, p.Talent, p.DailyGoal, p.CharacterName)

	events, err := newGenerator(nil).Preview(p, days)
	if err != nil {
		exitErr("preview", err)
	}
	res := previewResult{Seed: p.Seed, Events: events}
	for _, ev := range events {
		res.FinalScore += ev.ImpactScore
	}
	output(cmd, res, func(w io.Writer) {
		for i := range events {
			renderEventLine(w, &events[i])
		}
		fmt.Fprintf(w, "\nfinal score: %s\n", signed(res.FinalScore))
	})
}

func runSeed(cmd *cobra.Command, args []string) {
	p := traitsFromFlags(cmd)
	p.Seed = seed.Derive(p.MainTrait, p.Weakness, p.Talent, p.DailyGoal, p.CharacterName)
	output(cmd, seedResult{Seed: p.Seed, Input: p}, func(w io.Writer) { fmt.Fprintln(w, p.Seed) })
}

func runTemplates(cmd *cobra.Command, args []string) {
	typ, _ := cmd.Flags().GetString("type")

	c := catalog.Default()
	res := templatesResult{Version: c.Version, Total: c.Len(), ByType: c.CountByType()}
	for _, t := range c.Templates() {
		if typ == "" || strings.EqualFold(string(t.Type), typ) {
			res.Templates = append(res.Templates, t)
		}
	}
	output(cmd, res, func(w io.Writer) { renderTemplates(w, res.Templates) })
}

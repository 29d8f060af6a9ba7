package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/kaenlabs/parallel-self-simulator/internal/catalog"
	"github.com/kaenlabs/parallel-self-simulator/internal/model"
	"github.com/kaenlabs/parallel-self-simulator/internal/scheduler"
	"github.com/kaenlabs/parallel-self-simulator/internal/stats"
	"github.com/kaenlabs/parallel-self-simulator/internal/store"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	gray  = color.New(color.FgHiBlack).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func signed(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

func colorImpact(n int) string {
	s := signed(n)
	switch {
	case n > 0:
		return green(s)
	case n < 0:
		return red(s)
	default:
		return s
	}
}

func colorCategory(c model.Category) string {
	switch c {
	case model.CategoryPositive:
		return green(string(c))
	case model.CategoryNegative:
		return red(string(c))
	default:
		return gray(string(c))
	}
}

func ago(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

func renderProfile(w io.Writer, p *model.Profile) {
	fmt.Fprintf(w, "%s  %s\n", bold(p.CharacterName), gray(p.ID))
	fmt.Fprintf(w, "  trait     %s\n", p.MainTrait)
	fmt.Fprintf(w, "  weakness  %s\n", p.Weakness)
	fmt.Fprintf(w, "  talent    %s\n", p.Talent)
	fmt.Fprintf(w, "  goal      %s\n", p.DailyGoal)
	fmt.Fprintf(w, "  status    %s\n", p.Status)
	renderScore(w, p)
	fmt.Fprintf(w, "  seed      %s\n", gray(p.Seed))
	fmt.Fprintf(w, "  created   %s\n", ago(p.CreatedAt))
}

func renderProfileLine(w io.Writer, p *model.Profile) {
	fmt.Fprintf(w, "%s  %-20s %-9s day %-4d score %s\n",
		gray(p.ID), p.CharacterName, p.Status, p.CurrentDay, colorImpact(p.CumulativeScore))
}

func renderScore(w io.Writer, p *model.Profile) {
	fmt.Fprintf(w, "  day %s, cumulative score %s\n",
		humanize.Comma(int64(p.CurrentDay)), colorImpact(p.CumulativeScore))
}

func renderEvent(w io.Writer, ev *model.Event) {
	fmt.Fprintf(w, "%s %s  %s\n", cyan(fmt.Sprintf("Day %d", ev.DayNumber)), bold(ev.Title), gray(ev.ID))
	fmt.Fprintf(w, "  %s\n", ev.Description)
	fmt.Fprintf(w, "  %s · intensity %d/10 · impact %s · %s\n",
		ev.EventType, ev.Intensity, colorImpact(ev.ImpactScore), colorCategory(ev.Category))
	if len(ev.Details.Tags) > 0 {
		fmt.Fprintf(w, "  %s\n", gray("#"+strings.Join(ev.Details.Tags, " #")))
	}
}

func renderEventLine(w io.Writer, ev *model.Event) {
	fmt.Fprintf(w, "%s  %-9s %3s  %s\n",
		cyan(fmt.Sprintf("day %4d", ev.DayNumber)), ev.EventType, colorImpact(ev.ImpactScore), ev.Title)
}

func renderPage(w io.Writer, page *store.EventPage) {
	for i := range page.Events {
		renderEventLine(w, &page.Events[i])
	}
	fmt.Fprintln(w, gray(fmt.Sprintf("page %d of %d, %s events", page.Page, page.Pages, humanize.Comma(int64(page.Total)))))
}

func renderSummary(w io.Writer, s *store.Summary) {
	fmt.Fprintf(w, "%s  %s\n", bold(s.DBPath), humanize.Bytes(uint64(s.DBSizeBytes)))
	fmt.Fprintf(w, "  profiles  %s\n", humanize.Comma(int64(s.TotalProfiles)))
	fmt.Fprintf(w, "  events    %s (%s unviewed)\n", humanize.Comma(int64(s.TotalEvents)), humanize.Comma(int64(s.UnviewedCount)))
	for _, st := range s.Statuses {
		fmt.Fprintf(w, "  %-9s %d\n", st.Status, st.Count)
	}
}

func renderDashboard(w io.Writer, d *stats.Dashboard) {
	fmt.Fprintf(w, "%s  day %d  score %s  %s\n",
		bold(d.Profile.CharacterName), d.Profile.CurrentDay, colorImpact(d.Profile.CumulativeScore), d.Profile.Status)
	fmt.Fprintf(w, "  average impact %.1f · streak %d (best %d)\n",
		d.Stats.AverageImpact, d.Stats.CurrentStreak, d.Stats.LongestStreak)

	impacts := make([]string, len(d.Recent.Impacts))
	for i, v := range d.Recent.Impacts {
		impacts[i] = colorImpact(v)
	}
	fmt.Fprintf(w, "  recent  %s  (%s)\n", strings.Join(impacts, " "), d.Recent.Direction)

	for _, share := range d.Distribution {
		fmt.Fprintf(w, "  %-9s %3d  %3d%%\n", share.Type, share.Count, share.Percentage)
	}
}

func renderTrend(w io.Writer, t *stats.Trend) {
	fmt.Fprintf(w, "last %d days\n", t.Days)
	fmt.Fprintf(w, "  average impact %.1f\n", t.AverageImpact)
	fmt.Fprintf(w, "  positive days  %d%%\n", t.PositiveRatio)
	fmt.Fprintf(w, "  volatility     %.1f\n", t.Volatility)
	if t.MostCommonType != nil {
		fmt.Fprintf(w, "  most common    %s\n", *t.MostCommonType)
	}
}

func renderTemplates(w io.Writer, templates []catalog.Template) {
	for _, t := range templates {
		fmt.Fprintf(w, "%-9s [%2d-%2d] %s  %s  %s\n",
			t.Type, t.IntensityMin, t.IntensityMax, colorImpact(t.BaseImpact), bold(t.Title), gray(t.ID))
	}
}

func renderRunResult(w io.Writer, r *scheduler.Result) {
	fmt.Fprintf(w, "%d profiles: %s succeeded, %s failed in %s\n",
		r.Total, green(r.Succeeded), red(r.Failed), r.Duration.Round(time.Millisecond))
	for _, f := range r.Failures {
		fmt.Fprintf(w, "  %s  %s\n", gray(f.ProfileID), f.Error)
	}
}

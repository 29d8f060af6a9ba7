package store

import (
	"context"
	"strings"

	"github.com/kaenlabs/parallel-self-simulator/internal/model"
	"github.com/kaenlabs/parallel-self-simulator/internal/seed"
)

// SearchEvents finds events whose title or description contains the query
// substring, newest day first. Matching ignores case for all of Unicode, not
// only ASCII. An empty ProfileID searches every profile.
func (s *SQLiteStore) SearchEvents(ctx context.Context, p SearchParams) ([]model.Event, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	query := "%" + escapeLike(seed.Normalize(p.Query)) + "%"

	where := []string{`search_text LIKE ? ESCAPE '\'`}
	args := []interface{}{query}
	if p.ProfileID != "" {
		where = append(where, "profile_id = ?")
		args = append(args, p.ProfileID)
	}
	args = append(args, limit)

	var rows []eventRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+eventColumns+` FROM events
		 WHERE `+strings.Join(where, " AND ")+`
		 ORDER BY day_number DESC, generated_at DESC
		 LIMIT ?`, args...)
	if err != nil {
		return nil, err
	}
	return eventsFromRows(rows)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// searchText is the case-folded text SearchEvents matches against. Folding
// uses the same language-neutral mapping as seeds.
func searchText(ev model.Event) string {
	return seed.Normalize(ev.Title + "\n" + ev.Description)
}

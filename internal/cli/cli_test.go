package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaenlabs/parallel-self-simulator/internal/model"
	"github.com/kaenlabs/parallel-self-simulator/internal/store"
)

func execute(t *testing.T, db string, args ...string) []byte {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(append([]string{"--db", db, "--format", "json"}, args...))
	require.NoError(t, RootCmd.Execute())
	return out.Bytes()
}

func TestProfileTodayHistory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	var p model.Profile
	require.NoError(t, json.Unmarshal(execute(t, db, "profile", "create",
		"--owner", "u1", "--name", "Ayşe", "--trait", "cesur", "--weakness", "sabırsız",
		"--talent", "liderlik", "--goal", "maraton koşmak"), &p))
	assert.Equal(t, "u1", p.OwnerID)
	assert.Len(t, p.Seed, 64)

	var today todayResult
	require.NoError(t, json.Unmarshal(execute(t, db, "today", p.ID), &today))
	require.NotNil(t, today.Event)
	assert.Equal(t, 1, today.Event.DayNumber)
	assert.Equal(t, 1, today.CurrentDay)
	assert.Equal(t, today.Event.ImpactScore, today.CumulativeScore)

	var again todayResult
	require.NoError(t, json.Unmarshal(execute(t, db, "today", p.ID), &again))
	assert.Equal(t, 2, again.Event.DayNumber)

	var page store.EventPage
	require.NoError(t, json.Unmarshal(execute(t, db, "history", p.ID), &page))
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Events, 2)
	assert.Equal(t, 2, page.Events[0].DayNumber)

	var viewed model.Event
	require.NoError(t, json.Unmarshal(execute(t, db, "event", today.Event.ID), &viewed))
	assert.NotNil(t, viewed.ViewedAt)
}

func TestPreviewIsDeterministic(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	args := []string{"preview", "--name", "Deniz", "--trait", "yaratıcı", "--weakness", "dağınık",
		"--talent", "sanat", "--goal", "resim", "--days", "5"}

	var a, b previewResult
	require.NoError(t, json.Unmarshal(execute(t, db, args...), &a))
	require.NoError(t, json.Unmarshal(execute(t, db, args...), &b))
	require.Len(t, a.Events, 5)
	assert.Equal(t, a.Seed, b.Seed)
	for i := range a.Events {
		assert.Equal(t, a.Events[i].ImpactScore, b.Events[i].ImpactScore)
		assert.Equal(t, a.Events[i].Title, b.Events[i].Title)
	}
}

func TestSeedMatchesProfile(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	traits := []string{"--name", "  Can ", "--trait", "Analitik", "--weakness", "tembel",
		"--talent", "teknoloji", "--goal", "kod yazmak"}

	var s seedResult
	require.NoError(t, json.Unmarshal(execute(t, db, append([]string{"seed"}, traits...)...), &s))

	var p model.Profile
	require.NoError(t, json.Unmarshal(execute(t, db, append([]string{"profile", "create", "--owner", "u2"}, traits...)...), &p))
	assert.Equal(t, p.Seed, s.Seed)
}

func TestTemplatesFilter(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	var res templatesResult
	require.NoError(t, json.Unmarshal(execute(t, db, "templates", "--type", "idea"), &res))
	require.NotEmpty(t, res.Templates)
	for _, tpl := range res.Templates {
		assert.Equal(t, model.EventIdea, tpl.Type)
	}
	assert.Equal(t, len(res.Templates), res.ByType[model.EventIdea])
	assert.True(t, strings.TrimSpace(res.Version) != "")
}

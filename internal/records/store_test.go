package records

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rogue-resident/rogue-docs/internal/model"
)

const cardsJSON = `{
	"zeta-cards": {
		"system_info": {"name": "Zeta Cards", "description": "Late cards", "domain": "QA"},
		"cards": {
			"z2": {"name": "Second", "domain": "QA", "insight_cost": 2, "implementation_priority": "low"},
			"z1": {"name": "First", "domain": "QA", "insight_cost": 1, "implementation_priority": "high", "cursor_notes": "watch out"}
		},
		"cross_references": {"stars": ["s1", "s2"], "cards": [], "notes": "not a list"}
	},
	"alpha-cards": {
		"system_info": {"name": "Alpha Cards", "description": "Early cards"},
		"cards": {"a1": {"name": "Alpha One", "domain": "TP", "insight_cost": 3, "implementation_priority": "medium", "developer_notes": "legacy key"}}
	},
	"broken": {
		"system_info": {"name": "Broken", "description": "bad cost"},
		"cards": {"b1": {"name": "Bad", "insight_cost": -4}}
	}
}`

const starsYAML = `
core-stars:
  system_info:
    name: Core Stars
    description: The constellation
    total_stars: 40
    season: spring
  stars:
    s1:
      name: Star One
      domain: TP
      description: First star
      requirements: [a, b]
      rewards: [c]
    s2:
      name: Star Two
      domain: IM
      description: Second star
      requirements: []
      rewards: []
`

func writeData(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestFileStoreJSONKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	writeData(t, dir, "cards.json", cardsJSON)
	s := NewFileStore(dir, zaptest.NewLogger(t))

	systems, err := s.GetAll(context.Background(), "cards")
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta-cards", "alpha-cards"}, systems.Keys(), "broken record is skipped, order kept")

	zeta, _ := systems.Get("zeta-cards")
	assert.Equal(t, "zeta-cards", zeta.ID)
	assert.Equal(t, model.CategoryCards, zeta.Category)
	assert.Equal(t, "QA", zeta.Info.Domain)
	assert.Equal(t, []string{"z2", "z1"}, zeta.Cards.Keys())
	z1, _ := zeta.Cards.Get("z1")
	assert.Equal(t, uint(1), z1.InsightCost)
	assert.Equal(t, "watch out", z1.DeveloperNotes)

	assert.True(t, zeta.HasCrossReferences())
	assert.Equal(t, []string{"stars", "cards"}, zeta.CrossReferences.Keys(), "non-list references are dropped")

	alpha, _ := systems.Get("alpha-cards")
	a1, _ := alpha.Cards.Get("a1")
	assert.Equal(t, "legacy key", a1.DeveloperNotes)
	assert.False(t, alpha.HasCrossReferences())
}

func TestFileStoreYAML(t *testing.T) {
	dir := t.TempDir()
	writeData(t, dir, "stars.yaml", starsYAML)

	systems, err := NewFileStore(dir, nil).GetAll(context.Background(), "stars")
	require.NoError(t, err)
	require.Equal(t, 1, systems.Len())

	core, _ := systems.Get("core-stars")
	require.NotNil(t, core.Info.TotalStars)
	assert.Equal(t, 40, *core.Info.TotalStars)
	season, ok := core.Info.Extra.Get("season")
	assert.True(t, ok)
	assert.Equal(t, "spring", season)
	assert.Equal(t, []string{"s1", "s2"}, core.Stars.Keys())
	s1, _ := core.Stars.Get("s1")
	assert.Equal(t, []string{"a", "b"}, s1.Requirements)
}

func TestFileStoreMissingCategory(t *testing.T) {
	systems, err := NewFileStore(t.TempDir(), nil).GetAll(context.Background(), "bosses")
	require.NoError(t, err)
	assert.Equal(t, 0, systems.Len())
}

func TestFileStoreRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	writeData(t, dir, "cards.json", `["not", "a", "mapping"]`)
	s := NewFileStore(dir, nil)

	_, err := s.GetAll(context.Background(), "cards")
	assert.Error(t, err)

	_, err = s.GetAll(context.Background(), "../cards")
	assert.Error(t, err)
}

func TestFileStoreNameFallbackAndGenericFields(t *testing.T) {
	dir := t.TempDir()
	writeData(t, dir, "interfaces.yml", `
activity-interface:
  system_info:
    description: no name here
  layout:
    columns: 3
mentor-roster:
  system_info: {name: Roster, description: d}
  mentors:
    mentors:
      garcia: {full_name: Dr. Garcia, role: Lead}
`)
	systems, err := NewFileStore(dir, nil).GetAll(context.Background(), "interfaces")
	require.NoError(t, err)

	ai, _ := systems.Get("activity-interface")
	assert.Equal(t, "activity-interface", ai.Info.Name)
	assert.True(t, ai.Extra.Has("layout"))

	roster, _ := systems.Get("mentor-roster")
	garcia, ok := roster.Mentors.Get("garcia")
	require.True(t, ok)
	assert.Equal(t, "Dr. Garcia", garcia.FullName)
}

func TestCategories(t *testing.T) {
	dir := t.TempDir()
	writeData(t, dir, "stars.yaml", starsYAML)
	writeData(t, dir, "cards.json", cardsJSON)
	writeData(t, dir, "cards.yaml", "{}")
	writeData(t, dir, "notes.txt", "")

	cats, err := Categories(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"cards", "stars"}, cats)

	cats, err = Categories(filepath.Join(dir, "absent"))
	require.NoError(t, err)
	assert.Empty(t, cats)
}

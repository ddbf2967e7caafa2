package export

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rogue-resident/rogue-docs/internal/model"
)

func render(t *testing.T, store *countingStore, docs DocumentSource, f model.Format, systems ...string) string {
	t.Helper()
	res, err := newTestGenerator(t, store, docs).Generate(context.Background(), model.ExportRequest{
		Format:         f,
		IncludeSystems: systems,
		IncludeRelated: docs != nil,
	})
	require.NoError(t, err)
	return res.Content
}

func TestClaudeContextPriorityDocsFirst(t *testing.T) {
	docs := docSet(
		model.ContentDocument{ID: "a", Title: "Doc A", Body: "alpha body"},
		model.ContentDocument{ID: "core-systems-design", Title: "Core Systems", Body: "core body", Version: "1.2", LastUpdated: "2025-01-01"},
		model.ContentDocument{ID: "b", Title: "Doc B", Body: "bravo body"},
		model.ContentDocument{ID: "master-gdd", Title: "Master GDD", Body: "gdd body"},
	)
	out := render(t, standardStore(), docs, model.FormatClaudeContext, "cards")

	gdd := strings.Index(out, "### Master GDD")
	core := strings.Index(out, "### Core Systems")
	a := strings.Index(out, "### Doc A")
	b := strings.Index(out, "### Doc B")
	require.True(t, gdd >= 0 && core >= 0 && a >= 0 && b >= 0)
	assert.Less(t, gdd, core, "priority list order")
	assert.Less(t, core, a)
	assert.Less(t, a, b, "remaining docs keep encounter order")
	assert.Equal(t, 1, strings.Count(out, "### Core Systems"))
	assert.Contains(t, out, "**Version**: 1.2  \n**Last Updated**: 2025-01-01  \n\ncore body\n\n---\n\n")
}

func TestClaudeContextSections(t *testing.T) {
	store := standardStore()
	cards, _ := store.data["cards"].Get("core-cards")
	shield, _ := cards.Cards.Get("dose-shield")
	shield.DeveloperNotes = "reuse the shield shader"
	cards.Cards.Set("dose-shield", shield)
	store.data["cards"] = systems(cards)

	out := render(t, store, nil, model.FormatClaudeContext, "cards", "stars")

	assert.True(t, strings.HasPrefix(out, "# Rogue Resident Game Documentation\n*Generated for Claude AI context - 2025-03-14T09:26:53.589Z*\n\n## Executive Summary\n"))
	assert.Contains(t, out, "## Application Cards System\n\n### core-cards name\ncore-cards description\n\n")
	assert.Contains(t, out, "#### Dose Shield (TP)\n- **Passive**: Dose Shield passive\n- **Active**: Dose Shield active\n- **Cost**: 2 Insight\n- **Star**: star-TP\n- **Priority**: high\n- **Dev Notes**: reuse the shield shader\n\n")
	assert.Contains(t, out, "#### Star star-a (IM)\nabout star-a\n\n**Requirements:**\n- req star-a\n\n**Rewards:**\n- reward star-a\n\n")
	assert.Less(t, strings.Index(out, "## Application Cards System"), strings.Index(out, "## Star System"))
	assert.NotContains(t, out, "## Core Design Documentation")
}

func TestClaudeContextCrossReferences(t *testing.T) {
	out := render(t, standardStore(), nil, model.FormatClaudeContext, "cards", "stars")

	rel := out[strings.Index(out, "## System Relationships"):]
	assert.Contains(t, rel, "### core-cards name References\n- stars: s1, s2\n\n")
	assert.NotContains(t, rel, "- cards:")
	assert.NotContains(t, rel, "core-stars name References", "records without cross references are skipped")
}

func TestCursorDevPartition(t *testing.T) {
	out := render(t, standardStore(), nil, model.FormatCursorDev, "cards")

	assert.Contains(t, out, "### High Priority Cards (1 cards)\n\n")
	assert.Contains(t, out, "#### Dose Shield - PRIORITY HIGH\n**File**: `src/cards/tp/dose-shield.ts`\n")
	assert.Contains(t, out, "class DoseShieldCard extends ApplicationCard {\n")
	assert.Contains(t, out, "  insightCost = 2;\n")
	assert.Contains(t, out, "- Star System: star-TP\n- Resource System: Insight (2)\n")
	assert.NotContains(t, out, "ImageFusionCard")
	assert.NotContains(t, out, "QASweepCard")
	assert.NotContains(t, out, "QA Sweep")
	assert.Equal(t, 1, strings.Count(out, "```typescript"))
	assert.Contains(t, out, "2. High priority cards (1 cards)\n3. Medium priority cards (1 cards)\n")
}

func TestCursorDevNoCards(t *testing.T) {
	store := &countingStore{}
	out := render(t, store, nil, model.FormatCursorDev, "cards")
	assert.Contains(t, out, "### High Priority Cards (0 cards)\n\n## Implementation Order")
	assert.Contains(t, out, "2. High priority cards (0 cards)\n3. Medium priority cards (0 cards)\n")

	out = render(t, standardStore(), nil, model.FormatCursorDev, "stars")
	assert.NotContains(t, out, "## Priority Implementation")
	assert.Contains(t, out, "2. High priority cards (0 cards)\n")
}

func TestTeamReviewEndToEnd(t *testing.T) {
	cards := cardSystem("deck", map[string]model.CardEntry{
		"c1": card("Card One", "TP", "high", 1),
		"c2": card("Card Two", "PH", "medium", 2),
	}, "c1", "c2")
	store := &countingStore{data: map[string]model.Ordered[model.SystemRecord]{
		"cards": systems(cards),
		"stars": systems(starSystem("sky", 3)),
	}}

	out := render(t, store, nil, model.FormatTeamReview, "cards", "stars")

	assert.Contains(t, out, "Total Cards: 2\n")
	assert.Contains(t, out, "Total Stars: 3\n")
	assert.Contains(t, out, "High Priority Cards: 1\n")
	assert.Contains(t, out, "1. **Development**: Implement 1 high-priority cards\n")
	assert.Contains(t, out, "## Cards Systems\n\n### deck name\ndeck description\n\n**Cards (2):**\n- Card One (high priority)\n- Card Two (medium priority)\n\n")
	assert.Contains(t, out, "## Stars Systems\n\n### sky name\nsky description\n\n**Stars (3):**\n- Star star-a (IM)\n")
}

func TestTeamReviewEmptyCategory(t *testing.T) {
	store := &countingStore{data: map[string]model.Ordered[model.SystemRecord]{}}
	out := render(t, store, nil, model.FormatTeamReview, "cards")

	assert.Contains(t, out, "- Total Cards: 0\n")
	assert.Contains(t, out, "- High Priority Cards: 0\n")
	assert.Contains(t, out, "## Cards Systems\n\n")
}

func TestTeamReviewDeclaredEmptyCollections(t *testing.T) {
	decode := func(id, src string) model.SystemRecord {
		var rec model.SystemRecord
		require.NoError(t, yaml.Unmarshal([]byte(src), &rec))
		rec.ID = id
		return rec
	}
	store := &countingStore{data: map[string]model.Ordered[model.SystemRecord]{
		"cards": systems(
			decode("empty-deck", "system_info: {name: Empty Deck, description: none yet}\ncards: {}\n"),
			decode("no-deck", "system_info: {name: No Deck, description: undeclared}\n"),
		),
		"stars": systems(decode("empty-sky", "system_info: {name: Empty Sky, description: dark}\nstars: {}\n")),
	}}

	out := render(t, store, nil, model.FormatTeamReview, "cards", "stars")

	assert.Contains(t, out, "### Empty Deck\nnone yet\n\n**Cards (0):**\n\n")
	assert.Contains(t, out, "### No Deck\nundeclared\n\n\n")
	assert.Contains(t, out, "### Empty Sky\ndark\n\n**Stars (0):**\n\n")
	assert.Equal(t, 1, strings.Count(out, "**Cards (0):**"))
}

func TestTeamReviewGenericCategory(t *testing.T) {
	boss := model.SystemRecord{ID: "chen", Info: model.SystemInfo{Name: "Dr. Chen", Description: "Final exam"}}
	store := &countingStore{data: map[string]model.Ordered[model.SystemRecord]{"bosses": systems(boss)}}
	out := render(t, store, nil, model.FormatTeamReview, "bosses")

	assert.Contains(t, out, "## Bosses Systems\n\n### Dr. Chen\nFinal exam\n\n")
}

func TestSystemOverview(t *testing.T) {
	docs := docSet(
		model.ContentDocument{ID: "x", Title: "Visual Philosophy", Version: "2.0"},
		model.ContentDocument{ID: "y", Title: "Activity Framework"},
	)
	out := render(t, standardStore(), docs, model.FormatSystemOverview, "cards", "stars")

	assert.Contains(t, out, "## Documentation Overview\n\nThe following design documents are available:\n\n- **Visual Philosophy** (v2.0)\n- **Activity Framework**\n\n")
	assert.Contains(t, out, "### Cards System\n#### core-cards name\ncore-cards description\n\n**Structure**: 3 cards defined\n**Domain**: TP\n**Dependencies**: 2 stars\n\n")
	assert.Contains(t, out, "### Stars System\n#### core-stars name\ncore-stars description\n\n**Structure**: 3 stars defined\n**Total Capacity**: 12 stars planned\n**Dependencies**: None\n\n")
}

func TestSystemOverviewUnknownCapacity(t *testing.T) {
	rec := starSystem("loose", 1)
	rec.Info.TotalStars = nil
	store := &countingStore{data: map[string]model.Ordered[model.SystemRecord]{"stars": systems(rec)}}
	out := render(t, store, nil, model.FormatSystemOverview, "stars")
	assert.Contains(t, out, "**Total Capacity**: unknown stars planned\n")
	assert.NotContains(t, out, "## Documentation Overview")
}

func TestClassName(t *testing.T) {
	assert.Equal(t, "DoseShieldCard", className("Dose  Shield"))
	assert.Equal(t, "XCard", className(" X "))
}

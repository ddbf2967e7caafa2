package export

import (
	"context"
	"time"

	"github.com/rogue-resident/rogue-docs/internal/model"
)

var fixedTime = time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

func fixedClock() time.Time { return fixedTime }

// countingStore serves canned records and counts reads.
type countingStore struct {
	data  map[string]model.Ordered[model.SystemRecord]
	calls int
}

func (s *countingStore) GetAll(_ context.Context, category string) (model.Ordered[model.SystemRecord], error) {
	s.calls++
	return s.data[category], nil
}

// staticDocs serves a fixed document set and counts loads.
type staticDocs struct {
	docs  model.Ordered[model.ContentDocument]
	loads int
}

func (d *staticDocs) Load(context.Context) model.Ordered[model.ContentDocument] {
	d.loads++
	return d.docs
}

func docSet(docs ...model.ContentDocument) *staticDocs {
	var o model.Ordered[model.ContentDocument]
	for _, d := range docs {
		o.Set(d.ID, d)
	}
	return &staticDocs{docs: o}
}

func card(name, domain, priority string, cost uint) model.CardEntry {
	return model.CardEntry{
		Name:                   name,
		Domain:                 domain,
		AssociatedStar:         "star-" + domain,
		PassiveEffect:          name + " passive",
		ActiveEffect:           name + " active",
		InsightCost:            cost,
		ImplementationPriority: priority,
	}
}

func cardSystem(id string, cards map[string]model.CardEntry, order ...string) model.SystemRecord {
	rec := model.SystemRecord{
		ID:       id,
		Category: model.CategoryCards,
		Info:     model.SystemInfo{Name: id + " name", Description: id + " description", Domain: "TP"},
	}
	for _, cid := range order {
		rec.Cards.Set(cid, cards[cid])
	}
	return rec
}

func starSystem(id string, n int) model.SystemRecord {
	total := 12
	rec := model.SystemRecord{
		ID:       id,
		Category: model.CategoryStars,
		Info:     model.SystemInfo{Name: id + " name", Description: id + " description", TotalStars: &total},
	}
	for i := 1; i <= n; i++ {
		sid := "star-" + string(rune('a'+i-1))
		rec.Stars.Set(sid, model.StarEntry{
			Name:         "Star " + sid,
			Domain:       "IM",
			Description:  "about " + sid,
			Requirements: []string{"req " + sid},
			Rewards:      []string{"reward " + sid},
		})
	}
	return rec
}

func systems(recs ...model.SystemRecord) model.Ordered[model.SystemRecord] {
	var o model.Ordered[model.SystemRecord]
	for _, r := range recs {
		o.Set(r.ID, r)
	}
	return o
}

// standardStore has one card system (high, medium, low) and one star system with 3 stars.
func standardStore() *countingStore {
	cards := cardSystem("core-cards", map[string]model.CardEntry{
		"dose-shield":  card("Dose Shield", "TP", "high", 2),
		"image-fusion": card("Image Fusion", "IM", "medium", 1),
		"qa-sweep":     card("QA Sweep", "QA", "low", 3),
	}, "dose-shield", "image-fusion", "qa-sweep")
	cards.CrossReferences.Set("stars", []string{"s1", "s2"})
	cards.CrossReferences.Set("cards", []string{})

	return &countingStore{data: map[string]model.Ordered[model.SystemRecord]{
		"cards": systems(cards),
		"stars": systems(starSystem("core-stars", 3)),
	}}
}

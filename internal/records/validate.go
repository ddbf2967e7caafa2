package records

import (
	"context"
	"fmt"

	"github.com/rogue-resident/rogue-docs/internal/model"
)

// Problem is a cross-reference that points at nothing.
type Problem struct {
	Category string `json:"category"`
	System   string `json:"system"`
	RefType  string `json:"ref_type"`
	Ref      string `json:"ref"`
	Message  string `json:"message"`
}

// checkedRefs maps a cross-reference kind to the category that defines its ids.
var checkedRefs = map[string]model.Category{
	"stars": model.CategoryStars,
	"cards": model.CategoryCards,
}

// Validate checks the star and card cross-references of every record in
// categories against the ids defined in the stars and cards categories.
func Validate(ctx context.Context, store Store, categories []string) ([]Problem, error) {
	known := make(map[model.Category]map[string]bool, len(checkedRefs))
	for _, c := range checkedRefs {
		ids, err := entryIDs(ctx, store, c)
		if err != nil {
			return nil, err
		}
		known[c] = ids
	}

	var problems []Problem
	for _, category := range categories {
		systems, err := store.GetAll(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", category, err)
		}
		for id, rec := range systems.All() {
			for refType, refs := range rec.CrossReferences.All() {
				target, ok := checkedRefs[refType]
				if !ok {
					continue
				}
				for _, ref := range refs {
					if known[target][ref] {
						continue
					}
					problems = append(problems, Problem{
						Category: category,
						System:   id,
						RefType:  refType,
						Ref:      ref,
						Message:  fmt.Sprintf("%s reference '%s' not found", singular(refType), ref),
					})
				}
			}
		}
	}
	return problems, nil
}

func entryIDs(ctx context.Context, store Store, c model.Category) (map[string]bool, error) {
	systems, err := store.GetAll(ctx, string(c))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c, err)
	}
	ids := map[string]bool{}
	for rec := range systems.Values() {
		switch c {
		case model.CategoryStars:
			for id := range rec.Stars.All() {
				ids[id] = true
			}
		case model.CategoryCards:
			for id := range rec.Cards.All() {
				ids[id] = true
			}
		}
	}
	return ids, nil
}

func singular(refType string) string {
	switch refType {
	case "stars":
		return "Star"
	case "cards":
		return "Card"
	}
	return refType
}

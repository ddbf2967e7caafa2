package export

import (
	"fmt"
	"strings"

	"github.com/rogue-resident/rogue-docs/internal/model"
)

// cardRef is a card together with its id.
type cardRef struct {
	ID string
	model.CardEntry
}

// partitionCards splits the included cards into high and medium
// priority, in encounter order. Low priority cards are deferred and left out.
func partitionCards(data model.Dataset) (high, medium []cardRef) {
	cards, ok := data.Lookup(model.CategoryCards)
	if !ok {
		return nil, nil
	}
	for sys := range cards.Systems.Values() {
		for id, card := range sys.Cards.All() {
			switch normalizePriority(card.ImplementationPriority) {
			case model.PriorityHigh:
				high = append(high, cardRef{ID: id, CardEntry: card})
			case model.PriorityMedium:
				medium = append(medium, cardRef{ID: id, CardEntry: card})
			}
		}
	}
	return high, medium
}

func normalizePriority(p string) string {
	return strings.ToLower(strings.TrimSpace(p))
}

// className derives a class name from a card name, e.g. "Dose Shield" -> "DoseShieldCard".
func className(name string) string {
	return strings.Join(strings.Fields(name), "") + "Card"
}

func renderCursorDev(in *input) string {
	var b strings.Builder
	header(&b, "Development Specification: Rogue Resident", "Generated for Cursor IDE development", in)
	b.WriteString("## Implementation Overview\n")
	b.WriteString("This specification provides implementation details for the Rogue Resident game systems.\n\n")

	high, medium := partitionCards(in.data)

	if _, ok := in.data.Lookup(model.CategoryCards); ok {
		b.WriteString("## Priority Implementation: Application Cards\n\n")
		fmt.Fprintf(&b, "### High Priority Cards (%d cards)\n\n", len(high))
		for _, card := range high {
			writeCardSkeleton(&b, card)
		}
	}

	b.WriteString("## Implementation Order\n\n")
	b.WriteString("1. Core ApplicationCard base class\n")
	fmt.Fprintf(&b, "2. High priority cards (%d cards)\n", len(high))
	fmt.Fprintf(&b, "3. Medium priority cards (%d cards)\n", len(medium))
	b.WriteString("4. Integration testing with star system\n")
	b.WriteString("5. Visual effects and animations\n\n")

	return b.String()
}

func writeCardSkeleton(b *strings.Builder, card cardRef) {
	fmt.Fprintf(b, "#### %s - PRIORITY HIGH\n", card.Name)
	fmt.Fprintf(b, "**File**: `src/cards/%s/%s.ts`\n\n", strings.ToLower(card.Domain), card.ID)
	b.WriteString("**Core Logic**:\n")
	b.WriteString("```typescript\n")
	fmt.Fprintf(b, "class %s extends ApplicationCard {\n", className(card.Name))
	fmt.Fprintf(b, "  name = %q;\n", card.Name)
	fmt.Fprintf(b, "  domain = Domain.%s;\n", card.Domain)
	fmt.Fprintf(b, "  passiveEffect = %q;\n", card.PassiveEffect)
	fmt.Fprintf(b, "  activeEffect = %q;\n", card.ActiveEffect)
	fmt.Fprintf(b, "  insightCost = %d;\n", card.InsightCost)
	fmt.Fprintf(b, "  associatedStar = %q;\n\n", card.AssociatedStar)
	b.WriteString("  applyPassive(gameState: GameState): void {\n")
	fmt.Fprintf(b, "    // %s\n", card.PassiveEffect)
	b.WriteString("  }\n\n")
	b.WriteString("  applyActive(gameState: GameState, insightSpent: number): void {\n")
	fmt.Fprintf(b, "    // %s\n", card.ActiveEffect)
	fmt.Fprintf(b, "    // Cost: %d insight\n", card.InsightCost)
	b.WriteString("  }\n")
	b.WriteString("}\n")
	b.WriteString("```\n\n")

	if card.DeveloperNotes != "" {
		fmt.Fprintf(b, "**Development Notes**: %s\n\n", card.DeveloperNotes)
	}

	b.WriteString("**Dependencies**:\n")
	fmt.Fprintf(b, "- Star System: %s\n", card.AssociatedStar)
	fmt.Fprintf(b, "- Resource System: Insight (%d)\n\n", card.InsightCost)
	b.WriteString("---\n\n")
}

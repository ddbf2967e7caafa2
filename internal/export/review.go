package export

import (
	"fmt"
	"strings"

	"github.com/rogue-resident/rogue-docs/internal/model"
)

// reviewStats are the headline numbers of a team review.
type reviewStats struct {
	TotalCards        int
	TotalStars        int
	HighPriorityCards int
	Systems           int
}

func collectStats(data model.Dataset) reviewStats {
	st := reviewStats{Systems: len(data.Categories)}
	if cards, ok := data.Lookup(model.CategoryCards); ok {
		for sys := range cards.Systems.Values() {
			st.TotalCards += sys.Cards.Len()
			for card := range sys.Cards.Values() {
				if normalizePriority(card.ImplementationPriority) == model.PriorityHigh {
					st.HighPriorityCards++
				}
			}
		}
	}
	if stars, ok := data.Lookup(model.CategoryStars); ok {
		for sys := range stars.Systems.Values() {
			st.TotalStars += sys.Stars.Len()
		}
	}
	return st
}

func renderTeamReview(in *input) string {
	var b strings.Builder
	header(&b, "Rogue Resident Team Review", "Generated for team collaboration", in)
	b.WriteString("## Current Status Overview\n\n")

	st := collectStats(in.data)
	b.WriteString("### System Statistics\n")
	fmt.Fprintf(&b, "- Total Cards: %d\n", st.TotalCards)
	fmt.Fprintf(&b, "- Total Stars: %d\n", st.TotalStars)
	fmt.Fprintf(&b, "- High Priority Cards: %d\n", st.HighPriorityCards)
	fmt.Fprintf(&b, "- Systems Defined: %d\n\n", st.Systems)

	b.WriteString("### Recommended Next Actions\n")
	fmt.Fprintf(&b, "1. **Development**: Implement %d high-priority cards\n", st.HighPriorityCards)
	b.WriteString("2. **Design**: Review star requirements and rewards\n")
	b.WriteString("3. **Team**: Validate cross-references between systems\n")
	b.WriteString("4. **Team**: Design mentor character interactions\n\n")

	for _, cd := range in.data.Categories {
		fmt.Fprintf(&b, "## %s Systems\n\n", cd.Category.Title())
		for sys := range cd.Systems.Values() {
			writeSystemHeader(&b, "###", sys)
			switch cd.Category {
			case model.CategoryCards:
				if sys.Cards.Declared() {
					fmt.Fprintf(&b, "**Cards (%d):**\n", sys.Cards.Len())
					for card := range sys.Cards.Values() {
						fmt.Fprintf(&b, "- %s (%s priority)\n", card.Name, card.ImplementationPriority)
					}
				}
			case model.CategoryStars:
				if sys.Stars.Declared() {
					fmt.Fprintf(&b, "**Stars (%d):**\n", sys.Stars.Len())
					for star := range sys.Stars.Values() {
						fmt.Fprintf(&b, "- %s (%s)\n", star.Name, star.Domain)
					}
				}
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

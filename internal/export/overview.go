package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rogue-resident/rogue-docs/internal/model"
)

func renderSystemOverview(in *input) string {
	var b strings.Builder
	header(&b, "Rogue Resident System Overview", "Comprehensive system documentation", in)

	if in.docs.Len() > 0 {
		b.WriteString("## Documentation Overview\n\n")
		b.WriteString("The following design documents are available:\n\n")
		for doc := range in.docs.Values() {
			fmt.Fprintf(&b, "- **%s**", doc.Title)
			if doc.Version != "" {
				fmt.Fprintf(&b, " (v%s)", doc.Version)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## Game Architecture\n\n")
	b.WriteString("Rogue Resident uses a modular system architecture:\n\n")

	for _, cd := range in.data.Categories {
		fmt.Fprintf(&b, "### %s System\n", cd.Category.Title())
		for sys := range cd.Systems.Values() {
			writeSystemHeader(&b, "####", sys)

			switch cd.Category {
			case model.CategoryCards:
				fmt.Fprintf(&b, "**Structure**: %d cards defined\n", sys.Cards.Len())
				if sys.Info.Domain != "" {
					fmt.Fprintf(&b, "**Domain**: %s\n", sys.Info.Domain)
				}
			case model.CategoryStars:
				fmt.Fprintf(&b, "**Structure**: %d stars defined\n", sys.Stars.Len())
				fmt.Fprintf(&b, "**Total Capacity**: %s stars planned\n", capacity(sys.Info.TotalStars))
			}

			fmt.Fprintf(&b, "**Dependencies**: %s\n\n", dependencySummary(sys))
		}
	}

	return b.String()
}

func capacity(total *int) string {
	if total == nil {
		return "unknown"
	}
	return strconv.Itoa(*total)
}

// dependencySummary renders "2 stars, 1 cards" for non-empty reference lists, or "None".
func dependencySummary(sys model.SystemRecord) string {
	var deps []string
	for refType, refs := range sys.CrossReferences.All() {
		if len(refs) > 0 {
			deps = append(deps, fmt.Sprintf("%d %s", len(refs), refType))
		}
	}
	if len(deps) == 0 {
		return "None"
	}
	return strings.Join(deps, ", ")
}

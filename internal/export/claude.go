package export

import (
	"fmt"
	"strings"

	"github.com/rogue-resident/rogue-docs/internal/model"
)

// priorityDocs are emitted first, in this order, when present.
var priorityDocs = []string{
	"master-gdd",
	"visual-design-philosophy",
	"core-systems-design",
	"activity-framework",
}

const claudeSummary = `## Executive Summary
Rogue Resident is an educational game for radiation therapy training featuring:
- Application cards system for hands-on learning
- Star-based progression across 4 domains (TP, IM, PH, QA)
- Complex relationships between cards, stars, and mentors
- Professional simulation approach with dual system architecture

`

func renderClaudeContext(in *input) string {
	var b strings.Builder
	header(&b, "Rogue Resident Game Documentation", "Generated for Claude AI context", in)
	b.WriteString(claudeSummary)

	if in.docs.Len() > 0 {
		b.WriteString("## Core Design Documentation\n\n")
		written := make(map[string]bool, len(priorityDocs))
		for _, id := range priorityDocs {
			if doc, ok := in.docs.Get(id); ok {
				writeDocument(&b, doc)
				written[id] = true
			}
		}
		for id, doc := range in.docs.All() {
			if !written[id] {
				writeDocument(&b, doc)
			}
		}
	}

	if cards, ok := in.data.Lookup(model.CategoryCards); ok && cards.Systems.Len() > 0 {
		b.WriteString("## Application Cards System\n\n")
		for sys := range cards.Systems.Values() {
			writeSystemHeader(&b, "###", sys)
			for card := range sys.Cards.Values() {
				fmt.Fprintf(&b, "#### %s (%s)\n", card.Name, card.Domain)
				fmt.Fprintf(&b, "- **Passive**: %s\n", card.PassiveEffect)
				fmt.Fprintf(&b, "- **Active**: %s\n", card.ActiveEffect)
				fmt.Fprintf(&b, "- **Cost**: %d Insight\n", card.InsightCost)
				fmt.Fprintf(&b, "- **Star**: %s\n", card.AssociatedStar)
				fmt.Fprintf(&b, "- **Priority**: %s\n", card.ImplementationPriority)
				if card.DeveloperNotes != "" {
					fmt.Fprintf(&b, "- **Dev Notes**: %s\n", card.DeveloperNotes)
				}
				b.WriteString("\n")
			}
		}
	}

	if stars, ok := in.data.Lookup(model.CategoryStars); ok && stars.Systems.Len() > 0 {
		b.WriteString("## Star System\n\n")
		for sys := range stars.Systems.Values() {
			writeSystemHeader(&b, "###", sys)
			for star := range sys.Stars.Values() {
				fmt.Fprintf(&b, "#### %s (%s)\n", star.Name, star.Domain)
				b.WriteString(star.Description + "\n\n")
				b.WriteString("**Requirements:**\n")
				writeBullets(&b, star.Requirements)
				b.WriteString("\n**Rewards:**\n")
				writeBullets(&b, star.Rewards)
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("## System Relationships\n\n")
	b.WriteString("The following relationships exist between systems:\n\n")
	for _, cd := range in.data.Categories {
		for sys := range cd.Systems.Values() {
			if !sys.HasCrossReferences() {
				continue
			}
			fmt.Fprintf(&b, "### %s References\n", sys.Info.Name)
			for refType, refs := range sys.CrossReferences.All() {
				if len(refs) > 0 {
					fmt.Fprintf(&b, "- %s: %s\n", refType, strings.Join(refs, ", "))
				}
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func writeDocument(b *strings.Builder, doc model.ContentDocument) {
	fmt.Fprintf(b, "### %s\n", doc.Title)
	if doc.Version != "" {
		fmt.Fprintf(b, "**Version**: %s  \n", doc.Version)
	}
	if doc.LastUpdated != "" {
		fmt.Fprintf(b, "**Last Updated**: %s  \n", doc.LastUpdated)
	}
	fmt.Fprintf(b, "\n%s\n\n---\n\n", doc.Body)
}

func writeSystemHeader(b *strings.Builder, level string, sys model.SystemRecord) {
	fmt.Fprintf(b, "%s %s\n", level, sys.Info.Name)
	b.WriteString(sys.Info.Description + "\n\n")
}

func writeBullets(b *strings.Builder, items []string) {
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
}

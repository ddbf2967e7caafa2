package model

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category names a family of system records.
type Category string

// Known categories. Any other name is a generic category.
const (
	CategoryCards      Category = "cards"
	CategoryStars      Category = "stars"
	CategoryMentors    Category = "mentors"
	CategoryBosses     Category = "bosses"
	CategoryInterfaces Category = "interfaces"
)

// KnownCategories lists the categories with a dedicated record shape.
var KnownCategories = []Category{
	CategoryCards,
	CategoryStars,
	CategoryMentors,
	CategoryBosses,
	CategoryInterfaces,
}

// Known reports whether c has a dedicated record shape.
func (c Category) Known() bool {
	for _, k := range KnownCategories {
		if c == k {
			return true
		}
	}
	return false
}

// Title returns the category name with its first letter upper-cased.
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// Priority levels for cards.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// SystemInfo is the descriptive header every system record carries.
type SystemInfo struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Domain      string `yaml:"domain,omitempty" json:"domain,omitempty"`
	Type        string `yaml:"type,omitempty" json:"type,omitempty"`
	TotalStars  *int   `yaml:"total_stars,omitempty" json:"total_stars,omitempty"`

	// Extra holds any remaining keys in document order.
	Extra Ordered[any] `yaml:"-" json:"extra,omitempty"`
}

var systemInfoKeys = map[string]bool{
	"name":        true,
	"description": true,
	"domain":      true,
	"type":        true,
	"total_stars": true,
}

func (s *SystemInfo) UnmarshalYAML(value *yaml.Node) error {
	value = resolveAlias(value)
	type plain SystemInfo
	if err := value.Decode((*plain)(s)); err != nil {
		return err
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		if systemInfoKeys[key] {
			continue
		}
		var v any
		if err := value.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		s.Extra.Set(key, v)
	}
	return nil
}

// CardEntry is one application card.
type CardEntry struct {
	Name                   string   `yaml:"name" json:"name"`
	Domain                 string   `yaml:"domain" json:"domain"`
	AssociatedStar         string   `yaml:"associated_star" json:"associated_star"`
	PassiveEffect          string   `yaml:"passive_effect" json:"passive_effect"`
	ActiveEffect           string   `yaml:"active_effect" json:"active_effect"`
	InsightCost            uint     `yaml:"insight_cost" json:"insight_cost"`
	UnlockSeason           string   `yaml:"unlock_season,omitempty" json:"unlock_season,omitempty"`
	VisualDesign           string   `yaml:"visual_design,omitempty" json:"visual_design,omitempty"`
	Tags                   []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	ImplementationPriority string   `yaml:"implementation_priority" json:"implementation_priority"`
	DeveloperNotes         string   `yaml:"cursor_notes,omitempty" json:"cursor_notes,omitempty"`
}

func (c *CardEntry) UnmarshalYAML(value *yaml.Node) error {
	type plain CardEntry
	var aux struct {
		plain          `yaml:",inline"`
		DeveloperNotes string `yaml:"developer_notes"`
	}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	*c = CardEntry(aux.plain)
	if c.DeveloperNotes == "" {
		c.DeveloperNotes = aux.DeveloperNotes
	}
	return nil
}

// StarEntry is one star in the progression constellation.
type StarEntry struct {
	Name                string   `yaml:"name" json:"name"`
	Domain              string   `yaml:"domain" json:"domain"`
	Description         string   `yaml:"description" json:"description"`
	Requirements        []string `yaml:"requirements" json:"requirements"`
	Rewards             []string `yaml:"rewards" json:"rewards"`
	VisualTheme         string   `yaml:"visual_theme,omitempty" json:"visual_theme,omitempty"`
	ImplementationNotes string   `yaml:"implementation_notes,omitempty" json:"implementation_notes,omitempty"`
}

// MentorEntry is one mentor character.
type MentorEntry struct {
	FullName             string `yaml:"full_name" json:"full_name"`
	Title                string `yaml:"title,omitempty" json:"title,omitempty"`
	Role                 string `yaml:"role,omitempty" json:"role,omitempty"`
	DomainExpertise      string `yaml:"domain_expertise,omitempty" json:"domain_expertise,omitempty"`
	PersonalityArchetype string `yaml:"personality_archetype,omitempty" json:"personality_archetype,omitempty"`
}

// BossPhase is one phase of a boss encounter.
type BossPhase struct {
	Name     string `yaml:"name" json:"name"`
	Duration string `yaml:"duration,omitempty" json:"duration,omitempty"`
}

// BossEncounter describes a boss fight.
type BossEncounter struct {
	Name   string             `yaml:"name" json:"name"`
	Phases Ordered[BossPhase] `yaml:"phases" json:"phases"`
}

// InterfaceComponent is one building block of an interface system.
type InterfaceComponent struct {
	Name                 string `yaml:"name" json:"name"`
	UserExperienceRole   string `yaml:"user_experience_role,omitempty" json:"user_experience_role,omitempty"`
	ImplementationStatus string `yaml:"implementation_status,omitempty" json:"implementation_status,omitempty"`
	NarrativeIntegration string `yaml:"narrative_integration,omitempty" json:"narrative_integration,omitempty"`
}

// FlowStep is one stage of an interface's user-experience flow.
type FlowStep struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	UserActions []string `yaml:"user_actions,omitempty" json:"user_actions,omitempty"`
}

// SystemRecord is one structured game-design system.
type SystemRecord struct {
	ID       string   `yaml:"-" json:"-"`
	Category Category `yaml:"-" json:"-"`

	Info            SystemInfo        `json:"system_info"`
	CrossReferences Ordered[[]string] `json:"cross_references"`

	Cards     Ordered[CardEntry]   `json:"cards,omitempty"`
	Stars     Ordered[StarEntry]   `json:"stars,omitempty"`
	Mentors   Ordered[MentorEntry] `json:"mentors,omitempty"`
	Encounter *BossEncounter       `json:"boss_encounter,omitempty"`

	Components Ordered[InterfaceComponent] `json:"components,omitempty"`
	UserFlow   Ordered[FlowStep]           `json:"user_experience_flow,omitempty"`

	// Extra holds top-level keys without a dedicated shape.
	Extra Ordered[any] `json:"extra,omitempty"`
}

// HasCrossReferences reports whether the record declared a cross_references block.
func (r SystemRecord) HasCrossReferences() bool {
	return r.CrossReferences.Declared()
}

func (r *SystemRecord) UnmarshalYAML(value *yaml.Node) error {
	value = resolveAlias(value)
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: system record must be a mapping", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, node := value.Content[i].Value, resolveAlias(value.Content[i+1])
		var err error
		switch key {
		case "system_info":
			err = node.Decode(&r.Info)
		case "cross_references":
			err = decodeReferences(node, &r.CrossReferences)
		case "cards":
			err = node.Decode(&r.Cards)
		case "stars":
			err = node.Decode(&r.Stars)
		case "mentors":
			err = decodeMentors(node, &r.Mentors)
		case "components":
			err = decodeOrExtra(node, key, &r.Components, &r.Extra)
		case "user_experience_flow":
			err = decodeOrExtra(node, key, &r.UserFlow, &r.Extra)
		case "boss_encounter":
			r.Encounter = &BossEncounter{}
			err = node.Decode(r.Encounter)
		default:
			var v any
			if err = node.Decode(&v); err == nil {
				r.Extra.Set(key, v)
			}
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

// decodeReferences keeps list-valued entries and drops everything else.
func decodeReferences(node *yaml.Node, refs *Ordered[[]string]) error {
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	if refs.vals == nil {
		refs.vals = make(map[string][]string)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		v := resolveAlias(node.Content[i+1])
		if v.Kind != yaml.SequenceNode {
			continue
		}
		var ids []string
		if err := v.Decode(&ids); err != nil {
			continue
		}
		refs.Set(node.Content[i].Value, ids)
	}
	return nil
}

// decodeMentors accepts both a flat mentor map and the nested
// "mentors: {mentors: {...}}" layout the content exporter produces.
func decodeMentors(node *yaml.Node, out *Ordered[MentorEntry]) error {
	if node.Kind == yaml.MappingNode && len(node.Content) == 2 && node.Content[0].Value == "mentors" {
		node = resolveAlias(node.Content[1])
	}
	return node.Decode(out)
}

// decodeOrExtra decodes node into out, or keeps it untyped in extra when
// its shape does not match. Other categories may reuse these key names.
func decodeOrExtra[V any](node *yaml.Node, key string, out *Ordered[V], extra *Ordered[any]) error {
	var typed Ordered[V]
	if err := node.Decode(&typed); err == nil {
		*out = typed
		return nil
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	extra.Set(key, v)
	return nil
}

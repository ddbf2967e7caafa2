package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const interfaceYAML = `
system_info:
  name: Narrative Interface
  description: Dialogue and mentor screens
components:
  character_system:
    name: Character Development System
    user_experience_role: Authentic mentor personalities
    implementation_status: Arcs established
  world_building:
    name: World Building System
user_experience_flow:
  character_introduction:
    name: Character Introduction
    description: Players meet mentors
    user_actions: [Meet mentor, Establish trust]
asset_pipeline:
  immediate_needs: [portraits]
`

func TestSystemRecordInterfaceShape(t *testing.T) {
	var rec SystemRecord
	require.NoError(t, yaml.Unmarshal([]byte(interfaceYAML), &rec))

	assert.Equal(t, "Narrative Interface", rec.Info.Name)
	assert.Equal(t, []string{"character_system", "world_building"}, rec.Components.Keys())
	c, ok := rec.Components.Get("character_system")
	require.True(t, ok)
	assert.Equal(t, "Arcs established", c.ImplementationStatus)

	step, ok := rec.UserFlow.Get("character_introduction")
	require.True(t, ok)
	assert.Equal(t, []string{"Meet mentor", "Establish trust"}, step.UserActions)

	assert.Equal(t, []string{"asset_pipeline"}, rec.Extra.Keys())
}

func TestSystemRecordMismatchedComponentsFallBackToExtra(t *testing.T) {
	src := `
system_info: {name: Odd, description: d}
components: [a, b]
`
	var rec SystemRecord
	require.NoError(t, yaml.Unmarshal([]byte(src), &rec))
	assert.False(t, rec.Components.Declared())
	v, ok := rec.Extra.Get("components")
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, v)
}

func TestSystemRecordDeclaredEmptyCollections(t *testing.T) {
	src := `
system_info: {name: Empty, description: d}
cards: {}
`
	var rec SystemRecord
	require.NoError(t, yaml.Unmarshal([]byte(src), &rec))
	assert.True(t, rec.Cards.Declared())
	assert.False(t, rec.Stars.Declared())
	assert.False(t, rec.HasCrossReferences())
}

func TestCategoryTitleAndKnown(t *testing.T) {
	assert.Equal(t, "Interfaces", CategoryInterfaces.Title())
	assert.True(t, CategoryInterfaces.Known())
	assert.False(t, Category("lore").Known())
	assert.Equal(t, "", Category("").Title())
}

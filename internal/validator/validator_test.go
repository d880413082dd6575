package validator

import (
	"testing"

	"github.com/aretw0/varion/pkg/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBuildsGraph(t *testing.T) {
	nodes := []*script.Node{
		{ID: "start", Line: 1, Next: "end"},
		{ID: "end", Line: 5},
	}

	graph, errs := Validate(nodes)
	require.True(t, errs.Empty(), "unexpected errors: %v", errs)
	require.NotNil(t, graph)

	assert.Equal(t, "start", graph.Entry())
	assert.Equal(t, 2, graph.Len())
	assert.Equal(t, []string{"start", "end"}, graph.IDs())
	assert.NotNil(t, graph.Get("end"))
}

func TestValidateDuplicateID(t *testing.T) {
	nodes := []*script.Node{
		{ID: "start", Line: 1},
		{ID: "start", Line: 9},
	}

	graph, errs := Validate(nodes)
	assert.Nil(t, graph)
	require.Len(t, errs.Errors, 1)
	assert.Equal(t, script.KindDuplicateNodeID, errs.Errors[0].Kind)
	// Both declaration sites are reported.
	assert.Equal(t, 9, errs.Errors[0].Line)
	assert.Contains(t, errs.Errors[0].Message, "line 1")
}

func TestValidateNextChoiceExclusivity(t *testing.T) {
	nodes := []*script.Node{
		{ID: "start", Line: 1, Next: "other", Choices: []script.Choice{{Label: "go", Target: "other"}}},
		{ID: "other", Line: 7},
	}

	graph, errs := Validate(nodes)
	assert.Nil(t, graph)
	require.Len(t, errs.Errors, 1)
	assert.Equal(t, script.KindConflictingNextAndChoices, errs.Errors[0].Kind)
	assert.Equal(t, "start", errs.Errors[0].NodeID)
}

func TestValidateDanglingReferences(t *testing.T) {
	nodes := []*script.Node{
		{ID: "a", Line: 1, Next: "missing_next"},
		{ID: "b", Line: 4, Choices: []script.Choice{
			{Label: "ok", Target: "a"},
			{Label: "broken", Target: "missing_node"},
		}},
	}

	graph, errs := Validate(nodes)
	assert.Nil(t, graph)
	require.Len(t, errs.Errors, 2)
	for _, e := range errs.Errors {
		assert.Equal(t, script.KindDanglingReference, e.Kind)
	}
	assert.Contains(t, errs.Errors[0].Message, "missing_next")
	assert.Contains(t, errs.Errors[1].Message, "missing_node")
	assert.Equal(t, "b", errs.Errors[1].NodeID)
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	nodes := []*script.Node{
		{ID: "start", Line: 1},
		{ID: "start", Line: 3}, // duplicate
		{ID: "x", Line: 5, Next: "y", Choices: []script.Choice{{Label: "l", Target: "gone"}}},
	}

	graph, errs := Validate(nodes)
	assert.Nil(t, graph)
	assert.True(t, errs.HasKind(script.KindDuplicateNodeID))
	assert.True(t, errs.HasKind(script.KindConflictingNextAndChoices))
	assert.True(t, errs.HasKind(script.KindDanglingReference))
}

func TestValidateUnreachableNodesAreLegal(t *testing.T) {
	nodes := []*script.Node{
		{ID: "start", Line: 1},
		{ID: "orphan", Line: 3}, // nothing points here; fine while drafting
	}

	graph, errs := Validate(nodes)
	require.True(t, errs.Empty())
	assert.Equal(t, 2, graph.Len())
}

func TestValidateEmptyScript(t *testing.T) {
	graph, errs := Validate(nil)
	require.True(t, errs.Empty())
	assert.Equal(t, 0, graph.Len())
	assert.Equal(t, "", graph.Entry())
}

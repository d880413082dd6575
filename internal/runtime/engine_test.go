package runtime

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/varion/pkg/adapters/memory"
	"github.com/aretw0/varion/pkg/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGraph(t *testing.T) *script.Graph {
	t.Helper()
	return script.NewGraph([]*script.Node{
		{ID: "start", Line: 1, Text: []string{"Pick."}, Choices: []script.Choice{
			{Label: "always", Target: "a"},
			{Label: "gated", Target: "b", Condition: "brave"},
		}},
		{ID: "a", Line: 5, Text: []string{"A."}, Next: "end"},
		{ID: "b", Line: 7, Text: []string{"B."}, Next: "end"},
		{ID: "end", Line: 9, Text: []string{"End."}},
	})
}

func TestEngineStartAtEntry(t *testing.T) {
	eng := NewEngine(testGraph(t))

	state, err := eng.Start(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "start", state.CurrentNodeID)
	assert.Equal(t, []string{"start"}, state.History)
	assert.False(t, state.Terminated)
}

func TestEngineStartWithEntryOverride(t *testing.T) {
	eng := NewEngine(testGraph(t), WithEntryNode("end"))

	state, err := eng.Start(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "end", state.CurrentNodeID)
	assert.True(t, state.Terminated)
}

func TestEngineStartUnknownEntry(t *testing.T) {
	eng := NewEngine(testGraph(t), WithEntryNode("ghost"))
	_, err := eng.Start(context.Background(), "s1")
	assert.Error(t, err)
}

func TestEngineRenderFiltersConditionalChoices(t *testing.T) {
	eng := NewEngine(testGraph(t), WithConditionEvaluator(
		func(expr string, vars map[string]any) (bool, error) {
			v, _ := vars[expr].(bool)
			return v, nil
		},
	))

	state, err := eng.Start(context.Background(), "s1")
	require.NoError(t, err)

	view, err := eng.Render(context.Background(), state)
	require.NoError(t, err)
	require.Len(t, view.Choices, 1)
	assert.Equal(t, "always", view.Choices[0].Label)

	state.Vars["brave"] = true
	view, err = eng.Render(context.Background(), state)
	require.NoError(t, err)
	require.Len(t, view.Choices, 2)
	assert.Equal(t, "gated", view.Choices[1].Label)
}

func TestEngineRenderWithoutEvaluatorKeepsEverything(t *testing.T) {
	eng := NewEngine(testGraph(t))

	state, _ := eng.Start(context.Background(), "s1")
	view, err := eng.Render(context.Background(), state)
	require.NoError(t, err)
	assert.Len(t, view.Choices, 2)
}

func TestEngineChooseUsesAvailableIndex(t *testing.T) {
	eng := NewEngine(testGraph(t), WithConditionEvaluator(
		func(expr string, vars map[string]any) (bool, error) {
			return false, nil // gate everything conditional
		},
	))

	state, _ := eng.Start(context.Background(), "s1")

	// Index 0 is "always" since "gated" was filtered out.
	next, err := eng.Choose(context.Background(), state, 0)
	require.NoError(t, err)
	assert.Equal(t, "a", next.CurrentNodeID)
	assert.Equal(t, []string{"start", "a"}, next.History)

	_, err = eng.Choose(context.Background(), state, 1)
	assert.Error(t, err, "filtered choices are not addressable")
}

func TestEngineAdvanceFollowsNext(t *testing.T) {
	eng := NewEngine(testGraph(t))

	state := script.NewState("s1", "a")
	next, err := eng.Advance(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, "end", next.CurrentNodeID)
	assert.True(t, next.Terminated)

	// Sinks and choice nodes cannot Advance.
	_, err = eng.Advance(context.Background(), next)
	assert.Error(t, err)
	_, err = eng.Advance(context.Background(), script.NewState("s1", "start"))
	assert.Error(t, err)
}

func TestEngineStepDispatch(t *testing.T) {
	eng := NewEngine(testGraph(t))
	ctx := context.Background()

	next, err := eng.Step(ctx, script.NewState("s", "a"))
	require.NoError(t, err)
	assert.Equal(t, "end", next.CurrentNodeID)

	_, err = eng.Step(ctx, script.NewState("s", "start"))
	assert.Error(t, err, "choice nodes require Choose")

	done, err := eng.Step(ctx, script.NewState("s", "end"))
	require.NoError(t, err)
	assert.True(t, done.Terminated)
}

func TestEnginePersistsThroughStore(t *testing.T) {
	store := memory.NewStore()
	eng := NewEngine(testGraph(t), WithStore(store))
	ctx := context.Background()

	state, err := eng.Start(ctx, "durable")
	require.NoError(t, err)

	state, err = eng.Choose(ctx, state, 0)
	require.NoError(t, err)

	resumed, err := eng.Resume(ctx, "durable")
	require.NoError(t, err)
	assert.Equal(t, state.CurrentNodeID, resumed.CurrentNodeID)
	assert.Equal(t, state.History, resumed.History)

	require.NoError(t, eng.End(ctx, "durable"))
	_, err = eng.Resume(ctx, "durable")
	assert.ErrorIs(t, err, script.ErrSessionNotFound)
}

func TestEngineResumeWithoutStore(t *testing.T) {
	eng := NewEngine(testGraph(t))
	_, err := eng.Resume(context.Background(), "nope")
	assert.Error(t, err)
}

func TestEngineEvaluatorErrorSurfaces(t *testing.T) {
	eng := NewEngine(testGraph(t), WithConditionEvaluator(
		func(expr string, vars map[string]any) (bool, error) {
			return false, fmt.Errorf("bad expression")
		},
	))

	state, _ := eng.Start(context.Background(), "s1")
	_, err := eng.Render(context.Background(), state)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad expression")
}

func TestEngineStateIsolation(t *testing.T) {
	eng := NewEngine(testGraph(t))
	ctx := context.Background()

	state, _ := eng.Start(ctx, "s1")
	next, err := eng.Choose(ctx, state, 0)
	require.NoError(t, err)

	// The original state is untouched; transitions return fresh snapshots.
	assert.Equal(t, "start", state.CurrentNodeID)
	assert.Equal(t, "a", next.CurrentNodeID)
	assert.Len(t, state.History, 1)
}

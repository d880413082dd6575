package parser

import (
	"testing"

	"github.com/aretw0/varion/internal/scanner"
	"github.com/aretw0/varion/pkg/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, source string) ([]*script.Node, *script.ErrorList) {
	t.Helper()
	lines, errs := scanner.Scan(source)
	require.True(t, errs.Empty(), "scanner errors: %v", errs)
	return Parse(lines)
}

func TestParseSimpleNode(t *testing.T) {
	nodes, errs := parseSource(t, `
:: start
@who: NPC
Hello, world!
* Go next => next_node
`)
	require.True(t, errs.Empty(), "parser errors: %v", errs)
	require.Len(t, nodes, 1)

	node := nodes[0]
	assert.Equal(t, "start", node.ID)
	assert.Equal(t, 2, node.Line)
	assert.Equal(t, "NPC", node.Meta["who"])
	assert.Equal(t, "Hello, world!", node.Body())
	require.Len(t, node.Choices, 1)
	assert.Equal(t, "Go next", node.Choices[0].Label)
	assert.Equal(t, "next_node", node.Choices[0].Target)
	assert.Empty(t, node.Choices[0].Condition)
}

func TestParseGroupsAtHeaders(t *testing.T) {
	nodes, errs := parseSource(t, `
:: first
one
:: second
two
:: third
three
`)
	require.True(t, errs.Empty())
	require.Len(t, nodes, 3)
	assert.Equal(t, "first", nodes[0].ID)
	assert.Equal(t, "second", nodes[1].ID)
	assert.Equal(t, "third", nodes[2].ID)
	assert.Equal(t, []string{"two"}, nodes[1].Text)
}

func TestParseChoiceOrderPreserved(t *testing.T) {
	nodes, errs := parseSource(t, `
:: start
* alpha => a
* beta => b
* gamma => c
`)
	require.True(t, errs.Empty())
	require.Len(t, nodes, 1)

	labels := make([]string, 0, 3)
	for _, c := range nodes[0].Choices {
		labels = append(labels, c.Label)
	}
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, labels)
}

func TestParseTagsAccumulate(t *testing.T) {
	nodes, errs := parseSource(t, `
:: start
# greeting
# farewell
text
`)
	require.True(t, errs.Empty())
	require.Len(t, nodes, 1)
	assert.ElementsMatch(t, []string{"greeting", "farewell"}, nodes[0].Tags)
}

func TestParseContentOutsideNode(t *testing.T) {
	lines, scanErrs := scanner.Scan("Just some text without a node.\n")
	require.True(t, scanErrs.Empty())

	nodes, errs := Parse(lines)
	assert.Empty(t, nodes)
	require.Len(t, errs.Errors, 1)
	assert.Equal(t, script.KindContentOutsideNode, errs.Errors[0].Kind)
	assert.Equal(t, 1, errs.Errors[0].Line)
}

func TestParseDuplicateDirective(t *testing.T) {
	nodes, errs := parseSource(t, `
:: start
@next a
@next b
`)
	require.Len(t, errs.Errors, 1)
	assert.Equal(t, script.KindDuplicateDirective, errs.Errors[0].Kind)
	assert.Equal(t, "start", errs.Errors[0].NodeID)

	// The first directive is kept, not silently overwritten.
	require.Len(t, nodes, 1)
	assert.Equal(t, "a", nodes[0].Next)
}

func TestParsePrecedingCondition(t *testing.T) {
	nodes, errs := parseSource(t, `
:: start
@if karma > 5
* Be kind => kind_path
`)
	require.True(t, errs.Empty(), "parser errors: %v", errs)
	require.Len(t, nodes[0].Choices, 1)
	assert.Equal(t, "karma > 5", nodes[0].Choices[0].Condition)
}

func TestParseConflictingCondition(t *testing.T) {
	_, errs := parseSource(t, `
:: start
@if karma > 5
* Be kind => kind_path @if karma < 2
`)
	require.Len(t, errs.Errors, 1)
	assert.Equal(t, script.KindConflictingCondition, errs.Errors[0].Kind)
}

func TestParseDanglingCondition(t *testing.T) {
	cases := map[string]string{
		"before text":      ":: start\n@if x\nplain text\n",
		"before directive": ":: start\n@if x\n@next other\n",
		"before header":    ":: start\n@if x\n:: other\n",
		"at end of input":  ":: start\n@if x\n",
		"before tag":       ":: start\n@if x\n# tag\n",
		"before meta":      ":: start\n@if x\n@who: NPC\n",
	}
	for name, source := range cases {
		t.Run(name, func(t *testing.T) {
			_, errs := parseSource(t, source)
			assert.True(t, errs.HasKind(script.KindDanglingCondition))
		})
	}
}

func TestParseConsecutiveConditions(t *testing.T) {
	_, errs := parseSource(t, `
:: start
@if a
@if b
* pick => target
`)
	require.Len(t, errs.Errors, 1)
	assert.Equal(t, script.KindDanglingCondition, errs.Errors[0].Kind)
	assert.Contains(t, errs.Errors[0].Message, "consecutive")
}

func TestParseMultilineBodyKeepsIndentation(t *testing.T) {
	nodes, errs := parseSource(t, ":: multiline\nThis is the first line.\n    This is the second line, with indentation.\n")
	require.True(t, errs.Empty())
	assert.Equal(t, "This is the first line.\n    This is the second line, with indentation.", nodes[0].Body())
}

func TestParseErrorsAccumulateAcrossNodes(t *testing.T) {
	_, errs := parseSource(t, `
orphan text
:: a
@next x
@next y
:: b
@if cond
plain
`)
	// One error per offense, none masked by the others.
	assert.True(t, errs.HasKind(script.KindContentOutsideNode))
	assert.True(t, errs.HasKind(script.KindDuplicateDirective))
	assert.True(t, errs.HasKind(script.KindDanglingCondition))
	assert.Len(t, errs.Errors, 3)
}

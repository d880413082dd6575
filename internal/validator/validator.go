// Package validator performs whole-graph checks over parsed nodes and
// produces the immutable Graph handed to playback runtimes.
package validator

import (
	"github.com/aretw0/varion/pkg/script"
)

// Validate cross-checks the complete node set and, when everything holds,
// assembles the Graph. Checks are independent and all of them run, so one
// pass reports every duplicate id, every next/choices conflict and every
// dangling target. Reachability from the entry node is deliberately not
// checked: orphan nodes are legal while drafting.
func Validate(nodes []*script.Node) (*script.Graph, *script.ErrorList) {
	errs := &script.ErrorList{}

	// Duplicate ids. The first declaration wins for the id set; every later
	// one is reported against both locations.
	declared := make(map[string]*script.Node, len(nodes))
	unique := make([]*script.Node, 0, len(nodes))
	for _, n := range nodes {
		if first, ok := declared[n.ID]; ok {
			errs.Add(script.Errorf(script.KindDuplicateNodeID, n.Line, n.ID,
				"node id already declared at line %d", first.Line))
			continue
		}
		declared[n.ID] = n
		unique = append(unique, n)
	}

	for _, n := range nodes {
		// Mutual exclusion: a node has one outgoing-edge mechanism, never both.
		if n.Next != "" && len(n.Choices) > 0 {
			errs.Add(script.Errorf(script.KindConflictingNextAndChoices, n.Line, n.ID,
				"node declares both @next (%q) and %d choice(s); use one or the other", n.Next, len(n.Choices)))
		}

		if n.Next != "" {
			if _, ok := declared[n.Next]; !ok {
				errs.Add(script.Errorf(script.KindDanglingReference, n.Line, n.ID,
					"@next targets undeclared node %q", n.Next))
			}
		}
		for _, c := range n.Choices {
			if _, ok := declared[c.Target]; !ok {
				errs.Add(script.Errorf(script.KindDanglingReference, n.Line, n.ID,
					"choice %q targets undeclared node %q", c.Label, c.Target))
			}
		}
	}

	if !errs.Empty() {
		return nil, errs
	}
	return script.NewGraph(unique), errs
}

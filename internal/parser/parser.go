// Package parser groups classified lines into node definitions.
//
// A node begins at a `::` header and ends at the next header or end of
// input. Structural problems (content outside any node, duplicate @next,
// misplaced @if) are accumulated, never fatal, so a single pass reports
// everything wrong with a script.
package parser

import (
	"github.com/aretw0/varion/internal/scanner"
	"github.com/aretw0/varion/pkg/script"
)

// pending tracks an `@if` line waiting for the choice it guards.
type pending struct {
	expr string
	line int
}

// Parse consumes the classified line stream and yields one Node per header
// group, preserving source order. The nodes are not yet cross-validated;
// duplicate ids and dangling targets are the validator's concern.
func Parse(lines []scanner.Line) ([]*script.Node, *script.ErrorList) {
	var (
		nodes   []*script.Node
		current *script.Node
		cond    *pending
	)
	errs := &script.ErrorList{}

	flushCond := func(reason string) {
		if cond != nil {
			errs.Add(script.Errorf(script.KindDanglingCondition, cond.line, nodeID(current),
				"@if must be immediately followed by a choice, not %s", reason))
			cond = nil
		}
	}

	for _, line := range lines {
		if line.Kind == scanner.KindHeader {
			flushCond("a new node")
			if current != nil {
				nodes = append(nodes, current)
			}
			current = &script.Node{ID: line.Text, Line: line.Number}
			continue
		}

		if current == nil {
			errs.Add(script.Errorf(script.KindContentOutsideNode, line.Number, "",
				"content found outside of a node declaration; every line must belong to a node starting with %q", "::"))
			continue
		}

		switch line.Kind {
		case scanner.KindTag:
			flushCond("a tag line")
			current.Tags = append(current.Tags, line.Text)

		case scanner.KindMeta:
			flushCond("a meta line")
			if current.Meta == nil {
				current.Meta = make(map[string]string)
			}
			current.Meta[line.Key] = line.Value

		case scanner.KindAction:
			flushCond("an action line")
			current.Actions = append(current.Actions, script.Action{Command: line.Text})

		case scanner.KindDirective:
			flushCond("a directive line")
			if current.Next != "" {
				errs.Add(script.Errorf(script.KindDuplicateDirective, line.Number, current.ID,
					"@next declared more than once (already set to %q)", current.Next))
				continue
			}
			current.Next = line.Text

		case scanner.KindCondition:
			if cond != nil {
				errs.Add(script.Errorf(script.KindDanglingCondition, cond.line, current.ID,
					"consecutive @if conditions are not allowed"))
			}
			cond = &pending{expr: line.Text, line: line.Number}

		case scanner.KindChoice:
			choice := script.Choice{
				Label:     line.Label,
				Target:    line.Target,
				Condition: line.Condition,
			}
			if cond != nil {
				if choice.Condition != "" {
					errs.Add(script.Errorf(script.KindConflictingCondition, line.Number, current.ID,
						"a choice cannot have both a preceding @if and an inline @if"))
				} else {
					choice.Condition = cond.expr
				}
				cond = nil
			}
			current.Choices = append(current.Choices, choice)

		case scanner.KindText:
			flushCond("body text")
			current.Text = append(current.Text, line.Text)
		}
	}

	flushCond("end of script")
	if current != nil {
		nodes = append(nodes, current)
	}

	return nodes, errs
}

func nodeID(n *script.Node) string {
	if n == nil {
		return ""
	}
	return n.ID
}

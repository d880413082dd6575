package script

import "strings"

// ExitKind describes the outgoing-edge mechanism of a node.
type ExitKind int

const (
	// ExitNone marks a sink node: no directive, no choices.
	ExitNone ExitKind = iota
	// ExitNext marks a node with an explicit `@next` continuation.
	ExitNext
	// ExitChoices marks a node that branches via player-facing choices.
	ExitChoices
)

// Choice is a labeled option presented to the player.
// Order inside a node is presentation order and must be preserved.
type Choice struct {
	Label     string `json:"label" yaml:"label"`
	Target    string `json:"target" yaml:"target"`
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// Action is a host-executed command attached to a node (`@action: ...`).
// The core never interprets commands; it only carries them.
type Action struct {
	Command string `json:"command" yaml:"command"`
}

// Node is one named unit of script content.
//
// Next and Choices are mutually exclusive on any node that survives
// validation; use ExitKind to branch on the mechanism.
type Node struct {
	ID   string `json:"id" yaml:"id"`
	Line int    `json:"line" yaml:"line"` // source line of the `::` header

	// Text holds the display-text lines in source order.
	Text []string `json:"text,omitempty" yaml:"text,omitempty"`

	// Tags collects `#` lines. Set semantics: duplicates are harmless,
	// order is not significant.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Meta holds `@key: value` pairs (e.g. who, background).
	Meta map[string]string `json:"meta,omitempty" yaml:"meta,omitempty"`

	// Actions holds `@action:` commands in source order.
	Actions []Action `json:"actions,omitempty" yaml:"actions,omitempty"`

	// Next is the target of an explicit `@next` directive, if any.
	Next string `json:"next,omitempty" yaml:"next,omitempty"`

	// Choices holds the branching options in declaration order.
	Choices []Choice `json:"choices,omitempty" yaml:"choices,omitempty"`
}

// ExitKind reports how control leaves this node.
func (n *Node) ExitKind() ExitKind {
	switch {
	case len(n.Choices) > 0:
		return ExitChoices
	case n.Next != "":
		return ExitNext
	default:
		return ExitNone
	}
}

// Body joins the text lines into a single displayable block.
func (n *Node) Body() string {
	return strings.Join(n.Text, "\n")
}

// HasTag reports whether the node carries the given tag.
func (n *Node) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

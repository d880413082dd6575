package script

import "errors"

// ErrSessionNotFound is returned by session stores when an id is unknown.
var ErrSessionNotFound = errors.New("session not found")

// State is a snapshot of one playback session over a Graph.
// The graph itself is immutable; all mutable progress lives here.
type State struct {
	SessionID     string `json:"session_id"`
	CurrentNodeID string `json:"current_node_id"`

	// Vars holds host-managed variables, consulted by condition evaluators.
	Vars map[string]any `json:"vars,omitempty"`

	// History tracks the path taken, starting at the entry node.
	History []string `json:"history,omitempty"`

	// Terminated is set when a sink node (no next, no choices) is reached.
	Terminated bool `json:"terminated"`
}

// NewState creates a clean session state positioned at startNodeID.
func NewState(sessionID, startNodeID string) *State {
	return &State{
		SessionID:     sessionID,
		CurrentNodeID: startNodeID,
		Vars:          make(map[string]any),
		History:       []string{startNodeID},
	}
}

// Clone returns a deep copy so stores and callers cannot alias each other.
func (s *State) Clone() *State {
	c := *s
	c.Vars = make(map[string]any, len(s.Vars))
	for k, v := range s.Vars {
		c.Vars[k] = v
	}
	c.History = make([]string, len(s.History))
	copy(c.History, s.History)
	return &c
}

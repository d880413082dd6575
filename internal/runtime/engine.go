// Package runtime walks a validated script graph interactively.
//
// The engine itself is stateless: every call takes the session state in and
// hands a new state back, which makes concurrent sessions over one shared
// Graph safe without coordination. Persistence is delegated to a
// ports.SessionStore.
package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/varion/internal/logging"
	"github.com/aretw0/varion/pkg/ports"
	"github.com/aretw0/varion/pkg/script"
)

// ConditionEvaluator decides whether a choice guarded by an `@if` expression
// is available. Expression semantics belong to the host; the engine only
// asks yes or no.
type ConditionEvaluator func(expr string, vars map[string]any) (bool, error)

// View is what a frontend needs to present one node.
type View struct {
	Node     *script.Node    `json:"node"`
	Body     string          `json:"body"`
	Choices  []script.Choice `json:"choices"` // only the available ones, source order
	Terminal bool            `json:"terminal"`
}

// Engine drives playback over an immutable Graph.
type Engine struct {
	graph     *script.Graph
	store     ports.SessionStore
	evaluator ConditionEvaluator
	entry     string
	logger    *slog.Logger
}

// Option configures the engine.
type Option func(*Engine)

// WithStore sets the session store used by Start/Resume/Choose.
func WithStore(store ports.SessionStore) Option {
	return func(e *Engine) { e.store = store }
}

// WithConditionEvaluator sets a custom evaluator for choice conditions.
func WithConditionEvaluator(eval ConditionEvaluator) Option {
	return func(e *Engine) { e.evaluator = eval }
}

// WithEntryNode overrides the entry node (default: first node in source order).
func WithEntryNode(id string) Option {
	return func(e *Engine) { e.entry = id }
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine over a validated graph.
func NewEngine(graph *script.Graph, opts ...Option) *Engine {
	e := &Engine{
		graph:  graph,
		entry:  graph.Entry(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Graph exposes the underlying graph for introspection (visualization, export).
func (e *Engine) Graph() *script.Graph {
	return e.graph
}

// Start creates a fresh session positioned at the entry node and persists it
// if a store is configured.
func (e *Engine) Start(ctx context.Context, sessionID string) (*script.State, error) {
	if e.entry == "" {
		return nil, fmt.Errorf("graph has no entry node")
	}
	if e.graph.Get(e.entry) == nil {
		return nil, fmt.Errorf("entry node %q not present in graph", e.entry)
	}

	state := script.NewState(sessionID, e.entry)
	state.Terminated = e.graph.Get(e.entry).ExitKind() == script.ExitNone

	if err := e.persist(ctx, state); err != nil {
		return nil, err
	}
	e.logger.Debug("session started", "session", sessionID, "node", e.entry)
	return state, nil
}

// Resume loads a previously persisted session.
func (e *Engine) Resume(ctx context.Context, sessionID string) (*script.State, error) {
	if e.store == nil {
		return nil, fmt.Errorf("no session store configured")
	}
	return e.store.Load(ctx, sessionID)
}

// Render produces the view for the current node without transitioning.
// Choices whose condition evaluates false are filtered out; source order of
// the remaining ones is preserved.
func (e *Engine) Render(ctx context.Context, state *script.State) (*View, error) {
	node := e.graph.Get(state.CurrentNodeID)
	if node == nil {
		return nil, fmt.Errorf("state points at unknown node %q", state.CurrentNodeID)
	}

	available := make([]script.Choice, 0, len(node.Choices))
	for _, c := range node.Choices {
		ok, err := e.evaluate(c.Condition, state.Vars)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate condition %q on node %q: %w", c.Condition, node.ID, err)
		}
		if ok {
			available = append(available, c)
		}
	}

	return &View{
		Node:     node,
		Body:     node.Body(),
		Choices:  available,
		Terminal: node.ExitKind() == script.ExitNone,
	}, nil
}

// Advance follows the node's @next directive. It is an error to call it on a
// choice node or a sink node.
func (e *Engine) Advance(ctx context.Context, state *script.State) (*script.State, error) {
	node := e.graph.Get(state.CurrentNodeID)
	if node == nil {
		return nil, fmt.Errorf("state points at unknown node %q", state.CurrentNodeID)
	}
	if node.ExitKind() != script.ExitNext {
		return nil, fmt.Errorf("node %q has no @next directive to follow", node.ID)
	}
	return e.moveTo(ctx, state, node.Next)
}

// Choose picks a choice by its index into the *available* choices of the
// current render (not the raw declaration list, which may include filtered
// conditional choices).
func (e *Engine) Choose(ctx context.Context, state *script.State, index int) (*script.State, error) {
	view, err := e.Render(ctx, state)
	if err != nil {
		return nil, err
	}
	if len(view.Choices) == 0 {
		return nil, fmt.Errorf("node %q offers no choices", state.CurrentNodeID)
	}
	if index < 0 || index >= len(view.Choices) {
		return nil, fmt.Errorf("choice index %d out of range (node %q has %d available)", index, state.CurrentNodeID, len(view.Choices))
	}
	return e.moveTo(ctx, state, view.Choices[index].Target)
}

// Step follows whichever single continuation the current node has: Advance
// for @next nodes, nothing for sinks. Choice nodes require Choose.
func (e *Engine) Step(ctx context.Context, state *script.State) (*script.State, error) {
	node := e.graph.Get(state.CurrentNodeID)
	if node == nil {
		return nil, fmt.Errorf("state points at unknown node %q", state.CurrentNodeID)
	}
	switch node.ExitKind() {
	case script.ExitNext:
		return e.Advance(ctx, state)
	case script.ExitChoices:
		return nil, fmt.Errorf("node %q branches on choices; call Choose", node.ID)
	default:
		next := state.Clone()
		next.Terminated = true
		if err := e.persist(ctx, next); err != nil {
			return nil, err
		}
		return next, nil
	}
}

// End deletes the session from the store, if any.
func (e *Engine) End(ctx context.Context, sessionID string) error {
	if e.store == nil {
		return nil
	}
	return e.store.Delete(ctx, sessionID)
}

func (e *Engine) moveTo(ctx context.Context, state *script.State, target string) (*script.State, error) {
	// Validated graphs cannot dangle; a miss here means the state and graph
	// are from different scripts.
	node := e.graph.Get(target)
	if node == nil {
		return nil, fmt.Errorf("transition target %q not present in graph", target)
	}

	next := state.Clone()
	next.CurrentNodeID = target
	next.History = append(next.History, target)
	next.Terminated = node.ExitKind() == script.ExitNone

	if err := e.persist(ctx, next); err != nil {
		return nil, err
	}
	e.logger.Debug("session moved", "session", next.SessionID, "node", target, "terminated", next.Terminated)
	return next, nil
}

func (e *Engine) evaluate(expr string, vars map[string]any) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.evaluator == nil {
		// Conditions are host semantics; without an evaluator every choice
		// stays visible so drafts remain playable.
		return true, nil
	}
	return e.evaluator(expr, vars)
}

func (e *Engine) persist(ctx context.Context, state *script.State) error {
	if e.store == nil || state.SessionID == "" {
		return nil
	}
	if err := e.store.Save(ctx, state.SessionID, state); err != nil {
		return fmt.Errorf("failed to persist session %q: %w", state.SessionID, err)
	}
	return nil
}

package varion

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/varion/internal/logging"
	"github.com/aretw0/varion/internal/parser"
	"github.com/aretw0/varion/internal/runtime"
	"github.com/aretw0/varion/internal/scanner"
	"github.com/aretw0/varion/internal/validator"
	"github.com/aretw0/varion/pkg/adapters/file"
	"github.com/aretw0/varion/pkg/ports"
	"github.com/aretw0/varion/pkg/script"
)

// Version is the library version, surfaced by the CLI and the adapters.
var Version = "0.3.0"

// Parse runs the full pipeline over raw script text: scan, group into
// nodes, validate the whole graph. On failure the returned error is a
// *script.ErrorList carrying every problem found in one pass; no partial
// graph is ever returned.
func Parse(source string) (*script.Graph, error) {
	lines, errs := scanner.Scan(source)

	nodes, parseErrs := parser.Parse(lines)
	errs.Merge(parseErrs)

	// Validation runs even when earlier stages failed, so the author sees
	// dangling references and duplicate ids alongside lexical problems.
	graph, valErrs := validator.Validate(nodes)
	errs.Merge(valErrs)

	if !errs.Empty() {
		return nil, errs
	}
	return graph, nil
}

// ParseFile reads and parses a .va script from disk.
func ParseFile(path string) (*script.Graph, error) {
	return ParseSource(file.NewSource(path))
}

// ParseSource parses a script obtained from any ScriptSource.
func ParseSource(src ports.ScriptSource) (*script.Graph, error) {
	text, origin, err := src.Read()
	if err != nil {
		return nil, err
	}
	graph, err := Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", origin, err)
	}
	return graph, nil
}

// Engine is the high-level playback entry point. It wraps the internal
// runtime with a simplified, option-configured API.
type Engine struct {
	*runtime.Engine
	logger      *slog.Logger
	store       ports.SessionStore
	evaluator   runtime.ConditionEvaluator
	entryNodeID string
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithStore sets the session store used to persist playback state.
func WithStore(store ports.SessionStore) Option {
	return func(e *Engine) { e.store = store }
}

// WithConditionEvaluator sets the evaluator consulted for `@if` choices.
func WithConditionEvaluator(eval runtime.ConditionEvaluator) Option {
	return func(e *Engine) { e.evaluator = eval }
}

// WithEntryNode overrides the entry node (default: first declared node).
func WithEntryNode(nodeID string) Option {
	return func(e *Engine) { e.entryNodeID = nodeID }
}

// New parses the script at path and builds a playback engine over it.
func New(path string, opts ...Option) (*Engine, error) {
	graph, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return NewFromGraph(graph, opts...), nil
}

// NewFromGraph builds a playback engine over an already validated graph.
func NewFromGraph(graph *script.Graph, opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	runtimeOpts := []runtime.Option{
		runtime.WithLogger(eng.logger),
	}
	if eng.store != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithStore(eng.store))
	}
	if eng.evaluator != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithConditionEvaluator(eng.evaluator))
	}
	if eng.entryNodeID != "" {
		runtimeOpts = append(runtimeOpts, runtime.WithEntryNode(eng.entryNodeID))
	}

	eng.Engine = runtime.NewEngine(graph, runtimeOpts...)
	return eng
}

package varion

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ContentRenderer transforms node body text before it is written, e.g. a
// TUI markdown renderer. The core stays decoupled from presentation.
type ContentRenderer func(string) (string, error)

// Runner drives the playback loop of an Engine over the provided IO.
// Keeping IO injectable makes the loop testable and reusable across
// frontends (plain CLI, TUI, scripted playback).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Renderer ContentRenderer
}

// Run plays the script until a sink node is reached or input ends.
// Choice nodes prompt for a 1-based index; `@next` nodes continue on Enter.
func (r *Runner) Run(ctx context.Context, engine *Engine, sessionID string) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lines := bufio.NewReader(r.Input)

	state, err := engine.Start(ctx, sessionID)
	if err != nil {
		return err
	}

	for {
		view, err := engine.Render(ctx, state)
		if err != nil {
			return err
		}

		body := view.Body
		if r.Renderer != nil {
			if rendered, rerr := r.Renderer(body); rerr == nil {
				body = rendered
			}
		}
		fmt.Fprintln(r.Output, body)

		if view.Terminal {
			return nil
		}

		if len(view.Choices) == 0 {
			// @next node: pause so the player can read, then continue.
			fmt.Fprint(r.Output, "[Enter to continue] ")
			if _, err := lines.ReadString('\n'); err != nil {
				return nil // EOF ends the session quietly
			}
			state, err = engine.Advance(ctx, state)
			if err != nil {
				return err
			}
			continue
		}

		for i, c := range view.Choices {
			fmt.Fprintf(r.Output, "  %d) %s\n", i+1, c.Label)
		}
		fmt.Fprint(r.Output, "> ")

		text, err := lines.ReadString('\n')
		if err != nil {
			return nil
		}
		text = strings.TrimSpace(text)
		if text == "exit" || text == "quit" {
			return nil
		}

		index, err := strconv.Atoi(text)
		if err != nil || index < 1 || index > len(view.Choices) {
			fmt.Fprintf(r.Output, "Pick a number between 1 and %d.\n", len(view.Choices))
			continue
		}

		state, err = engine.Choose(ctx, state, index-1)
		if err != nil {
			return err
		}
	}
}

/*
Package varion parses, validates and plays Varion branching-narrative
scripts (.va files).

A script is a sequence of named nodes. Each node carries display text,
optional tags and meta pairs, and exactly one outgoing-edge mechanism: an
explicit `@next` continuation, a list of player-facing choices, or nothing
(a sink). The parser turns raw text into a validated, immutable NodeGraph;
the runtime walks that graph interactively.

# Grammar

The external file format is line-oriented:

	// A comment. The whole line is discarded.

	:: start
	# greeting
	@who: NPC
	@action: set visited = 1
	Welcome, traveler. What brings you here?

	* I need help!  => ask_help
	* Just passing. => end @if reputation < 3

	:: ask_help
	You came to the right place.
	@next end

	:: end
	Farewell.

Markers: `::` opens a node and names it; `#` adds a tag (set semantics);
`@key: value` adds a meta pair; `@action:` records a host command; `@next`
names the single next node; `*` declares a choice as `label => target`, with
an optional `@if expr` condition either inline after the target or on the
preceding line. Everything else is display text, order preserved.

A node may use `@next` or choices, never both. Parsing collects every
problem in the script, not just the first:

	graph, err := varion.Parse(source)
	if err != nil {
		if list, ok := script.AsErrorList(err); ok {
			for _, e := range list.Errors {
				fmt.Println(e)
			}
		}
		return
	}
	fmt.Println(graph.Entry())

# Playback

The validated graph is immutable and safe to share. Wrap it in an Engine to
run sessions:

	eng, err := varion.New("story.va")
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	state, _ := eng.Start(ctx, "session-123")
	for {
		view, _ := eng.Render(ctx, state)
		fmt.Println(view.Body)
		if view.Terminal {
			break
		}
		if len(view.Choices) > 0 {
			// present view.Choices, read an index...
			state, _ = eng.Choose(ctx, state, 0)
			continue
		}
		state, _ = eng.Advance(ctx, state)
	}
*/
package varion

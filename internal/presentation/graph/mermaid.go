package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/varion/pkg/script"
)

// GenerateMermaid produces a Mermaid flowchart (graph TD) from a validated
// script graph. Shapes carry semantics:
//   - Entry node: ((circle))
//   - Choice node: {diamond}
//   - Sink node: [rectangle] with a bold border class
//
// Edges: `@next` continuations are plain arrows; choices are labeled with
// their (possibly truncated) label, conditions dotted.
func GenerateMermaid(g *script.Graph) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range g.Nodes() {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch {
		case node.ID == g.Entry():
			opener, closer = "((", "))"
		case node.ExitKind() == script.ExitChoices:
			opener, closer = "{", "}"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, node.ID, closer))

		if node.Next != "" {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeID, sanitizeMermaidID(node.Next)))
		}
		for _, c := range node.Choices {
			label := strings.ReplaceAll(truncate(c.Label, 24), "\"", "'")
			arrow := fmt.Sprintf("-- \"%s\" -->", label)
			if c.Condition != "" {
				// Conditional choices render dotted so authors spot gating.
				arrow = fmt.Sprintf("-. \"%s\" .->", label)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, sanitizeMermaidID(c.Target)))
		}
	}

	return sb.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_")
	return r.Replace(id)
}

// Package mcp exposes Varion as a Model Context Protocol server, so agent
// hosts can parse scripts and inspect the loaded graph as tools.
package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/varion"
	"github.com/aretw0/varion/internal/presentation/graph"
	"github.com/aretw0/varion/internal/runtime"
	"github.com/aretw0/varion/pkg/script"
)

// Server wraps a playback engine and exposes it over MCP.
type Server struct {
	engine    *runtime.Engine
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server. The engine may be nil; the stateless
// parse tools still work without a loaded script.
func NewServer(engine *runtime.Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("varion-mcp", strings.TrimSpace(varion.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	parseTool := mcp.NewTool("parse_script",
		mcp.WithDescription("Parse and validate a Varion script; returns the node graph as JSON, or the full error set."),
		mcp.WithString("source", mcp.Required(), mcp.Description("Raw Varion script text (.va)")),
	)
	s.mcpServer.AddTool(parseTool, s.handleParseScript)

	mermaidTool := mcp.NewTool("render_graph",
		mcp.WithDescription("Render a Varion script (or the loaded script if no source is given) as a Mermaid flowchart."),
		mcp.WithString("source", mcp.Description("Raw Varion script text; optional when a script is loaded")),
	)
	s.mcpServer.AddTool(mermaidTool, s.handleRenderGraph)
}

func (s *Server) registerResources() {
	if s.engine == nil {
		return
	}
	resource := mcp.NewResource("varion://nodes", "Script nodes",
		mcp.WithResourceDescription("All node ids of the loaded script, entry node first."),
		mcp.WithMIMEType("application/json"),
	)
	s.mcpServer.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		payload, err := json.Marshal(map[string]any{
			"entry": s.engine.Graph().Entry(),
			"ids":   s.engine.Graph().IDs(),
		})
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "varion://nodes",
				MIMEType: "application/json",
				Text:     string(payload),
			},
		}, nil
	})
}

func (s *Server) handleParseScript(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := req.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	g, err := varion.Parse(source)
	if err != nil {
		if list, ok := script.AsErrorList(err); ok {
			payload, merr := json.Marshal(map[string]any{"valid": false, "errors": list.Errors})
			if merr != nil {
				return nil, merr
			}
			return mcp.NewToolResultText(string(payload)), nil
		}
		return nil, err
	}

	payload, err := json.Marshal(map[string]any{
		"valid": true,
		"entry": g.Entry(),
		"nodes": g.Nodes(),
	})
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func (s *Server) handleRenderGraph(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source := req.GetString("source", "")

	var g *script.Graph
	switch {
	case source != "":
		parsed, err := varion.Parse(source)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		g = parsed
	case s.engine != nil:
		g = s.engine.Graph()
	default:
		return mcp.NewToolResultError("no source given and no script loaded"), nil
	}

	return mcp.NewToolResultText(graph.GenerateMermaid(g)), nil
}

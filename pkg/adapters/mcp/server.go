// Package mcp exposes the solver as a Model Context Protocol server, so
// agent frontends can run equilibrium cases as a tool call.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/felixlaga/atmodeller"
	"github.com/felixlaga/atmodeller/pkg/adapters/httpapi"
	"github.com/felixlaga/atmodeller/pkg/eos"
	"github.com/felixlaga/atmodeller/pkg/solubility"
)

// ModelsResponse lists the model names a solve request may reference.
type ModelsResponse struct {
	Activity   []string `json:"activity" jsonschema_description:"Available activity model names"`
	Solubility []string `json:"solubility" jsonschema_description:"Available solubility model names"`
}

// Server exposes the solver over MCP.
type Server struct {
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(logger *slog.Logger) *Server {
	s := &Server{
		logger:    logger,
		mcpServer: server.NewMCPServer("atmodeller-mcp", strings.TrimSpace(atmodeller.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	solveTool := mcp.NewTool("solve_equilibrium",
		mcp.WithDescription("Solve interior-atmosphere chemical equilibrium for a set of species and constraints. The case is a JSON object with species, planet, mass_constraints, fugacity_constraints and parameters."),
		mcp.WithString("case", mcp.Required(), mcp.Description("JSON solve case, same schema as the HTTP API POST /v1/solve body")),
		mcp.WithOutputSchema[httpapi.SolveResponse](),
	)
	s.mcpServer.AddTool(solveTool, mcp.NewStructuredToolHandler(s.handleSolve))

	modelsTool := mcp.NewTool("list_models",
		mcp.WithDescription("List the available activity and solubility model names."),
		mcp.WithOutputSchema[ModelsResponse](),
	)
	s.mcpServer.AddTool(modelsTool, mcp.NewStructuredToolHandler(s.handleListModels))
}

func (s *Server) handleSolve(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (httpapi.SolveResponse, error) {
	raw, _ := args["case"].(string)

	var body httpapi.SolveRequest
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return httpapi.SolveResponse{}, fmt.Errorf("invalid case JSON: %w", err)
	}

	out, err := httpapi.RunCase(ctx, s.logger, &body)
	if err != nil {
		s.logger.Warn("mcp solve failed", "err", err)
		return httpapi.SolveResponse{}, err
	}
	return *out, nil
}

func (s *Server) handleListModels(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ModelsResponse, error) {
	var resp ModelsResponse
	for name := range eos.Models() {
		resp.Activity = append(resp.Activity, name)
	}
	for name := range solubility.Models() {
		resp.Solubility = append(resp.Solubility, name)
	}
	return resp, nil
}

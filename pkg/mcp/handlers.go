package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/routejump/pkg/jump"
)

const configHint = "Set the command with `routejump config set-command <command>` " +
	"or the ROUTEJUMP_ARTISAN_COMMAND environment variable."

func (s *Server) handleFindRoute(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, ok := stringArg(req, "url")
	if !ok {
		return mcp.NewToolResultError("url argument required"), nil
	}

	result, err := s.service.Find(ctx, url)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(result)
}

func (s *Server) handleJumpToRoute(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, ok := stringArg(req, "url")
	if !ok {
		return mcp.NewToolResultError("url argument required"), nil
	}
	method, _ := stringArg(req, "method")

	target, err := s.service.Jump(ctx, url, jump.FixedMethod(method))
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(target)
}

func (s *Server) handleListRoutes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter, _ := stringArg(req, "filter")

	routes, err := s.service.Routes(ctx, filter)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(routes)
}

// stringArg returns a trimmed, non-empty string argument.
func stringArg(req mcp.CallToolRequest, name string) (string, bool) {
	v, ok := req.GetArguments()[name].(string)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// toolError renders a workflow failure as a tool-level error. Configuration
// problems carry a hint on how to fix the command.
func toolError(err error) *mcp.CallToolResult {
	msg := err.Error()
	if jump.IsConfigurationError(err) {
		msg += "\n\n" + configHint
	}
	return mcp.NewToolResultError(msg)
}

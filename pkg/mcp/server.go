// Package mcp exposes the route jump workflow as MCP tools over stdio.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/routejump/pkg/jump"
	"github.com/gnana997/routejump/pkg/mcplog"
)

// Version is reported to MCP clients. Overridden at build time.
var Version = "0.1.0-dev"

// JumpService is the workflow the tools call into.
type JumpService interface {
	Find(ctx context.Context, url string) (*jump.FindResult, error)
	Jump(ctx context.Context, url string, chooser jump.MethodChooser) (*jump.Target, error)
	Routes(ctx context.Context, filter string) ([]jump.RouteEntry, error)
}

// Server implements the MCP server for routejump.
type Server struct {
	mcpServer *server.MCPServer
	service   JumpService
	logger    *mcplog.Logger // nil disables call logging
}

// NewServer creates an MCP server backed by svc. A nil logger disables the
// JSONL call log.
func NewServer(svc JumpService, logger *mcplog.Logger) *Server {
	s := &Server{service: svc, logger: logger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("routejump", Version, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: findRouteTool(), Handler: s.handleFindRoute},
		server.ServerTool{Tool: jumpToRouteTool(), Handler: s.handleJumpToRoute},
		server.ServerTool{Tool: listRoutesTool(), Handler: s.handleListRoutes},
	)

	return s
}

// MCPServer returns the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

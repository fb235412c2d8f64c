package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool names.
const (
	ToolFindRoute   = "find_route"
	ToolJumpToRoute = "jump_to_route"
	ToolListRoutes  = "list_routes"
)

// RegisteredTools returns the names of the tools the server exposes.
func RegisteredTools() []string {
	return []string{ToolFindRoute, ToolJumpToRoute, ToolListRoutes}
}

func findRouteTool() mcp.Tool {
	return mcp.NewTool(ToolFindRoute,
		mcp.WithDescription("Match a URL or path against the Laravel route table. "+
			"Returns the outcome (single, ambiguous, not_navigable, no_route), the matched routes, "+
			"the HTTP method to controller action mapping, and close suggestions when nothing matched."),
		mcp.WithString("url", mcp.Required(),
			mcp.Description("Full URL (https://app.test/users/1?x=y) or path (users/1)")),
	)
}

func jumpToRouteTool() mcp.Tool {
	return mcp.NewTool(ToolJumpToRoute,
		mcp.WithDescription("Resolve a URL to the controller method that handles it and return its file, line and column."),
		mcp.WithString("url", mcp.Required(),
			mcp.Description("Full URL or path to resolve")),
		mcp.WithString("method",
			mcp.Description("HTTP method to use when different methods reach different actions (e.g. GET, POST)")),
	)
}

func listRoutesTool() mcp.Tool {
	return mcp.NewTool(ToolListRoutes,
		mcp.WithDescription("List the project's routes with normalized HTTP methods."),
		mcp.WithString("filter",
			mcp.Description("Case-insensitive substring matched against uri, route name and action")),
	)
}

package main

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// binaryPath is set by TestMain after building the binary.
var binaryPath string

func TestMain(m *testing.M) {
	if os.Getenv("INTEGRATION") == "" {
		// Run non-integration tests normally.
		os.Exit(m.Run())
	}

	// Build the binary once for all integration tests.
	tmp, err := os.MkdirTemp("", "routejump-integration-*")
	if err != nil {
		panic(err)
	}

	binaryPath = filepath.Join(tmp, "routejump")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		os.RemoveAll(tmp)
		panic("failed to build binary: " + err.Error())
	}

	code := m.Run()
	os.RemoveAll(tmp)
	os.Exit(code)
}

// --- helpers ---

func skipIfNotIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("set INTEGRATION=1 to run integration tests")
	}
}

// startServer launches routejump serve for a fixture project and returns an
// initialized MCP client.
func startServer(t *testing.T, root string, extraArgs ...string) *client.Client {
	t.Helper()

	args := append([]string{"serve", "--root", root}, extraArgs...)
	c, err := client.NewStdioMCPClient(binaryPath, []string{"ROUTEJUMP_ARTISAN_COMMAND="}, args...)
	require.NoError(t, err, "failed to start MCP server")

	t.Cleanup(func() {
		c.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "routejump-integration-test",
		Version: "1.0.0",
	}

	result, err := c.Initialize(ctx, initReq)
	require.NoError(t, err, "failed to initialize MCP session")
	assert.Equal(t, "routejump", result.ServerInfo.Name)

	return c
}

func callToolHelper(t *testing.T, c *client.Client, toolName string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req := mcp.CallToolRequest{}
	req.Params.Name = toolName
	if args != nil {
		req.Params.Arguments = args
	}

	result, err := c.CallTool(ctx, req)
	require.NoError(t, err, "CallTool(%s) failed", toolName)
	return result
}

func extractJSON(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content, "expected content in result")
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

// integrationProject writes a fixture project whose configured command
// prints the listing from routes.json.
func integrationProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	controller := filepath.Join(root, "app", "Http", "Controllers", "UserController.php")
	require.NoError(t, os.MkdirAll(filepath.Dir(controller), 0755))
	require.NoError(t, os.WriteFile(controller, []byte(testController), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "routes.json"), []byte(testListing), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".routejump"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".routejump", "config.yaml"),
		[]byte("artisan_command: \"cat routes.json #\"\n"), 0644))
	return root
}

// --- integration tests ---

func TestIntegration_ListTools(t *testing.T) {
	skipIfNotIntegration(t)
	c := startServer(t, integrationProject(t))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	require.NoError(t, err)

	toolNames := make([]string, len(tools.Tools))
	for i, tool := range tools.Tools {
		toolNames[i] = tool.Name
	}
	assert.ElementsMatch(t, []string{"find_route", "jump_to_route", "list_routes"}, toolNames)
}

func TestIntegration_JumpToRoute(t *testing.T) {
	skipIfNotIntegration(t)
	c := startServer(t, integrationProject(t))

	result := callToolHelper(t, c, "jump_to_route", map[string]any{"url": "https://app.test/users/9", "method": "PUT"})
	require.False(t, result.IsError, extractJSON(t, result))

	var target map[string]any
	require.NoError(t, json.Unmarshal([]byte(extractJSON(t, result)), &target))
	location := target["location"].(map[string]any)
	assert.Equal(t, "app/Http/Controllers/UserController.php", location["rel_path"])
	assert.Equal(t, float64(11), location["line"])
}

func TestIntegration_FindRouteAmbiguous(t *testing.T) {
	skipIfNotIntegration(t)
	c := startServer(t, integrationProject(t))

	result := callToolHelper(t, c, "find_route", map[string]any{"url": "/users/9"})
	require.False(t, result.IsError)

	var found map[string]any
	require.NoError(t, json.Unmarshal([]byte(extractJSON(t, result)), &found))
	assert.Equal(t, "ambiguous", found["resolution"].(map[string]any)["outcome"])
}

func TestIntegration_ConfigReload(t *testing.T) {
	skipIfNotIntegration(t)
	root := integrationProject(t)
	c := startServer(t, root)

	// Break the command; the watcher picks the change up.
	require.NoError(t, os.WriteFile(filepath.Join(root, ".routejump", "config.yaml"),
		[]byte("artisan_command: \"\"\n"), 0644))

	require.Eventually(t, func() bool {
		result := callToolHelper(t, c, "list_routes", nil)
		return result.IsError
	}, 5*time.Second, 100*time.Millisecond)

	result := callToolHelper(t, c, "list_routes", nil)
	assert.Contains(t, extractJSON(t, result), "routejump config set-command")
}

func TestIntegration_CallLog(t *testing.T) {
	skipIfNotIntegration(t)
	logFile := filepath.Join(t.TempDir(), "calls.jsonl")
	c := startServer(t, integrationProject(t), "--log-file", logFile)

	callToolHelper(t, c, "list_routes", map[string]any{"filter": "users"})

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tool":"list_routes"`)
	assert.Contains(t, string(data), `"outcome":"ok"`)
}

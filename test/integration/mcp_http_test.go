package integration_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/quotestudio/internal/domain/suggest"
	"github.com/rpggio/quotestudio/internal/repository/mocks"
	"github.com/rpggio/quotestudio/internal/testserver"
)

func connectMCP(t *testing.T, ts *testserver.TestServer, token string) (*sdkmcp.ClientSession, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: testserver.BearerClient(token),
	}, nil)
	if err == nil {
		t.Cleanup(func() { _ = session.Close() })
	}
	return session, err
}

func toolJSON(t *testing.T, result *sdkmcp.CallToolResult, out any) {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	require.False(t, result.IsError, text.Text)
	require.NoError(t, json.Unmarshal([]byte(text.Text), out))
}

func TestMCPHTTP_ToolsAndDocs(t *testing.T) {
	ts := testserver.New(t, "token", "owner1")
	session, err := connectMCP(t, ts, ts.Token)
	require.NoError(t, err)
	ctx := context.Background()

	require.Equal(t, "quotestudio", session.InitializeResult().ServerInfo.Name)

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	names := map[string]bool{}
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	for _, name := range []string{"get_workspace", "add_item", "apply_rate", "get_quote", "suggest_items", "export_quote"} {
		require.True(t, names[name], "missing tool %s", name)
	}

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "create_project",
		Arguments: map[string]any{"projectName": "Over MCP"},
	})
	require.NoError(t, err)
	var created struct {
		ID string `json:"id"`
	}
	toolJSON(t, result, &created)

	// The JSON-RPC surface and the MCP surface share one workspace.
	require.Equal(t, created.ID, ts.Workspaces.Workspace(ctx, "owner1").ActiveProject.ID)

	res, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "quotestudio://docs/pricing"})
	require.NoError(t, err)
	require.Contains(t, res.Contents[0].Text, "preTaxQuote")
}

func TestMCPHTTP_RejectsUnknownToken(t *testing.T) {
	ts := testserver.New(t, "token", "owner1")
	session, err := connectMCP(t, ts, "wrong")
	if err != nil {
		return
	}
	_, err = session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: "list_projects"})
	require.ErrorContains(t, err, "unauthorized")
}

func TestMCPHTTP_SuggestItems(t *testing.T) {
	suggester := new(mocks.Suggester)
	suggester.On("Suggest", mock.Anything, "15s teaser").Return([]suggest.Suggestion{
		{Name: "Storyboard Artist", Description: "frames", Category: "創意策略", SuggestedUnitPrice: 4000, SuggestedQuantity: 3},
		{Name: "Mixer", Category: "unknown", SuggestedUnitPrice: 3000, SuggestedQuantity: 1},
	}, nil)

	ts := testserver.NewWithOptions(t, "token", "owner1", testserver.Options{Suggester: suggester})
	session, err := connectMCP(t, ts, ts.Token)
	require.NoError(t, err)

	result, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "suggest_items",
		Arguments: map[string]any{"prompt": "15s teaser"},
	})
	require.NoError(t, err)

	var resp struct {
		Added []struct {
			Name     string `json:"name"`
			Remark   string `json:"remark"`
			Category string `json:"category"`
		} `json:"added"`
	}
	toolJSON(t, result, &resp)
	require.Len(t, resp.Added, 2)
	require.Equal(t, "frames", resp.Added[0].Remark)
	require.Equal(t, "其他", resp.Added[1].Category)
}

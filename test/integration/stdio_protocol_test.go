package integration_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// serverBinary locates the built server, skipping when it has not been built.
func serverBinary(t *testing.T) string {
	t.Helper()
	for _, path := range []string{"./bin/quotestudio", "../../bin/quotestudio"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	t.Skip("server binary not found; run 'make build' first")
	return ""
}

func stdioCommand(ctx context.Context, t *testing.T) *exec.Cmd {
	cmd := exec.CommandContext(ctx, serverBinary(t))
	cmd.Env = append(os.Environ(),
		"QUOTESTUDIO_TRANSPORT=stdio",
		"QUOTESTUDIO_DB_PATH=:memory:",
		"QUOTESTUDIO_STORE_BACKEND=null",
		"QUOTESTUDIO_AI_PROVIDER=none",
	)
	return cmd
}

func callJSON(ctx context.Context, t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any, out any) {
	t.Helper()
	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, name)
	require.False(t, result.IsError, "%s returned a tool error: %v", name, result.Content)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "%s returned non-text content", name)
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(text.Text), out))
	}
}

func TestStdio_QuoteWorkflow(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "stdio-test", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: stdioCommand(ctx, t)}, nil)
	require.NoError(t, err)
	defer session.Close()

	info := session.InitializeResult()
	require.NotNil(t, info)
	require.Equal(t, "quotestudio", info.ServerInfo.Name)

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	names := map[string]bool{}
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	for _, name := range []string{"ping", "get_workspace", "add_item", "get_quote", "export_quote"} {
		require.True(t, names[name], "missing tool %s", name)
	}

	var created struct {
		ID string `json:"id"`
	}
	callJSON(ctx, t, session, "create_project", map[string]any{
		"projectName": "Stdio Spot",
		"startDate":   "2025-01-06",
		"endDate":     "2025-01-10",
		"taxRate":     5,
		"margin":      30,
	}, &created)
	require.NotEmpty(t, created.ID)

	callJSON(ctx, t, session, "add_item", map[string]any{"name": "Creative Director", "dailyCost": 8000, "estimatedDays": 12}, nil)
	callJSON(ctx, t, session, "add_item", map[string]any{"name": "Art Director", "dailyCost": 6000, "estimatedDays": 45}, nil)

	var quoted struct {
		Quote struct {
			BusinessDays int     `json:"businessDays"`
			RawCost      float64 `json:"rawCost"`
			TotalInclTax float64 `json:"totalInclTax"`
		} `json:"quote"`
	}
	callJSON(ctx, t, session, "get_quote", nil, &quoted)
	require.Equal(t, 5, quoted.Quote.BusinessDays)
	require.InDelta(t, 366000, quoted.Quote.RawCost, 0.001)
	require.InDelta(t, 549000, quoted.Quote.TotalInclTax, 0.01)
}

// Stdout must carry only JSON-RPC frames; logs go to stderr.
func TestStdio_StdoutCarriesOnlyProtocol(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := stdioCommand(ctx, t)
	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())
	defer func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}()

	_, err = stdin.Write([]byte(`{"jsonrpc":"2.0","method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}},"id":1}` + "\n"))
	require.NoError(t, err)

	lines := make(chan string, 1)
	go func() {
		scanner := bufio.NewScanner(stdout)
		if scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	select {
	case line, ok := <-lines:
		require.True(t, ok, "server closed stdout without responding")
		var frame struct {
			JSONRPC string          `json:"jsonrpc"`
			ID      int             `json:"id"`
			Result  json.RawMessage `json:"result"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &frame), "stdout line is not JSON: %q", line)
		require.Equal(t, "2.0", frame.JSONRPC)
		require.Equal(t, 1, frame.ID)
		require.NotEmpty(t, frame.Result)
	case <-ctx.Done():
		t.Fatal("timed out waiting for initialize response")
	}
}

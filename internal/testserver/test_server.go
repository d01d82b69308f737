// Package testserver runs the full HTTP stack against an in-memory database.
package testserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/quotestudio/internal/domain/workspace"
	"github.com/rpggio/quotestudio/internal/mcp"
	"github.com/rpggio/quotestudio/internal/sqlite"
	"github.com/rpggio/quotestudio/internal/transport"
)

type TestServer struct {
	Server     *httptest.Server
	DB         *sqlite.DB
	Store      *sqlite.SnapshotRepository
	Keys       *sqlite.APIKeyRepository
	Workspaces *workspace.Service
	Token      string
	OwnerID    string
}

// Options tweak the server under test.
type Options struct {
	Suggester workspace.Suggester
	SaveDelay time.Duration
}

func New(t *testing.T, token, ownerID string) *TestServer {
	return NewWithOptions(t, token, ownerID, Options{})
}

func NewWithOptions(t *testing.T, token, ownerID string, opts Options) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	if opts.SaveDelay == 0 {
		opts.SaveDelay = 10 * time.Millisecond
	}

	store := sqlite.NewSnapshotRepository(db)
	keys := sqlite.NewAPIKeyRepository(db)
	svc := workspace.NewService(store, opts.Suggester, nil, workspace.Options{SaveDelay: opts.SaveDelay})

	mcpServer := mcp.NewServer(mcp.Config{
		Workspaces:    svc,
		Resolver:      keys,
		AuthEnabled:   true,
		TransportMode: "http",
	})

	router := transport.NewServer(mcp.NewHandler(svc), transport.AuthMiddleware(keys))
	router.Handle("/mcp", sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: time.Minute},
	))
	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:     server,
		DB:         db,
		Store:      store,
		Keys:       keys,
		Workspaces: svc,
		Token:      token,
		OwnerID:    ownerID,
	}

	require.NoError(t, ts.AddAPIKey(token, ownerID))

	t.Cleanup(func() {
		server.Close()
		_ = svc.Flush(context.Background())
		_ = db.Close()
	})

	return ts
}

func (ts *TestServer) AddAPIKey(token, ownerID string) error {
	return ts.Keys.AddKey(context.Background(), token, ownerID, "test")
}

// BearerClient returns an HTTP client that authenticates as token.
func BearerClient(token string) *http.Client {
	return &http.Client{Transport: bearerTransport{token: token, base: http.DefaultTransport}}
}

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (b bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return b.base.RoundTrip(req)
}

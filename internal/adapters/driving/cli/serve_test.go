package cli

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/voxrag/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/voxrag/internal/adapters/driving/mcp"
)

func TestServeCmd_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.NotNil(t, serveCmd.Flags().Lookup("host"))
}

func TestServeCmd_BuildsServer(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	settings.Server.OutputDir = filepath.Join(t.TempDir(), "out")

	var started *httpapi.Server
	oldStart := startServer
	startServer = func(srv *httpapi.Server) { started = srv }
	defer func() { startServer = oldStart }()

	out, err := execute(t, "serve", "--host", "127.0.0.1", "--port", "18081")

	require.NoError(t, err)
	assert.Contains(t, out, "http://127.0.0.1:18081")
	require.NotNil(t, started)
	assert.DirExists(t, settings.Server.OutputDir)

	rt, err := started.Router()
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServeCmd_ErrorsWithoutServices(t *testing.T) {
	cleanup := disableServices()
	defer cleanup()

	_, err := execute(t, "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestMCPServeCmd_UsesPortFlag(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	var gotPort int
	oldRun := runMCP
	runMCP = func(_ *cobra.Command, server *mcp.Server, port int) error {
		assert.NotNil(t, server)
		gotPort = port
		return nil
	}
	defer func() { runMCP = oldRun }()

	_, err := execute(t, "mcp", "serve", "--port", "9090")

	require.NoError(t, err)
	assert.Equal(t, 9090, gotPort)
}

func TestMCPCmd_HasServe(t *testing.T) {
	names := make([]string, 0)
	for _, c := range mcpCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
}

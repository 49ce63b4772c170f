package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/appstash/appstash/internal/config"
	"github.com/appstash/appstash/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{
		AppName: "app",
		Version: "1.0",
		Backend: config.BackendMemory,
	}
	var out bytes.Buffer
	app, err := NewApp(context.Background(), cfg, logging.NewNopLogger(), &out)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app, &out
}

func TestRun_NoArgsPrintsUsage(t *testing.T) {
	app, out := newTestApp(t)

	require.NoError(t, app.Run(context.Background(), nil))
	assert.Contains(t, out.String(), "usage: appstash")
}

func TestRun_UnknownCommand(t *testing.T) {
	app, _ := newTestApp(t)

	err := app.Run(context.Background(), []string{"frobnicate"})
	assert.ErrorContains(t, err, "unknown command")
}

func TestSaveLoadListRemove(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.Run(ctx, []string{"save", "users", `[{"id":1}]`}))
	assert.Contains(t, out.String(), "saved users")

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"load", "users"}))
	var got []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, []map[string]any{{"id": float64(1)}}, got)

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"list"}))
	assert.Equal(t, "users", strings.TrimSpace(out.String()))

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"exists", "users"}))
	assert.Equal(t, "true", strings.TrimSpace(out.String()))

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"remove", "users"}))
	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"list"}))
	assert.Contains(t, out.String(), "(no entities)")
}

func TestSave_RejectsInvalidJSON(t *testing.T) {
	app, _ := newTestApp(t)

	err := app.Run(context.Background(), []string{"save", "bad", "{oops"})
	assert.ErrorContains(t, err, "not valid JSON")
}

func TestExportImport_ThroughFiles(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bundle.json")

	require.NoError(t, app.Run(ctx, []string{"save", "settings", `{"theme":"dark"}`}))
	require.NoError(t, app.Run(ctx, []string{"export", path}))

	// restore into a second app over its own store
	app2, out2 := newTestApp(t)
	require.NoError(t, app2.Run(ctx, []string{"import", path}))

	out2.Reset()
	require.NoError(t, app2.Run(ctx, []string{"load", "settings"}))
	assert.Contains(t, out2.String(), "dark")
}

func TestInfoAndMetadata_PrintJSON(t *testing.T) {
	app, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.Run(ctx, []string{"save", "x", "1"}))

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"info"}))
	assert.Contains(t, out.String(), `"available": true`)

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"metadata"}))
	assert.Contains(t, out.String(), `"entities"`)
	assert.Contains(t, out.String(), `"x"`)
}

func TestNewApp_UnknownBackend(t *testing.T) {
	cfg := &config.Config{AppName: "app", Version: "1.0", Backend: "bogus"}
	_, err := NewApp(context.Background(), cfg, logging.NewNopLogger(), &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown backend")
}

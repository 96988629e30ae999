package version

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/plancheck/internal/command"
	"github.com/Kargones/plancheck/internal/config"
	"github.com/Kargones/plancheck/internal/pkg/output"
	"github.com/Kargones/plancheck/internal/pkg/testutil"
)

type fakeHandler struct{ name string }

func (h *fakeHandler) Name() string                                      { return h.name }
func (h *fakeHandler) Description() string                               { return "fake" }
func (h *fakeHandler) Execute(_ context.Context, _ *config.Config) error { return nil }

func TestMain(m *testing.M) {
	if err := RegisterCmd(); err != nil {
		panic(err)
	}
	if err := command.RegisterWithAlias(&fakeHandler{name: "fake-new"}, "fake-old"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestVersionHandler_Name(t *testing.T) {
	h := &VersionHandler{}
	assert.Equal(t, "version", h.Name())
	assert.NotEmpty(t, h.Description())
}

func TestBuildVersionData_Fallbacks(t *testing.T) {
	d := buildVersionData("", "")
	assert.Equal(t, "dev", d.Version)
	assert.Equal(t, "unknown", d.Commit)
	assert.Equal(t, runtime.Version(), d.GoVersion)
	assert.Equal(t, []AliasEntry{{Command: "fake-new", Deprecated: "fake-old"}}, d.Aliases)

	d = buildVersionData("1.4.0", "abc123")
	assert.Equal(t, "1.4.0", d.Version)
	assert.Equal(t, "abc123", d.Commit)
}

func TestVersionHandler_Execute_Text(t *testing.T) {
	t.Setenv("PC_OUTPUT_FORMAT", "text")

	var execErr error
	out := testutil.CaptureStdout(t, func() {
		execErr = (&VersionHandler{}).Execute(context.Background(), nil)
	})

	require.NoError(t, execErr)
	assert.Contains(t, out, "plancheck version")
	assert.Contains(t, out, "Go:     "+runtime.Version())
	assert.Contains(t, out, "fake-old")
	assert.NotContains(t, out, "Сводка", "версия выводится без блока сводки")
}

func TestVersionHandler_Execute_JSON(t *testing.T) {
	t.Setenv("PC_OUTPUT_FORMAT", "json")

	var execErr error
	out := testutil.CaptureStdout(t, func() {
		execErr = (&VersionHandler{}).Execute(context.Background(), nil)
	})
	require.NoError(t, execErr)

	var result output.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "version", result.Command)
	require.NotNil(t, result.Metadata)
	assert.Len(t, result.Metadata.TraceID, 32)

	data, ok := result.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, runtime.Version(), data["go_version"])
	assert.Len(t, data["aliases"], 1)
}

func TestVersionData_WriteText_NoAliases(t *testing.T) {
	var buf bytes.Buffer
	d := &VersionData{Version: "1.0.0", GoVersion: "go1.23", Commit: "abc"}
	require.NoError(t, d.writeText(&buf))
	assert.Equal(t, "plancheck version 1.0.0\n  Go:     go1.23\n  Commit: abc\n", buf.String())
}

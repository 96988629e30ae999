package help

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/plancheck/internal/command"
	"github.com/Kargones/plancheck/internal/config"
	"github.com/Kargones/plancheck/internal/pkg/output"
	"github.com/Kargones/plancheck/internal/pkg/testutil"
)

type stubHandler struct{ name string }

func (h *stubHandler) Name() string                                      { return h.name }
func (h *stubHandler) Description() string                               { return "Проверка ссылок" }
func (h *stubHandler) Execute(_ context.Context, _ *config.Config) error { return nil }

func TestMain(m *testing.M) {
	if err := RegisterCmd(); err != nil {
		panic(err)
	}
	if err := command.RegisterWithAlias(&stubHandler{name: "plan-validate"}, "validate"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestHelpHandler_Name(t *testing.T) {
	h := &Handler{}
	assert.Equal(t, "help", h.Name())
	assert.Equal(t, "Вывод списка доступных команд", h.Description())
}

func TestBuildData(t *testing.T) {
	data := buildData()

	assert.Equal(t, []CommandInfo{
		{Name: "help", Description: "Вывод списка доступных команд"},
		{Name: "plan-validate", Description: "Проверка ссылок"},
		{Name: "validate", Description: "Проверка ссылок", Deprecated: true, NewName: "plan-validate"},
	}, data.Commands)
}

func TestHelpHandler_Execute_Text(t *testing.T) {
	t.Setenv("PC_OUTPUT_FORMAT", "text")

	var execErr error
	out := testutil.CaptureStdout(t, func() {
		execErr = (&Handler{}).Execute(context.Background(), nil)
	})

	require.NoError(t, execErr)
	assert.Contains(t, out, "plancheck — проверка тест-планов Checkbox")
	assert.Contains(t, out, "[deprecated → plan-validate] Проверка ссылок")
	assert.Contains(t, out, "PC_SOURCES")
	assert.Contains(t, out, "PC_OUTPUT_FORMAT")
}

func TestHelpHandler_Execute_JSON(t *testing.T) {
	var execErr error
	out := testutil.CaptureStdout(t, func() {
		execErr = (&Handler{}).Execute(context.Background(), &config.Config{OutputFormat: "json"})
	})
	require.NoError(t, execErr)

	var result output.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "help", result.Command)
	data := result.Data.(map[string]any)
	assert.Len(t, data["commands"], 3)
}

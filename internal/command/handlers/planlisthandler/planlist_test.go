package planlisthandler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/plancheck/internal/config"
	"github.com/Kargones/plancheck/internal/pkg/output"
	"github.com/Kargones/plancheck/internal/pkg/testutil"
)

const plans = `id: smoke
unit: test plan
_name: Smoke
include:
    camera/detect
    audio/.*

id: full
unit: test plan
_name: Full
bootstrap_include:
    info/gen
include:
    smoke
`

func testConfig(t *testing.T, format, content string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "plans.pxu", content)
	return &config.Config{
		OutputFormat: format,
		SourceConfig: &config.SourceConfig{Paths: []string{dir}, Encoding: "utf-8", SkipForeignUnits: true},
	}
}

func TestPlanListHandler_Name(t *testing.T) {
	h := &PlanListHandler{}
	assert.Equal(t, "plan-list", h.Name())
	assert.NotEmpty(t, h.Description())
}

func TestPlanListHandler_Execute_JSON(t *testing.T) {
	cfg := testConfig(t, "json", plans)

	var execErr error
	out := testutil.CaptureStdout(t, func() {
		execErr = (&PlanListHandler{}).Execute(context.Background(), cfg)
	})
	require.NoError(t, execErr)

	var result struct {
		output.Result
		Data PlanListData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, 2, result.Data.Total)
	require.Len(t, result.Data.Plans, 2)
	assert.Equal(t, "full", result.Data.Plans[0].ID)
	assert.Equal(t, 1, result.Data.Plans[0].Bootstrap)
	assert.Equal(t, 1, result.Data.Plans[0].Includes)
	assert.Equal(t, "smoke", result.Data.Plans[1].ID)
	assert.Equal(t, 2, result.Data.Plans[1].Includes)
}

func TestPlanListHandler_Execute_Text(t *testing.T) {
	cfg := testConfig(t, "text", plans)

	out := testutil.CaptureStdout(t, func() {
		require.NoError(t, (&PlanListHandler{}).Execute(context.Background(), cfg))
	})
	assert.Contains(t, out, "full   Full (bootstrap: 1, include: 1)\n")
	assert.Contains(t, out, "smoke  Smoke (bootstrap: 0, include: 2)\n")
	assert.Contains(t, out, "Тест-планов")
}

func TestPlanListHandler_Execute_Empty(t *testing.T) {
	cfg := testConfig(t, "text", "# пусто\n")

	out := testutil.CaptureStdout(t, func() {
		require.NoError(t, (&PlanListHandler{}).Execute(context.Background(), cfg))
	})
	assert.Contains(t, out, "Тест-планы не найдены")
}

func TestPlanListHandler_Execute_ParseError(t *testing.T) {
	cfg := testConfig(t, "json", "unit: test plan\n_name: Без id\n")

	var execErr error
	out := testutil.CaptureStdout(t, func() {
		execErr = (&PlanListHandler{}).Execute(context.Background(), cfg)
	})
	require.Error(t, execErr)
	assert.Contains(t, out, "PLAN.PARSE_FAILED")
}

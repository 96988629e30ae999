package planvalidatehandler

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/plancheck/internal/command"
	"github.com/Kargones/plancheck/internal/config"
	"github.com/Kargones/plancheck/internal/entity/testplan"
	"github.com/Kargones/plancheck/internal/pkg/apperrors"
	"github.com/Kargones/plancheck/internal/pkg/metrics"
	"github.com/Kargones/plancheck/internal/pkg/testutil"
)

const units = `id: camera/detect
unit: job
plugin: shell

id: audio/playback
unit: job
plugin: manual

id: audio/record
unit: job
plugin: manual
`

const goodPlans = `id: smoke
unit: test plan
_name: Smoke
include:
    camera/detect
    audio/.*

id: full
unit: test plan
_name: Full
include:
    smoke
    com.example::camera/detect
`

const badPlans = `id: smoke
unit: test plan
_name: Smoke
bootstrap_include:
    info/gen
include:
    camera/detect
    camera/ghost
`

type unresolvedRecorder struct {
	metrics.NopCollector
	unresolved []int
}

func (r *unresolvedRecorder) RecordUnresolved(count int) {
	r.unresolved = append(r.unresolved, count)
}

func TestMain(m *testing.M) {
	if err := RegisterCmd(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testConfig(t *testing.T, format, plans string) *config.Config {
	t.Helper()
	planDir := t.TempDir()
	unitDir := t.TempDir()
	testutil.WriteFile(t, planDir, "plans.pxu", plans)
	testutil.WriteFile(t, unitDir, "units.pxu", units)
	return &config.Config{
		OutputFormat: format,
		SourceConfig: &config.SourceConfig{
			Paths:     []string{planDir},
			UnitPaths: []string{unitDir},
			Encoding:  "utf-8",
			Namespace: "com.example",
		},
	}
}

func TestRegisterCmd_Alias(t *testing.T) {
	h, ok := command.Get("validate")
	require.True(t, ok)
	dep, ok := h.(command.Deprecatable)
	require.True(t, ok)
	assert.True(t, dep.IsDeprecated())
	assert.Equal(t, "plan-validate", dep.NewName())
}

func TestPlanValidateHandler_Execute_OK(t *testing.T) {
	cfg := testConfig(t, "text", goodPlans)
	rec := &unresolvedRecorder{}
	ctx := metrics.WithCollector(context.Background(), rec)

	out := testutil.CaptureStdout(t, func() {
		require.NoError(t, (&PlanValidateHandler{}).Execute(ctx, cfg))
	})
	assert.Contains(t, out, "Проверено тест-планов: 2, все ссылки разрешены")
	assert.Equal(t, []int{0}, rec.unresolved)
}

func TestPlanValidateHandler_Execute_Unresolved_JSON(t *testing.T) {
	cfg := testConfig(t, "json", badPlans)
	rec := &unresolvedRecorder{}
	ctx := metrics.WithCollector(context.Background(), rec)

	var execErr error
	out := testutil.CaptureStdout(t, func() {
		execErr = (&PlanValidateHandler{}).Execute(ctx, cfg)
	})
	require.Error(t, execErr)
	assert.Equal(t, apperrors.ErrPlanUnresolved, apperrors.CodeOf(execErr, ""))

	var result struct {
		Status string       `json:"status"`
		Data   ValidateData `json:"data"`
		Error  struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "error", result.Status)
	assert.Equal(t, apperrors.ErrPlanUnresolved, result.Error.Code)
	require.Len(t, result.Data.Problems, 2)
	assert.Equal(t, testplan.Problem{PlanID: "smoke", Field: "bootstrap_include", Reference: "info/gen", Origin: result.Data.Problems[0].Origin}, result.Data.Problems[0])
	assert.Equal(t, "camera/ghost", result.Data.Problems[1].Reference)
	assert.Equal(t, []int{2}, rec.unresolved)
}

func TestPlanValidateHandler_Execute_Unresolved_Text(t *testing.T) {
	cfg := testConfig(t, "text", badPlans)

	var execErr error
	out := testutil.CaptureStdout(t, func() {
		execErr = (&PlanValidateHandler{}).Execute(context.Background(), cfg)
	})
	require.Error(t, execErr)
	assert.Contains(t, out, "Неразрешённые ссылки (2):\n")
	assert.Contains(t, out, `smoke: include "camera/ghost" не найден`)
	assert.Contains(t, out, "Код: PLAN.UNRESOLVED_REFERENCE")
}

func TestPlanValidateHandler_Execute_MissingUnits(t *testing.T) {
	cfg := testConfig(t, "json", goodPlans)
	cfg.SourceConfig.UnitPaths = []string{cfg.SourceConfig.UnitPaths[0] + "/nope"}

	var execErr error
	testutil.CaptureStdout(t, func() {
		execErr = (&PlanValidateHandler{}).Execute(context.Background(), cfg)
	})
	assert.Equal(t, apperrors.ErrSourceRead, apperrors.CodeOf(execErr, ""))
}

package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/plancheck/plancheck/internal/model"
)

func finalizedRun(t *testing.T) *model.RunResult {
	t.Helper()

	run := &model.RunResult{
		StartedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Duration:  340 * time.Millisecond,
		Mode:      model.ModeParallel,
	}
	run.AddModule(model.ModuleResult{
		Module:   "s3",
		Status:   model.StatusFail,
		Message:  "1 of 2 cases passed",
		Duration: 120 * time.Millisecond,
		Cases: []model.CaseResult{
			{Name: "encryption", Status: model.StatusPass, Message: "1 assertions passed"},
			{Name: "versioning", Status: model.StatusFail, Message: "expected true, got false"},
		},
	})
	run.AddModule(model.ModuleResult{
		Module:   "waf",
		Status:   model.StatusPass,
		Message:  "all 1 cases passed",
		Duration: 80 * time.Millisecond,
		Cases: []model.CaseResult{
			{Name: "rules_present", Status: model.StatusPass},
		},
	})
	run.Finalize()
	return run
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"structured", "human", "summary"} {
		f, err := ParseFormat(valid)
		require.NoError(t, err)
		require.Equal(t, Format(valid), f)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown format "xml"`)
}

func TestRenderRequiresFinalizedRun(t *testing.T) {
	t.Parallel()

	_, err := Render(&model.RunResult{}, FormatSummary, Options{})
	require.Error(t, err)

	_, err = Render(nil, FormatSummary, Options{})
	require.Error(t, err)
}

func TestRenderStructured(t *testing.T) {
	t.Parallel()

	out, err := Render(finalizedRun(t), FormatStructured, Options{})
	require.NoError(t, err)

	var decoded struct {
		Run struct {
			Timestamp string  `json:"timestamp"`
			Mode      string  `json:"mode"`
			Duration  float64 `json:"duration_seconds"`
		} `json:"run"`
		Summary struct {
			Success bool `json:"success"`
			Total   int  `json:"total"`
			Passed  int  `json:"passed"`
			Failed  int  `json:"failed"`
		} `json:"summary"`
		Modules []struct {
			Name     string `json:"name"`
			Status   string `json:"status"`
			Failures []struct {
				Case    string `json:"case"`
				Message string `json:"message"`
			} `json:"failures"`
		} `json:"modules"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	require.Equal(t, "2025-06-01T12:00:00Z", decoded.Run.Timestamp)
	require.Equal(t, "parallel", decoded.Run.Mode)
	require.False(t, decoded.Summary.Success)
	require.Equal(t, 3, decoded.Summary.Total)
	require.Equal(t, 2, decoded.Summary.Passed)
	require.Equal(t, 1, decoded.Summary.Failed)

	require.Len(t, decoded.Modules, 2)
	require.Equal(t, "s3", decoded.Modules[0].Name)
	require.Len(t, decoded.Modules[0].Failures, 1)
	require.Equal(t, "versioning", decoded.Modules[0].Failures[0].Case)
	require.Contains(t, decoded.Modules[0].Failures[0].Message, "expected true")
	require.Empty(t, decoded.Modules[1].Failures)
}

func TestRenderIsIdempotent(t *testing.T) {
	t.Parallel()

	run := finalizedRun(t)
	for _, format := range []Format{FormatStructured, FormatHuman, FormatSummary} {
		first, err := Render(run, format, Options{})
		require.NoError(t, err)
		second, err := Render(run, format, Options{})
		require.NoError(t, err)
		require.Equal(t, first, second, "format %s must render identically", format)
	}
}

func TestRenderHuman(t *testing.T) {
	t.Parallel()

	out, err := Render(finalizedRun(t), FormatHuman, Options{})
	require.NoError(t, err)

	require.Contains(t, out, "Plan Validation Results")
	require.Contains(t, out, "s3")
	require.Contains(t, out, "✖ fail")
	require.Contains(t, out, "✔ pass")
	require.Contains(t, out, "Failures:")
	require.Contains(t, out, "s3 · versioning")
	require.Contains(t, out, "FAIL: plan violates expectations")
	require.Contains(t, out, "Total: 3  Passed: 2  Failed: 1  Errored: 0")
}

func TestRenderHumanAllPassed(t *testing.T) {
	t.Parallel()

	run := &model.RunResult{StartedAt: time.Now(), Mode: model.ModeSequential}
	run.AddModule(model.ModuleResult{
		Module: "iam",
		Status: model.StatusPass,
		Cases:  []model.CaseResult{{Name: "roles", Status: model.StatusPass}},
	})
	run.Finalize()

	out, err := Render(run, FormatHuman, Options{})
	require.NoError(t, err)
	require.Contains(t, out, "PASS: all cases passed")
	require.NotContains(t, out, "Failures:")
}

func TestRenderSummary(t *testing.T) {
	t.Parallel()

	out, err := Render(finalizedRun(t), FormatSummary, Options{})
	require.NoError(t, err)
	require.Equal(t, "plancheck: 2 modules, 3 cases: 2 passed, 1 failed, 0 errored (parallel, 0.34s): FAILED\n", out)
}

func TestRenderNoneSelected(t *testing.T) {
	t.Parallel()

	run := &model.RunResult{NoneSelected: true}
	run.Finalize()

	for _, format := range []Format{FormatHuman, FormatSummary} {
		out, err := Render(run, format, Options{})
		require.NoError(t, err)
		require.Contains(t, out, "o test")
	}

	out, err := Render(run, FormatStructured, Options{})
	require.NoError(t, err)
	require.Contains(t, out, `"no_tests_selected": true`)
}

func TestWriteStatusArtifact(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "status.json")
	require.NoError(t, WriteStatus(path, finalizedRun(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var status Status
	require.NoError(t, json.Unmarshal(data, &status))
	require.False(t, status.Success)
	require.Equal(t, 3, status.Total)
	require.Equal(t, 2, status.Passed)
	require.Equal(t, 1, status.Failed)
	require.Equal(t, 0, status.Errored)
	require.Equal(t, "parallel", status.Mode)
}

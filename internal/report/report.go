// Package report renders a finalized run result into its output forms. All
// renderers are pure functions of the result: rendering the same result
// twice yields byte-identical output, which CI relies on for artifact
// comparison.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/plancheck/plancheck/internal/model"
	plancheckerrors "github.com/plancheck/plancheck/pkg/errors"
)

// Format selects the reporter output form.
type Format string

const (
	// FormatStructured is the machine-readable JSON report.
	FormatStructured Format = "structured"
	// FormatHuman is the terminal table with failure details.
	FormatHuman Format = "human"
	// FormatSummary is a one-paragraph verdict.
	FormatSummary Format = "summary"
)

// ParseFormat validates a format name from configuration.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatStructured, FormatHuman, FormatSummary:
		return Format(s), nil
	default:
		return "", plancheckerrors.NewConfigurationError("format", fmt.Sprintf("unknown format %q (want structured, human, or summary)", s), nil)
	}
}

// Options adjusts rendering. Styling is decided by the caller (TTY
// detection) rather than read from ambient state, so Render stays a pure
// function of its arguments.
type Options struct {
	Styled bool
}

var (
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// Render produces the report for a finalized run result in the requested
// format.
func Render(run *model.RunResult, format Format, opts Options) (string, error) {
	if run == nil || !run.Finalized() {
		return "", plancheckerrors.NewConfigurationError("run", "reporter requires a finalized run result", nil)
	}

	switch format {
	case FormatStructured:
		return renderStructured(run)
	case FormatHuman:
		return renderHuman(run, opts), nil
	case FormatSummary:
		return renderSummary(run), nil
	default:
		return "", plancheckerrors.NewConfigurationError("format", fmt.Sprintf("unknown format %q", string(format)), nil)
	}
}

type structuredFailure struct {
	Case    string `json:"case"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type structuredModule struct {
	Name            string              `json:"name"`
	Status          string              `json:"status"`
	CasesRun        int                 `json:"cases_run"`
	Passed          int                 `json:"passed"`
	Failed          int                 `json:"failed"`
	Errored         int                 `json:"errored"`
	DurationSeconds float64             `json:"duration_seconds"`
	Failures        []structuredFailure `json:"failures,omitempty"`
}

type structuredReport struct {
	Run struct {
		Timestamp       string  `json:"timestamp"`
		DurationSeconds float64 `json:"duration_seconds"`
		Mode            string  `json:"mode"`
		DryRun          bool    `json:"dry_run,omitempty"`
		NoTestsSelected bool    `json:"no_tests_selected,omitempty"`
	} `json:"run"`
	Summary struct {
		Success bool `json:"success"`
		Total   int  `json:"total"`
		Passed  int  `json:"passed"`
		Failed  int  `json:"failed"`
		Errored int  `json:"errored"`
	} `json:"summary"`
	Modules []structuredModule `json:"modules"`
}

func renderStructured(run *model.RunResult) (string, error) {
	out := structuredReport{Modules: make([]structuredModule, len(run.Modules))}
	out.Run.Timestamp = run.StartedAt.UTC().Format(time.RFC3339)
	out.Run.DurationSeconds = run.Duration.Seconds()
	out.Run.Mode = string(run.Mode)
	out.Run.DryRun = run.DryRun
	out.Run.NoTestsSelected = run.NoneSelected
	out.Summary.Success = run.AllPassed()
	out.Summary.Total = run.TotalCases
	out.Summary.Passed = run.PassedCases
	out.Summary.Failed = run.FailedCases
	out.Summary.Errored = run.ErroredCases

	for i, m := range run.Modules {
		passed, failed, errored := m.Counts()
		sm := structuredModule{
			Name:            m.Module,
			Status:          string(m.Status),
			CasesRun:        m.CaseCount(),
			Passed:          passed,
			Failed:          failed,
			Errored:         errored,
			DurationSeconds: m.Duration.Seconds(),
		}
		for _, c := range m.FailingCases() {
			sm.Failures = append(sm.Failures, structuredFailure{
				Case:    c.Name,
				Status:  string(c.Status),
				Message: c.Message,
			})
		}
		out.Modules[i] = sm
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

func renderHuman(run *model.RunResult, opts Options) string {
	var b strings.Builder

	if run.NoneSelected {
		b.WriteString("No test modules selected.\n")
		return b.String()
	}
	if run.DryRun {
		b.WriteString("Dry run: configuration and plan validated, no cases executed.\n")
		return b.String()
	}

	b.WriteString("\nPlan Validation Results\n")
	b.WriteString(strings.Repeat("=", 72) + "\n")

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODULE\tSTATUS\tCASES\tDURATION")
	for _, m := range run.Modules {
		passed, _, _ := m.Counts()
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%.2fs\n",
			m.Module,
			statusLabel(m.Status, opts.Styled),
			passed,
			m.CaseCount(),
			m.Duration.Seconds(),
		)
	}
	tw.Flush()

	failures := false
	for _, m := range run.Modules {
		for _, c := range m.FailingCases() {
			if !failures {
				b.WriteString("\nFailures:\n")
				failures = true
			}
			line := fmt.Sprintf("  %s · %s [%s] %s\n", m.Module, c.Name, c.Status, c.Message)
			if opts.Styled {
				line = dimStyle.Render(strings.TrimRight(line, "\n")) + "\n"
			}
			b.WriteString(line)
		}
	}

	b.WriteString(strings.Repeat("=", 72) + "\n")
	b.WriteString(fmt.Sprintf("Total: %d  Passed: %d  Failed: %d  Errored: %d  (%s, %.2fs)\n",
		run.TotalCases, run.PassedCases, run.FailedCases, run.ErroredCases,
		run.Mode, run.Duration.Seconds()))

	if run.AllPassed() {
		b.WriteString(verdict("PASS: all cases passed", passStyle, opts.Styled) + "\n")
	} else {
		b.WriteString(verdict("FAIL: plan violates expectations", failStyle, opts.Styled) + "\n")
	}

	return b.String()
}

func renderSummary(run *model.RunResult) string {
	if run.NoneSelected {
		return "plancheck: no tests selected\n"
	}
	if run.DryRun {
		return fmt.Sprintf("plancheck: dry run ok (%d modules registered)\n", len(run.Modules))
	}

	verdict := "ok"
	if !run.AllPassed() {
		verdict = "FAILED"
	}
	return fmt.Sprintf("plancheck: %d modules, %d cases: %d passed, %d failed, %d errored (%s, %.2fs): %s\n",
		len(run.Modules), run.TotalCases, run.PassedCases, run.FailedCases,
		run.ErroredCases, run.Mode, run.Duration.Seconds(), verdict)
}

func statusLabel(s model.Status, styled bool) string {
	label := ""
	style := passStyle
	switch s {
	case model.StatusPass:
		label = "✔ pass"
	case model.StatusFail:
		label, style = "✖ fail", failStyle
	case model.StatusError:
		label, style = "⚠ error", errorStyle
	default:
		label = string(s)
	}
	if styled {
		return style.Render(label)
	}
	return label
}

func verdict(text string, style lipgloss.Style, styled bool) string {
	if styled {
		return style.Render(text)
	}
	return text
}

// Status is the minimal gating artifact consumed by surrounding automation.
type Status struct {
	Success         bool    `json:"success"`
	Total           int     `json:"total"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	Errored         int     `json:"errored"`
	Mode            string  `json:"mode"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// NewStatus derives the status artifact from a finalized run.
func NewStatus(run *model.RunResult) Status {
	return Status{
		Success:         run.AllPassed(),
		Total:           run.TotalCases,
		Passed:          run.PassedCases,
		Failed:          run.FailedCases,
		Errored:         run.ErroredCases,
		Mode:            string(run.Mode),
		DurationSeconds: run.Duration.Seconds(),
	}
}

// WriteStatus writes the status artifact to path.
func WriteStatus(path string, run *model.RunResult) error {
	data, err := json.MarshalIndent(NewStatus(run), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

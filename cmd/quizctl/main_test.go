package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/pai-quiz/internal/analysis"
	"github.com/p-n-ai/pai-quiz/internal/export"
)

// Biology 4/5, Chemistry 1/4, Physics untouched.
const sample = `[
	{"subject":"Biology","isCorrect":true},
	{"subject":"Biology","isCorrect":true},
	{"subject":"Biology","isCorrect":true},
	{"subject":"Biology","isCorrect":true},
	{"subject":"Biology","isCorrect":false},
	{"subject":"Chemistry","isCorrect":true},
	{"subject":"Chemistry","isCorrect":false},
	{"subject":"Chemistry","isCorrect":false},
	{"subject":"Chemistry","isCorrect":false}
]`

func writeSample(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "attempts.json")
	if err := os.WriteFile(p, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	// Keep LEARN_ settings from the host out of the run.
	t.Chdir(t.TempDir())
	for _, k := range []string{"LEARN_CURRICULUM_PATH", "LEARN_ANALYSIS_DAILY_BUDGET", "LEARN_ANALYSIS_STRONG_CUTOFF", "LEARN_ANALYSIS_MODERATE_CUTOFF"} {
		t.Setenv(k, "")
	}

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyze(t *testing.T) {
	out, err := execute(t, "", "analyze", writeSample(t))
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}

	var res analysis.AnalysisResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if res.Overall.Attempted != 9 {
		t.Errorf("attempted = %d, want 9", res.Overall.Attempted)
	}
	if res.Gaps[0].Subject != analysis.Physics {
		t.Errorf("first gap = %s, want Physics", res.Gaps[0].Subject)
	}
	if len(res.FocusAreas) == 0 {
		t.Error("embedded catalog should supply focus areas")
	}
}

func TestRecommend_Stdin(t *testing.T) {
	out, err := execute(t, sample, "recommend")
	if err != nil {
		t.Fatalf("recommend error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q, want Physics and Chemistry", lines)
	}
	if !strings.Contains(lines[0], "Physics") || !strings.Contains(lines[1], "Chemistry") {
		t.Errorf("lines = %q", lines)
	}
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default budget", nil, "Physics"},
		{"custom budget", []string{"--budget", "0"}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"plan", writeSample(t)}, tt.args...)
			out, err := execute(t, "", args...)
			if err != nil {
				t.Fatalf("plan error = %v", err)
			}
			if !strings.HasPrefix(out, "SUBJECT") {
				t.Errorf("missing header: %q", out)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q should contain %q", out, tt.want)
			}
		})
	}
}

func TestPlan_BudgetOutOfRange(t *testing.T) {
	for _, flag := range []string{"--budget=-10", "--budget=100000"} {
		t.Run(flag, func(t *testing.T) {
			_, err := execute(t, "", "plan", writeSample(t), flag)
			if !analysis.IsValidation(err) {
				t.Errorf("error = %v, want validation error", err)
			}
		})
	}
}

func TestExport(t *testing.T) {
	in := writeSample(t)
	dst := filepath.Join(t.TempDir(), "out.xlsx")

	if _, err := execute(t, "", "export", in, "-o", dst); err != nil {
		t.Fatalf("export error = %v", err)
	}

	f, err := excelize.OpenFile(dst)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()
	if idx, err := f.GetSheetIndex(export.SheetStudyPlan); err != nil || idx < 0 {
		t.Errorf("workbook should contain %q", export.SheetStudyPlan)
	}
}

func TestInvalidSubject(t *testing.T) {
	_, err := execute(t, `[{"subject":"Math","isCorrect":true}]`, "analyze")
	if !analysis.IsValidation(err) {
		t.Errorf("error = %v, want validation error", err)
	}
}

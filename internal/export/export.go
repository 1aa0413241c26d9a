// Package export renders an analysis result as an Excel workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/pai-quiz/internal/analysis"
)

// Sheet names, in workbook order.
const (
	SheetSummary         = "Summary"
	SheetSubjects        = "Subjects"
	SheetStudyPlan       = "Study Plan"
	SheetRecommendations = "Recommendations"
	SheetInsights        = "Insights"
)

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteWorkbook writes res as an .xlsx document to w.
func WriteWorkbook(w io.Writer, res *analysis.AnalysisResult) error {
	if res == nil {
		return fmt.Errorf("export: nil analysis result")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("rename default sheet: %w", err)
	}
	for _, name := range []string{SheetSubjects, SheetStudyPlan, SheetRecommendations, SheetInsights} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetSummary, summaryRows(res)},
		{SheetSubjects, subjectRows(res)},
		{SheetStudyPlan, planRows(res)},
		{SheetRecommendations, recommendationRows(res)},
		{SheetInsights, insightRows(res)},
	}
	for _, s := range sheets {
		if err := writeRows(f, s.name, s.rows, bold); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	return f.SetColWidth(sheet, "A", "A", 24)
}

func summaryRows(res *analysis.AnalysisResult) [][]any {
	return [][]any{
		{"Metric", "Value"},
		{"Questions attempted", res.Overall.Attempted},
		{"Correct", res.Overall.Correct},
		{"Wrong", res.Overall.Wrong},
		{"Accuracy (%)", res.Overall.AccuracyPercent()},
		{"Performance", res.Performance.Level},
		{"Summary", res.Performance.Message},
	}
}

func subjectRows(res *analysis.AnalysisResult) [][]any {
	rows := [][]any{{"Subject", "Attempted", "Correct", "Wrong", "Accuracy (%)", "Band", "Severity"}}
	for _, g := range res.Gaps {
		m := res.Subjects[g.Subject]
		rows = append(rows, []any{string(g.Subject), m.Attempted, m.Correct, m.Wrong, g.AccuracyPercent, string(g.Band), g.Severity})
	}
	return rows
}

func planRows(res *analysis.AnalysisResult) [][]any {
	rows := [][]any{{"Subject", "Minutes per day", "Focus"}}
	for _, e := range res.StudyPlan {
		rows = append(rows, []any{string(e.Subject), e.MinutesPerDay, string(e.FocusLevel)})
	}
	return rows
}

func recommendationRows(res *analysis.AnalysisResult) [][]any {
	rows := [][]any{{"#", "Recommendation"}}
	for i, r := range res.Recommendations {
		rows = append(rows, []any{i + 1, r})
	}
	for _, g := range res.WeeklyGoals {
		rows = append(rows, []any{"Goal", g})
	}
	return rows
}

func insightRows(res *analysis.AnalysisResult) [][]any {
	rows := [][]any{{"Section", "Subject", "Detail", "Action"}}
	for _, line := range res.Strengths {
		rows = append(rows, []any{"Strength", "", line, ""})
	}
	for _, w := range res.Weaknesses {
		detail := fmt.Sprintf("%s, %d%% accuracy, %d wrong", w.Band, w.AccuracyPercent, w.QuestionsWrong)
		rows = append(rows, []any{"Weakness", string(w.Subject), detail, w.Action})
	}
	for _, fa := range res.FocusAreas {
		for _, t := range fa.Topics {
			detail := t.Name
			if t.ID != "" {
				detail = t.ID + " " + t.Name
			}
			rows = append(rows, []any{"Focus topic", string(fa.Subject), detail, ""})
		}
	}
	return rows
}

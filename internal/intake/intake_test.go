package intake_test

import (
	"strings"
	"testing"

	"github.com/p-n-ai/pai-quiz/internal/analysis"
	"github.com/p-n-ai/pai-quiz/internal/intake"
)

func TestParseAttempts_Valid(t *testing.T) {
	body := []byte(`[
		{"subject": "Biology", "isCorrect": true, "questionId": "bio-1"},
		{"subject": "Physics", "isCorrect": false, "questionId": 42},
		{"subject": "Chemistry", "isCorrect": true, "answeredAt": "2025-11-21T20:00:00"}
	]`)

	got, err := intake.ParseAttempts(body)
	if err != nil {
		t.Fatalf("ParseAttempts() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Subject != analysis.Biology || !got[0].IsCorrect || got[0].QuestionID != "bio-1" {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].QuestionID != "42" {
		t.Errorf("got[1].QuestionID = %q, want 42", got[1].QuestionID)
	}
	if got[2].QuestionID != "" {
		t.Errorf("got[2].QuestionID = %q, want empty", got[2].QuestionID)
	}
}

func TestParseAttempts_EmptyArray(t *testing.T) {
	got, err := intake.ParseAttempts([]byte(`[]`))
	if err != nil {
		t.Fatalf("ParseAttempts([]) error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestParseAttempts_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantDetail string
	}{
		{"empty body", "  ", ""},
		{"not json", "{oops", ""},
		{"not a sequence", `{"subject": "Biology", "isCorrect": true}`, "(root)"},
		{"missing isCorrect", `[{"subject": "Biology"}]`, "isCorrect"},
		{"missing subject", `[{"isCorrect": true}]`, "subject"},
		{"non boolean flag", `[{"subject": "Biology", "isCorrect": "yes"}]`, "isCorrect"},
		{"empty subject", `[{"subject": "", "isCorrect": true}]`, "subject"},
		{"item not object", `[1]`, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := intake.ParseAttempts([]byte(tt.body))
			ve, ok := analysis.AsValidation(err)
			if !ok {
				t.Fatalf("ParseAttempts() error = %v, want ValidationError", err)
			}
			if tt.wantDetail != "" && !strings.Contains(strings.Join(ve.Details, " "), tt.wantDetail) {
				t.Errorf("details = %q, want mention of %q", ve.Details, tt.wantDetail)
			}
		})
	}
}

func TestParseAttempts_UnknownSubjectLeftToEngine(t *testing.T) {
	got, err := intake.ParseAttempts([]byte(`[{"subject": "Math", "isCorrect": true}]`))
	if err != nil {
		t.Fatalf("ParseAttempts() error = %v", err)
	}

	e, _ := analysis.NewEngine(analysis.Config{})
	if _, err := e.Analyze(got); !analysis.IsValidation(err) {
		t.Errorf("Analyze() error = %v, want ValidationError", err)
	}
}

func TestParseAttempts_CapsDetails(t *testing.T) {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < 25; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"subject": 1}`)
	}
	b.WriteString("]")

	_, err := intake.ParseAttempts([]byte(b.String()))
	ve, ok := analysis.AsValidation(err)
	if !ok {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if len(ve.Details) != 11 {
		t.Errorf("len(details) = %d, want 11", len(ve.Details))
	}
}

func TestParseAttempt(t *testing.T) {
	got, err := intake.ParseAttempt([]byte(`{"subject": "Chemistry", "isCorrect": false}`))
	if err != nil {
		t.Fatalf("ParseAttempt() error = %v", err)
	}
	if got.Subject != analysis.Chemistry || got.IsCorrect {
		t.Errorf("ParseAttempt() = %+v", got)
	}

	if _, err := intake.ParseAttempt([]byte(`[{"subject": "Chemistry", "isCorrect": false}]`)); !analysis.IsValidation(err) {
		t.Errorf("ParseAttempt(array) error = %v, want ValidationError", err)
	}
}

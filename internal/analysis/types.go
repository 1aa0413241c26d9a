// Package analysis turns quiz attempt records into subject metrics, ranked
// knowledge gaps, study recommendations and a daily study plan.
package analysis

import (
	"encoding/json"
	"fmt"
)

// Subject is one of the quiz subjects.
type Subject string

const (
	Biology   Subject = "Biology"
	Chemistry Subject = "Chemistry"
	Physics   Subject = "Physics"
)

// canonicalOrder is the fixed tie-break order for every ranking.
var canonicalOrder = []Subject{Biology, Chemistry, Physics}

// AllSubjects returns the known subjects in canonical order.
func AllSubjects() []Subject {
	return append([]Subject(nil), canonicalOrder...)
}

// ParseSubject resolves a wire name to a Subject. Names are case-sensitive.
func ParseSubject(name string) (Subject, error) {
	for _, s := range canonicalOrder {
		if string(s) == name {
			return s, nil
		}
	}
	return "", &ValidationError{
		Message: "unknown subject",
		Details: []string{fmt.Sprintf("subject %q is not one of Biology, Chemistry, Physics", name)},
	}
}

// Valid reports whether s is a known subject.
func (s Subject) Valid() bool {
	return s.rank() >= 0
}

func (s Subject) rank() int {
	for i, c := range canonicalOrder {
		if c == s {
			return i
		}
	}
	return -1
}

// AttemptRecord is one answered quiz question.
type AttemptRecord struct {
	Subject    Subject `json:"subject"`
	IsCorrect  bool    `json:"isCorrect"`
	QuestionID string  `json:"questionId,omitempty"`
}

// Tally holds answer counts. Accuracy is always derived from the counts.
type Tally struct {
	Attempted int
	Correct   int
	Wrong     int
}

// AccuracyPercent returns the rounded accuracy for the tally.
func (t Tally) AccuracyPercent() int {
	return AccuracyPercent(t.Correct, t.Attempted)
}

func (t *Tally) record(correct bool) {
	t.Attempted++
	if correct {
		t.Correct++
	} else {
		t.Wrong++
	}
}

func (t *Tally) add(o Tally) {
	t.Attempted += o.Attempted
	t.Correct += o.Correct
	t.Wrong += o.Wrong
}

// tallyJSON is the wire form of a Tally. accuracyPercent is output only.
type tallyJSON struct {
	Attempted       int `json:"attempted"`
	Correct         int `json:"correct"`
	Wrong           int `json:"wrong"`
	AccuracyPercent int `json:"accuracyPercent"`
}

func (t Tally) MarshalJSON() ([]byte, error) {
	return json.Marshal(tallyJSON{t.Attempted, t.Correct, t.Wrong, t.AccuracyPercent()})
}

func (t *Tally) UnmarshalJSON(data []byte) error {
	var w tallyJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*t = Tally{Attempted: w.Attempted, Correct: w.Correct, Wrong: w.Wrong}
	return nil
}

// SubjectMetrics is the tally for a single subject.
type SubjectMetrics struct {
	Tally
}

// OverallMetrics is the tally summed over all subjects.
type OverallMetrics struct {
	Tally
}

// AccuracyPercent returns round-half-up of 100*correct/attempted, or 0 when
// nothing was attempted.
func AccuracyPercent(correct, attempted int) int {
	if attempted <= 0 {
		return 0
	}
	return (200*correct + attempted) / (2 * attempted)
}

// Band is a proficiency classification derived from accuracy.
type Band string

const (
	BandStrong       Band = "Strong"
	BandModerate     Band = "Moderate"
	BandWeak         Band = "Weak"
	BandNotAttempted Band = "NotAttempted"
)

// NeedsWork reports whether the band calls for remedial study.
func (b Band) NeedsWork() bool {
	return b == BandWeak || b == BandNotAttempted
}

// GapEntry is one subject ranked by how far it is from mastery.
type GapEntry struct {
	Subject         Subject `json:"subject"`
	Band            Band    `json:"band"`
	AccuracyPercent int     `json:"accuracyPercent"`
	Severity        int     `json:"severity"`
}

// FocusLevel labels how much attention a study plan entry needs.
type FocusLevel string

const (
	FocusHigh        FocusLevel = "High"
	FocusMedium      FocusLevel = "Medium"
	FocusMaintenance FocusLevel = "Maintenance"
)

// StudyPlanEntry is the daily time allocated to one subject.
type StudyPlanEntry struct {
	Subject       Subject    `json:"subject"`
	MinutesPerDay int        `json:"minutesPerDay"`
	FocusLevel    FocusLevel `json:"focusLevel"`
}

// Performance is the headline verdict for the whole quiz.
type Performance struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Weakness describes a subject below the strong band and what to do about it.
type Weakness struct {
	Subject         Subject `json:"subject"`
	Band            Band    `json:"band"`
	AccuracyPercent int     `json:"accuracyPercent"`
	QuestionsWrong  int     `json:"questionsWrong"`
	Action          string  `json:"action"`
}

// Topic is a syllabus chapter from the catalog.
type Topic struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// FocusArea lists catalog topics to start with for a gap subject.
type FocusArea struct {
	Subject Subject `json:"subject"`
	Topics  []Topic `json:"topics"`
}

// AnalysisResult is the full response for one analysis request. It is built
// fresh per call and never mutated afterwards.
type AnalysisResult struct {
	Overall         OverallMetrics             `json:"overall"`
	Subjects        map[Subject]SubjectMetrics `json:"subjects"`
	Gaps            []GapEntry                 `json:"gaps"`
	Recommendations []string                   `json:"recommendations"`
	StudyPlan       []StudyPlanEntry           `json:"studyPlan"`
	Performance     Performance                `json:"performance"`
	Strengths       []string                   `json:"strengths"`
	Weaknesses      []Weakness                 `json:"weaknesses"`
	WeeklyGoals     []string                   `json:"weeklyGoals"`
	FocusAreas      []FocusArea                `json:"focusAreas,omitempty"`
}

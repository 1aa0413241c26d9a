package analysis_test

import "github.com/p-n-ai/pai-quiz/internal/analysis"

// attempts builds correct+wrong attempts for a subject.
func attempts(s analysis.Subject, correct, wrong int) []analysis.AttemptRecord {
	out := make([]analysis.AttemptRecord, 0, correct+wrong)
	for i := 0; i < correct; i++ {
		out = append(out, analysis.AttemptRecord{Subject: s, IsCorrect: true})
	}
	for i := 0; i < wrong; i++ {
		out = append(out, analysis.AttemptRecord{Subject: s, IsCorrect: false})
	}
	return out
}

func concat(parts ...[]analysis.AttemptRecord) []analysis.AttemptRecord {
	var out []analysis.AttemptRecord
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// scenarioB is Biology 8/10, Chemistry 3/10, Physics 10/10.
func scenarioB() []analysis.AttemptRecord {
	return concat(
		attempts(analysis.Biology, 8, 2),
		attempts(analysis.Chemistry, 3, 7),
		attempts(analysis.Physics, 10, 0),
	)
}

func metrics(correct, wrong int) analysis.SubjectMetrics {
	return analysis.SubjectMetrics{Tally: analysis.Tally{Attempted: correct + wrong, Correct: correct, Wrong: wrong}}
}

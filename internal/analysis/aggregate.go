package analysis

import "fmt"

// Aggregate reduces attempts into per-subject and overall tallies. Every known
// subject is present in the returned map, with zero counts if never attempted.
// An attempt with an unknown subject fails the whole call.
func Aggregate(attempts []AttemptRecord) (OverallMetrics, map[Subject]SubjectMetrics, error) {
	subjects := make(map[Subject]SubjectMetrics, len(canonicalOrder))
	for _, s := range canonicalOrder {
		subjects[s] = SubjectMetrics{}
	}

	for i, a := range attempts {
		if !a.Subject.Valid() {
			return OverallMetrics{}, nil, &ValidationError{
				Message: "unknown subject",
				Details: []string{fmt.Sprintf("attempt %d: subject %q is not one of Biology, Chemistry, Physics", i, a.Subject)},
			}
		}
		m := subjects[a.Subject]
		m.record(a.IsCorrect)
		subjects[a.Subject] = m
	}

	var overall OverallMetrics
	for _, s := range canonicalOrder {
		overall.add(subjects[s].Tally)
	}
	return overall, subjects, nil
}

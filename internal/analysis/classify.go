package analysis

import "sort"

// BandFor classifies a subject tally against the thresholds.
func BandFor(m SubjectMetrics, t Thresholds) Band {
	if m.Attempted == 0 {
		return BandNotAttempted
	}
	acc := m.AccuracyPercent()
	switch {
	case acc >= t.StrongCutoff:
		return BandStrong
	case acc >= t.ModerateCutoff:
		return BandModerate
	default:
		return BandWeak
	}
}

// Severity ranks how far a subject is from mastery; higher is worse.
func Severity(m SubjectMetrics, t Thresholds) int {
	sev := 100 - m.AccuracyPercent()
	if m.Attempted == 0 {
		sev += t.NotAttemptedPenalty
	}
	return sev
}

// Classify returns a gap entry for every known subject, worst first. Equal
// severities keep canonical subject order. Callers that only want real gaps
// filter out BandStrong.
func Classify(subjects map[Subject]SubjectMetrics, t Thresholds) []GapEntry {
	gaps := make([]GapEntry, 0, len(canonicalOrder))
	for _, s := range canonicalOrder {
		m := subjects[s]
		gaps = append(gaps, GapEntry{
			Subject:         s,
			Band:            BandFor(m, t),
			AccuracyPercent: m.AccuracyPercent(),
			Severity:        Severity(m, t),
		})
	}
	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Severity > gaps[j].Severity
	})
	return gaps
}

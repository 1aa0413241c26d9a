package analysis

import "fmt"

// MaxDailyBudgetMinutes is the largest budget Allocate accepts: one full day.
const MaxDailyBudgetMinutes = 24 * 60

// Allocate splits budget minutes across subjects weighted by
// max(1, 100-accuracy). Flooring leftovers go to the heaviest subject, with
// canonical order breaking ties. Entries come back in canonical order and
// always sum to budget.
func Allocate(subjects map[Subject]SubjectMetrics, budget int) ([]StudyPlanEntry, error) {
	if budget < 0 || budget > MaxDailyBudgetMinutes {
		return nil, &ValidationError{
			Message: "invalid study budget",
			Details: []string{fmt.Sprintf("budget must be between 0 and %d minutes, got %d", MaxDailyBudgetMinutes, budget)},
		}
	}

	weights := make([]int, len(canonicalOrder))
	total := 0
	heaviest := 0
	for i, s := range canonicalOrder {
		w := max(1, 100-subjects[s].AccuracyPercent())
		weights[i] = w
		total += w
		if w > weights[heaviest] {
			heaviest = i
		}
	}

	plan := make([]StudyPlanEntry, len(canonicalOrder))
	assigned := 0
	for i, s := range canonicalOrder {
		minutes := budget * weights[i] / total
		assigned += minutes
		plan[i] = StudyPlanEntry{
			Subject:       s,
			MinutesPerDay: minutes,
			FocusLevel:    focusLevel(subjects[s].AccuracyPercent()),
		}
	}
	plan[heaviest].MinutesPerDay += budget - assigned

	return plan, nil
}

func focusLevel(accuracy int) FocusLevel {
	switch {
	case accuracy < 60:
		return FocusHigh
	case accuracy < 75:
		return FocusMedium
	default:
		return FocusMaintenance
	}
}

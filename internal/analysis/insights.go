package analysis

import "fmt"

// NoStrengthsMessage is the strengths line used when no subject is strong.
const NoStrengthsMessage = "Keep practicing to identify your strong subjects"

// Assess gives the headline verdict for the overall accuracy.
func Assess(overall OverallMetrics) Performance {
	if overall.Attempted == 0 {
		return Performance{
			Level:   "Not Started",
			Message: "Answer a few questions in each subject to get a personalised analysis.",
		}
	}
	acc := overall.AccuracyPercent()
	switch {
	case acc >= 85:
		return Performance{Level: "Excellent", Message: "Outstanding performance! You have a strong grasp of the material."}
	case acc >= 70:
		return Performance{Level: "Good", Message: "Good work! Focus on weak areas to reach excellence."}
	case acc >= 50:
		return Performance{Level: "Average", Message: "You're making progress. Consistent practice will improve your scores."}
	default:
		return Performance{Level: "Needs Improvement", Message: "Don't worry! With focused study, you can significantly improve."}
	}
}

// Strengths lists the strong subjects in gap order.
func Strengths(gaps []GapEntry) []string {
	var out []string
	for _, g := range gaps {
		if g.Band == BandStrong {
			out = append(out, fmt.Sprintf("%s: %d%% accuracy — excellent understanding", g.Subject, g.AccuracyPercent))
		}
	}
	if len(out) == 0 {
		return []string{NoStrengthsMessage}
	}
	return out
}

// Weaknesses describes every subject below the strong band, worst first.
func Weaknesses(gaps []GapEntry, subjects map[Subject]SubjectMetrics) []Weakness {
	out := []Weakness{}
	for _, g := range gaps {
		if g.Band == BandStrong {
			continue
		}
		out = append(out, Weakness{
			Subject:         g.Subject,
			Band:            g.Band,
			AccuracyPercent: g.AccuracyPercent,
			QuestionsWrong:  subjects[g.Subject].Wrong,
			Action:          actionPlan(g),
		})
	}
	return out
}

func actionPlan(g GapEntry) string {
	switch {
	case g.Band == BandNotAttempted || g.AccuracyPercent < 40:
		return fmt.Sprintf("Start with fundamentals. Review basic concepts in %s before attempting practice questions.", g.Subject)
	case g.AccuracyPercent < 60:
		return fmt.Sprintf("Focus on understanding core concepts. Practice more %s questions and review mistakes.", g.Subject)
	default:
		return fmt.Sprintf("You're close! Practice advanced %s problems and review common error patterns.", g.Subject)
	}
}

// WeeklyGoals sets an accuracy target per subject, in canonical order.
func WeeklyGoals(subjects map[Subject]SubjectMetrics) []string {
	goals := make([]string, 0, len(canonicalOrder))
	for _, s := range canonicalOrder {
		acc := subjects[s].AccuracyPercent()
		target := weeklyTarget(acc)
		if acc >= target {
			goals = append(goals, fmt.Sprintf("Maintain %s at or above %d%%", s, target))
			continue
		}
		goals = append(goals, fmt.Sprintf("Improve %s from %d%% to %d%%", s, acc, target))
	}
	return goals
}

func weeklyTarget(accuracy int) int {
	switch {
	case accuracy < 60:
		return 70
	case accuracy < 80:
		return 85
	default:
		return 90
	}
}

// TopicSource supplies syllabus topics for a subject, in study order.
type TopicSource interface {
	Topics(subject Subject) []Topic
}

// FocusAreas picks up to limit topics for each non-strong subject.
func FocusAreas(gaps []GapEntry, src TopicSource, limit int) []FocusArea {
	if src == nil || limit <= 0 {
		return nil
	}
	var out []FocusArea
	for _, g := range gaps {
		if g.Band == BandStrong {
			continue
		}
		topics := src.Topics(g.Subject)
		if len(topics) == 0 {
			continue
		}
		if len(topics) > limit {
			topics = topics[:limit]
		}
		out = append(out, FocusArea{
			Subject: g.Subject,
			Topics:  append([]Topic(nil), topics...),
		})
	}
	return out
}

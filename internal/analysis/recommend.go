package analysis

import "fmt"

// AllStrongMessage is the single recommendation emitted when every subject is strong.
const AllStrongMessage = "All subjects show strong performance — maintain practice to retain mastery."

// Recommend turns classified gaps into study suggestions, in gap order.
//
// Weak and not-attempted subjects each get a line. If there are none, every
// Moderate subject gets a line of its own so the student is never left without
// guidance. If every subject is strong, only AllStrongMessage is returned.
func Recommend(gaps []GapEntry, overall OverallMetrics) []string {
	var lines []string
	for _, g := range gaps {
		switch g.Band {
		case BandNotAttempted:
			lines = append(lines, fmt.Sprintf("You have not attempted %s yet — start with foundational review.", g.Subject))
		case BandWeak:
			lines = append(lines, fmt.Sprintf("Your %s accuracy is %d%% — revisit core concepts and retry practice questions.", g.Subject, g.AccuracyPercent))
		}
	}
	if len(lines) > 0 {
		return lines
	}

	for _, g := range gaps {
		if g.Band == BandModerate {
			lines = append(lines, fmt.Sprintf("Your %s accuracy is %d%% — targeted practice will push you into the strong range.", g.Subject, g.AccuracyPercent))
		}
	}
	if len(lines) > 0 {
		return lines
	}

	if overall.Attempted > 0 {
		return []string{AllStrongMessage}
	}
	return []string{}
}

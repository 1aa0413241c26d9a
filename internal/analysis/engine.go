package analysis

// HealthStatus is the constant liveness signal.
type HealthStatus struct {
	Status string `json:"status"`
}

// Option customises an Engine.
type Option func(*Engine)

// WithTopics attaches a topic catalog used to fill AnalysisResult.FocusAreas.
func WithTopics(src TopicSource) Option {
	return func(e *Engine) {
		e.topics = src
	}
}

// Engine composes the aggregator, classifier, recommendation generator and
// allocator. It holds only immutable configuration and is safe for
// concurrent use.
type Engine struct {
	cfg    Config
	topics TopicSource
}

// NewEngine creates an engine. Zero config fields take their defaults before
// the config is validated.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Analyze runs the full pipeline.
func (e *Engine) Analyze(attempts []AttemptRecord) (*AnalysisResult, error) {
	overall, subjects, err := Aggregate(attempts)
	if err != nil {
		return nil, err
	}
	gaps := Classify(subjects, e.cfg.Thresholds)
	plan, err := Allocate(subjects, e.cfg.DailyBudgetMinutes)
	if err != nil {
		return nil, err
	}

	return &AnalysisResult{
		Overall:         overall,
		Subjects:        subjects,
		Gaps:            gaps,
		Recommendations: Recommend(gaps, overall),
		StudyPlan:       plan,
		Performance:     Assess(overall),
		Strengths:       Strengths(gaps),
		Weaknesses:      Weaknesses(gaps, subjects),
		WeeklyGoals:     WeeklyGoals(subjects),
		FocusAreas:      FocusAreas(gaps, e.topics, e.cfg.FocusTopicLimit),
	}, nil
}

// Recommendations returns only the recommendation lines.
func (e *Engine) Recommendations(attempts []AttemptRecord) ([]string, error) {
	overall, subjects, err := Aggregate(attempts)
	if err != nil {
		return nil, err
	}
	return Recommend(Classify(subjects, e.cfg.Thresholds), overall), nil
}

// StudyPlan allocates the configured daily budget.
func (e *Engine) StudyPlan(attempts []AttemptRecord) ([]StudyPlanEntry, error) {
	return e.StudyPlanWithBudget(attempts, e.cfg.DailyBudgetMinutes)
}

// StudyPlanWithBudget allocates budget minutes instead of the configured default.
func (e *Engine) StudyPlanWithBudget(attempts []AttemptRecord, budget int) ([]StudyPlanEntry, error) {
	_, subjects, err := Aggregate(attempts)
	if err != nil {
		return nil, err
	}
	return Allocate(subjects, budget)
}

// Health reports liveness. It does no work.
func (e *Engine) Health() HealthStatus {
	return HealthStatus{Status: "ok"}
}

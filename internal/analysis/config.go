package analysis

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	defaultStrongCutoff        = 80
	defaultModerateCutoff      = 50
	defaultNotAttemptedPenalty = 15
	defaultDailyBudgetMinutes  = 60
	defaultFocusTopicLimit     = 3
)

var validate = validator.New()

// Thresholds are the band cutoffs and the severity penalty for subjects with
// no attempts.
type Thresholds struct {
	StrongCutoff        int `validate:"gtfield=ModerateCutoff,lte=100"`
	ModerateCutoff      int `validate:"gt=0,lte=100"`
	NotAttemptedPenalty int `validate:"gte=0"`
}

// Config holds the engine settings. Zero fields take their defaults in NewEngine.
type Config struct {
	Thresholds         Thresholds
	DailyBudgetMinutes int `validate:"gte=0,lte=1440"`
	FocusTopicLimit    int `validate:"gte=0,lte=20"`
}

// DefaultThresholds returns the 80/50 cutoffs with a 15 point penalty.
func DefaultThresholds() Thresholds {
	return Thresholds{
		StrongCutoff:        defaultStrongCutoff,
		ModerateCutoff:      defaultModerateCutoff,
		NotAttemptedPenalty: defaultNotAttemptedPenalty,
	}
}

// DefaultConfig returns the documented defaults: 80/50 band cutoffs and a
// 60 minute daily budget.
func DefaultConfig() Config {
	return Config{
		Thresholds:         DefaultThresholds(),
		DailyBudgetMinutes: defaultDailyBudgetMinutes,
		FocusTopicLimit:    defaultFocusTopicLimit,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Thresholds.StrongCutoff == 0 {
		c.Thresholds.StrongCutoff = d.Thresholds.StrongCutoff
	}
	if c.Thresholds.ModerateCutoff == 0 {
		c.Thresholds.ModerateCutoff = d.Thresholds.ModerateCutoff
	}
	if c.Thresholds.NotAttemptedPenalty == 0 {
		c.Thresholds.NotAttemptedPenalty = d.Thresholds.NotAttemptedPenalty
	}
	if c.DailyBudgetMinutes == 0 {
		c.DailyBudgetMinutes = d.DailyBudgetMinutes
	}
	if c.FocusTopicLimit == 0 {
		c.FocusTopicLimit = d.FocusTopicLimit
	}
	return c
}

// Validate checks the configuration bounds.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validating analysis config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return fmt.Errorf("invalid analysis config: %s", strings.Join(msgs, "; "))
}

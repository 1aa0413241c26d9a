package analysis_test

import (
	"reflect"
	"testing"

	"github.com/p-n-ai/pai-quiz/internal/analysis"
)

func TestBandFor(t *testing.T) {
	th := analysis.DefaultThresholds()
	tests := []struct {
		name string
		m    analysis.SubjectMetrics
		want analysis.Band
	}{
		{"not attempted", analysis.SubjectMetrics{}, analysis.BandNotAttempted},
		{"all wrong", metrics(0, 5), analysis.BandWeak},
		{"just below moderate", metrics(49, 51), analysis.BandWeak},
		{"moderate floor", metrics(1, 1), analysis.BandModerate},
		{"just below strong", metrics(79, 21), analysis.BandModerate},
		{"strong floor", metrics(8, 2), analysis.BandStrong},
		{"perfect", metrics(4, 0), analysis.BandStrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analysis.BandFor(tt.m, th); got != tt.want {
				t.Errorf("BandFor(%+v) = %s, want %s", tt.m, got, tt.want)
			}
		})
	}
}

func TestBandFor_CustomThresholds(t *testing.T) {
	th := analysis.Thresholds{StrongCutoff: 90, ModerateCutoff: 60, NotAttemptedPenalty: 15}
	if got := analysis.BandFor(metrics(8, 2), th); got != analysis.BandModerate {
		t.Errorf("BandFor(80%%) = %s, want Moderate", got)
	}
	if got := analysis.BandFor(metrics(11, 9), th); got != analysis.BandWeak {
		t.Errorf("BandFor(55%%) = %s, want Weak", got)
	}
}

func TestClassify_ScenarioB(t *testing.T) {
	_, subjects, err := analysis.Aggregate(scenarioB())
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	got := analysis.Classify(subjects, analysis.DefaultThresholds())
	want := []analysis.GapEntry{
		{Subject: analysis.Chemistry, Band: analysis.BandWeak, AccuracyPercent: 30, Severity: 70},
		{Subject: analysis.Biology, Band: analysis.BandStrong, AccuracyPercent: 80, Severity: 20},
		{Subject: analysis.Physics, Band: analysis.BandStrong, AccuracyPercent: 100, Severity: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Classify() = %+v, want %+v", got, want)
	}
}

func TestClassify_NotAttemptedOutranksZeroAccuracy(t *testing.T) {
	_, subjects, _ := analysis.Aggregate(concat(
		attempts(analysis.Biology, 0, 4),
		attempts(analysis.Physics, 2, 2),
	))

	got := analysis.Classify(subjects, analysis.DefaultThresholds())
	if got[0].Subject != analysis.Chemistry || got[0].Band != analysis.BandNotAttempted {
		t.Fatalf("first gap = %+v, want Chemistry NotAttempted", got[0])
	}
	if got[0].Severity != 115 {
		t.Errorf("not attempted severity = %d, want 115", got[0].Severity)
	}
	if got[1].Subject != analysis.Biology || got[1].Severity != 100 {
		t.Errorf("second gap = %+v, want Biology severity 100", got[1])
	}
}

func TestClassify_TiesUseCanonicalOrder(t *testing.T) {
	_, subjects, _ := analysis.Aggregate(concat(
		attempts(analysis.Physics, 1, 1),
		attempts(analysis.Chemistry, 1, 1),
		attempts(analysis.Biology, 1, 1),
	))

	got := analysis.Classify(subjects, analysis.DefaultThresholds())
	order := []analysis.Subject{got[0].Subject, got[1].Subject, got[2].Subject}
	want := []analysis.Subject{analysis.Biology, analysis.Chemistry, analysis.Physics}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestClassify_IncludesEverySubject(t *testing.T) {
	_, subjects, _ := analysis.Aggregate(concat(
		attempts(analysis.Biology, 5, 0),
		attempts(analysis.Chemistry, 5, 0),
		attempts(analysis.Physics, 5, 0),
	))

	got := analysis.Classify(subjects, analysis.DefaultThresholds())
	if len(got) != 3 {
		t.Fatalf("len(Classify()) = %d, want 3", len(got))
	}
	for _, g := range got {
		if g.Band != analysis.BandStrong {
			t.Errorf("%s band = %s, want Strong", g.Subject, g.Band)
		}
	}
}

func TestClassify_Idempotent(t *testing.T) {
	_, subjects, _ := analysis.Aggregate(concat(
		attempts(analysis.Biology, 2, 3),
		attempts(analysis.Physics, 3, 2),
	))
	th := analysis.DefaultThresholds()

	first := analysis.Classify(subjects, th)
	for i := 0; i < 10; i++ {
		if again := analysis.Classify(subjects, th); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d: Classify() = %+v, want %+v", i, again, first)
		}
	}
}

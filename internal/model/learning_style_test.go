package model

import "testing"

func TestDifficultyForScore(t *testing.T) {
	tests := []struct {
		avg  float64
		want DifficultyLevel
	}{
		{1.0, DifficultyExpert},
		{0.8, DifficultyExpert},
		{0.79, DifficultyAdvanced},
		{0.6, DifficultyAdvanced},
		{0.59, DifficultyIntermediate},
		{0.4, DifficultyIntermediate},
		{0.39, DifficultyBeginner},
		{0.0, DifficultyBeginner},
	}
	for _, tt := range tests {
		if got := DifficultyForScore(tt.avg); got != tt.want {
			t.Errorf("DifficultyForScore(%v) = %q, want %q", tt.avg, got, tt.want)
		}
	}
}

func TestDifficultyStepDown(t *testing.T) {
	tests := []struct {
		in, want DifficultyLevel
	}{
		{DifficultyExpert, DifficultyAdvanced},
		{DifficultyAdvanced, DifficultyIntermediate},
		{DifficultyIntermediate, DifficultyBeginner},
		{DifficultyBeginner, DifficultyBeginner},
	}
	for _, tt := range tests {
		if got := tt.in.StepDown(); got != tt.want {
			t.Errorf("%q.StepDown() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEnumValidity(t *testing.T) {
	for _, s := range AllLearningStyles {
		if !s.Valid() {
			t.Errorf("style %q should be valid", s)
		}
	}
	if LearningStyle("telepathic").Valid() {
		t.Error("unknown style accepted")
	}

	for _, c := range AllContentTypes {
		if !c.Valid() {
			t.Errorf("content type %q should be valid", c)
		}
	}
	if ContentType("hologram").Valid() {
		t.Error("unknown content type accepted")
	}
}

func TestDominantStyle(t *testing.T) {
	p := &LearningProfile{StyleWeights: StyleWeights{}}
	for _, s := range AllLearningStyles {
		p.StyleWeights[s] = 0.5
	}

	// 全部并列时取枚举顺序首位
	if got := p.DominantStyle(); got != StyleVisual {
		t.Errorf("tie: expected visual, got %q", got)
	}

	p.StyleWeights[StyleLogical] = 0.9
	if got := p.DominantStyle(); got != StyleLogical {
		t.Errorf("expected logical, got %q", got)
	}
}

func TestGapForTopic(t *testing.T) {
	p := &LearningProfile{KnowledgeGaps: []KnowledgeGap{
		{Topic: "algebra", Priority: PriorityHigh},
		{Topic: "geometry", Priority: PriorityMedium},
	}}

	if got := p.GapForTopic("algebra"); got == nil || got.Priority != PriorityHigh {
		t.Errorf("unexpected gap %+v", got)
	}
	if got := p.GapForTopic("calculus"); got != nil {
		t.Errorf("expected nil for unknown topic, got %+v", got)
	}
}

package service

import (
	"adaptive_learning_backend/internal/model"
	"adaptive_learning_backend/internal/util"
	"context"
	"errors"
	"sync"
	"testing"
)

func TestRecordOutcome_FirstObservation(t *testing.T) {
	profiles := newMemProfileStore()
	effectiveness := newMemEffectivenessStore()
	seedProfile(t, profiles, "u1")
	svc := NewEffectivenessService(effectiveness, newProfileService(profiles))

	updated, err := svc.RecordOutcome(context.Background(), "u1", "algebra", model.ContentText, model.OutcomeMetrics{
		CompletionRate:  1.0,
		Engagement:      1.0,
		AssessmentScore: 1.0,
	})
	if err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}

	// 新效果分 1.0，EMA：0.7*0.5 + 0.3*1.0 = 0.65
	if !almostEqual(updated, 0.65) {
		t.Errorf("expected 0.65, got %v", updated)
	}
	e, err := effectiveness.Find("algebra", model.ContentText)
	if err != nil {
		t.Fatalf("effectiveness not persisted: %v", err)
	}
	if !almostEqual(e.Score, 0.65) {
		t.Errorf("persisted score: expected 0.65, got %v", e.Score)
	}

	// 画像偏好微调：0.8*0.5 + 0.2*1.0 = 0.6
	p, err := profiles.FindByUserID("u1")
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(p.ContentPreferences[model.ContentText], 0.6) {
		t.Errorf("expected nudged preference 0.6, got %v", p.ContentPreferences[model.ContentText])
	}
	// 其余偏好与风格权重不受影响
	if !almostEqual(p.ContentPreferences[model.ContentVideo], 0.5) {
		t.Errorf("video preference changed: %v", p.ContentPreferences[model.ContentVideo])
	}
	for style, w := range p.StyleWeights {
		if !almostEqual(w, 0.5) {
			t.Errorf("style weight %q changed: %v", style, w)
		}
	}
}

func TestRecordOutcome_MixedMetrics(t *testing.T) {
	profiles := newMemProfileStore()
	effectiveness := newMemEffectivenessStore()
	seedProfile(t, profiles, "u1")
	svc := NewEffectivenessService(effectiveness, newProfileService(profiles))

	// 新效果分 = 0.4*0.5 + 0.3*1.0 + 0.3*0.0 = 0.5，EMA 不动
	updated, err := svc.RecordOutcome(context.Background(), "u1", "algebra", model.ContentVideo, model.OutcomeMetrics{
		CompletionRate:  1.0,
		Engagement:      0.0,
		AssessmentScore: 0.5,
	})
	if err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}
	if !almostEqual(updated, 0.5) {
		t.Errorf("expected 0.5, got %v", updated)
	}
}

func TestRecordOutcome_EMAConvergesWithoutOvershoot(t *testing.T) {
	profiles := newMemProfileStore()
	effectiveness := newMemEffectivenessStore()
	svc := NewEffectivenessService(effectiveness, newProfileService(profiles))
	ctx := context.Background()

	perfect := model.OutcomeMetrics{CompletionRate: 1, Engagement: 1, AssessmentScore: 1}
	prev := model.DefaultEffectiveness
	for i := 0; i < 20; i++ {
		updated, err := svc.RecordOutcome(ctx, "u1", "algebra", model.ContentText, perfect)
		if err != nil {
			t.Fatalf("RecordOutcome #%d: %v", i, err)
		}
		if updated <= prev {
			t.Fatalf("iteration %d: score %v did not increase from %v", i, updated, prev)
		}
		if updated > 1 {
			t.Fatalf("iteration %d: score %v overshot 1", i, updated)
		}
		prev = updated
	}
	if prev < 0.99 {
		t.Errorf("expected convergence near 1 after 20 outcomes, got %v", prev)
	}
}

func TestRecordOutcome_UnknownUserStillCounts(t *testing.T) {
	profiles := newMemProfileStore()
	effectiveness := newMemEffectivenessStore()
	svc := NewEffectivenessService(effectiveness, newProfileService(profiles))

	updated, err := svc.RecordOutcome(context.Background(), "ghost", "algebra", model.ContentText, model.OutcomeMetrics{
		CompletionRate: 1, Engagement: 1, AssessmentScore: 1,
	})
	if err != nil {
		t.Fatalf("outcome for unknown user should not fail: %v", err)
	}
	if !almostEqual(updated, 0.65) {
		t.Errorf("expected 0.65, got %v", updated)
	}
	if _, err := effectiveness.Find("algebra", model.ContentText); err != nil {
		t.Errorf("global effectiveness not recorded: %v", err)
	}
}

func TestRecordOutcome_ConcurrentNudgesAllApply(t *testing.T) {
	profiles := newMemProfileStore()
	effectiveness := newMemEffectivenessStore()
	seedProfile(t, profiles, "u1")
	svc := NewEffectivenessService(effectiveness, newProfileService(profiles))

	perfect := model.OutcomeMetrics{CompletionRate: 1, Engagement: 1, AssessmentScore: 1}
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.RecordOutcome(context.Background(), "u1", "algebra", model.ContentText, perfect); err != nil {
				t.Errorf("RecordOutcome: %v", err)
			}
		}()
	}
	wg.Wait()

	// 两次微调都要落盘：0.5 → 0.6 → 0.68，丢失一次会停在 0.6
	p, err := profiles.FindByUserID("u1")
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(p.ContentPreferences[model.ContentText], 0.68) {
		t.Errorf("expected preference 0.68 after two nudges, got %v", p.ContentPreferences[model.ContentText])
	}

	// 效果分同样经过两次EMA：0.5 → 0.65 → 0.755
	e, err := effectiveness.Find("algebra", model.ContentText)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(e.Score, 0.755) {
		t.Errorf("expected score 0.755 after two outcomes, got %v", e.Score)
	}
}

func TestRecordOutcome_Invalid(t *testing.T) {
	svc := NewEffectivenessService(newMemEffectivenessStore(), newProfileService(newMemProfileStore()))
	ctx := context.Background()

	if _, err := svc.RecordOutcome(ctx, "u1", "algebra", "hologram", model.OutcomeMetrics{}); !errors.Is(err, util.ErrInvalidContentType) {
		t.Fatalf("expected ErrInvalidContentType, got %v", err)
	}

	bad := []model.OutcomeMetrics{
		{CompletionRate: 1.5},
		{Engagement: -0.1},
		{AssessmentScore: 2},
	}
	for _, m := range bad {
		if _, err := svc.RecordOutcome(ctx, "u1", "algebra", model.ContentText, m); !errors.Is(err, util.ErrInvalidMetrics) {
			t.Fatalf("metrics %+v: expected ErrInvalidMetrics, got %v", m, err)
		}
	}
}

func TestGetTopicEffectiveness_Defaults(t *testing.T) {
	effectiveness := newMemEffectivenessStore()
	svc := NewEffectivenessService(effectiveness, newProfileService(newMemProfileStore()))

	scores, err := svc.GetTopicEffectiveness("algebra")
	if err != nil {
		t.Fatalf("GetTopicEffectiveness: %v", err)
	}
	if len(scores) != len(model.AllContentTypes) {
		t.Fatalf("expected %d entries, got %d", len(model.AllContentTypes), len(scores))
	}
	for ct, score := range scores {
		if !almostEqual(score, model.DefaultEffectiveness) {
			t.Errorf("%q: expected default %v, got %v", ct, model.DefaultEffectiveness, score)
		}
	}
}

func TestGetTopicEffectiveness_ObservedOverridesDefault(t *testing.T) {
	effectiveness := newMemEffectivenessStore()
	if err := effectiveness.Upsert(&model.ContentEffectiveness{
		Topic: "algebra", ContentType: model.ContentQuiz, Score: 0.72,
	}); err != nil {
		t.Fatal(err)
	}
	if err := effectiveness.Upsert(&model.ContentEffectiveness{
		Topic: "geometry", ContentType: model.ContentText, Score: 0.9,
	}); err != nil {
		t.Fatal(err)
	}
	svc := NewEffectivenessService(effectiveness, newProfileService(newMemProfileStore()))

	scores, err := svc.GetTopicEffectiveness("algebra")
	if err != nil {
		t.Fatalf("GetTopicEffectiveness: %v", err)
	}
	if !almostEqual(scores[model.ContentQuiz], 0.72) {
		t.Errorf("quiz: expected 0.72, got %v", scores[model.ContentQuiz])
	}
	// 其他主题的观测不串台
	if !almostEqual(scores[model.ContentText], model.DefaultEffectiveness) {
		t.Errorf("text: expected default, got %v", scores[model.ContentText])
	}
}

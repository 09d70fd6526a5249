package service

import (
	"adaptive_learning_backend/internal/model"
	"adaptive_learning_backend/internal/util"
	"adaptive_learning_backend/pkg/logger"
	"adaptive_learning_backend/pkg/monitoring"
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// 结果指标合成与EMA平滑系数
const (
	outcomeAssessmentWeight = 0.4
	outcomeCompletionWeight = 0.3
	outcomeEngagementWeight = 0.3
	emaRetainWeight         = 0.7 // 历史效果分保留比例
	emaUpdateWeight         = 0.3
)

type EffectivenessService struct {
	Effectiveness EffectivenessStore
	Profile       *ProfileService

	mu sync.Mutex // 串行化效果分的读改写
}

func NewEffectivenessService(effectiveness EffectivenessStore, profile *ProfileService) *EffectivenessService {
	return &EffectivenessService{
		Effectiveness: effectiveness,
		Profile:       profile,
	}
}

// RecordOutcome 以指数移动平均更新 (主题, 内容类型) 的效果分，
// 并微调该用户画像中的内容偏好。只动偏好，不动风格权重与难度
func (s *EffectivenessService) RecordOutcome(ctx context.Context, userID, topic string, contentType model.ContentType, metrics model.OutcomeMetrics) (float64, error) {
	if !contentType.Valid() {
		return 0, fmt.Errorf("%w: %q", util.ErrInvalidContentType, contentType)
	}
	if err := validateMetrics(metrics); err != nil {
		return 0, err
	}

	newEffectiveness := outcomeAssessmentWeight*metrics.AssessmentScore +
		outcomeCompletionWeight*metrics.CompletionRate +
		outcomeEngagementWeight*metrics.Engagement

	s.mu.Lock()
	current := model.DefaultEffectiveness
	if e, err := s.Effectiveness.Find(topic, contentType); err == nil {
		current = e.Score
	}

	updated := emaRetainWeight*current + emaUpdateWeight*newEffectiveness
	err := s.Effectiveness.Upsert(&model.ContentEffectiveness{
		Topic:       topic,
		ContentType: contentType,
		Score:       updated,
	})
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}

	// 画像偏好的读改写交给 ProfileService，与画像重建共用同一把锁
	s.Profile.NudgeContentPreference(ctx, userID, contentType, newEffectiveness)

	monitoring.OutcomesRecorded.Inc()
	logger.Log.Debug("effectiveness updated",
		zap.String("topic", topic),
		zap.String("contentType", string(contentType)),
		zap.Float64("score", updated))

	return updated, nil
}

// GetTopicEffectiveness 某主题下5种内容类型的效果分，未观测组合取默认值
func (s *EffectivenessService) GetTopicEffectiveness(topic string) (map[model.ContentType]float64, error) {
	entries, err := s.Effectiveness.ListByTopic(topic)
	if err != nil {
		return nil, err
	}

	scores := make(map[model.ContentType]float64, len(model.AllContentTypes))
	for _, ct := range model.AllContentTypes {
		scores[ct] = model.DefaultEffectiveness
	}
	for _, e := range entries {
		scores[e.ContentType] = e.Score
	}
	return scores, nil
}

func validateMetrics(m model.OutcomeMetrics) error {
	if m.CompletionRate < 0 || m.CompletionRate > 1 ||
		m.Engagement < 0 || m.Engagement > 1 ||
		m.AssessmentScore < 0 || m.AssessmentScore > 1 {
		return util.ErrInvalidMetrics
	}
	return nil
}

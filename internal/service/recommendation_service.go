package service

import (
	"adaptive_learning_backend/internal/model"
	"adaptive_learning_backend/internal/util"
	"adaptive_learning_backend/pkg/logger"
	"adaptive_learning_backend/pkg/monitoring"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 内容类型打分：个人偏好与全局效果分的混合系数
const (
	recPreferenceWeight    = 0.6
	recEffectivenessWeight = 0.4
)

type RecommendationService struct {
	Profiles      ProfileStore
	Effectiveness EffectivenessStore
}

func NewRecommendationService(profiles ProfileStore, effectiveness EffectivenessStore) *RecommendationService {
	return &RecommendationService{
		Profiles:      profiles,
		Effectiveness: effectiveness,
	}
}

// Recommend 为 (用户, 主题) 生成内容参数。不修改画像本身，
// 但会为选中的 (主题, 内容类型) 组合补一条默认效果分记录，
// 作为后续结果回报的基准
func (s *RecommendationService) Recommend(userID, topic string, hint model.ContentType) (*model.ContentParams, error) {
	if hint != "" && !hint.Valid() {
		return nil, fmt.Errorf("%w: %q", util.ErrInvalidContentType, hint)
	}

	profile, err := s.Profiles.FindByUserID(userID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	contentType := hint
	if contentType == "" {
		contentType = s.selectContentType(profile, topic)
	}

	// 该主题存在高优先级缺口时难度下调一级
	difficulty := profile.DifficultyLevel
	if gap := profile.GapForTopic(topic); gap != nil && gap.Priority == model.PriorityHigh {
		difficulty = difficulty.StepDown()
	}

	dominant := profile.DominantStyle()

	params := &model.ContentParams{
		Topic:         topic,
		Difficulty:    difficulty,
		LearningStyle: dominant,
		ContentType:   contentType,
		Pace:          profile.LearningPace.Pace,
		Adaptations:   buildAdaptations(profile, topic, dominant),
	}

	if err := s.Effectiveness.EnsureDefault(topic, contentType); err != nil {
		logger.Log.Warn("default effectiveness not seeded",
			zap.String("topic", topic),
			zap.String("contentType", string(contentType)),
			zap.Error(err))
	}

	monitoring.RecommendationsServed.WithLabelValues(string(contentType)).Inc()
	return params, nil
}

// selectContentType 按 0.6×偏好 + 0.4×效果分逐一打分，
// 取最大者，得分相同取枚举顺序靠前者
func (s *RecommendationService) selectContentType(profile *model.LearningProfile, topic string) model.ContentType {
	best := model.AllContentTypes[0]
	bestScore := -1.0
	for _, ct := range model.AllContentTypes {
		effectiveness := model.DefaultEffectiveness
		if e, err := s.Effectiveness.Find(topic, ct); err == nil {
			effectiveness = e.Score
		}
		score := recPreferenceWeight*profile.ContentPreferences[ct] + recEffectivenessWeight*effectiveness
		if score > bestScore {
			best, bestScore = ct, score
		}
	}
	return best
}

// buildAdaptations 固定顺序组装适配指令：节奏 → 风格 → 补救
func buildAdaptations(profile *model.LearningProfile, topic string, dominant model.LearningStyle) []model.Adaptation {
	adaptations := make([]model.Adaptation, 0, 3)

	if profile.LearningPace.Pace == model.PaceSlow {
		adaptations = append(adaptations, model.Adaptation{
			Type:   model.AdaptationPace,
			Action: model.ActionAdditionalExamples,
			Reason: "learner masters material slower than their own baseline",
		})
	}

	adaptations = append(adaptations, model.Adaptation{
		Type:   model.AdaptationStyle,
		Action: model.ActionOptimizeForStylePrefx + string(dominant),
	})

	for _, gap := range profile.KnowledgeGaps {
		if gap.Topic != topic {
			continue
		}
		adaptations = append(adaptations, model.Adaptation{
			Type:          model.AdaptationRemedial,
			Action:        model.ActionPrerequisiteReview,
			Reason:        fmt.Sprintf("mastery of %q below threshold", topic),
			Prerequisites: gap.Prerequisites,
		})
	}

	return adaptations
}

package service

import (
	"adaptive_learning_backend/internal/model"
	"adaptive_learning_backend/internal/util"
	"adaptive_learning_backend/pkg/logger"
	"adaptive_learning_backend/pkg/monitoring"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 画像构建的混合系数
const (
	styleBaseWeight         = 0.7 // 问卷自评权重
	stylePerformanceWeight  = 0.3 // 历史表现权重
	prefCurrentWeight       = 0.7
	prefEngagementWeight    = 0.3
	engagementCompletionW   = 0.6
	engagementSatisfactionW = 0.4
	knowledgeGapThreshold   = 0.7
	highPriorityThreshold   = 0.5
	fastPaceRatio           = 0.7
	slowPaceRatio           = 1.3
	prefNudgeRetainWeight   = 0.8 // 结果微调时偏好保留比例
	prefNudgeUpdateWeight   = 0.2
)

type ProfileService struct {
	Profiles    ProfileStore
	Assessments AssessmentStore
	Cluster     *ClusterService
	Cache       *ProfileCache

	mu sync.Mutex // 串行化画像的读改写
}

func NewProfileService(profiles ProfileStore, assessments AssessmentStore, cluster *ClusterService, cache *ProfileCache) *ProfileService {
	return &ProfileService{
		Profiles:    profiles,
		Assessments: assessments,
		Cluster:     cluster,
		Cache:       cache,
	}
}

// CreateProfile 依据初始评估构建（或重建）用户学习画像，
// 成功后触发全量重聚类
func (s *ProfileService) CreateProfile(ctx context.Context, userID, sourceClient string, payload model.AssessmentPayload) (*model.LearningProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", util.ErrInvalidAssessment)
	}
	if err := validateAssessment(payload); err != nil {
		return nil, err
	}

	now := time.Now()
	profile := &model.LearningProfile{
		UserID:             userID,
		StyleWeights:       computeStyleWeights(payload),
		DifficultyLevel:    determineDifficulty(payload.TopicScores),
		ContentPreferences: computeContentPreferences(payload),
		KnowledgeGaps:      identifyKnowledgeGaps(payload),
		LearningPace:       estimatePace(payload.LearningHistory),
		LastUpdated:        now,
	}

	s.mu.Lock()
	existing, err := s.Profiles.FindByUserID(userID)
	switch {
	case err == nil:
		// 重新评估：覆盖画像内容，保留主键与聚类历史
		existing.StyleWeights = profile.StyleWeights
		existing.DifficultyLevel = profile.DifficultyLevel
		existing.ContentPreferences = profile.ContentPreferences
		existing.KnowledgeGaps = profile.KnowledgeGaps
		existing.LearningPace = profile.LearningPace
		existing.LastUpdated = now
		err = s.Profiles.Update(existing)
		profile = existing
	case err == gorm.ErrRecordNotFound:
		err = s.Profiles.Create(profile)
	}
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.recordAssessment(userID, sourceClient, payload)
	s.Cache.Invalidate(ctx, userID)
	monitoring.ProfilesCreated.Inc()

	// 聚类失败不阻断画像创建
	if s.Cluster != nil {
		if err := s.Cluster.Recluster(); err != nil {
			logger.Log.Warn("recluster after profile creation failed", zap.Error(err))
		}
	}

	logger.Log.Info("learning profile built",
		zap.String("userId", userID),
		zap.String("difficulty", string(profile.DifficultyLevel)),
		zap.Int("knowledgeGaps", len(profile.KnowledgeGaps)))

	return profile, nil
}

// GetProfile 读取画像，优先走缓存
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*model.LearningProfile, error) {
	if p, ok := s.Cache.Get(ctx, userID); ok {
		return p, nil
	}

	p, err := s.Profiles.FindByUserID(userID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, p)
	return p, nil
}

// NudgeContentPreference 依据最新学习结果按 0.8/0.2 微调某内容类型的偏好。
// 与画像重建共用同一把锁，避免并发读改写互相覆盖；无画像用户静默跳过
func (s *ProfileService) NudgeContentPreference(ctx context.Context, userID string, contentType model.ContentType, newEffectiveness float64) {
	s.mu.Lock()
	profile, err := s.Profiles.FindByUserID(userID)
	if err == gorm.ErrRecordNotFound {
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.mu.Unlock()
		logger.Log.Warn("profile lookup for preference nudge failed", zap.String("userId", userID), zap.Error(err))
		return
	}

	profile.ContentPreferences[contentType] = clamp01(
		prefNudgeRetainWeight*profile.ContentPreferences[contentType] + prefNudgeUpdateWeight*newEffectiveness)
	profile.LastUpdated = time.Now()
	err = s.Profiles.Update(profile)
	s.mu.Unlock()

	if err != nil {
		logger.Log.Warn("preference nudge not persisted", zap.String("userId", userID), zap.Error(err))
		return
	}
	s.Cache.Invalidate(ctx, userID)
}

// AssessmentHistory 分页返回某用户的历史评估快照，最新的在前
func (s *ProfileService) AssessmentHistory(userID string, page, limit int) ([]model.AssessmentRecord, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Assessments.ListByUser(userID, page, limit)
}

// recordAssessment 落一条评估快照留档，失败只记日志
func (s *ProfileService) recordAssessment(userID, sourceClient string, payload model.AssessmentPayload) {
	if s.Assessments == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	rec := &model.AssessmentRecord{UserID: userID, SourceClient: sourceClient, Payload: raw}
	if err := s.Assessments.Create(rec); err != nil {
		logger.Log.Warn("assessment snapshot not persisted", zap.String("userId", userID), zap.Error(err))
	}
}

func validateAssessment(p model.AssessmentPayload) error {
	for style, v := range p.StyleResponses {
		if !style.Valid() {
			return fmt.Errorf("%w: unknown learning style %q", util.ErrInvalidAssessment, style)
		}
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: style response %q=%v outside [0,1]", util.ErrInvalidAssessment, style, v)
		}
	}
	for _, e := range p.PerformanceHistory {
		if !e.LearningStyle.Valid() {
			return fmt.Errorf("%w: unknown learning style %q in performance history", util.ErrInvalidAssessment, e.LearningStyle)
		}
		if e.Score < 0 || e.Score > 1 {
			return fmt.Errorf("%w: performance score %v outside [0,1]", util.ErrInvalidAssessment, e.Score)
		}
	}
	for topic, v := range p.TopicScores {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: topic score %q=%v outside [0,1]", util.ErrInvalidAssessment, topic, v)
		}
	}
	for ct, v := range p.ContentPreferences {
		if !ct.Valid() {
			return fmt.Errorf("%w: unknown content type %q", util.ErrInvalidAssessment, ct)
		}
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: content preference %q=%v outside [0,1]", util.ErrInvalidAssessment, ct, v)
		}
	}
	for _, e := range p.EngagementHistory {
		if !e.ContentType.Valid() {
			return fmt.Errorf("%w: unknown content type %q in engagement history", util.ErrInvalidAssessment, e.ContentType)
		}
		if e.CompletionRate < 0 || e.CompletionRate > 1 || e.Satisfaction < 0 || e.Satisfaction > 1 {
			return fmt.Errorf("%w: engagement metrics outside [0,1]", util.ErrInvalidAssessment)
		}
	}
	for _, e := range p.LearningHistory {
		if e.TimeToMastery < 0 {
			return fmt.Errorf("%w: negative time_to_mastery", util.ErrInvalidAssessment)
		}
	}
	return nil
}

// computeStyleWeights 8种风格逐一计算：问卷自评缺省0.5，
// 有历史表现时按 0.7/0.3 混入该风格得分均值，并收敛到 [0,1]
func computeStyleWeights(p model.AssessmentPayload) model.StyleWeights {
	weights := make(model.StyleWeights, len(model.AllLearningStyles))
	for _, style := range model.AllLearningStyles {
		base := 0.5
		if v, ok := p.StyleResponses[style]; ok {
			base = v
		}

		var sum float64
		var count int
		for _, e := range p.PerformanceHistory {
			if e.LearningStyle == style {
				sum += e.Score
				count++
			}
		}
		if count > 0 {
			base = styleBaseWeight*base + stylePerformanceWeight*(sum/float64(count))
		}

		weights[style] = clamp01(base)
	}
	return weights
}

// determineDifficulty 主题分均值映射难度，无数据视为0分
func determineDifficulty(topicScores map[string]float64) model.DifficultyLevel {
	if len(topicScores) == 0 {
		return model.DifficultyBeginner
	}
	var sum float64
	for _, v := range topicScores {
		sum += v
	}
	return model.DifficultyForScore(sum / float64(len(topicScores)))
}

// computeContentPreferences 5种内容类型逐一计算：显式偏好缺省0.5，
// 对每条匹配的参与记录按 0.7/0.3 顺序折叠
// （折叠顺序隐式地偏重靠后的记录）
func computeContentPreferences(p model.AssessmentPayload) model.ContentPreferences {
	prefs := make(model.ContentPreferences, len(model.AllContentTypes))
	for _, ct := range model.AllContentTypes {
		pref := 0.5
		if v, ok := p.ContentPreferences[ct]; ok {
			pref = v
		}

		for _, e := range p.EngagementHistory {
			if e.ContentType != ct {
				continue
			}
			effectiveness := engagementCompletionW*e.CompletionRate + engagementSatisfactionW*e.Satisfaction
			pref = prefCurrentWeight*pref + prefEngagementWeight*effectiveness
		}

		prefs[ct] = clamp01(pref)
	}
	return prefs
}

// identifyKnowledgeGaps 掌握度低于0.7的主题视为缺口，按掌握度升序
// （最差的排最前），同分主题按字典序保证结果稳定
func identifyKnowledgeGaps(p model.AssessmentPayload) []model.KnowledgeGap {
	topics := make([]string, 0, len(p.TopicScores))
	for topic := range p.TopicScores {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	gaps := make([]model.KnowledgeGap, 0)
	for _, topic := range topics {
		score := p.TopicScores[topic]
		if score >= knowledgeGapThreshold {
			continue
		}
		priority := model.PriorityMedium
		if score < highPriorityThreshold {
			priority = model.PriorityHigh
		}
		prereqs := p.TopicPrerequisites[topic]
		if prereqs == nil {
			prereqs = []string{}
		}
		gaps = append(gaps, model.KnowledgeGap{
			Topic:         topic,
			CurrentLevel:  score,
			Priority:      priority,
			Prerequisites: prereqs,
		})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].CurrentLevel < gaps[j].CurrentLevel
	})
	return gaps
}

// estimatePace 依据已掌握条目的耗时统计节奏：
// 均值 ≤ 0.7×中位数 → fast；均值 ≥ 1.3×中位数 → slow；否则 medium。
// 一致性 = 1 - 总体标准差/均值，收敛到 [0,1]
func estimatePace(history []model.LearningRecord) model.LearningPace {
	defaultPace := model.LearningPace{Pace: model.PaceMedium, Consistency: 0.5}
	if len(history) == 0 {
		return defaultPace
	}

	var times []float64
	for _, e := range history {
		if e.Mastered {
			times = append(times, e.TimeToMastery)
		}
	}
	if len(times) == 0 {
		return defaultPace
	}

	mean := meanOf(times)
	std := populationStdDev(times, mean)

	consistency := 0.0
	if mean > 0 {
		consistency = clamp01(1 - std/mean)
	}

	med := median(times)
	pace := model.PaceMedium
	if med > 0 {
		switch {
		case mean <= fastPaceRatio*med:
			pace = model.PaceFast
		case mean >= slowPaceRatio*med:
			pace = model.PaceSlow
		}
	}

	avg := mean
	return model.LearningPace{
		Pace:             pace,
		Consistency:      consistency,
		AvgTimeToMastery: &avg,
	}
}

package service

import (
	"adaptive_learning_backend/internal/model"
	"adaptive_learning_backend/pkg/logger"
	"os"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// memProfileStore 保持插入顺序的内存画像存储
type memProfileStore struct {
	byUser map[string]*model.LearningProfile
	order  []string
	nextID uint
}

func newMemProfileStore() *memProfileStore {
	return &memProfileStore{byUser: make(map[string]*model.LearningProfile)}
}

func (s *memProfileStore) Create(p *model.LearningProfile) error {
	s.nextID++
	p.ID = s.nextID
	s.byUser[p.UserID] = p
	s.order = append(s.order, p.UserID)
	return nil
}

func (s *memProfileStore) FindByUserID(userID string) (*model.LearningProfile, error) {
	p, ok := s.byUser[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (s *memProfileStore) Update(p *model.LearningProfile) error {
	if _, ok := s.byUser[p.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.byUser[p.UserID] = p
	return nil
}

func (s *memProfileStore) UpdateCluster(userID string, cluster int) error {
	p, ok := s.byUser[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c := cluster
	p.LearningCluster = &c
	return nil
}

func (s *memProfileStore) ListAll() ([]model.LearningProfile, error) {
	out := make([]model.LearningProfile, 0, len(s.order))
	for _, userID := range s.order {
		out = append(out, *s.byUser[userID])
	}
	return out, nil
}

// memEffectivenessStore 内存效果表
type memEffectivenessStore struct {
	entries map[string]*model.ContentEffectiveness
}

func newMemEffectivenessStore() *memEffectivenessStore {
	return &memEffectivenessStore{entries: make(map[string]*model.ContentEffectiveness)}
}

func effKey(topic string, ct model.ContentType) string {
	return topic + "|" + string(ct)
}

func (s *memEffectivenessStore) Find(topic string, contentType model.ContentType) (*model.ContentEffectiveness, error) {
	e, ok := s.entries[effKey(topic, contentType)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *e
	return &copied, nil
}

func (s *memEffectivenessStore) Upsert(e *model.ContentEffectiveness) error {
	copied := *e
	s.entries[effKey(e.Topic, e.ContentType)] = &copied
	return nil
}

func (s *memEffectivenessStore) EnsureDefault(topic string, contentType model.ContentType) error {
	key := effKey(topic, contentType)
	if _, ok := s.entries[key]; ok {
		return nil
	}
	s.entries[key] = &model.ContentEffectiveness{
		Topic:       topic,
		ContentType: contentType,
		Score:       model.DefaultEffectiveness,
	}
	return nil
}

func (s *memEffectivenessStore) ListByTopic(topic string) ([]model.ContentEffectiveness, error) {
	var out []model.ContentEffectiveness
	for _, e := range s.entries {
		if e.Topic == topic {
			out = append(out, *e)
		}
	}
	return out, nil
}

// memAssessmentStore 内存评估快照存储
type memAssessmentStore struct {
	records []*model.AssessmentRecord
}

func (s *memAssessmentStore) Create(rec *model.AssessmentRecord) error {
	s.records = append(s.records, rec)
	return nil
}

func (s *memAssessmentStore) ListByUser(userID string, page, limit int) ([]model.AssessmentRecord, int64, error) {
	// 最新的在前（插入序倒排）
	var matched []model.AssessmentRecord
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].UserID == userID {
			matched = append(matched, *s.records[i])
		}
	}
	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

package service

import "adaptive_learning_backend/internal/model"

// 存储依赖以接口注入，便于用内存实现做隔离测试，
// 生产环境由 repository 包的 GORM 实现承担。
// 未命中记录时约定返回 gorm.ErrRecordNotFound。

type ProfileStore interface {
	Create(p *model.LearningProfile) error
	FindByUserID(userID string) (*model.LearningProfile, error)
	Update(p *model.LearningProfile) error
	// UpdateCluster 只回写聚类编号列，不触碰画像的其余字段
	UpdateCluster(userID string, cluster int) error
	ListAll() ([]model.LearningProfile, error)
}

type EffectivenessStore interface {
	Find(topic string, contentType model.ContentType) (*model.ContentEffectiveness, error)
	Upsert(e *model.ContentEffectiveness) error
	EnsureDefault(topic string, contentType model.ContentType) error
	ListByTopic(topic string) ([]model.ContentEffectiveness, error)
}

type AssessmentStore interface {
	Create(rec *model.AssessmentRecord) error
	ListByUser(userID string, page, limit int) ([]model.AssessmentRecord, int64, error)
}

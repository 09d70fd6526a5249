package repository

import (
	"adaptive_learning_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EffectivenessRepository struct {
	DB *gorm.DB
}

func NewEffectivenessRepository(db *gorm.DB) *EffectivenessRepository {
	return &EffectivenessRepository{DB: db}
}

func (r *EffectivenessRepository) Find(topic string, contentType model.ContentType) (*model.ContentEffectiveness, error) {
	var e model.ContentEffectiveness
	err := r.DB.Where("topic = ? AND content_type = ?", topic, contentType).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Upsert 按 (topic, content_type) 唯一键写入效果分，冲突时只覆盖 score 列，
// 由数据库保证多实例并发下的原子性
func (r *EffectivenessRepository) Upsert(e *model.ContentEffectiveness) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "topic"}, {Name: "content_type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"score": e.Score}),
	}).Create(e).Error
}

// EnsureDefault 为缺失的 (topic, content_type) 组合落一条默认分记录，已有记录不动
func (r *EffectivenessRepository) EnsureDefault(topic string, contentType model.ContentType) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "topic"}, {Name: "content_type"}},
		DoNothing: true,
	}).Create(&model.ContentEffectiveness{
		Topic:       topic,
		ContentType: contentType,
		Score:       model.DefaultEffectiveness,
	}).Error
}

func (r *EffectivenessRepository) ListByTopic(topic string) ([]model.ContentEffectiveness, error) {
	var es []model.ContentEffectiveness
	err := r.DB.Where("topic = ?", topic).Order("content_type asc").Find(&es).Error
	return es, err
}

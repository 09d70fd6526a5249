package repository

import (
	"adaptive_learning_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(rec *model.AssessmentRecord) error {
	return r.DB.Create(rec).Error
}

func (r *AssessmentRepository) ListByUser(userID string, page, limit int) ([]model.AssessmentRecord, int64, error) {
	var recs []model.AssessmentRecord
	var total int64
	query := r.DB.Model(&model.AssessmentRecord{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&recs).Error
	return recs, total, err
}

package repository

import (
	"adaptive_learning_backend/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) Create(p *model.LearningProfile) error {
	return r.DB.Create(p).Error
}

func (r *ProfileRepository) FindByUserID(userID string) (*model.LearningProfile, error) {
	var p model.LearningProfile
	err := r.DB.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) Update(p *model.LearningProfile) error {
	return r.DB.Save(p).Error
}

func (r *ProfileRepository) UpdateCluster(userID string, cluster int) error {
	return r.DB.Model(&model.LearningProfile{}).
		Where("user_id = ?", userID).
		Update("learning_cluster", cluster).Error
}

func (r *ProfileRepository) ListAll() ([]model.LearningProfile, error) {
	var ps []model.LearningProfile
	err := r.DB.Order("id asc").Find(&ps).Error
	return ps, err
}

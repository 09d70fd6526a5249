package repository

import (
	"adaptive_learning_backend/internal/model"

	"gorm.io/gorm"
)

type ServiceClientRepository struct {
	DB *gorm.DB
}

func NewServiceClientRepository(db *gorm.DB) *ServiceClientRepository {
	return &ServiceClientRepository{DB: db}
}

func (r *ServiceClientRepository) FindByClientID(clientID string) (*model.ServiceClient, error) {
	var c model.ServiceClient
	err := r.DB.Where("client_id = ?", clientID).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

package service

import (
	"adaptive_learning_backend/internal/config"
	"adaptive_learning_backend/internal/repository"
	"adaptive_learning_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	ClientRepo *repository.ServiceClientRepository
	Cfg        *config.Config
}

func NewAuthService(clientRepo *repository.ServiceClientRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		ClientRepo: clientRepo,
		Cfg:        cfg,
	}
}

// IssueToken 校验协作方凭据并签发访问令牌
func (s *AuthService) IssueToken(clientID, clientSecret string) (string, error) {
	client, err := s.ClientRepo.FindByClientID(clientID)
	if err == gorm.ErrRecordNotFound {
		return "", util.ErrClientNotFound
	}
	if err != nil {
		return "", err
	}

	if !client.Enabled {
		return "", util.ErrClientDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.SecretHash), []byte(clientSecret)); err != nil {
		return "", util.ErrInvalidClientSecret
	}

	return util.GenerateJWT(client, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

package controller

import (
	"adaptive_learning_backend/internal/service"
	"adaptive_learning_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Service: svc}
}

type TokenRequest struct {
	ClientID     string `json:"clientId" binding:"required"`
	ClientSecret string `json:"clientSecret" binding:"required"`
}

// @Summary 协作方令牌签发
// @Description 课程生成等协作服务以客户端凭据换取访问令牌
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body TokenRequest true "客户端凭据"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /auth/token [post]
func (c *AuthController) Token(ctx *gin.Context) {
	var req TokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.Service.IssueToken(req.ClientID, req.ClientSecret)
	if err != nil {
		if errors.Is(err, util.ErrClientNotFound) ||
			errors.Is(err, util.ErrInvalidClientSecret) ||
			errors.Is(err, util.ErrClientDisabled) {
			util.Unauthorized(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"token": token})
}

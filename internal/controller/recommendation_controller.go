package controller

import (
	"adaptive_learning_backend/internal/model"
	"adaptive_learning_backend/internal/service"
	"adaptive_learning_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	Service *service.RecommendationService
}

func NewRecommendationController(svc *service.RecommendationService) *RecommendationController {
	return &RecommendationController{Service: svc}
}

type RecommendRequest struct {
	Topic       string            `json:"topic" binding:"required"`
	ContentType model.ContentType `json:"contentType"` // 可选：调用方指定内容类型
}

// @Summary 内容推荐
// @Description 依据画像与效果表为 (用户, 主题) 生成内容参数
// @Tags 自适应学习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param userId path string true "用户ID"
// @Param body body RecommendRequest true "主题与可选内容类型"
// @Success 200 {object} util.Response{data=model.ContentParams}
// @Failure 404 {object} util.Response
// @Router /adaptive/profiles/{userId}/recommendations [post]
func (c *RecommendationController) Recommend(ctx *gin.Context) {
	userID := ctx.Param("userId")

	var req RecommendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	params, err := c.Service.Recommend(userID, req.Topic, req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrProfileNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidContentType):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, params)
}

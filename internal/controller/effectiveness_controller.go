package controller

import (
	"adaptive_learning_backend/internal/model"
	"adaptive_learning_backend/internal/service"
	"adaptive_learning_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type EffectivenessController struct {
	Service *service.EffectivenessService
}

func NewEffectivenessController(svc *service.EffectivenessService) *EffectivenessController {
	return &EffectivenessController{Service: svc}
}

type RecordOutcomeRequest struct {
	Topic       string               `json:"topic" binding:"required"`
	ContentType model.ContentType    `json:"contentType" binding:"required"`
	Metrics     model.OutcomeMetrics `json:"metrics" binding:"required"`
}

// @Summary 回报学习结果
// @Description 按指数移动平均更新 (主题, 内容类型) 效果分，并微调用户内容偏好
// @Tags 自适应学习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param userId path string true "用户ID"
// @Param body body RecordOutcomeRequest true "结果指标"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /adaptive/profiles/{userId}/outcomes [post]
func (c *EffectivenessController) RecordOutcome(ctx *gin.Context) {
	userID := ctx.Param("userId")

	var req RecordOutcomeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updated, err := c.Service.RecordOutcome(ctx.Request.Context(), userID, req.Topic, req.ContentType, req.Metrics)
	if err != nil {
		if errors.Is(err, util.ErrInvalidMetrics) || errors.Is(err, util.ErrInvalidContentType) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"topic":         req.Topic,
		"contentType":   req.ContentType,
		"effectiveness": updated,
	})
}

// @Summary 主题效果分
// @Description 某主题下5种内容类型的全局效果分，未观测组合返回默认值
// @Tags 自适应学习
// @Produce json
// @Security ApiKeyAuth
// @Param topic path string true "主题"
// @Success 200 {object} util.Response
// @Router /adaptive/effectiveness/{topic} [get]
func (c *EffectivenessController) GetTopicEffectiveness(ctx *gin.Context) {
	topic := ctx.Param("topic")

	scores, err := c.Service.GetTopicEffectiveness(topic)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"topic":  topic,
		"scores": scores,
	})
}

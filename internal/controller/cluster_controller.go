package controller

import (
	"adaptive_learning_backend/internal/service"
	"adaptive_learning_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ClusterController struct {
	Service *service.ClusterService
}

func NewClusterController(svc *service.ClusterService) *ClusterController {
	return &ClusterController{Service: svc}
}

// @Summary 学习风格聚类概要
// @Description 各聚类的人数与平均风格权重，用于群体级个性化
// @Tags 自适应学习
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /adaptive/clusters [get]
func (c *ClusterController) GetClusters(ctx *gin.Context) {
	summaries, err := c.Service.Summaries()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summaries)
}

package controller

import (
	"adaptive_learning_backend/internal/model"
	"adaptive_learning_backend/internal/service"
	"adaptive_learning_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	Service *service.ProfileService
}

func NewProfileController(svc *service.ProfileService) *ProfileController {
	return &ProfileController{Service: svc}
}

type CreateProfileRequest struct {
	UserID     string                  `json:"userId" binding:"required"`
	Assessment model.AssessmentPayload `json:"assessment"`
}

// @Summary 构建学习画像
// @Description 依据初始评估载荷构建（或重建）用户学习画像，并触发重聚类
// @Tags 自适应学习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateProfileRequest true "用户ID与评估载荷"
// @Success 201 {object} util.Response{data=model.LearningProfile}
// @Failure 400 {object} util.Response
// @Router /adaptive/profiles [post]
func (c *ProfileController) CreateProfile(ctx *gin.Context) {
	var req CreateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sourceClient := ""
	if claims := util.GetClientFromContext(ctx); claims != nil {
		sourceClient = claims.ClientID
	}

	profile, err := c.Service.CreateProfile(ctx.Request.Context(), req.UserID, sourceClient, req.Assessment)
	if err != nil {
		if errors.Is(err, util.ErrInvalidAssessment) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, profile)
}

// @Summary 获取学习画像
// @Tags 自适应学习
// @Produce json
// @Security ApiKeyAuth
// @Param userId path string true "用户ID"
// @Success 200 {object} util.Response{data=model.LearningProfile}
// @Failure 404 {object} util.Response
// @Router /adaptive/profiles/{userId} [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	userID := ctx.Param("userId")

	profile, err := c.Service.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, util.ErrProfileNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}

// @Summary 评估历史
// @Description 分页返回某用户提交过的评估快照
// @Tags 自适应学习
// @Produce json
// @Security ApiKeyAuth
// @Param userId path string true "用户ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页条数" default(20)
// @Success 200 {object} util.Response
// @Router /adaptive/profiles/{userId}/assessments [get]
func (c *ProfileController) GetAssessments(ctx *gin.Context) {
	userID := ctx.Param("userId")
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	records, total, err := c.Service.AssessmentHistory(userID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"total":   total,
		"page":    page,
		"limit":   limit,
		"records": records,
	})
}

package model

// DefaultEffectiveness 任意未观测 (主题, 内容类型) 组合的初始效果分
const DefaultEffectiveness = 0.5

// swagger:model ContentEffectiveness
// ContentEffectiveness (主题, 内容类型) 的历史效果分，指数移动平均维护，
// 跨用户共享
type ContentEffectiveness struct {
	BaseModel
	Topic       string      `gorm:"size:128;not null;uniqueIndex:idx_topic_content" json:"topic"`
	ContentType ContentType `gorm:"size:20;not null;uniqueIndex:idx_topic_content" json:"contentType"`
	Score       float64     `gorm:"not null;default:0.5" json:"score"`
}

func (ContentEffectiveness) TableName() string {
	return "content_effectiveness"
}

// OutcomeMetrics 调用方回报的学习结果指标，各项取值 [0,1]
type OutcomeMetrics struct {
	CompletionRate  float64 `json:"completionRate" binding:"min=0,max=1"`
	Engagement      float64 `json:"engagement" binding:"min=0,max=1"`
	AssessmentScore float64 `json:"assessmentScore" binding:"min=0,max=1"`
}

package model

import "gorm.io/datatypes"

// AssessmentPayload 初始评估载荷，所有子字段均可缺省，缺省按空集处理
type AssessmentPayload struct {
	StyleResponses     map[LearningStyle]float64 `json:"style_responses,omitempty"`
	PerformanceHistory []StylePerformance        `json:"performance_history,omitempty"`
	TopicScores        map[string]float64        `json:"topic_scores,omitempty"`
	ContentPreferences map[ContentType]float64   `json:"content_preferences,omitempty"`
	EngagementHistory  []EngagementRecord        `json:"engagement_history,omitempty"`
	TopicPrerequisites map[string][]string       `json:"topic_prerequisites,omitempty"`
	LearningHistory    []LearningRecord          `json:"learning_history,omitempty"`
}

// StylePerformance 某一学习风格下的历史得分
type StylePerformance struct {
	LearningStyle LearningStyle `json:"learning_style"`
	Score         float64       `json:"score"`
}

// EngagementRecord 某一内容类型的参与记录
type EngagementRecord struct {
	ContentType    ContentType `json:"content_type"`
	CompletionRate float64     `json:"completion_rate"`
	Satisfaction   float64     `json:"satisfaction"`
}

// LearningRecord 历史学习记录（用于节奏估计）
type LearningRecord struct {
	Mastered      bool    `json:"mastered"`
	TimeToMastery float64 `json:"time_to_mastery"`
}

// AssessmentRecord 评估原始载荷快照，仅用于审计留档，画像计算不回读
type AssessmentRecord struct {
	UUIDBase
	UserID       string         `gorm:"size:64;index;not null" json:"userId"`
	SourceClient string         `gorm:"size:64" json:"sourceClient,omitempty"` // 提交评估的协作方
	Payload      datatypes.JSON `gorm:"type:json" json:"payload"`
}

func (AssessmentRecord) TableName() string {
	return "assessment_records"
}

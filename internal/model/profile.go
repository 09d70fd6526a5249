package model

import "time"

// StyleWeights 学习风格权重，8种风格每种都有一个 [0,1] 取值
type StyleWeights map[LearningStyle]float64

// ContentPreferences 内容类型偏好，5种类型每种都有一个 [0,1] 取值
type ContentPreferences map[ContentType]float64

// KnowledgeGap 知识缺口：评估掌握度低于 0.7 的主题
type KnowledgeGap struct {
	Topic         string      `json:"topic"`
	CurrentLevel  float64     `json:"currentLevel"`
	Priority      GapPriority `json:"priority"`
	Prerequisites []string    `json:"prerequisites"`
}

// LearningPace 学习节奏统计
type LearningPace struct {
	Pace             PaceLevel `json:"pace"`
	Consistency      float64   `json:"consistency"`
	AvgTimeToMastery *float64  `json:"avgTimeToMastery,omitempty"`
}

// swagger:model LearningProfile
type LearningProfile struct {
	BaseModel
	UserID             string             `gorm:"size:64;uniqueIndex;not null" json:"userId"`
	StyleWeights       StyleWeights       `gorm:"type:json;serializer:json" json:"styleWeights"`
	DifficultyLevel    DifficultyLevel    `gorm:"size:20;default:'beginner'" json:"difficultyLevel"`
	ContentPreferences ContentPreferences `gorm:"type:json;serializer:json" json:"contentPreferences"`
	KnowledgeGaps      []KnowledgeGap     `gorm:"type:json;serializer:json" json:"knowledgeGaps"`
	LearningPace       LearningPace       `gorm:"type:json;serializer:json" json:"learningPace"`
	LearningCluster    *int               `json:"learningCluster,omitempty"` // 聚类编号，样本不足3人时为空
	LastUpdated        time.Time          `json:"lastUpdated"`
}

func (LearningProfile) TableName() string {
	return "learning_profiles"
}

// DominantStyle 权重最高的学习风格，平局取枚举顺序靠前者
func (p *LearningProfile) DominantStyle() LearningStyle {
	best := AllLearningStyles[0]
	bestWeight := p.StyleWeights[best]
	for _, s := range AllLearningStyles[1:] {
		if w := p.StyleWeights[s]; w > bestWeight {
			best, bestWeight = s, w
		}
	}
	return best
}

// GapForTopic 返回指定主题的第一条缺口记录
func (p *LearningProfile) GapForTopic(topic string) *KnowledgeGap {
	for i := range p.KnowledgeGaps {
		if p.KnowledgeGaps[i].Topic == topic {
			return &p.KnowledgeGaps[i]
		}
	}
	return nil
}

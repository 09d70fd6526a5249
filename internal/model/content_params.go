package model

// 内容适配指令类型
const (
	AdaptationPace     = "pace"
	AdaptationStyle    = "style"
	AdaptationRemedial = "remedial"
)

// 内容适配动作
const (
	ActionAdditionalExamples    = "include_additional_examples"
	ActionPrerequisiteReview    = "include_prerequisite_review"
	ActionOptimizeForStylePrefx = "optimize_for_"
)

// Adaptation 内容生成方需要执行的单条适配指令
type Adaptation struct {
	Type          string   `json:"type"`
	Action        string   `json:"action"`
	Reason        string   `json:"reason,omitempty"`
	Prerequisites []string `json:"prerequisites,omitempty"`
}

// swagger:model ContentParams
// ContentParams 单次推荐的内容参数，现算现用，不落库
type ContentParams struct {
	Topic         string          `json:"topic"`
	Difficulty    DifficultyLevel `json:"difficulty"`
	LearningStyle LearningStyle   `json:"learningStyle"`
	ContentType   ContentType     `json:"contentType"`
	Pace          PaceLevel       `json:"pace"`
	Adaptations   []Adaptation    `json:"adaptations"`
}

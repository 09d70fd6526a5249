package model

// LearningStyle 学习风格（固定8种）
type LearningStyle string

const (
	StyleVisual      LearningStyle = "visual"
	StyleAuditory    LearningStyle = "auditory"
	StyleReading     LearningStyle = "reading"
	StyleKinesthetic LearningStyle = "kinesthetic"
	StyleSocial      LearningStyle = "social"
	StyleSolitary    LearningStyle = "solitary"
	StyleLogical     LearningStyle = "logical"
	StyleVerbal      LearningStyle = "verbal"
)

// AllLearningStyles 固定枚举顺序，同时也是 argmax 的平局裁决顺序：
// 得分相同时取先枚举的风格
var AllLearningStyles = []LearningStyle{
	StyleVisual,
	StyleAuditory,
	StyleReading,
	StyleKinesthetic,
	StyleSocial,
	StyleSolitary,
	StyleLogical,
	StyleVerbal,
}

func (s LearningStyle) Valid() bool {
	for _, v := range AllLearningStyles {
		if s == v {
			return true
		}
	}
	return false
}

// ContentType 内容类型（固定5种）
type ContentType string

const (
	ContentText        ContentType = "text"
	ContentVideo       ContentType = "video"
	ContentInteractive ContentType = "interactive"
	ContentQuiz        ContentType = "quiz"
	ContentProject     ContentType = "project"
)

// AllContentTypes 固定枚举顺序，同样用于平局裁决
var AllContentTypes = []ContentType{
	ContentText,
	ContentVideo,
	ContentInteractive,
	ContentQuiz,
	ContentProject,
}

func (c ContentType) Valid() bool {
	for _, v := range AllContentTypes {
		if c == v {
			return true
		}
	}
	return false
}

// DifficultyLevel 难度等级（有序）
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
	DifficultyExpert       DifficultyLevel = "expert"
)

var difficultyOrder = []DifficultyLevel{
	DifficultyBeginner,
	DifficultyIntermediate,
	DifficultyAdvanced,
	DifficultyExpert,
}

// StepDown 下调一级，beginner 不再下调
func (d DifficultyLevel) StepDown() DifficultyLevel {
	for i, v := range difficultyOrder {
		if v == d {
			if i == 0 {
				return d
			}
			return difficultyOrder[i-1]
		}
	}
	return DifficultyBeginner
}

// DifficultyForScore 按平均掌握度映射难度等级
func DifficultyForScore(avg float64) DifficultyLevel {
	switch {
	case avg >= 0.8:
		return DifficultyExpert
	case avg >= 0.6:
		return DifficultyAdvanced
	case avg >= 0.4:
		return DifficultyIntermediate
	default:
		return DifficultyBeginner
	}
}

// PaceLevel 学习节奏
type PaceLevel string

const (
	PaceSlow   PaceLevel = "slow"
	PaceMedium PaceLevel = "medium"
	PaceFast   PaceLevel = "fast"
)

// GapPriority 知识缺口优先级
type GapPriority string

const (
	PriorityHigh   GapPriority = "high"
	PriorityMedium GapPriority = "medium"
)

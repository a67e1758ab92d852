package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ActivityTypeQuiz     = "quiz"
	ActivityTypeExercise = "exercise"
)

// Question is a single multiple choice question stored inside a quiz activity.
type Question struct {
	ID                 string   `json:"id" yaml:"id"`
	Text               string   `json:"text" yaml:"text"`
	Options            []string `json:"options" yaml:"options"`
	CorrectAnswerIndex *int     `json:"correct_answer_index" yaml:"correct_answer_index"`
	Explanation        string   `json:"explanation,omitempty" yaml:"explanation"`
}

// Scoreable reports whether the question has options and a correct index inside them.
func (q Question) Scoreable() bool {
	if len(q.Options) == 0 || q.CorrectAnswerIndex == nil {
		return false
	}
	idx := *q.CorrectAnswerIndex
	return idx >= 0 && idx < len(q.Options)
}

// Activity is a quiz or an exercise attached to a section
type Activity struct {
	gorm.Model
	CourseID    uint                          `json:"course_id" gorm:"index;not null"`
	SectionID   uint                          `json:"section_id" gorm:"index;not null"`
	Title       string                        `json:"title"`
	Type        string                        `json:"type" gorm:"default:'quiz'"`
	Description string                        `json:"description"`
	Questions   datatypes.JSONSlice[Question] `json:"questions"`
	Content     string                        `json:"content" gorm:"type:text"`
	Solution    string                        `json:"solution" gorm:"type:text"`
	Explanation string                        `json:"explanation" gorm:"type:text"`
	Order       int                           `json:"order" gorm:"column:order_index;default:0"`
	IsDeleted   bool                          `json:"-" gorm:"default:false"`
}

package course

import "gorm.io/gorm"

const (
	ProgressAttempted = "ATTEMPTED"
	ProgressCompleted = "COMPLETED"
)

// ActivityProgress records one scored attempt of a student at a quiz activity
type ActivityProgress struct {
	gorm.Model
	UserID        uint   `json:"user_id" gorm:"index;not null"`
	CourseID      uint   `json:"course_id" gorm:"index;not null"`
	SectionID     uint   `json:"section_id" gorm:"index;not null"`
	ActivityID    uint   `json:"activity_id" gorm:"index;not null"`
	Status        string `json:"status" gorm:"default:'ATTEMPTED'"` // ATTEMPTED, COMPLETED
	Answers       string `json:"answers"`                           // JSON object questionId -> option index
	Correct       int    `json:"correct"`
	Total         int    `json:"total"`
	Score         int    `json:"score"` // rounded percentage, 0 when nothing was scoreable
	AttemptNumber int    `json:"attempt_number" gorm:"default:1"`
	IsDeleted     bool   `json:"-" gorm:"default:false"`
}

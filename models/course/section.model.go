package course

import "gorm.io/gorm"

// Section is an ordered subdivision of a course
type Section struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content" gorm:"type:text"` // Markdown
	VideoURL    string `json:"video_url"`
	Order       int    `json:"order" gorm:"column:order_index;default:0"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}

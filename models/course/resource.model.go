package course

import "gorm.io/gorm"

const (
	ResourceTypeVideo    = "video"
	ResourceTypeGeoGebra = "geogebra"
	ResourceTypePhET     = "phet"
	ResourceTypePDF      = "pdf"
)

// ResourceTypes lists every resource type an admin may author.
var ResourceTypes = []string{
	ResourceTypeVideo,
	ResourceTypeGeoGebra,
	ResourceTypePhET,
	ResourceTypePDF,
}

// Resource is an embeddable artifact attached to a section
type Resource struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	SectionID   uint   `json:"section_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Type        string `json:"type" gorm:"default:'video'"`
	URL         string `json:"url"`
	StoragePath string `json:"-"` // set when the file was uploaded through file storage
	Description string `json:"description"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}

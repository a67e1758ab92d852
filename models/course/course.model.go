package course

import "gorm.io/gorm"

// Course represents a learning course authored by an admin
type Course struct {
	gorm.Model
	Title        string `json:"title"`
	Description  string `json:"description"`
	Level        string `json:"level"`    // e.g. Básico, Intermedio, Avanzado
	Duration     string `json:"duration"` // free text, e.g. "8 horas"
	Category     string `json:"category" gorm:"index"`
	ImageURL     string `json:"image_url"`
	Requirements string `json:"requirements"`
	AuthorID     uint   `json:"author_id" gorm:"index"`
	IsPublished  bool   `json:"is_published" gorm:"default:false"`
	IsDeleted    bool   `json:"-" gorm:"default:false"`
}

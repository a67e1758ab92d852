package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ErrorSourceServer = "server"
	ErrorSourceClient = "client"
)

// ErrorLog is a best-effort record of a failure reported by the server or a browser client
type ErrorLog struct {
	gorm.Model
	Message   string            `json:"message" gorm:"type:text"`
	Stack     string            `json:"stack" gorm:"type:text"`
	Source    string            `json:"source" gorm:"index;default:'server'"` // server, client
	URL       string            `json:"url"`
	UserAgent string            `json:"user_agent"`
	UserID    *uint             `json:"user_id"`
	Context   datatypes.JSONMap `json:"context"`
}

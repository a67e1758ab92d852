package utils

import (
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"webmatematica/models"
)

const maxErrorsInMemory = 10

// ErrorEntry is what callers report to the ErrorLogger
type ErrorEntry struct {
	Message   string
	Stack     string
	Source    string
	URL       string
	UserAgent string
	UserID    *uint
	Context   map[string]interface{}
}

// ErrorLogger records failures in the error_logs table and keeps the most recent ones in memory.
// Logging is best effort: a failed insert is written to the process log and otherwise ignored.
type ErrorLogger struct {
	db     *gorm.DB
	mu     sync.Mutex
	recent []models.ErrorLog
}

func NewErrorLogger(db *gorm.DB) *ErrorLogger {
	return &ErrorLogger{db: db}
}

// LogError stores the entry and returns the record that was built for it
func (l *ErrorLogger) LogError(entry ErrorEntry) models.ErrorLog {
	if entry.Message == "" {
		entry.Message = "Unknown error"
	}
	if entry.Source == "" {
		entry.Source = models.ErrorSourceServer
	}

	record := models.ErrorLog{
		Model:     gorm.Model{CreatedAt: time.Now()},
		Message:   entry.Message,
		Stack:     entry.Stack,
		Source:    entry.Source,
		URL:       entry.URL,
		UserAgent: entry.UserAgent,
		UserID:    entry.UserID,
		Context:   entry.Context,
	}

	if l.db == nil {
		log.Printf("[ERROR-LOGGER] %s (%s) %v", record.Message, record.Source, record.Context)
	} else if err := l.db.Create(&record).Error; err != nil {
		log.Printf("[ERROR-LOGGER] Failed to persist error: %v", err)
		log.Printf("[ERROR-LOGGER] Original error: %s %v", record.Message, record.Context)
	}

	l.remember(record)
	return record
}

// Recent returns up to the last ten logged errors, oldest first
func (l *ErrorLogger) Recent() []models.ErrorLog {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.ErrorLog, len(l.recent))
	copy(out, l.recent)
	return out
}

func (l *ErrorLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.recent = nil
}

func (l *ErrorLogger) remember(record models.ErrorLog) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.recent = append(l.recent, record)
	if len(l.recent) > maxErrorsInMemory {
		l.recent = l.recent[len(l.recent)-maxErrorsInMemory:]
	}
}

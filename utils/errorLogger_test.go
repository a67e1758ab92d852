package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webmatematica/database"
	"webmatematica/models"
)

func TestErrorLoggerPersistsAndRemembers(t *testing.T) {
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	logger := NewErrorLogger(db)

	record := logger.LogError(ErrorEntry{
		Message: "URL de YouTube inválida",
		Context: map[string]interface{}{"context": "YouTubeEmbed", "url": "https://youtu.be/x"},
	})

	assert.Equal(t, models.ErrorSourceServer, record.Source)

	var stored []models.ErrorLog
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "URL de YouTube inválida", stored[0].Message)
	assert.Equal(t, "YouTubeEmbed", stored[0].Context["context"])

	recent := logger.Recent()
	require.Len(t, recent, 1)
	assert.Equal(t, stored[0].ID, recent[0].ID)
	assert.NotZero(t, recent[0].ID)
	assert.False(t, recent[0].CreatedAt.IsZero())
	assert.Equal(t, record.ID, recent[0].ID)
}

func TestErrorLoggerKeepsTenMostRecent(t *testing.T) {
	logger := NewErrorLogger(nil)

	for i := 0; i < 15; i++ {
		logger.LogError(ErrorEntry{Message: fmt.Sprintf("error %d", i)})
	}

	recent := logger.Recent()
	require.Len(t, recent, 10)
	assert.Equal(t, "error 5", recent[0].Message)
	assert.Equal(t, "error 14", recent[9].Message)

	logger.Clear()
	assert.Empty(t, logger.Recent())
}

func TestErrorLoggerSurvivesDatabaseFailure(t *testing.T) {
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	require.NoError(t, db.Migrator().DropTable(&models.ErrorLog{}))
	logger := NewErrorLogger(db)

	record := logger.LogError(ErrorEntry{})

	assert.Equal(t, "Unknown error", record.Message)
	recent := logger.Recent()
	require.Len(t, recent, 1)
	assert.False(t, recent[0].CreatedAt.IsZero())
}

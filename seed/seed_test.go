package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"webmatematica/database"
	"webmatematica/models"
	courseModels "webmatematica/models/course"
)

func TestApplyBundledSeedFile(t *testing.T) {
	db, err := database.OpenInMemory()
	require.NoError(t, err)

	file, err := Load("../scripts/seed.yaml")
	require.NoError(t, err)
	require.Len(t, file.Courses, 1)

	stats, err := Apply(db, file, 1)
	require.NoError(t, err)
	assert.Equal(t, Stats{Courses: 1, Sections: 3, Resources: 2, Activities: 5}, stats)

	var fibonacci courseModels.Activity
	require.NoError(t, db.Where("title = ?", "Calcular términos en la sucesión de Fibonacci").First(&fibonacci).Error)
	require.Len(t, fibonacci.Questions, 1)
	assert.Equal(t, "a1-q1", fibonacci.Questions[0].ID)
	assert.Equal(t, 1, *fibonacci.Questions[0].CorrectAnswerIndex)

	again, err := Apply(db, file, 1)
	require.NoError(t, err)
	assert.Equal(t, Stats{Skipped: 1}, again)
}

func TestApplyRollsBackInvalidCourse(t *testing.T) {
	db, err := database.OpenInMemory()
	require.NoError(t, err)

	file, err := Parse([]byte(`
courses:
  - title: Funciones
    sections:
      - title: Dominio
        resources:
          - title: Video roto
            type: video
            url: https://example.com/not-youtube
`))
	require.NoError(t, err)

	_, err = Apply(db, file, 1)
	require.Error(t, err)

	var count int64
	db.Model(&courseModels.Course{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&courseModels.Section{}).Count(&count)
	assert.Zero(t, count)
}

func TestApplyRejectsUnknownActivityType(t *testing.T) {
	db, err := database.OpenInMemory()
	require.NoError(t, err)

	file, err := Parse([]byte(`
courses:
  - title: Funciones
    sections:
      - title: Dominio
        activities:
          - title: Debate
            type: forum
`))
	require.NoError(t, err)

	_, err = Apply(db, file, 1)
	assert.Error(t, err)
}

func TestEnsureAdmin(t *testing.T) {
	db, err := database.OpenInMemory()
	require.NoError(t, err)

	admin, err := EnsureAdmin(db, "Docente", " Docente@Example.com ", "supersecret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, "docente@example.com", admin.Email)
	assert.True(t, admin.IsAdmin())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("supersecret")))

	again, err := EnsureAdmin(db, "Docente", "docente@example.com", "", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	student := models.User{Name: "Ana", Email: "ana@example.com", Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)

	promoted, err := EnsureAdmin(db, "Ana", "ana@example.com", "", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, student.ID, promoted.ID)
	assert.True(t, promoted.IsAdmin())

	_, err = EnsureAdmin(db, "", "", "supersecret", bcrypt.MinCost)
	assert.Error(t, err)
	_, err = EnsureAdmin(db, "Nuevo", "nuevo@example.com", "short", bcrypt.MinCost)
	assert.Error(t, err)
}

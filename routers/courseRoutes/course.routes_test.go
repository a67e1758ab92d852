package courseRoutes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"webmatematica/config"
	controllers "webmatematica/controllers/course"
	"webmatematica/database"
	"webmatematica/middleware"
	"webmatematica/models"
	courseModels "webmatematica/models/course"
	"webmatematica/storage"
	"webmatematica/utils"
)

type testEnv struct {
	app          *fiber.App
	db           *gorm.DB
	uploadDir    string
	adminToken   string
	studentToken string
	studentID    uint
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.OpenInMemory()
	require.NoError(t, err)

	auth := middleware.NewAuth(&config.Config{JWTKey: "test-secret", JWTTTLHours: 1})
	uploadDir := t.TempDir()
	ctl := controllers.NewCourseController(db, storage.NewLocalStorage(uploadDir, "http://localhost:3000/uploads"), utils.NewErrorLogger(db), nil)

	app := fiber.New()
	SetupAdminCourseRoutes(app, db, auth, ctl)
	SetupCourseRoutes(app, auth, ctl)

	admin := models.User{Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin, Password: "hash"}
	student := models.User{Name: "Student", Email: "student@example.com", Role: models.RoleStudent, Password: "hash"}
	require.NoError(t, db.Create(&admin).Error)
	require.NoError(t, db.Create(&student).Error)

	adminToken, err := auth.GenerateJWT(admin)
	require.NoError(t, err)
	studentToken, err := auth.GenerateJWT(student)
	require.NoError(t, err)

	return &testEnv{
		app:          app,
		db:           db,
		uploadDir:    uploadDir,
		adminToken:   adminToken,
		studentToken: studentToken,
		studentID:    student.ID,
	}
}

func (e *testEnv) send(t *testing.T, req *http.Request, token string) (int, envelope) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body envelope
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return resp.StatusCode, body
}

func (e *testEnv) do(t *testing.T, method, path, token string, payload interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.send(t, req, token)
}

// embedView mirrors controllers.ResourceView without the Embed interface, which JSON cannot decode into
type embedView struct {
	Title       string `json:"title"`
	EmbedURL    string `json:"embed_url"`
	FallbackURL string `json:"fallback_url"`
	Error       string `json:"error"`
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), string(raw))
}

// seedCourse stores a published course with one section holding a quiz and an exercise
func (e *testEnv) seedCourse(t *testing.T) (courseModels.Course, courseModels.Section, courseModels.Activity, courseModels.Activity) {
	t.Helper()

	course := courseModels.Course{Title: "Sucesiones", IsPublished: true}
	require.NoError(t, e.db.Create(&course).Error)

	section := courseModels.Section{
		CourseID: course.ID,
		Title:    "Introducción",
		Content:  "# Sucesiones\n- Término general\nUna **sucesión** es una lista ordenada.",
		VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Order:    1,
	}
	require.NoError(t, e.db.Create(&section).Error)

	zero, one := 0, 1
	quiz := courseModels.Activity{
		CourseID:  course.ID,
		SectionID: section.ID,
		Title:     "Repaso",
		Type:      courseModels.ActivityTypeQuiz,
		Questions: []courseModels.Question{
			{ID: "q1", Text: "¿Siguiente término de 2, 4, 6?", Options: []string{"8", "10"}, CorrectAnswerIndex: &zero},
			{ID: "q2", Text: "¿Es 1, 1, 2, 3 aritmética?", Options: []string{"Sí", "No"}, CorrectAnswerIndex: &one},
		},
		Order: 1,
	}
	require.NoError(t, e.db.Create(&quiz).Error)

	exercise := courseModels.Activity{
		CourseID:    course.ID,
		SectionID:   section.ID,
		Title:       "Término general",
		Type:        courseModels.ActivityTypeExercise,
		Content:     "Encuentra el término general de 3, 5, 7, ...",
		Solution:    "a_n = 2n + 1",
		Explanation: "La diferencia es 2.",
		Order:       2,
	}
	require.NoError(t, e.db.Create(&exercise).Error)

	return course, section, quiz, exercise
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, http.MethodGet, "/admin/course/list", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = env.do(t, http.MethodGet, "/admin/course/list", env.studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = env.do(t, http.MethodGet, "/admin/course/list", env.adminToken, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestAdminAuthoringFlow(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/admin/course/create", env.adminToken, fiber.Map{
		"title":    "Sucesiones",
		"level":    "Básico",
		"category": "Algebra",
	})
	require.Equal(t, fiber.StatusCreated, status, body.Message)
	var course courseModels.Course
	decode(t, body.Data, &course)
	assert.False(t, course.IsPublished)

	status, body = env.do(t, http.MethodPost, fmt.Sprintf("/admin/course/%d/section", course.ID), env.adminToken, fiber.Map{
		"title":     "Introducción",
		"content":   "# Sucesiones",
		"video_url": "https://youtu.be/dQw4w9WgXcQ",
	})
	require.Equal(t, fiber.StatusCreated, status, body.Message)
	var section courseModels.Section
	decode(t, body.Data, &section)
	assert.Equal(t, 1, section.Order)

	sectionPath := fmt.Sprintf("/admin/course/%d/section/%d", course.ID, section.ID)

	status, body = env.do(t, http.MethodPost, sectionPath+"/resource", env.adminToken, fiber.Map{
		"title": "Sucesión gráfica",
		"type":  "geogebra",
		"url":   "https://www.geogebra.org/m/bqkjcnvd",
	})
	assert.Equal(t, fiber.StatusCreated, status, body.Message)

	status, body = env.do(t, http.MethodPost, sectionPath+"/resource", env.adminToken, fiber.Map{
		"type": "youtube",
		"url":  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	})
	require.Equal(t, fiber.StatusCreated, status, body.Message)
	var video courseModels.Resource
	decode(t, body.Data, &video)
	assert.Equal(t, courseModels.ResourceTypeVideo, video.Type)
	assert.Equal(t, "YouTube video dQw4w9WgXcQ", video.Title)

	status, body = env.do(t, http.MethodPost, sectionPath+"/resource", env.adminToken, fiber.Map{
		"title": "Simulación",
		"type":  "phet",
		"url":   "https://example.com/sim",
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	var fieldErrors map[string]string
	decode(t, body.Data, &fieldErrors)
	assert.Equal(t, "Invalid PhET URL!", fieldErrors["url"])

	status, body = env.do(t, http.MethodPost, sectionPath+"/activity", env.adminToken, fiber.Map{
		"title": "Repaso",
		"type":  "quizz",
		"questions": []fiber.Map{
			{"text": "¿2, 4, 6, ...?", "options": []string{"8", "9"}, "correct_answer_index": 0},
		},
	})
	require.Equal(t, fiber.StatusCreated, status, body.Message)
	var quiz courseModels.Activity
	decode(t, body.Data, &quiz)
	assert.Equal(t, courseModels.ActivityTypeQuiz, quiz.Type)
	require.Len(t, quiz.Questions, 1)
	assert.NotEmpty(t, quiz.Questions[0].ID)

	status, _ = env.do(t, http.MethodPost, sectionPath+"/activity", env.adminToken, fiber.Map{
		"title": "Roto",
		"type":  "quiz",
		"questions": []fiber.Map{
			{"text": "¿?", "options": []string{"a", "b"}, "correct_answer_index": 5},
		},
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	// Unpublished courses stay hidden from students
	status, _ = env.do(t, http.MethodGet, fmt.Sprintf("/course/%d", course.ID), "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = env.do(t, http.MethodPost, fmt.Sprintf("/admin/course/%d/publish", course.ID), env.adminToken, fiber.Map{"is_published": true})
	require.Equal(t, fiber.StatusOK, status)

	status, body = env.do(t, http.MethodGet, fmt.Sprintf("/course/%d", course.ID), "", nil)
	require.Equal(t, fiber.StatusOK, status)
	var detail struct {
		Sections      []courseModels.Section `json:"sections"`
		ActivityCount int64                  `json:"activity_count"`
	}
	decode(t, body.Data, &detail)
	assert.Len(t, detail.Sections, 1)
	assert.EqualValues(t, 1, detail.ActivityCount)

	status, body = env.do(t, http.MethodGet, "/course/list?category=Algebra", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	var list struct {
		Courses []courseModels.Course `json:"courses"`
	}
	decode(t, body.Data, &list)
	assert.Len(t, list.Courses, 1)

	status, _ = env.do(t, http.MethodDelete, sectionPath, env.adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	var remaining int64
	env.db.Model(&courseModels.Resource{}).Where("section_id = ? AND is_deleted = ?", section.ID, false).Count(&remaining)
	assert.Zero(t, remaining)
}

func TestSectionContentForAnonymousVisitor(t *testing.T) {
	env := newTestEnv(t)
	course, section, _, _ := env.seedCourse(t)

	broken := courseModels.Resource{CourseID: course.ID, SectionID: section.ID, Title: "Roto", Type: courseModels.ResourceTypeGeoGebra, URL: "https://example.com/applet"}
	require.NoError(t, env.db.Create(&broken).Error)

	status, body := env.do(t, http.MethodGet, fmt.Sprintf("/course/%d/section/%d", course.ID, section.ID), "", nil)
	require.Equal(t, fiber.StatusOK, status, body.Message)

	var content struct {
		Blocks     []controllers.BlockView    `json:"blocks"`
		Video      *embedView                 `json:"video"`
		Resources  []embedView                `json:"resources"`
		Activities []controllers.ActivityView `json:"activities"`
	}
	decode(t, body.Data, &content)

	require.Len(t, content.Blocks, 3)
	assert.Equal(t, "heading", content.Blocks[0].Kind)
	assert.Equal(t, "Sucesiones", content.Blocks[0].Text)
	assert.Equal(t, "paragraph", content.Blocks[2].Kind)

	require.NotNil(t, content.Video)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", content.Video.EmbedURL)

	require.Len(t, content.Resources, 1)
	assert.Empty(t, content.Resources[0].EmbedURL)
	assert.Equal(t, "https://example.com/applet", content.Resources[0].FallbackURL)
	assert.NotEmpty(t, content.Resources[0].Error)

	require.Len(t, content.Activities, 2)
	for _, a := range content.Activities {
		assert.True(t, a.Locked)
		assert.Empty(t, a.Questions)
		assert.Empty(t, a.Content)
	}

	var logged int64
	env.db.Model(&models.ErrorLog{}).Count(&logged)
	assert.EqualValues(t, 1, logged)
}

func TestSectionContentHidesAnswers(t *testing.T) {
	env := newTestEnv(t)
	course, section, _, _ := env.seedCourse(t)

	status, body := env.do(t, http.MethodGet, fmt.Sprintf("/course/%d/section/%d", course.ID, section.ID), env.studentToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	assert.NotContains(t, string(body.Data), "correct_answer_index")
	assert.NotContains(t, string(body.Data), "a_n = 2n + 1")

	var content struct {
		Activities []controllers.ActivityView `json:"activities"`
	}
	decode(t, body.Data, &content)
	require.Len(t, content.Activities, 2)
	assert.False(t, content.Activities[0].Locked)
	assert.Len(t, content.Activities[0].Questions, 2)
	assert.True(t, content.Activities[1].HasSolution)
}

func TestSectionContentShowsUnsupportedActivity(t *testing.T) {
	env := newTestEnv(t)
	course, section, _, _ := env.seedCourse(t)

	survey := courseModels.Activity{CourseID: course.ID, SectionID: section.ID, Title: "Encuesta", Type: "survey", Order: 3}
	require.NoError(t, env.db.Create(&survey).Error)

	status, body := env.do(t, http.MethodGet, fmt.Sprintf("/course/%d/section/%d", course.ID, section.ID), env.studentToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	var content struct {
		Activities []controllers.ActivityView `json:"activities"`
	}
	decode(t, body.Data, &content)
	require.Len(t, content.Activities, 3)

	unsupported := content.Activities[2]
	assert.Equal(t, survey.ID, unsupported.ID)
	assert.Equal(t, "Encuesta", unsupported.Title)
	assert.Equal(t, "survey", unsupported.Type)
	assert.True(t, unsupported.Locked)
	assert.Equal(t, "Unsupported activity type", unsupported.Error)
	assert.Empty(t, content.Activities[0].Error)

	var logged int64
	env.db.Model(&models.ErrorLog{}).Where("message LIKE ?", "%unsupported type%").Count(&logged)
	assert.EqualValues(t, 1, logged)
}

func TestSubmitActivity(t *testing.T) {
	env := newTestEnv(t)
	course, _, quiz, _ := env.seedCourse(t)
	path := fmt.Sprintf("/course/%d/activity/%d/submit", course.ID, quiz.ID)

	status, _ := env.do(t, http.MethodPost, path, "", fiber.Map{"answers": fiber.Map{"q1": 0}})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := env.do(t, http.MethodPost, path, env.studentToken, fiber.Map{"answers": fiber.Map{"q1": 0}})
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	var incomplete struct {
		Unanswered []string `json:"unanswered"`
	}
	decode(t, body.Data, &incomplete)
	assert.Equal(t, []string{"q2"}, incomplete.Unanswered)

	status, body = env.do(t, http.MethodPost, path, env.studentToken, fiber.Map{"answers": fiber.Map{"q1": 0, "q9": 1}})
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	var fieldErrors map[string]string
	decode(t, body.Data, &fieldErrors)
	assert.Contains(t, fieldErrors, "answers.q9")

	status, body = env.do(t, http.MethodPost, path, env.studentToken, fiber.Map{"answers": fiber.Map{"q1": 0, "q2": 0}})
	require.Equal(t, fiber.StatusOK, status, body.Message)
	var submitted struct {
		Attempt  courseModels.ActivityProgress `json:"attempt"`
		HasScore bool                          `json:"has_score"`
		Message  string                        `json:"message"`
		State    string                        `json:"state"`
		Result   struct {
			Correct    int `json:"correct"`
			Total      int `json:"total"`
			Percentage int `json:"percentage"`
		} `json:"result"`
	}
	decode(t, body.Data, &submitted)
	assert.True(t, submitted.HasScore)
	assert.Equal(t, 1, submitted.Result.Correct)
	assert.Equal(t, 2, submitted.Result.Total)
	assert.Equal(t, 50, submitted.Result.Percentage)
	assert.Equal(t, courseModels.ProgressAttempted, submitted.Attempt.Status)
	assert.Equal(t, 1, submitted.Attempt.AttemptNumber)
	assert.NotEmpty(t, submitted.Message)

	status, body = env.do(t, http.MethodPost, path, env.studentToken, fiber.Map{"answers": fiber.Map{"q1": 0, "q2": 1}})
	require.Equal(t, fiber.StatusOK, status)
	decode(t, body.Data, &submitted)
	assert.Equal(t, 100, submitted.Result.Percentage)
	assert.Equal(t, courseModels.ProgressCompleted, submitted.Attempt.Status)
	assert.Equal(t, 2, submitted.Attempt.AttemptNumber)

	var attempts []courseModels.ActivityProgress
	require.NoError(t, env.db.Where("user_id = ?", env.studentID).Order("attempt_number asc").Find(&attempts).Error)
	require.Len(t, attempts, 2)
	assert.JSONEq(t, `{"q1":0,"q2":1}`, attempts[1].Answers)

	status, body = env.do(t, http.MethodGet, fmt.Sprintf("/course/%d/progress", course.ID), env.studentToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	var progress struct {
		TotalQuizzes     int `json:"total_quizzes"`
		CompletedQuizzes int `json:"completed_quizzes"`
		Progress         int `json:"progress"`
	}
	decode(t, body.Data, &progress)
	assert.Equal(t, 1, progress.TotalQuizzes)
	assert.Equal(t, 1, progress.CompletedQuizzes)
	assert.Equal(t, 100, progress.Progress)
}

func TestRevealSolution(t *testing.T) {
	env := newTestEnv(t)
	course, _, quiz, exercise := env.seedCourse(t)

	status, body := env.do(t, http.MethodPost, fmt.Sprintf("/course/%d/activity/%d/solution", course.ID, exercise.ID), env.studentToken, nil)
	require.Equal(t, fiber.StatusOK, status, body.Message)
	var revealed struct {
		Visible  bool   `json:"visible"`
		Solution string `json:"solution"`
	}
	decode(t, body.Data, &revealed)
	assert.True(t, revealed.Visible)
	assert.Equal(t, "a_n = 2n + 1", revealed.Solution)

	status, _ = env.do(t, http.MethodPost, fmt.Sprintf("/course/%d/activity/%d/solution", course.ID, quiz.ID), env.studentToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodPost, fmt.Sprintf("/course/%d/activity/%d/submit", course.ID, exercise.ID), env.studentToken, fiber.Map{"answers": fiber.Map{}})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestUploadPDF(t *testing.T) {
	env := newTestEnv(t)
	course, section, _, _ := env.seedCourse(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "apuntes.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 test"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/admin/course/%d/section/%d/resource/upload", course.ID, section.ID), &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	status, body := env.send(t, req, env.adminToken)
	require.Equal(t, fiber.StatusCreated, status, body.Message)

	var stored courseModels.Resource
	require.NoError(t, env.db.Where("section_id = ? AND type = ?", section.ID, courseModels.ResourceTypePDF).First(&stored).Error)
	assert.Equal(t, "apuntes", stored.Title)
	assert.Contains(t, stored.URL, "http://localhost:3000/uploads/pdf/")

	filePath := filepath.Join(env.uploadDir, filepath.FromSlash(stored.StoragePath))
	content, err := os.ReadFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(content))

	status, _ = env.do(t, http.MethodDelete, fmt.Sprintf("/admin/resource/%d", stored.ID), env.adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	_, err = os.Stat(filePath)
	assert.True(t, os.IsNotExist(err))
}

func TestUploadRejectsNonPDF(t *testing.T) {
	env := newTestEnv(t)
	course, section, _, _ := env.seedCourse(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "notas.docx")
	require.NoError(t, err)
	_, err = part.Write([]byte("not a pdf"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/admin/course/%d/section/%d/resource/upload", course.ID, section.ID), &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	status, body := env.send(t, req, env.adminToken)
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	var fieldErrors map[string]string
	decode(t, body.Data, &fieldErrors)
	assert.Equal(t, "Only PDF files are allowed!", fieldErrors["file"])
}

package courseValidator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"webmatematica/middleware"
	courseModels "webmatematica/models/course"
	"webmatematica/resolver"
	"webmatematica/validators"
)

const maxPDFSize = 20 << 20

// ============ Course Validators ============

type CourseRequest struct {
	Title        string `json:"title" validate:"required,min=3,max=200"`
	Description  string `json:"description" validate:"max=5000"`
	Level        string `json:"level" validate:"max=50"`
	Duration     string `json:"duration" validate:"max=50"`
	Category     string `json:"category" validate:"max=100"`
	ImageURL     string `json:"image_url" validate:"omitempty,url"`
	Requirements string `json:"requirements" validate:"max=5000"`
}

// CourseUpdateRequest only changes the fields that are present in the body
type CourseUpdateRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=3,max=200"`
	Description  *string `json:"description" validate:"omitempty,max=5000"`
	Level        *string `json:"level" validate:"omitempty,max=50"`
	Duration     *string `json:"duration" validate:"omitempty,max=50"`
	Category     *string `json:"category" validate:"omitempty,max=100"`
	ImageURL     *string `json:"image_url" validate:"omitempty,url"`
	Requirements *string `json:"requirements" validate:"omitempty,max=5000"`
}

// CreateCourseAdmin validates admin course creation request
func CreateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Category = strings.TrimSpace(reqData.Category)
		reqData.Level = strings.TrimSpace(reqData.Level)

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourseAdmin validates admin course update request
func UpdateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := validators.ParamID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(CourseUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Title != nil {
			title := strings.TrimSpace(*reqData.Title)
			reqData.Title = &title
		}

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseID validates the :id route parameter of course scoped requests
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := validators.ParamID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// PublishCourse validates course publish request
func PublishCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := validators.ParamID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			IsPublished bool `json:"is_published"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("publishStatus", reqData.IsPublished)
		return c.Next()
	}
}

// ============ Section Validators ============

type SectionRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Content     string `json:"content"`
	VideoURL    string `json:"video_url"`
	Order       int    `json:"order" validate:"min=0"`
}

type SectionUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Content     *string `json:"content"`
	VideoURL    *string `json:"video_url"`
	Order       *int    `json:"order" validate:"omitempty,min=1"`
}

// CreateSection validates section creation request
func CreateSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := validators.ParamID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(SectionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.VideoURL = strings.TrimSpace(reqData.VideoURL)

		errors := validators.Struct(reqData)
		if reqData.VideoURL != "" {
			if _, ok := resolver.YouTubeID(reqData.VideoURL); !ok {
				errors = withError(errors, "video_url", "Invalid YouTube URL!")
			}
		}
		if errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedSection", reqData)
		return c.Next()
	}
}

// UpdateSection validates section update request
func UpdateSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, sectionID, ok := sectionParams(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID or Section ID!", nil)
		}

		reqData := new(SectionUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := validators.Struct(reqData)
		if reqData.VideoURL != nil {
			videoURL := strings.TrimSpace(*reqData.VideoURL)
			reqData.VideoURL = &videoURL
			if _, ok := resolver.YouTubeID(videoURL); videoURL != "" && !ok {
				errors = withError(errors, "video_url", "Invalid YouTube URL!")
			}
		}
		if errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("sectionID", sectionID)
		c.Locals("validatedSectionUpdate", reqData)
		return c.Next()
	}
}

// SectionParams validates the :course_id and :section_id route parameters
func SectionParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, sectionID, ok := sectionParams(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID or Section ID!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("sectionID", sectionID)
		return c.Next()
	}
}

// ============ Resource Validators ============

type ResourceRequest struct {
	Title       string `json:"title" validate:"required_unless=Type video,max=200"`
	Type        string `json:"type" validate:"required,oneof=video geogebra phet pdf"`
	URL         string `json:"url" validate:"required"`
	Description string `json:"description" validate:"max=2000"`
}

type ResourceUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Type        *string `json:"type" validate:"omitempty,oneof=video geogebra phet pdf"`
	URL         *string `json:"url"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// CreateResource validates resource creation request. The URL must resolve for its type;
// a video may leave the title empty for the controller to fill in.
func CreateResource() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, sectionID, ok := sectionParams(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID or Section ID!", nil)
		}

		reqData := new(ResourceRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Type = normalizeResourceType(reqData.Type)
		reqData.URL = strings.TrimSpace(reqData.URL)

		errors := validators.Struct(reqData)
		if errors == nil {
			if _, err := resolver.Resolve(reqData.URL, reqData.Type); err != nil {
				errors = withError(nil, "url", invalidURLMessage(reqData.Type))
			}
		}
		if errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("sectionID", sectionID)
		c.Locals("validatedResource", reqData)
		return c.Next()
	}
}

// UploadPDF validates a multipart PDF upload: a "file" part and a "title" field
func UploadPDF() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, sectionID, ok := sectionParams(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID or Section ID!", nil)
		}

		errors := make(map[string]string)

		file, err := c.FormFile("file")
		if err != nil {
			errors["file"] = "PDF file is required!"
		} else {
			if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
				errors["file"] = "Only PDF files are allowed!"
			} else if file.Size > maxPDFSize {
				errors["file"] = fmt.Sprintf("File must be smaller than %d MB!", maxPDFSize>>20)
			}
		}

		title := strings.TrimSpace(c.FormValue("title"))
		if title == "" && file != nil {
			title = strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename))
		}
		if title == "" {
			errors["title"] = "Title is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("sectionID", sectionID)
		c.Locals("pdfFile", file)
		c.Locals("validatedResource", &ResourceRequest{
			Title:       title,
			Type:        courseModels.ResourceTypePDF,
			Description: strings.TrimSpace(c.FormValue("description")),
		})
		return c.Next()
	}
}

// UpdateResource validates resource update request. URL and type are checked against the stored resource by the controller.
func UpdateResource() fiber.Handler {
	return func(c *fiber.Ctx) error {
		resourceID, ok := validators.ParamID(c, "resource_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Resource ID!", nil)
		}

		reqData := new(ResourceUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if reqData.Type != nil {
			resourceType := normalizeResourceType(*reqData.Type)
			reqData.Type = &resourceType
		}
		if reqData.URL != nil {
			rawURL := strings.TrimSpace(*reqData.URL)
			reqData.URL = &rawURL
		}

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("resourceID", resourceID)
		c.Locals("validatedResourceUpdate", reqData)
		return c.Next()
	}
}

// ResourceID validates the :resource_id route parameter
func ResourceID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		resourceID, ok := validators.ParamID(c, "resource_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Resource ID!", nil)
		}

		c.Locals("resourceID", resourceID)
		return c.Next()
	}
}

// ============ Activity Validators ============

type QuestionRequest struct {
	ID                 string   `json:"id" validate:"max=64"`
	Text               string   `json:"text" validate:"required"`
	Options            []string `json:"options" validate:"min=2,dive,required"`
	CorrectAnswerIndex *int     `json:"correct_answer_index" validate:"required,min=0"`
	Explanation        string   `json:"explanation"`
}

type ActivityRequest struct {
	Title       string            `json:"title" validate:"required,min=3,max=200"`
	Type        string            `json:"type" validate:"required,oneof=quiz exercise"`
	Description string            `json:"description" validate:"max=2000"`
	Questions   []QuestionRequest `json:"questions" validate:"required_if=Type quiz,dive"`
	Content     string            `json:"content" validate:"required_if=Type exercise"`
	Solution    string            `json:"solution" validate:"required_if=Type exercise"`
	Explanation string            `json:"explanation"`
	Order       int               `json:"order" validate:"min=0"`
}

// QuestionModels converts validated questions into stored questions
func (r *ActivityRequest) QuestionModels() []courseModels.Question {
	if r.Type != courseModels.ActivityTypeQuiz {
		return nil
	}
	questions := make([]courseModels.Question, len(r.Questions))
	for i, q := range r.Questions {
		idx := *q.CorrectAnswerIndex
		questions[i] = courseModels.Question{
			ID:                 q.ID,
			Text:               q.Text,
			Options:            q.Options,
			CorrectAnswerIndex: &idx,
			Explanation:        q.Explanation,
		}
	}
	return questions
}

// CreateActivity validates activity creation request
func CreateActivity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, sectionID, ok := sectionParams(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID or Section ID!", nil)
		}

		reqData, errors, err := parseActivity(c)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("sectionID", sectionID)
		c.Locals("validatedActivity", reqData)
		return c.Next()
	}
}

// UpdateActivity validates activity update request. The body replaces the whole activity.
func UpdateActivity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		activityID, ok := validators.ParamID(c, "activity_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Activity ID!", nil)
		}

		reqData, errors, err := parseActivity(c)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("activityID", activityID)
		c.Locals("validatedActivity", reqData)
		return c.Next()
	}
}

// ActivityID validates the :activity_id route parameter
func ActivityID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		activityID, ok := validators.ParamID(c, "activity_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Activity ID!", nil)
		}

		c.Locals("activityID", activityID)
		return c.Next()
	}
}

func parseActivity(c *fiber.Ctx) (*ActivityRequest, map[string]string, error) {
	reqData := new(ActivityRequest)
	if err := c.BodyParser(reqData); err != nil {
		return nil, nil, err
	}

	reqData.Title = strings.TrimSpace(reqData.Title)
	reqData.Type = strings.ToLower(strings.TrimSpace(reqData.Type))
	if reqData.Type == "quizz" {
		reqData.Type = courseModels.ActivityTypeQuiz
	}

	errors := validators.Struct(reqData)
	if errors != nil || reqData.Type != courseModels.ActivityTypeQuiz {
		return reqData, errors, nil
	}

	seen := make(map[string]bool)
	for i := range reqData.Questions {
		q := &reqData.Questions[i]
		q.ID = strings.TrimSpace(q.ID)
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		if seen[q.ID] {
			errors = withError(errors, fmt.Sprintf("questions[%d].id", i), "Question IDs must be unique!")
		}
		seen[q.ID] = true

		if *q.CorrectAnswerIndex >= len(q.Options) {
			errors = withError(errors, fmt.Sprintf("questions[%d].correct_answer_index", i), "Correct answer index must point to one of the options!")
		}
	}
	return reqData, errors, nil
}

// ============ Shared ============

type ListQuery struct {
	Page     int    `query:"page" json:"page" validate:"omitempty,min=1"`
	Limit    int    `query:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
	Category string `query:"category" json:"category"`
	Level    string `query:"level" json:"level"`
}

// Offset returns the row offset for the requested page, applying defaults
func (q *ListQuery) Offset() int {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 10
	}
	return (q.Page - 1) * q.Limit
}

// AdminList validates list request with pagination
func AdminList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListQuery)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

func sectionParams(c *fiber.Ctx) (uint, uint, bool) {
	courseID, ok := validators.ParamID(c, "course_id")
	if !ok {
		return 0, 0, false
	}
	sectionID, ok := validators.ParamID(c, "section_id")
	if !ok {
		return 0, 0, false
	}
	return courseID, sectionID, true
}

func normalizeResourceType(resourceType string) string {
	resourceType = strings.ToLower(strings.TrimSpace(resourceType))
	if resourceType == "youtube" {
		return courseModels.ResourceTypeVideo
	}
	return resourceType
}

func invalidURLMessage(resourceType string) string {
	switch resourceType {
	case courseModels.ResourceTypeVideo:
		return "Invalid YouTube URL!"
	case courseModels.ResourceTypeGeoGebra:
		return "Invalid GeoGebra URL!"
	case courseModels.ResourceTypePhET:
		return "Invalid PhET URL!"
	}
	return "Invalid URL!"
}

func withError(errors map[string]string, field, message string) map[string]string {
	if errors == nil {
		errors = make(map[string]string)
	}
	errors[field] = message
	return errors
}

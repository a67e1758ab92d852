package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"sort"

	"github.com/gofiber/fiber/v2"

	"webmatematica/activity"
	"webmatematica/middleware"
	courseModels "webmatematica/models/course"
	courseValidator "webmatematica/validators/course"
)

// passingPercentage is the lowest score that marks a quiz as completed
const passingPercentage = 60

// SubmitActivity scores a quiz submission and records the attempt
func (ctl *CourseController) SubmitActivity(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	activityID := c.Locals("activityID").(uint)

	act, status, message := ctl.loadActivity(courseID, activityID)
	if act == nil {
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	variant, err := activity.FromActivity(*act)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unsupported activity type!", nil)
	}
	if _, isQuiz := variant.(activity.Quiz); !isQuiz {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only quizzes can be submitted!", nil)
	}

	reqData, ok := c.Locals("validatedSubmission").(*courseValidator.SubmitRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	card := activity.NewCard(variant)
	card.Expand()

	questionIDs := make([]string, 0, len(reqData.Answers))
	for id := range reqData.Answers {
		questionIDs = append(questionIDs, id)
	}
	sort.Strings(questionIDs)

	answerErrors := make(map[string]string)
	for _, id := range questionIDs {
		err := card.SelectAnswer(id, reqData.Answers[id])
		switch {
		case errors.Is(err, activity.ErrUnknownQuestion):
			answerErrors["answers."+id] = "Unknown question!"
		case errors.Is(err, activity.ErrInvalidOption):
			answerErrors["answers."+id] = "Invalid option!"
		}
	}
	if len(answerErrors) > 0 {
		return middleware.ValidationErrorResponse(c, answerErrors)
	}

	result, submitted := card.Submit()
	if !submitted {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Please answer every question before submitting!", fiber.Map{
			"unanswered": card.Unanswered(),
		})
	}

	var attemptCount int64
	ctl.Db.Model(&courseModels.ActivityProgress{}).Where("user_id = ? AND activity_id = ? AND is_deleted = ?", userID, activityID, false).Count(&attemptCount)

	answersJSON, err := json.Marshal(card.Answers())
	if err != nil {
		log.Printf("Error encoding answers for activity %d: %v", activityID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit answers!", nil)
	}

	progressStatus := courseModels.ProgressAttempted
	if !result.HasScore() || result.Percentage >= passingPercentage {
		progressStatus = courseModels.ProgressCompleted
	}

	attempt := courseModels.ActivityProgress{
		UserID:        userID,
		CourseID:      courseID,
		SectionID:     act.SectionID,
		ActivityID:    activityID,
		Status:        progressStatus,
		Answers:       string(answersJSON),
		Correct:       result.Correct,
		Total:         result.Total,
		Score:         result.Percentage,
		AttemptNumber: int(attemptCount) + 1,
	}

	if err := ctl.Db.Create(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit answers!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answers submitted!", fiber.Map{
		"attempt":   attempt,
		"result":    result,
		"has_score": result.HasScore(),
		"message":   result.Message(),
		"state":     card.State().String(),
	})
}

// RevealSolution shows the solution of an exercise
func (ctl *CourseController) RevealSolution(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	activityID := c.Locals("activityID").(uint)

	act, status, message := ctl.loadActivity(courseID, activityID)
	if act == nil {
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	variant, err := activity.FromActivity(*act)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unsupported activity type!", nil)
	}
	exercise, isExercise := variant.(activity.Exercise)
	if !isExercise {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only exercises have a solution to reveal!", nil)
	}

	card := activity.NewCard(variant)
	card.Expand()
	visible, err := card.ToggleSolutionVisibility()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Solution cannot be shown right now!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Solution fetched successfully!", fiber.Map{
		"activity_id": act.ID,
		"visible":     visible,
		"solution":    exercise.Solution,
		"explanation": exercise.Explanation,
	})
}

// SectionProgress summarizes a student's quiz results in one section
type SectionProgress struct {
	SectionID    uint         `json:"section_id"`
	Title        string       `json:"title"`
	TotalQuizzes int          `json:"total_quizzes"`
	Completed    int          `json:"completed"`
	BestScores   map[uint]int `json:"best_scores"`
}

// GetUserProgress gets the user's progress in a course
func (ctl *CourseController) GetUserProgress(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	if _, err := ctl.findCourse(courseID, true); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var sections []courseModels.Section
	ctl.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&sections)

	var quizzes []courseModels.Activity
	ctl.Db.Select("id", "section_id").
		Where("course_id = ? AND is_deleted = ? AND type IN ?", courseID, false, []string{courseModels.ActivityTypeQuiz, "quizz"}).
		Find(&quizzes)

	var attempts []courseModels.ActivityProgress
	ctl.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).Find(&attempts)

	completedActivities := make(map[uint]bool)
	bestScores := make(map[uint]int)
	for _, a := range attempts {
		if a.Status == courseModels.ProgressCompleted {
			completedActivities[a.ActivityID] = true
		}
		if best, seen := bestScores[a.ActivityID]; !seen || a.Score > best {
			bestScores[a.ActivityID] = a.Score
		}
	}

	progress := make([]SectionProgress, 0, len(sections))
	index := make(map[uint]int, len(sections))
	for i, s := range sections {
		index[s.ID] = i
		progress = append(progress, SectionProgress{SectionID: s.ID, Title: s.Title, BestScores: map[uint]int{}})
	}

	totalQuizzes, completedQuizzes := 0, 0
	for _, q := range quizzes {
		i, ok := index[q.SectionID]
		if !ok {
			continue
		}
		totalQuizzes++
		progress[i].TotalQuizzes++
		if completedActivities[q.ID] {
			completedQuizzes++
			progress[i].Completed++
		}
		if best, attempted := bestScores[q.ID]; attempted {
			progress[i].BestScores[q.ID] = best
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"course_id":         courseID,
		"total_quizzes":     totalQuizzes,
		"completed_quizzes": completedQuizzes,
		"progress":          activity.Percentage(completedQuizzes, totalQuizzes),
		"sections":          progress,
	})
}

// loadActivity finds an activity of a published course, returning the error response to send when it is missing
func (ctl *CourseController) loadActivity(courseID, activityID uint) (*courseModels.Activity, int, string) {
	if _, err := ctl.findCourse(courseID, true); err != nil {
		return nil, fiber.StatusNotFound, "Course not found!"
	}

	var act courseModels.Activity
	if err := ctl.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", activityID, courseID, false).First(&act).Error; err != nil {
		return nil, fiber.StatusNotFound, "Activity not found!"
	}

	if _, err := ctl.findSection(courseID, act.SectionID); err != nil {
		return nil, fiber.StatusNotFound, "Activity not found!"
	}
	return &act, 0, ""
}

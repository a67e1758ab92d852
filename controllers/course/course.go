package controllers

import (
	"github.com/gofiber/fiber/v2"

	"webmatematica/middleware"
	courseModels "webmatematica/models/course"
	courseValidator "webmatematica/validators/course"
)

// GetAllCourses lists published courses, optionally filtered by category and level
func (ctl *CourseController) GetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*courseValidator.ListQuery)
	if !ok {
		reqData = &courseValidator.ListQuery{}
	}
	offset := reqData.Offset()

	db := ctl.Db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true)
	if reqData.Category != "" {
		db = db.Where("category = ?", reqData.Category)
	}
	if reqData.Level != "" {
		db = db.Where("level = ?", reqData.Level)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(reqData.Limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetails returns a published course with its sections in display order
func (ctl *CourseController) GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	course, err := ctl.findCourse(courseID, true)
	if err != nil {
		if isNotFound(err) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	var sections []courseModels.Section
	ctl.Db.Select("id", "course_id", "title", "description", "order_index").
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").
		Find(&sections)

	var activityCount int64
	ctl.Db.Model(&courseModels.Activity{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&activityCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":         course,
		"sections":       sections,
		"activity_count": activityCount,
	})
}

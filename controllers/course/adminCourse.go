package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"webmatematica/middleware"
	"webmatematica/models"
	courseModels "webmatematica/models/course"
	courseValidator "webmatematica/validators/course"
)

// AdminCreateCourse creates a new course
func (ctl *CourseController) AdminCreateCourse(c *fiber.Ctx) error {
	user, _ := c.Locals("user").(models.User)

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Level:        reqData.Level,
		Duration:     reqData.Duration,
		Category:     reqData.Category,
		ImageURL:     reqData.ImageURL,
		Requirements: reqData.Requirements,
		AuthorID:     user.ID,
		IsPublished:  false,
	}

	if err := ctl.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse updates an existing course
func (ctl *CourseController) AdminUpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	course, err := ctl.findCourse(courseID, false)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.CourseUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Level != nil {
		course.Level = *reqData.Level
	}
	if reqData.Duration != nil {
		course.Duration = *reqData.Duration
	}
	if reqData.Category != nil {
		course.Category = *reqData.Category
	}
	if reqData.ImageURL != nil {
		course.ImageURL = *reqData.ImageURL
	}
	if reqData.Requirements != nil {
		course.Requirements = *reqData.Requirements
	}

	if err := ctl.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminDeleteCourse soft deletes a course
func (ctl *CourseController) AdminDeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	course, err := ctl.findCourse(courseID, false)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsDeleted = true
	if err := ctl.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminGetAllCourses lists all courses for admin, drafts included
func (ctl *CourseController) AdminGetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*courseValidator.ListQuery)
	if !ok {
		reqData = &courseValidator.ListQuery{}
	}
	offset := reqData.Offset()

	var courses []courseModels.Course
	var total int64

	db := ctl.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false)
	if reqData.Category != "" {
		db = db.Where("category = ?", reqData.Category)
	}
	db.Count(&total)

	if err := db.Offset(offset).Limit(reqData.Limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	})
}

// AdminGetCourseDetails gets a single course with its sections and content counts
func (ctl *CourseController) AdminGetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	course, err := ctl.findCourse(courseID, false)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var sections []courseModels.Section
	ctl.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&sections)

	var resourceCount, activityCount, attemptCount int64
	ctl.Db.Model(&courseModels.Resource{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&resourceCount)
	ctl.Db.Model(&courseModels.Activity{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&activityCount)
	ctl.Db.Model(&courseModels.ActivityProgress{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&attemptCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":         course,
		"sections":       sections,
		"resource_count": resourceCount,
		"activity_count": activityCount,
		"attempt_count":  attemptCount,
	})
}

// AdminPublishCourse publishes or unpublishes a course
func (ctl *CourseController) AdminPublishCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	publishStatus := c.Locals("publishStatus").(bool)

	course, err := ctl.findCourse(courseID, false)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsPublished = publishStatus
	if err := ctl.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	message := "Course unpublished successfully!"
	if publishStatus {
		message = "Course published successfully!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, course)
}

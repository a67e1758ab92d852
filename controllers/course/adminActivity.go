package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"webmatematica/middleware"
	courseModels "webmatematica/models/course"
	courseValidator "webmatematica/validators/course"
)

// AdminCreateActivity adds a quiz or an exercise to a section
func (ctl *CourseController) AdminCreateActivity(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	sectionID := c.Locals("sectionID").(uint)

	if _, err := ctl.findSection(courseID, sectionID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	reqData, ok := c.Locals("validatedActivity").(*courseValidator.ActivityRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	order := reqData.Order
	if order == 0 {
		var maxOrder int
		ctl.Db.Model(&courseModels.Activity{}).Where("section_id = ? AND is_deleted = ?", sectionID, false).Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)
		order = maxOrder + 1
	}

	activity := courseModels.Activity{
		CourseID:  courseID,
		SectionID: sectionID,
		Order:     order,
	}
	applyActivity(&activity, reqData)

	if err := ctl.Db.Create(&activity).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create activity!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Activity created successfully!", activity)
}

// AdminUpdateActivity replaces the content of an activity
func (ctl *CourseController) AdminUpdateActivity(c *fiber.Ctx) error {
	activityID := c.Locals("activityID").(uint)

	var activity courseModels.Activity
	if err := ctl.Db.Where("id = ? AND is_deleted = ?", activityID, false).First(&activity).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Activity not found!", nil)
	}

	reqData, ok := c.Locals("validatedActivity").(*courseValidator.ActivityRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	applyActivity(&activity, reqData)
	if reqData.Order > 0 {
		activity.Order = reqData.Order
	}

	if err := ctl.Db.Save(&activity).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update activity!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Activity updated successfully!", activity)
}

// AdminDeleteActivity soft deletes an activity
func (ctl *CourseController) AdminDeleteActivity(c *fiber.Ctx) error {
	activityID := c.Locals("activityID").(uint)

	var activity courseModels.Activity
	if err := ctl.Db.Where("id = ? AND is_deleted = ?", activityID, false).First(&activity).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Activity not found!", nil)
	}

	activity.IsDeleted = true
	if err := ctl.Db.Save(&activity).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete activity!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Activity deleted successfully!", nil)
}

// AdminListActivities lists the activities of a section with answers and solutions
func (ctl *CourseController) AdminListActivities(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	sectionID := c.Locals("sectionID").(uint)

	var activities []courseModels.Activity
	if err := ctl.Db.Where("course_id = ? AND section_id = ? AND is_deleted = ?", courseID, sectionID, false).
		Order("order_index asc").
		Find(&activities).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch activities!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Activities fetched successfully!", activities)
}

func applyActivity(activity *courseModels.Activity, reqData *courseValidator.ActivityRequest) {
	activity.Title = reqData.Title
	activity.Type = reqData.Type
	activity.Description = reqData.Description
	activity.Questions = datatypes.JSONSlice[courseModels.Question](reqData.QuestionModels())
	activity.Explanation = reqData.Explanation

	if reqData.Type == courseModels.ActivityTypeExercise {
		activity.Content = reqData.Content
		activity.Solution = reqData.Solution
	} else {
		activity.Content = ""
		activity.Solution = ""
	}
}

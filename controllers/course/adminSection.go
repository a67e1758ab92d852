package controllers

import (
	"github.com/gofiber/fiber/v2"

	"webmatematica/middleware"
	courseModels "webmatematica/models/course"
	courseValidator "webmatematica/validators/course"
)

// AdminCreateSection creates a new section in a course
func (ctl *CourseController) AdminCreateSection(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	if _, err := ctl.findCourse(courseID, false); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedSection").(*courseValidator.SectionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Get the next order index if not provided
	order := reqData.Order
	if order == 0 {
		var maxOrder int
		ctl.Db.Model(&courseModels.Section{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)
		order = maxOrder + 1
	}

	section := courseModels.Section{
		CourseID:    courseID,
		Title:       reqData.Title,
		Description: reqData.Description,
		Content:     reqData.Content,
		VideoURL:    reqData.VideoURL,
		Order:       order,
	}

	if err := ctl.Db.Create(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Section created successfully!", section)
}

// AdminUpdateSection updates an existing section
func (ctl *CourseController) AdminUpdateSection(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	sectionID := c.Locals("sectionID").(uint)

	section, err := ctl.findSection(courseID, sectionID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	reqData, ok := c.Locals("validatedSectionUpdate").(*courseValidator.SectionUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		section.Title = *reqData.Title
	}
	if reqData.Description != nil {
		section.Description = *reqData.Description
	}
	if reqData.Content != nil {
		section.Content = *reqData.Content
	}
	if reqData.VideoURL != nil {
		section.VideoURL = *reqData.VideoURL
	}
	if reqData.Order != nil {
		section.Order = *reqData.Order
	}

	if err := ctl.Db.Save(section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section updated successfully!", section)
}

// AdminDeleteSection soft deletes a section together with its resources and activities
func (ctl *CourseController) AdminDeleteSection(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	sectionID := c.Locals("sectionID").(uint)

	section, err := ctl.findSection(courseID, sectionID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	section.IsDeleted = true
	if err := ctl.Db.Save(section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete section!", nil)
	}

	ctl.Db.Model(&courseModels.Resource{}).Where("section_id = ?", sectionID).Update("is_deleted", true)
	ctl.Db.Model(&courseModels.Activity{}).Where("section_id = ?", sectionID).Update("is_deleted", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section deleted successfully!", nil)
}

// AdminListSections lists all sections of a course in display order
func (ctl *CourseController) AdminListSections(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	if _, err := ctl.findCourse(courseID, false); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var sections []courseModels.Section
	if err := ctl.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&sections).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sections!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sections fetched successfully!", sections)
}

package controllers

import (
	"fmt"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"webmatematica/middleware"
	courseModels "webmatematica/models/course"
	"webmatematica/resolver"
	"webmatematica/storage"
	"webmatematica/utils"
	courseValidator "webmatematica/validators/course"
)

// AdminCreateResource attaches a video, GeoGebra, PhET or linked PDF resource to a section
func (ctl *CourseController) AdminCreateResource(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	sectionID := c.Locals("sectionID").(uint)

	if _, err := ctl.findSection(courseID, sectionID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	reqData, ok := c.Locals("validatedResource").(*courseValidator.ResourceRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	resource := courseModels.Resource{
		CourseID:    courseID,
		SectionID:   sectionID,
		Title:       reqData.Title,
		Type:        reqData.Type,
		URL:         reqData.URL,
		Description: reqData.Description,
	}
	if resource.Title == "" {
		resource.Title = ctl.videoTitle(c, resource.URL)
	}

	if err := ctl.Db.Create(&resource).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Resource created successfully!", resource)
}

// AdminUploadPDF stores an uploaded PDF and attaches it to a section
func (ctl *CourseController) AdminUploadPDF(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	sectionID := c.Locals("sectionID").(uint)

	if _, err := ctl.findSection(courseID, sectionID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	reqData := c.Locals("validatedResource").(*courseValidator.ResourceRequest)
	fileHeader := c.Locals("pdfFile").(*multipart.FileHeader)

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read uploaded file!", nil)
	}
	defer file.Close()

	key := storage.ObjectKey("pdf", fileHeader.Filename)
	url, err := ctl.Storage.Upload(c.UserContext(), key, file, fileHeader.Size, "application/pdf")
	if err != nil {
		ctl.logError(c, fmt.Sprintf("PDF upload failed: %v", err), map[string]interface{}{
			"context":  "AdminUploadPDF",
			"filename": fileHeader.Filename,
		})
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload file!", nil)
	}

	resource := courseModels.Resource{
		CourseID:    courseID,
		SectionID:   sectionID,
		Title:       reqData.Title,
		Type:        courseModels.ResourceTypePDF,
		URL:         url,
		StoragePath: key,
		Description: reqData.Description,
	}

	if err := ctl.Db.Create(&resource).Error; err != nil {
		ctl.deleteStoredFile(c, key)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "PDF uploaded successfully!", resource)
}

// AdminUpdateResource updates a resource, re-validating the URL when the URL or the type changes
func (ctl *CourseController) AdminUpdateResource(c *fiber.Ctx) error {
	resourceID := c.Locals("resourceID").(uint)

	var resource courseModels.Resource
	if err := ctl.Db.Where("id = ? AND is_deleted = ?", resourceID, false).First(&resource).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Resource not found!", nil)
	}

	reqData, ok := c.Locals("validatedResourceUpdate").(*courseValidator.ResourceUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		resource.Title = *reqData.Title
	}
	if reqData.Description != nil {
		resource.Description = *reqData.Description
	}

	if reqData.Type != nil || reqData.URL != nil {
		if reqData.Type != nil {
			resource.Type = *reqData.Type
		}
		var previousFile string
		if reqData.URL != nil && *reqData.URL != resource.URL {
			resource.URL = *reqData.URL
			previousFile, resource.StoragePath = resource.StoragePath, ""
		}

		if _, err := resolver.Resolve(resource.URL, resource.Type); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"url": fmt.Sprintf("URL is not a valid %s resource!", resource.Type),
			})
		}
		if previousFile != "" {
			ctl.deleteStoredFile(c, previousFile)
		}
	}

	if err := ctl.Db.Save(&resource).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource updated successfully!", resource)
}

// AdminDeleteResource soft deletes a resource and removes its uploaded file
func (ctl *CourseController) AdminDeleteResource(c *fiber.Ctx) error {
	resourceID := c.Locals("resourceID").(uint)

	var resource courseModels.Resource
	if err := ctl.Db.Where("id = ? AND is_deleted = ?", resourceID, false).First(&resource).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Resource not found!", nil)
	}

	resource.IsDeleted = true
	if err := ctl.Db.Save(&resource).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete resource!", nil)
	}

	if resource.StoragePath != "" {
		ctl.deleteStoredFile(c, resource.StoragePath)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource deleted successfully!", nil)
}

// AdminListResources lists the resources of a section
func (ctl *CourseController) AdminListResources(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	sectionID := c.Locals("sectionID").(uint)

	var resources []courseModels.Resource
	if err := ctl.Db.Where("course_id = ? AND section_id = ? AND is_deleted = ?", courseID, sectionID, false).
		Order("created_at asc").
		Find(&resources).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch resources!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resources fetched successfully!", resources)
}

// videoTitle looks the title up through oEmbed, falling back to the video id
func (ctl *CourseController) videoTitle(c *fiber.Ctx, videoURL string) string {
	videoID, _ := resolver.YouTubeID(videoURL)
	fallback := "YouTube video " + videoID

	if ctl.OEmbed == nil {
		return fallback
	}

	info, err := ctl.OEmbed.Lookup(c.UserContext(), videoURL)
	if err != nil || info.Title == "" {
		log.Printf("[OEMBED] Title lookup failed for %s: %v", videoURL, err)
		return fallback
	}
	return info.Title
}

func (ctl *CourseController) deleteStoredFile(c *fiber.Ctx, key string) {
	if err := ctl.Storage.Delete(c.UserContext(), key); err != nil {
		ctl.logError(c, fmt.Sprintf("Failed to delete stored file: %v", err), map[string]interface{}{
			"context": "deleteStoredFile",
			"key":     key,
		})
	}
}

func (ctl *CourseController) logError(c *fiber.Ctx, message string, context map[string]interface{}) {
	entry := utils.ErrorEntry{
		Message:   message,
		URL:       c.OriginalURL(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
		Context:   context,
	}
	if userID, ok := middleware.CurrentUserID(c); ok {
		entry.UserID = &userID
	}
	ctl.Errors.LogError(entry)
}

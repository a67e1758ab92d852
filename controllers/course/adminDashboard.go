package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"

	"webmatematica/middleware"
	"webmatematica/models"
	courseModels "webmatematica/models/course"
)

// AdminDashboardStats returns content totals, today's activity and the latest errors
func (ctl *CourseController) AdminDashboardStats(c *fiber.Ctx) error {
	today := now.BeginningOfDay()
	weekStart := now.BeginningOfWeek()

	var totalCourses, publishedCourses, totalSections, totalResources, totalStudents int64
	ctl.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	ctl.Db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true).Count(&publishedCourses)
	ctl.Db.Model(&courseModels.Section{}).Where("is_deleted = ?", false).Count(&totalSections)
	ctl.Db.Model(&courseModels.Resource{}).Where("is_deleted = ?", false).Count(&totalResources)
	ctl.Db.Model(&models.User{}).Where("is_deleted = ? AND role = ?", false, models.RoleStudent).Count(&totalStudents)

	var activitiesByType []struct {
		Type  string `json:"type"`
		Count int64  `json:"count"`
	}
	ctl.Db.Model(&courseModels.Activity{}).
		Select("type, COUNT(*) AS count").
		Where("is_deleted = ?", false).
		Group("type").
		Scan(&activitiesByType)

	var attemptsToday, attemptsThisWeek, errorsToday int64
	ctl.Db.Model(&courseModels.ActivityProgress{}).Where("is_deleted = ? AND created_at >= ?", false, today).Count(&attemptsToday)
	ctl.Db.Model(&courseModels.ActivityProgress{}).Where("is_deleted = ? AND created_at >= ?", false, weekStart).Count(&attemptsThisWeek)
	ctl.Db.Model(&models.ErrorLog{}).Where("created_at >= ?", today).Count(&errorsToday)

	var recentErrors []models.ErrorLog
	ctl.Db.Order("created_at desc").Limit(5).Find(&recentErrors)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"stats": fiber.Map{
			"total_courses":      totalCourses,
			"published_courses":  publishedCourses,
			"total_sections":     totalSections,
			"total_resources":    totalResources,
			"total_students":     totalStudents,
			"attempts_today":     attemptsToday,
			"attempts_this_week": attemptsThisWeek,
			"errors_today":       errorsToday,
			"activities_by_type": activitiesByType,
		},
		"recent_errors": recentErrors,
	})
}

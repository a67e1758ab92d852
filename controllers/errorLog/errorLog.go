package errorLogController

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"webmatematica/middleware"
	"webmatematica/models"
	"webmatematica/utils"
	errorLogValidator "webmatematica/validators/errorLog"
)

type ErrorLogController struct {
	Db     *gorm.DB
	Errors *utils.ErrorLogger
}

func NewErrorLogController(db *gorm.DB, errorLogger *utils.ErrorLogger) *ErrorLogController {
	return &ErrorLogController{Db: db, Errors: errorLogger}
}

// ReportError stores an error reported by a browser client
func (ctl *ErrorLogController) ReportError(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedReport").(*errorLogValidator.ReportRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	entry := utils.ErrorEntry{
		Message:   reqData.Message,
		Stack:     reqData.Stack,
		Source:    models.ErrorSourceClient,
		URL:       reqData.URL,
		UserAgent: reqData.UserAgent,
		Context:   reqData.Context,
	}
	if userID, ok := middleware.CurrentUserID(c); ok {
		entry.UserID = &userID
	}

	record := ctl.Errors.LogError(entry)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Error reported.", fiber.Map{
		"id": record.ID,
	})
}

// AdminListErrors lists persisted errors, newest first, with the ones kept in memory since startup
func (ctl *ErrorLogController) AdminListErrors(c *fiber.Ctx) error {
	source, _ := c.Locals("errorSource").(string)
	limit, _ := c.Locals("errorLimit").(int)
	if limit == 0 {
		limit = 50
	}

	db := ctl.Db.Model(&models.ErrorLog{})
	if source != "" {
		db = db.Where("source = ?", source)
	}

	var errorLogs []models.ErrorLog
	if err := db.Order("created_at desc").Limit(limit).Find(&errorLogs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch error logs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Error logs fetched successfully!", fiber.Map{
		"errors": errorLogs,
		"recent": ctl.Errors.Recent(),
	})
}

// AdminClearRecent empties the in-memory list of recent errors
func (ctl *ErrorLogController) AdminClearRecent(c *fiber.Ctx) error {
	ctl.Errors.Clear()
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Recent errors cleared.", nil)
}

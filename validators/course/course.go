package courseValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"webmatematica/middleware"
	"webmatematica/validators"
)

// CourseList validates the public course listing query
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListQuery)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		reqData.Category = strings.TrimSpace(reqData.Category)
		reqData.Level = strings.TrimSpace(reqData.Level)

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// GetCourseDetail validates the :id route parameter
func GetCourseDetail() fiber.Handler {
	return CourseID()
}

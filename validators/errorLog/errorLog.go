package errorLogValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"webmatematica/middleware"
	"webmatematica/validators"
)

type ReportRequest struct {
	Message   string                 `json:"message" validate:"required,max=2000"`
	Stack     string                 `json:"stack" validate:"max=20000"`
	URL       string                 `json:"url" validate:"max=2000"`
	UserAgent string                 `json:"user_agent" validate:"max=500"`
	Context   map[string]interface{} `json:"context"`
}

// ReportError validates an error reported by a browser client
func ReportError() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ReportRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Message = strings.TrimSpace(reqData.Message)
		if reqData.UserAgent == "" {
			reqData.UserAgent = c.Get(fiber.HeaderUserAgent)
		}

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReport", reqData)
		return c.Next()
	}
}

// ListErrors validates the admin error log listing query
func ListErrors() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Source string `query:"source" json:"source" validate:"omitempty,oneof=server client"`
			Limit  int    `query:"limit" json:"limit" validate:"omitempty,min=1,max=200"`
		})
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		if reqData.Limit == 0 {
			reqData.Limit = 50
		}
		c.Locals("errorSource", reqData.Source)
		c.Locals("errorLimit", reqData.Limit)
		return c.Next()
	}
}

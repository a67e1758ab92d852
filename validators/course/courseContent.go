package courseValidator

import (
	"github.com/gofiber/fiber/v2"

	"webmatematica/middleware"
	"webmatematica/validators"
)

type SubmitRequest struct {
	Answers map[string]int `json:"answers"`
}

// GetSection validates the section view request
func GetSection() fiber.Handler {
	return SectionParams()
}

// ActivityParams validates the :course_id and :activity_id route parameters
func ActivityParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := validators.ParamID(c, "course_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		activityID, ok := validators.ParamID(c, "activity_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Activity ID!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("activityID", activityID)
		return c.Next()
	}
}

// SubmitActivity validates a quiz submission: {"answers": {"<question id>": <option index>}}
func SubmitActivity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if reqData.Answers == nil {
			reqData.Answers = map[string]int{}
		}

		c.Locals("validatedSubmission", reqData)
		return ActivityParams()(c)
	}
}

// GetCourseProgress validates the :course_id route parameter
func GetCourseProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := validators.ParamID(c, "course_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

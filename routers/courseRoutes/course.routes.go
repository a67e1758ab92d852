package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "webmatematica/controllers/course"
	"webmatematica/middleware"
	validators "webmatematica/validators/course"
)

// SetupCourseRoutes sets up all public and student course routes
func SetupCourseRoutes(app *fiber.App, auth *middleware.Auth, ctl *controllers.CourseController) {
	userGroup := app.Group("/course")

	// Course listing and viewing (anonymous visitors allowed)
	userGroup.Get("/list", auth.OptionalJWT, validators.CourseList(), ctl.GetAllCourses)
	userGroup.Get("/:id", auth.OptionalJWT, validators.GetCourseDetail(), ctl.GetCourseDetails)
	userGroup.Get("/:course_id/section/:section_id", auth.OptionalJWT, validators.GetSection(), ctl.GetSectionContent)

	// Activities
	userGroup.Post("/:course_id/activity/:activity_id/submit", auth.JWTMiddleware, validators.SubmitActivity(), ctl.SubmitActivity)
	userGroup.Post("/:course_id/activity/:activity_id/solution", auth.JWTMiddleware, validators.ActivityParams(), ctl.RevealSolution)

	// Progress tracking
	userGroup.Get("/:course_id/progress", auth.JWTMiddleware, validators.GetCourseProgress(), ctl.GetUserProgress)
}

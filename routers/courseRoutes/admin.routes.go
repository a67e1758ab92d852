package courseRoutes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controllers "webmatematica/controllers/course"
	"webmatematica/middleware"
	validators "webmatematica/validators/course"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App, db *gorm.DB, auth *middleware.Auth, ctl *controllers.CourseController) {
	admin := app.Group("/admin", auth.JWTMiddleware, middleware.AdminOnly(db))

	// Course CRUD
	adminGroup := admin.Group("/course")
	adminGroup.Post("/create", validators.CreateCourseAdmin(), ctl.AdminCreateCourse)
	adminGroup.Get("/list", validators.AdminList(), ctl.AdminGetAllCourses)
	adminGroup.Put("/:id", validators.UpdateCourseAdmin(), ctl.AdminUpdateCourse)
	adminGroup.Delete("/:id", validators.CourseID(), ctl.AdminDeleteCourse)
	adminGroup.Get("/:id", validators.CourseID(), ctl.AdminGetCourseDetails)
	adminGroup.Post("/:id/publish", validators.PublishCourse(), ctl.AdminPublishCourse)

	// Section Management
	adminGroup.Post("/:id/section", validators.CreateSection(), ctl.AdminCreateSection)
	adminGroup.Get("/:id/sections", validators.CourseID(), ctl.AdminListSections)
	adminGroup.Put("/:course_id/section/:section_id", validators.UpdateSection(), ctl.AdminUpdateSection)
	adminGroup.Delete("/:course_id/section/:section_id", validators.SectionParams(), ctl.AdminDeleteSection)

	// Resource Management
	adminGroup.Post("/:course_id/section/:section_id/resource", validators.CreateResource(), ctl.AdminCreateResource)
	adminGroup.Post("/:course_id/section/:section_id/resource/upload", validators.UploadPDF(), ctl.AdminUploadPDF)
	adminGroup.Get("/:course_id/section/:section_id/resources", validators.SectionParams(), ctl.AdminListResources)

	resourceGroup := admin.Group("/resource")
	resourceGroup.Put("/:resource_id", validators.UpdateResource(), ctl.AdminUpdateResource)
	resourceGroup.Delete("/:resource_id", validators.ResourceID(), ctl.AdminDeleteResource)

	// Activity Management
	adminGroup.Post("/:course_id/section/:section_id/activity", validators.CreateActivity(), ctl.AdminCreateActivity)
	adminGroup.Get("/:course_id/section/:section_id/activities", validators.SectionParams(), ctl.AdminListActivities)

	activityGroup := admin.Group("/activity")
	activityGroup.Put("/:activity_id", validators.UpdateActivity(), ctl.AdminUpdateActivity)
	activityGroup.Delete("/:activity_id", validators.ActivityID(), ctl.AdminDeleteActivity)

	// Dashboard
	admin.Get("/dashboard/stats", ctl.AdminDashboardStats)
}

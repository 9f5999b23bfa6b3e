// internals/features/school/academics/routes/admin_route.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classCtl "shiksha_backend/internals/features/school/academics/controller"
)

func AcademicAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := classCtl.NewClassController(db)

	classes := r.Group("/classes")
	classes.Post("/", ctl.Create)      // POST  /classes
	classes.Get("/", ctl.List)        // GET   /classes
	classes.Get("/:id", ctl.GetByID)  // GET   /classes/:id
	classes.Patch("/:id", ctl.Update) // PATCH /classes/:id
}

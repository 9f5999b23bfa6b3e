// internals/features/school/students/routes/admin_route.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentCtl "shiksha_backend/internals/features/school/students/controller"
)

func StudentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := studentCtl.NewStudentController(db)

	students := r.Group("/students")
	students.Post("/", ctl.Admit)       // POST  /students (admission, materializes the fee record)
	students.Get("/", ctl.List)         // GET   /students
	students.Get("/:id", ctl.GetByID)   // GET   /students/:id
	students.Patch("/:id", ctl.Update)  // PATCH /students/:id
}

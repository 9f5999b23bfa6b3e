// internals/features/school/hostel/routes/admin_route.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	hostelCtl "shiksha_backend/internals/features/school/hostel/controller"
	"shiksha_backend/internals/middlewares"
)

func HostelAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := hostelCtl.NewHostelController(db)

	hostel := r.Group("/hostel")

	rooms := hostel.Group("/rooms")
	rooms.Post("/", ctl.CreateRoom)     // POST  /hostel/rooms
	rooms.Get("/", ctl.ListRooms)       // GET   /hostel/rooms
	rooms.Patch("/:id", ctl.UpdateRoom) // PATCH /hostel/rooms/:id

	// Assignment posts a ledger charge, so it shares the write limiter.
	assign := hostel.Group("/assignments", middlewares.LedgerWriteRateLimiter())
	assign.Post("/", ctl.AssignRoom)                         // POST   /hostel/assignments
	assign.Delete("/students/:student_id", ctl.EndAssignment) // DELETE /hostel/assignments/students/:student_id
}

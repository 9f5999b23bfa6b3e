// internals/features/school/transport/routes/admin_route.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	transportCtl "shiksha_backend/internals/features/school/transport/controller"
	"shiksha_backend/internals/middlewares"
)

func TransportAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := transportCtl.NewTransportController(db)

	transport := r.Group("/transport")

	routes := transport.Group("/routes")
	routes.Post("/", ctl.CreateRoute)          // POST /transport/routes
	routes.Get("/", ctl.ListRoutes)            // GET  /transport/routes
	routes.Post("/:id/stops", ctl.CreateStop)  // POST /transport/routes/:id/stops
	routes.Get("/:id/stops", ctl.ListStops)    // GET  /transport/routes/:id/stops

	assign := transport.Group("/assignments", middlewares.LedgerWriteRateLimiter())
	assign.Post("/", ctl.AssignTransport)                     // POST   /transport/assignments
	assign.Delete("/students/:student_id", ctl.EndAssignment) // DELETE /transport/assignments/students/:student_id
}

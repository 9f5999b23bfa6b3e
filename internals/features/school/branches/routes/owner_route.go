// internals/features/school/branches/routes/owner_route.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	branchCtl "shiksha_backend/internals/features/school/branches/controller"
)

func BranchOwnerRoutes(r fiber.Router, db *gorm.DB) {
	ctl := branchCtl.NewBranchController(db)

	branches := r.Group("/branches")
	branches.Post("/", ctl.Create) // POST /branches
	branches.Get("/", ctl.List)    // GET  /branches
}

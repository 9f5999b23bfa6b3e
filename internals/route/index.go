// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "shiksha_backend/internals/middlewares/auth"

	academicRoutes "shiksha_backend/internals/features/school/academics/routes"
	branchRoutes "shiksha_backend/internals/features/school/branches/routes"
	feeRoutes "shiksha_backend/internals/features/school/fees/routes"
	hostelRoutes "shiksha_backend/internals/features/school/hostel/routes"
	studentRoutes "shiksha_backend/internals/features/school/students/routes"
	transportRoutes "shiksha_backend/internals/features/school/transport/routes"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	jwtOpts := authMiddleware.AuthJWTOpts{
		Secret:              os.Getenv("JWT_SECRET"),
		AllowCookieFallback: true,
	}

	// ===================== ADMIN (per branch) =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a", authMiddleware.AuthJWT(jwtOpts))

	academicRoutes.AcademicAdminRoutes(admin, db)
	studentRoutes.StudentAdminRoutes(admin, db)
	feeRoutes.FeeAdminRoutes(admin, db)
	hostelRoutes.HostelAdminRoutes(admin, db)
	transportRoutes.TransportAdminRoutes(admin, db)

	// ===================== OWNER (global) =====================
	log.Println("[INFO] Setting up OWNER group...")
	owner := app.Group("/api/o", authMiddleware.AuthJWT(jwtOpts))

	branchRoutes.BranchOwnerRoutes(owner, db)
}

// internals/features/school/fees/routes/admin_route.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feeCtl "shiksha_backend/internals/features/school/fees/controller"
	"shiksha_backend/internals/middlewares"
)

func FeeAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := feeCtl.NewFeeController(db)
	tplCtl := feeCtl.NewFeeTemplateController(db)
	repCtl := feeCtl.NewReportController(db)

	fees := r.Group("/fees")

	tpl := fees.Group("/templates")
	tpl.Post("/", tplCtl.Create)      // POST   /fees/templates
	tpl.Get("/", tplCtl.List)         // GET    /fees/templates
	tpl.Get("/:id", tplCtl.GetByID)   // GET    /fees/templates/:id
	tpl.Patch("/:id", tplCtl.Update)  // PATCH  /fees/templates/:id

	writes := fees.Group("/", middlewares.LedgerWriteRateLimiter())
	writes.Post("/payments", ctl.CreatePayment)       // POST /fees/payments
	writes.Post("/adjustments", ctl.CreateAdjustment) // POST /fees/adjustments

	fees.Get("/students/:id/ledger", ctl.GetStudentLedger)       // GET /fees/students/:id/ledger
	fees.Get("/students/:id/breakdown", ctl.GetStudentBreakdown) // GET /fees/students/:id/breakdown

	reports := r.Group("/reports")
	reports.Get("/fee-summary", repCtl.GetFeeSummary)                   // GET  /reports/fee-summary
	reports.Get("/fee-summary/snapshot", repCtl.GetFeeSummarySnapshot)  // GET  /reports/fee-summary/snapshot
	reports.Post("/fee-summary/refresh", repCtl.RefreshFeeSummary)      // POST /reports/fee-summary/refresh
}

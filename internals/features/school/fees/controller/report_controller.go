package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	model "shiksha_backend/internals/features/school/fees/model"
	"shiksha_backend/internals/features/school/fees/service"
	helper "shiksha_backend/internals/helpers"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// GET /reports/fee-summary
func (h *ReportController) GetFeeSummary(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	sum, err := service.LiveFeeSummary(h.DB, branchID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", sum)
}

// GET /reports/fee-summary/snapshot
func (h *ReportController) GetFeeSummarySnapshot(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	var snap model.BranchFeeSummaryModel
	if err := h.DB.
		Where("branch_fee_summary_branch_id = ?", branchID).
		First(&snap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no snapshot yet")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", snap)
}

// POST /reports/fee-summary/refresh
func (h *ReportController) RefreshFeeSummary(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	snap, err := service.RefreshFeeSummary(h.DB, branchID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "fee summary refreshed", snap)
}

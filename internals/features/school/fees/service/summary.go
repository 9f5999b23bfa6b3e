package service

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "shiksha_backend/internals/features/school/fees/model"
)

type FeeSummary struct {
	StudentsBilled int `json:"students_billed"`
	TotalBilled    int `json:"total_billed"`
	TotalCollected int `json:"total_collected"`
	TotalPending   int `json:"total_pending"`
}

// LiveFeeSummary aggregates the branch's fee records. Read-only reporting
// view, no failure recovery beyond surfacing the error.
func LiveFeeSummary(db *gorm.DB, branchID uuid.UUID) (*FeeSummary, error) {
	var row struct {
		Students  int
		Billed    int
		Collected int
	}
	if err := db.Model(&model.FeeRecordModel{}).
		Select("COUNT(*) AS students, COALESCE(SUM(fee_record_total_amount),0) AS billed, COALESCE(SUM(fee_record_paid_amount),0) AS collected").
		Where("fee_record_branch_id = ?", branchID).
		Scan(&row).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &FeeSummary{
		StudentsBilled: row.Students,
		TotalBilled:    row.Billed,
		TotalCollected: row.Collected,
		TotalPending:   row.Billed - row.Collected,
	}, nil
}

// RefreshFeeSummary upserts the branch snapshot row from a live aggregate.
func RefreshFeeSummary(db *gorm.DB, branchID uuid.UUID) (*model.BranchFeeSummaryModel, error) {
	sum, err := LiveFeeSummary(db, branchID)
	if err != nil {
		return nil, err
	}

	snap := model.BranchFeeSummaryModel{
		BranchFeeSummaryBranchID:       branchID,
		BranchFeeSummaryStudentsBilled: sum.StudentsBilled,
		BranchFeeSummaryTotalBilled:    sum.TotalBilled,
		BranchFeeSummaryTotalCollected: sum.TotalCollected,
		BranchFeeSummaryComputedAt:     time.Now(),
	}
	if err := db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "branch_fee_summary_branch_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"branch_fee_summary_students_billed",
				"branch_fee_summary_total_billed",
				"branch_fee_summary_total_collected",
				"branch_fee_summary_computed_at",
			}),
		}).
		Create(&snap).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &snap, nil
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// BranchFeeSummaryModel is a reporting snapshot refreshed by the nightly
// scheduler (and on demand). Best-effort view, not a ledger of record.
type BranchFeeSummaryModel struct {
	BranchFeeSummaryID uuid.UUID `gorm:"column:branch_fee_summary_id;type:uuid;default:gen_random_uuid();primaryKey" json:"branch_fee_summary_id"`

	BranchFeeSummaryBranchID uuid.UUID `gorm:"column:branch_fee_summary_branch_id;type:uuid;not null;uniqueIndex:uq_branch_fee_summaries_branch" json:"branch_fee_summary_branch_id"`

	BranchFeeSummaryStudentsBilled int `gorm:"column:branch_fee_summary_students_billed;not null;default:0" json:"branch_fee_summary_students_billed"`
	BranchFeeSummaryTotalBilled    int `gorm:"column:branch_fee_summary_total_billed;not null;default:0"    json:"branch_fee_summary_total_billed"`
	BranchFeeSummaryTotalCollected int `gorm:"column:branch_fee_summary_total_collected;not null;default:0" json:"branch_fee_summary_total_collected"`

	BranchFeeSummaryComputedAt time.Time `gorm:"column:branch_fee_summary_computed_at;not null" json:"branch_fee_summary_computed_at"`
}

func (BranchFeeSummaryModel) TableName() string { return "branch_fee_summaries" }

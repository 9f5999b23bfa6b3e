package model

import (
	"time"

	"github.com/google/uuid"
)

type FeeAdjustmentType string

const (
	AdjustmentCharge   FeeAdjustmentType = "charge"   // increases total owed
	AdjustmentDiscount FeeAdjustmentType = "discount" // decreases total owed
)

// FeeAdjustmentModel is the audit trail for every change to a record's
// total_amount. Rows are append-only; deleting one breaks the arithmetic
// identity total = base + charges - discounts.
type FeeAdjustmentModel struct {
	FeeAdjustmentID uuid.UUID `gorm:"column:fee_adjustment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fee_adjustment_id"`

	FeeAdjustmentBranchID  uuid.UUID `gorm:"column:fee_adjustment_branch_id;type:uuid;not null;index:idx_fee_adjustments_branch"   json:"fee_adjustment_branch_id"`
	FeeAdjustmentStudentID uuid.UUID `gorm:"column:fee_adjustment_student_id;type:uuid;not null;index:idx_fee_adjustments_student" json:"fee_adjustment_student_id"`

	FeeAdjustmentType   FeeAdjustmentType `gorm:"column:fee_adjustment_type;type:varchar(20);not null"              json:"fee_adjustment_type"`
	FeeAdjustmentAmount int               `gorm:"column:fee_adjustment_amount;not null;check:fee_adjustment_amount > 0" json:"fee_adjustment_amount"`
	FeeAdjustmentReason string            `gorm:"column:fee_adjustment_reason;type:text;not null"                   json:"fee_adjustment_reason"`

	FeeAdjustmentAdjustedBy *uuid.UUID `gorm:"column:fee_adjustment_adjusted_by;type:uuid" json:"fee_adjustment_adjusted_by,omitempty"`

	FeeAdjustmentCreatedAt time.Time `gorm:"column:fee_adjustment_created_at;autoCreateTime" json:"fee_adjustment_created_at"`
}

func (FeeAdjustmentModel) TableName() string { return "fee_adjustments" }

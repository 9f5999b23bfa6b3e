package model

import (
	"time"

	"github.com/google/uuid"
)

// FeeRecordModel is a student's materialized running ledger snapshot.
// total_amount and paid_amount are only ever changed through atomic SQL
// increments inside a transaction; the unique student index serializes
// concurrent lazy initialization.
type FeeRecordModel struct {
	FeeRecordID uuid.UUID `gorm:"column:fee_record_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fee_record_id"`

	FeeRecordBranchID  uuid.UUID `gorm:"column:fee_record_branch_id;type:uuid;not null;index:idx_fee_records_branch" json:"fee_record_branch_id"`
	FeeRecordStudentID uuid.UUID `gorm:"column:fee_record_student_id;type:uuid;not null;uniqueIndex:uq_fee_records_student" json:"fee_record_student_id"`

	FeeRecordTotalAmount int `gorm:"column:fee_record_total_amount;not null;default:0" json:"fee_record_total_amount"`
	FeeRecordPaidAmount  int `gorm:"column:fee_record_paid_amount;not null;default:0"  json:"fee_record_paid_amount"`

	// April 1 of the session the record was materialized in.
	FeeRecordDueDate time.Time `gorm:"column:fee_record_due_date;type:date;not null" json:"fee_record_due_date"`

	FeeRecordCreatedAt time.Time  `gorm:"column:fee_record_created_at;autoCreateTime" json:"fee_record_created_at"`
	FeeRecordUpdatedAt *time.Time `gorm:"column:fee_record_updated_at;autoUpdateTime" json:"fee_record_updated_at,omitempty"`
}

func (FeeRecordModel) TableName() string { return "fee_records" }

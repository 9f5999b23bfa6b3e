package model

import (
	"time"

	"github.com/google/uuid"
)

// FeePaymentModel is append-only: rows are never updated or deleted.
type FeePaymentModel struct {
	FeePaymentID uuid.UUID `gorm:"column:fee_payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fee_payment_id"`

	FeePaymentBranchID  uuid.UUID `gorm:"column:fee_payment_branch_id;type:uuid;not null;index:idx_fee_payments_branch"   json:"fee_payment_branch_id"`
	FeePaymentRecordID  uuid.UUID `gorm:"column:fee_payment_record_id;type:uuid;not null;index:idx_fee_payments_record"   json:"fee_payment_record_id"`
	FeePaymentStudentID uuid.UUID `gorm:"column:fee_payment_student_id;type:uuid;not null;index:idx_fee_payments_student" json:"fee_payment_student_id"`

	FeePaymentAmount        int     `gorm:"column:fee_payment_amount;not null;check:fee_payment_amount > 0" json:"fee_payment_amount"`
	FeePaymentTransactionID *string `gorm:"column:fee_payment_transaction_id;type:text"                     json:"fee_payment_transaction_id,omitempty"`
	FeePaymentDetails       *string `gorm:"column:fee_payment_details;type:text"                            json:"fee_payment_details,omitempty"`

	FeePaymentPaidAt     time.Time  `gorm:"column:fee_payment_paid_at;not null"        json:"fee_payment_paid_at"`
	FeePaymentReceivedBy *uuid.UUID `gorm:"column:fee_payment_received_by;type:uuid"   json:"fee_payment_received_by,omitempty"`

	FeePaymentCreatedAt time.Time `gorm:"column:fee_payment_created_at;autoCreateTime" json:"fee_payment_created_at"`
}

func (FeePaymentModel) TableName() string { return "fee_payments" }

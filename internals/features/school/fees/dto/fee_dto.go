// internals/features/school/fees/dto/fee_dto.go
package dto

import (
	"github.com/google/uuid"
)

/* =============== REQUESTS: ledger writes =============== */

type CreatePaymentRequest struct {
	StudentID     uuid.UUID `json:"student_id"     validate:"required"`
	Amount        int       `json:"amount"         validate:"required,gt=0"`
	TransactionID *string   `json:"transaction_id" validate:"omitempty,min=1"`
	Details       *string   `json:"details"        validate:"omitempty"`
}

type CreateAdjustmentRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Type      string    `json:"type"       validate:"required,oneof=charge discount"`
	Amount    int       `json:"amount"     validate:"required,gt=0"`
	Reason    string    `json:"reason"     validate:"required,min=3"`
}

// internals/features/school/hostel/dto/hostel_dto.go
package dto

import (
	"github.com/google/uuid"
	"github.com/lib/pq"

	m "shiksha_backend/internals/features/school/hostel/model"
)

/* =============== REQUESTS =============== */

type CreateRoomRequest struct {
	RoomBranchID *uuid.UUID `json:"room_branch_id" validate:"omitempty"`

	RoomNumber     string   `json:"room_number"      validate:"required,min=1,max=20"`
	RoomCapacity   int      `json:"room_capacity"    validate:"required,gt=0"`
	RoomMonthlyFee int      `json:"room_monthly_fee" validate:"gte=0"`
	RoomFacilities []string `json:"room_facilities"  validate:"omitempty,dive,min=1"`
}

func (r CreateRoomRequest) ToModel() *m.RoomModel {
	out := &m.RoomModel{
		RoomNumber:     r.RoomNumber,
		RoomCapacity:   r.RoomCapacity,
		RoomMonthlyFee: r.RoomMonthlyFee,
		RoomFacilities: pq.StringArray(r.RoomFacilities),
	}
	if r.RoomBranchID != nil {
		out.RoomBranchID = *r.RoomBranchID
	}
	return out
}

type UpdateRoomRequest struct {
	RoomNumber     *string  `json:"room_number"      validate:"omitempty,min=1,max=20"`
	RoomCapacity   *int     `json:"room_capacity"    validate:"omitempty,gt=0"`
	RoomMonthlyFee *int     `json:"room_monthly_fee" validate:"omitempty,gte=0"`
	RoomFacilities []string `json:"room_facilities"  validate:"omitempty,dive,min=1"`
}

func (r UpdateRoomRequest) ApplyTo(mo *m.RoomModel) {
	if r.RoomNumber != nil {
		mo.RoomNumber = *r.RoomNumber
	}
	if r.RoomCapacity != nil {
		mo.RoomCapacity = *r.RoomCapacity
	}
	if r.RoomMonthlyFee != nil {
		mo.RoomMonthlyFee = *r.RoomMonthlyFee
	}
	if r.RoomFacilities != nil {
		mo.RoomFacilities = pq.StringArray(r.RoomFacilities)
	}
}

type AssignRoomRequest struct {
	RoomID    uuid.UUID `json:"room_id"    validate:"required"`
	StudentID uuid.UUID `json:"student_id" validate:"required"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// RoomAssignmentModel links a student to a room. The session month the
// service started is stored as a typed field so the breakdown renderer never
// has to infer it from adjustment reason strings.
type RoomAssignmentModel struct {
	RoomAssignmentID uuid.UUID `gorm:"column:room_assignment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"room_assignment_id"`

	RoomAssignmentBranchID  uuid.UUID `gorm:"column:room_assignment_branch_id;type:uuid;not null;index:idx_room_assignments_branch"   json:"room_assignment_branch_id"`
	RoomAssignmentRoomID    uuid.UUID `gorm:"column:room_assignment_room_id;type:uuid;not null;index:idx_room_assignments_room"       json:"room_assignment_room_id"`
	// The partial unique index enforces zero-or-one active assignment per
	// student; concurrent inserts lose on it instead of racing the count.
	RoomAssignmentStudentID uuid.UUID `gorm:"column:room_assignment_student_id;type:uuid;not null;index:idx_room_assignments_student;uniqueIndex:uq_room_assignments_student_active,where:room_assignment_ended_at IS NULL" json:"room_assignment_student_id"`

	// Monthly fee snapshot at assignment time; room fee edits do not
	// retroactively change posted charges.
	RoomAssignmentMonthlyFee int `gorm:"column:room_assignment_monthly_fee;not null;check:room_assignment_monthly_fee >= 0" json:"room_assignment_monthly_fee"`

	// Session-relative month the service starts (April=0 .. March=11).
	RoomAssignmentServiceStartMonth int16 `gorm:"column:room_assignment_service_start_month;type:smallint;not null" json:"room_assignment_service_start_month"`

	// True once the prorated charge has been posted to the ledger.
	RoomAssignmentBilled bool `gorm:"column:room_assignment_billed;not null;default:false" json:"room_assignment_billed"`

	RoomAssignmentAssignedAt time.Time  `gorm:"column:room_assignment_assigned_at;not null" json:"room_assignment_assigned_at"`
	RoomAssignmentEndedAt    *time.Time `gorm:"column:room_assignment_ended_at"             json:"room_assignment_ended_at,omitempty"`
}

func (RoomAssignmentModel) TableName() string { return "room_assignments" }

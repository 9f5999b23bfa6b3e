package model

import (
	"time"

	"github.com/google/uuid"
)

// TransportAssignmentModel mirrors the hostel room assignment: a monthly
// charge snapshot plus a typed session start month for proration.
type TransportAssignmentModel struct {
	TransportAssignmentID uuid.UUID `gorm:"column:transport_assignment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"transport_assignment_id"`

	TransportAssignmentBranchID  uuid.UUID `gorm:"column:transport_assignment_branch_id;type:uuid;not null;index:idx_transport_assignments_branch"   json:"transport_assignment_branch_id"`
	TransportAssignmentRouteID   uuid.UUID `gorm:"column:transport_assignment_route_id;type:uuid;not null;index:idx_transport_assignments_route"     json:"transport_assignment_route_id"`
	TransportAssignmentStopID    uuid.UUID `gorm:"column:transport_assignment_stop_id;type:uuid;not null"                                            json:"transport_assignment_stop_id"`
	// Zero-or-one active assignment per student, enforced the same way as
	// room assignments.
	TransportAssignmentStudentID uuid.UUID `gorm:"column:transport_assignment_student_id;type:uuid;not null;index:idx_transport_assignments_student;uniqueIndex:uq_transport_assignments_student_active,where:transport_assignment_ended_at IS NULL" json:"transport_assignment_student_id"`

	TransportAssignmentMonthlyCharge int `gorm:"column:transport_assignment_monthly_charge;not null;check:transport_assignment_monthly_charge >= 0" json:"transport_assignment_monthly_charge"`

	// Session-relative month the service starts (April=0 .. March=11).
	TransportAssignmentServiceStartMonth int16 `gorm:"column:transport_assignment_service_start_month;type:smallint;not null" json:"transport_assignment_service_start_month"`

	// True once the prorated charge has been posted to the ledger.
	TransportAssignmentBilled bool `gorm:"column:transport_assignment_billed;not null;default:false" json:"transport_assignment_billed"`

	TransportAssignmentAssignedAt time.Time  `gorm:"column:transport_assignment_assigned_at;not null" json:"transport_assignment_assigned_at"`
	TransportAssignmentEndedAt    *time.Time `gorm:"column:transport_assignment_ended_at"             json:"transport_assignment_ended_at,omitempty"`
}

func (TransportAssignmentModel) TableName() string { return "transport_assignments" }

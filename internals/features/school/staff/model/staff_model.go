package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StaffModel backs the authenticated principal {id, name, role, branch_id}.
// There are no login endpoints here; rows are created by the seeder and the
// id shows up in ledger audit fields (received_by, adjusted_by).
type StaffModel struct {
	StaffID uuid.UUID `gorm:"column:staff_id;type:uuid;default:gen_random_uuid();primaryKey" json:"staff_id"`

	StaffBranchID uuid.UUID `gorm:"column:staff_branch_id;type:uuid;not null;index" json:"staff_branch_id"`

	StaffName         string `gorm:"column:staff_name;type:text;not null"                  json:"staff_name"`
	StaffEmail        string `gorm:"column:staff_email;type:text;not null;uniqueIndex"     json:"staff_email"`
	StaffRole         string `gorm:"column:staff_role;type:varchar(20);not null"           json:"staff_role"`
	StaffPasswordHash string `gorm:"column:staff_password_hash;type:text;not null"         json:"-"`

	StaffCreatedAt time.Time      `gorm:"column:staff_created_at;autoCreateTime" json:"staff_created_at"`
	StaffUpdatedAt *time.Time     `gorm:"column:staff_updated_at;autoUpdateTime" json:"staff_updated_at,omitempty"`
	StaffDeletedAt gorm.DeletedAt `gorm:"column:staff_deleted_at;index"          json:"staff_deleted_at,omitempty"`
}

func (StaffModel) TableName() string { return "staff" }

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type RoomModel struct {
	RoomID uuid.UUID `gorm:"column:room_id;type:uuid;default:gen_random_uuid();primaryKey" json:"room_id"`

	RoomBranchID uuid.UUID `gorm:"column:room_branch_id;type:uuid;not null;index:idx_rooms_branch" json:"room_branch_id"`

	RoomNumber     string `gorm:"column:room_number;type:varchar(20);not null"               json:"room_number"`
	RoomCapacity   int    `gorm:"column:room_capacity;not null;check:room_capacity > 0"      json:"room_capacity"`
	RoomMonthlyFee int    `gorm:"column:room_monthly_fee;not null;check:room_monthly_fee >= 0" json:"room_monthly_fee"`

	RoomFacilities pq.StringArray `gorm:"column:room_facilities;type:text[]" json:"room_facilities,omitempty"`

	RoomCreatedAt time.Time      `gorm:"column:room_created_at;autoCreateTime" json:"room_created_at"`
	RoomUpdatedAt *time.Time     `gorm:"column:room_updated_at;autoUpdateTime" json:"room_updated_at,omitempty"`
	RoomDeletedAt gorm.DeletedAt `gorm:"column:room_deleted_at;index"          json:"room_deleted_at,omitempty"`
}

func (RoomModel) TableName() string { return "rooms" }

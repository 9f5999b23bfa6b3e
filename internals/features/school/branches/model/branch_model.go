package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BranchModel struct {
	BranchID uuid.UUID `gorm:"column:branch_id;type:uuid;default:gen_random_uuid();primaryKey" json:"branch_id"`

	BranchName    string  `gorm:"column:branch_name;type:text;not null"                json:"branch_name"`
	BranchCode    string  `gorm:"column:branch_code;type:varchar(20);not null;uniqueIndex" json:"branch_code"`
	BranchAddress *string `gorm:"column:branch_address;type:text"                      json:"branch_address,omitempty"`
	BranchPhone   *string `gorm:"column:branch_phone;type:varchar(20)"                 json:"branch_phone,omitempty"`

	BranchCreatedAt time.Time      `gorm:"column:branch_created_at;autoCreateTime" json:"branch_created_at"`
	BranchUpdatedAt *time.Time     `gorm:"column:branch_updated_at;autoUpdateTime" json:"branch_updated_at,omitempty"`
	BranchDeletedAt gorm.DeletedAt `gorm:"column:branch_deleted_at;index"          json:"branch_deleted_at,omitempty"`
}

func (BranchModel) TableName() string { return "branches" }

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SchoolClassModel struct {
	ClassID uuid.UUID `gorm:"column:class_id;type:uuid;default:gen_random_uuid();primaryKey" json:"class_id"`

	ClassBranchID uuid.UUID `gorm:"column:class_branch_id;type:uuid;not null;index:idx_classes_branch" json:"class_branch_id"`

	ClassName       string `gorm:"column:class_name;type:text;not null"            json:"class_name"`
	ClassGradeLevel int16  `gorm:"column:class_grade_level;type:smallint;not null" json:"class_grade_level"` // 1..12
	ClassSection    *string `gorm:"column:class_section;type:varchar(5)"           json:"class_section,omitempty"`

	// FK to fee_templates (nullable → class may have no billing schedule yet)
	ClassFeeTemplateID *uuid.UUID `gorm:"column:class_fee_template_id;type:uuid" json:"class_fee_template_id,omitempty"`

	ClassCreatedAt time.Time      `gorm:"column:class_created_at;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt *time.Time     `gorm:"column:class_updated_at;autoUpdateTime" json:"class_updated_at,omitempty"`
	ClassDeletedAt gorm.DeletedAt `gorm:"column:class_deleted_at;index"          json:"class_deleted_at,omitempty"`
}

func (SchoolClassModel) TableName() string { return "school_classes" }

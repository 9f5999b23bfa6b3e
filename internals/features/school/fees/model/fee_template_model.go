package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TemplateComponent is one itemized line inside a month of the breakdown
// (e.g. {"name":"Tuition","amount":800}).
type TemplateComponent struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// TemplateMonth is one entry of the JSONB monthly breakdown. A month carries
// either an explicit Total or a Components list (components win when present).
type TemplateMonth struct {
	Month      string              `json:"month"`
	Total      int                 `json:"total,omitempty"`
	Components []TemplateComponent `json:"components,omitempty"`
}

type FeeTemplateModel struct {
	FeeTemplateID uuid.UUID `gorm:"column:fee_template_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fee_template_id"`

	FeeTemplateBranchID uuid.UUID  `gorm:"column:fee_template_branch_id;type:uuid;not null;index:idx_fee_templates_branch" json:"fee_template_branch_id"`
	FeeTemplateClassID  *uuid.UUID `gorm:"column:fee_template_class_id;type:uuid"                                          json:"fee_template_class_id,omitempty"`

	FeeTemplateName         string `gorm:"column:fee_template_name;type:text;not null"                                             json:"fee_template_name"`
	FeeTemplateAnnualAmount int    `gorm:"column:fee_template_annual_amount;not null;check:fee_template_annual_amount >= 0"       json:"fee_template_annual_amount"`

	// Optional explicit schedule: ordered [{month, total? , components?}].
	// When null the annual amount is spread as ceil(annual/12).
	FeeTemplateMonthlyBreakdown datatypes.JSON `gorm:"column:fee_template_monthly_breakdown;type:jsonb" json:"fee_template_monthly_breakdown,omitempty"`

	FeeTemplateCreatedAt time.Time      `gorm:"column:fee_template_created_at;autoCreateTime" json:"fee_template_created_at"`
	FeeTemplateUpdatedAt *time.Time     `gorm:"column:fee_template_updated_at;autoUpdateTime" json:"fee_template_updated_at,omitempty"`
	FeeTemplateDeletedAt gorm.DeletedAt `gorm:"column:fee_template_deleted_at;index"          json:"fee_template_deleted_at,omitempty"`
}

func (FeeTemplateModel) TableName() string { return "fee_templates" }

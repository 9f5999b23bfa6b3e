// internals/features/school/fees/dto/fee_template_dto.go
package dto

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "shiksha_backend/internals/features/school/fees/model"
	"shiksha_backend/internals/features/school/fees/service"
)

/* =============== REQUESTS =============== */

type CreateFeeTemplateRequest struct {
	FeeTemplateBranchID *uuid.UUID `json:"fee_template_branch_id" validate:"omitempty"`
	FeeTemplateClassID  *uuid.UUID `json:"fee_template_class_id"  validate:"omitempty"`

	FeeTemplateName         string `json:"fee_template_name"          validate:"required,min=3"`
	FeeTemplateAnnualAmount int    `json:"fee_template_annual_amount" validate:"gte=0"`

	FeeTemplateMonthlyBreakdown []m.TemplateMonth `json:"fee_template_monthly_breakdown" validate:"omitempty,max=12,dive"`
}

func (r CreateFeeTemplateRequest) ToModel() (*m.FeeTemplateModel, error) {
	out := &m.FeeTemplateModel{
		FeeTemplateClassID:      r.FeeTemplateClassID,
		FeeTemplateName:         r.FeeTemplateName,
		FeeTemplateAnnualAmount: r.FeeTemplateAnnualAmount,
	}
	if r.FeeTemplateBranchID != nil {
		out.FeeTemplateBranchID = *r.FeeTemplateBranchID
	}
	if r.FeeTemplateMonthlyBreakdown != nil {
		if err := ValidateMonthlyBreakdown(r.FeeTemplateMonthlyBreakdown); err != nil {
			return nil, err
		}
		raw, err := json.Marshal(r.FeeTemplateMonthlyBreakdown)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid monthly breakdown")
		}
		out.FeeTemplateMonthlyBreakdown = datatypes.JSON(raw)
	}
	return out, nil
}

type UpdateFeeTemplateRequest struct {
	FeeTemplateClassID *uuid.UUID `json:"fee_template_class_id" validate:"omitempty"`

	FeeTemplateName         *string `json:"fee_template_name"          validate:"omitempty,min=1"`
	FeeTemplateAnnualAmount *int    `json:"fee_template_annual_amount" validate:"omitempty,gte=0"`

	FeeTemplateMonthlyBreakdown []m.TemplateMonth `json:"fee_template_monthly_breakdown" validate:"omitempty,max=12,dive"`
}

func (r UpdateFeeTemplateRequest) ApplyTo(mo *m.FeeTemplateModel) error {
	if r.FeeTemplateClassID != nil {
		mo.FeeTemplateClassID = r.FeeTemplateClassID
	}
	if r.FeeTemplateName != nil {
		mo.FeeTemplateName = *r.FeeTemplateName
	}
	if r.FeeTemplateAnnualAmount != nil {
		mo.FeeTemplateAnnualAmount = *r.FeeTemplateAnnualAmount
	}
	if r.FeeTemplateMonthlyBreakdown != nil {
		if err := ValidateMonthlyBreakdown(r.FeeTemplateMonthlyBreakdown); err != nil {
			return err
		}
		raw, err := json.Marshal(r.FeeTemplateMonthlyBreakdown)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid monthly breakdown")
		}
		mo.FeeTemplateMonthlyBreakdown = datatypes.JSON(raw)
	}
	return nil
}

// ValidateMonthlyBreakdown rejects unknown or duplicated month names and
// negative amounts before anything reaches the store.
func ValidateMonthlyBreakdown(months []m.TemplateMonth) error {
	known := map[string]bool{}
	for _, name := range service.SessionMonths {
		known[name] = false
	}
	for _, tm := range months {
		name := strings.TrimSpace(tm.Month)
		seen, ok := known[name]
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "unknown month name: "+tm.Month)
		}
		if seen {
			return fiber.NewError(fiber.StatusBadRequest, "duplicate month: "+name)
		}
		known[name] = true

		if tm.Total < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "month total must not be negative: "+name)
		}
		for _, c := range tm.Components {
			if c.Amount < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "component amount must not be negative: "+name)
			}
		}
	}
	return nil
}

// internals/features/school/academics/dto/class_dto.go
package dto

import (
	"github.com/google/uuid"

	m "shiksha_backend/internals/features/school/academics/model"
)

/* =============== REQUESTS =============== */

type CreateClassRequest struct {
	ClassBranchID *uuid.UUID `json:"class_branch_id" validate:"omitempty"`

	ClassName       string  `json:"class_name"        validate:"required,min=1"`
	ClassGradeLevel int16   `json:"class_grade_level" validate:"required,min=1,max=12"`
	ClassSection    *string `json:"class_section"     validate:"omitempty,min=1,max=5"`

	ClassFeeTemplateID *uuid.UUID `json:"class_fee_template_id" validate:"omitempty"`
}

func (r CreateClassRequest) ToModel() *m.SchoolClassModel {
	out := &m.SchoolClassModel{
		ClassName:          r.ClassName,
		ClassGradeLevel:    r.ClassGradeLevel,
		ClassSection:       r.ClassSection,
		ClassFeeTemplateID: r.ClassFeeTemplateID,
	}
	if r.ClassBranchID != nil {
		out.ClassBranchID = *r.ClassBranchID
	}
	return out
}

type UpdateClassRequest struct {
	ClassName       *string `json:"class_name"        validate:"omitempty,min=1"`
	ClassGradeLevel *int16  `json:"class_grade_level" validate:"omitempty,min=1,max=12"`
	ClassSection    *string `json:"class_section"     validate:"omitempty,min=1,max=5"`

	ClassFeeTemplateID *uuid.UUID `json:"class_fee_template_id" validate:"omitempty"`
}

func (r UpdateClassRequest) ApplyTo(mo *m.SchoolClassModel) {
	if r.ClassName != nil {
		mo.ClassName = *r.ClassName
	}
	if r.ClassGradeLevel != nil {
		mo.ClassGradeLevel = *r.ClassGradeLevel
	}
	if r.ClassSection != nil {
		mo.ClassSection = r.ClassSection
	}
	if r.ClassFeeTemplateID != nil {
		mo.ClassFeeTemplateID = r.ClassFeeTemplateID
	}
}

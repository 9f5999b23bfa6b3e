// internals/features/school/students/dto/student_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "shiksha_backend/internals/features/school/students/model"
)

/* =============== REQUESTS =============== */

// Admission
type AdmitStudentRequest struct {
	StudentBranchID *uuid.UUID `json:"student_branch_id" validate:"omitempty"`
	StudentClassID  *uuid.UUID `json:"student_class_id"  validate:"omitempty"`

	StudentName          string  `json:"student_name"           validate:"required,min=2"`
	StudentGuardianName  *string `json:"student_guardian_name"  validate:"omitempty,min=2"`
	StudentGuardianPhone *string `json:"student_guardian_phone" validate:"omitempty,min=6,max=20"`

	// Defaults to now when omitted.
	StudentAdmittedAt *time.Time `json:"student_admitted_at" validate:"omitempty"`
}

func (r AdmitStudentRequest) ToModel() *m.StudentModel {
	out := &m.StudentModel{
		StudentClassID:       r.StudentClassID,
		StudentName:          r.StudentName,
		StudentGuardianName:  r.StudentGuardianName,
		StudentGuardianPhone: r.StudentGuardianPhone,
		StudentStatus:        m.StudentActive,
	}
	if r.StudentBranchID != nil {
		out.StudentBranchID = *r.StudentBranchID
	}
	if r.StudentAdmittedAt != nil {
		out.StudentAdmittedAt = *r.StudentAdmittedAt
	} else {
		out.StudentAdmittedAt = time.Now()
	}
	return out
}

// Update (partial)
type UpdateStudentRequest struct {
	StudentClassID *uuid.UUID `json:"student_class_id" validate:"omitempty"`

	StudentName          *string `json:"student_name"           validate:"omitempty,min=2"`
	StudentGuardianName  *string `json:"student_guardian_name"  validate:"omitempty,min=2"`
	StudentGuardianPhone *string `json:"student_guardian_phone" validate:"omitempty,min=6,max=20"`
	StudentStatus        *string `json:"student_status"         validate:"omitempty,oneof=active transferred graduated"`
}

func (r UpdateStudentRequest) ApplyTo(mo *m.StudentModel) {
	if r.StudentClassID != nil {
		mo.StudentClassID = r.StudentClassID
	}
	if r.StudentName != nil {
		mo.StudentName = *r.StudentName
	}
	if r.StudentGuardianName != nil {
		mo.StudentGuardianName = r.StudentGuardianName
	}
	if r.StudentGuardianPhone != nil {
		mo.StudentGuardianPhone = r.StudentGuardianPhone
	}
	if r.StudentStatus != nil {
		mo.StudentStatus = m.StudentStatus(*r.StudentStatus)
	}
}

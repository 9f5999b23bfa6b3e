package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentStatus string

const (
	StudentActive      StudentStatus = "active"
	StudentTransferred StudentStatus = "transferred"
	StudentGraduated   StudentStatus = "graduated"
)

type StudentModel struct {
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_id"`

	StudentBranchID uuid.UUID  `gorm:"column:student_branch_id;type:uuid;not null;index:idx_students_branch" json:"student_branch_id"`
	StudentClassID  *uuid.UUID `gorm:"column:student_class_id;type:uuid;index:idx_students_class"            json:"student_class_id,omitempty"`

	StudentName          string  `gorm:"column:student_name;type:text;not null"          json:"student_name"`
	StudentGuardianName  *string `gorm:"column:student_guardian_name;type:text"          json:"student_guardian_name,omitempty"`
	StudentGuardianPhone *string `gorm:"column:student_guardian_phone;type:varchar(20)"  json:"student_guardian_phone,omitempty"`

	// Admission time; proration of mid-session admissions keys off this.
	StudentAdmittedAt time.Time     `gorm:"column:student_admitted_at;not null"                        json:"student_admitted_at"`
	StudentStatus     StudentStatus `gorm:"column:student_status;type:varchar(20);not null;default:active" json:"student_status"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt *time.Time     `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at,omitempty"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index"          json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

// internals/databases/migrate.go
package database

import (
	"log"

	"gorm.io/gorm"

	classModel "shiksha_backend/internals/features/school/academics/model"
	branchModel "shiksha_backend/internals/features/school/branches/model"
	feeModel "shiksha_backend/internals/features/school/fees/model"
	hostelModel "shiksha_backend/internals/features/school/hostel/model"
	staffModel "shiksha_backend/internals/features/school/staff/model"
	studentModel "shiksha_backend/internals/features/school/students/model"
	transportModel "shiksha_backend/internals/features/school/transport/model"
)

// Migrate runs AutoMigrate over every table, parents before children so
// the FK constraints resolve.
func Migrate(db *gorm.DB) error {
	log.Println("[INFO] Running migrations...")

	return db.AutoMigrate(
		&branchModel.BranchModel{},
		&staffModel.StaffModel{},
		&feeModel.FeeTemplateModel{},
		&classModel.SchoolClassModel{},
		&studentModel.StudentModel{},
		&feeModel.FeeRecordModel{},
		&feeModel.FeePaymentModel{},
		&feeModel.FeeAdjustmentModel{},
		&feeModel.BranchFeeSummaryModel{},
		&hostelModel.RoomModel{},
		&hostelModel.RoomAssignmentModel{},
		&transportModel.TransportRouteModel{},
		&transportModel.TransportStopModel{},
		&transportModel.TransportAssignmentModel{},
	)
}

package service

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "shiksha_backend/internals/databases"
	classModel "shiksha_backend/internals/features/school/academics/model"
	branchModel "shiksha_backend/internals/features/school/branches/model"
	model "shiksha_backend/internals/features/school/fees/model"
	hostelModel "shiksha_backend/internals/features/school/hostel/model"
	studentModel "shiksha_backend/internals/features/school/students/model"
)

// testDB is nil when no test database is configured; integration tests
// call requireDB and skip themselves. The pure tests in this package run
// either way.
var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			log.Fatalf("connect test database: %v", err)
		}
		if err := database.Migrate(db); err != nil {
			log.Fatalf("migrate test database: %v", err)
		}
		testDB = db
	}

	code := m.Run()

	if testDB != nil {
		if sqlDB, err := testDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	os.Exit(code)
}

func requireDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testDB == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}
	return testDB
}

/* =========================================================
   Fixtures
========================================================= */

type fixture struct {
	Tenant  TenantContext
	Branch  branchModel.BranchModel
	Class   classModel.SchoolClassModel
	Student studentModel.StudentModel
}

// newFixture creates an isolated branch with one class (annual template) and
// one admitted student. Each test gets its own branch, so tests never see
// each other's rows and no truncation is needed.
func newFixture(t *testing.T, db *gorm.DB, annualAmount int) *fixture {
	t.Helper()

	branch := branchModel.BranchModel{
		BranchName: "Test Branch " + uuid.NewString()[:8],
		BranchCode: "T" + uuid.NewString()[:8],
	}
	if err := db.Create(&branch).Error; err != nil {
		t.Fatalf("create branch: %v", err)
	}

	tpl := model.FeeTemplateModel{
		FeeTemplateBranchID:     branch.BranchID,
		FeeTemplateName:         "Standard",
		FeeTemplateAnnualAmount: annualAmount,
	}
	if err := db.Create(&tpl).Error; err != nil {
		t.Fatalf("create template: %v", err)
	}

	class := classModel.SchoolClassModel{
		ClassBranchID:      branch.BranchID,
		ClassName:          "Grade 5",
		ClassGradeLevel:    5,
		ClassFeeTemplateID: &tpl.FeeTemplateID,
	}
	if err := db.Create(&class).Error; err != nil {
		t.Fatalf("create class: %v", err)
	}

	student := studentModel.StudentModel{
		StudentBranchID:   branch.BranchID,
		StudentClassID:    &class.ClassID,
		StudentName:       "Asha Verma",
		StudentAdmittedAt: time.Now(),
		StudentStatus:     studentModel.StudentActive,
	}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}

	return &fixture{
		Tenant:  TenantContext{BranchID: branch.BranchID, ActorID: uuid.New()},
		Branch:  branch,
		Class:   class,
		Student: student,
	}
}

func (f *fixture) addRoomAssignment(t *testing.T, db *gorm.DB, monthlyFee, startMonth int, billed bool) {
	t.Helper()
	room := hostelModel.RoomModel{
		RoomBranchID:   f.Branch.BranchID,
		RoomNumber:     fmt.Sprintf("R-%s", uuid.NewString()[:6]),
		RoomCapacity:   4,
		RoomMonthlyFee: monthlyFee,
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("create room: %v", err)
	}
	ra := hostelModel.RoomAssignmentModel{
		RoomAssignmentBranchID:          f.Branch.BranchID,
		RoomAssignmentRoomID:            room.RoomID,
		RoomAssignmentStudentID:         f.Student.StudentID,
		RoomAssignmentMonthlyFee:        monthlyFee,
		RoomAssignmentServiceStartMonth: int16(startMonth),
		RoomAssignmentBilled:            billed,
		RoomAssignmentAssignedAt:        time.Now(),
	}
	if err := db.Create(&ra).Error; err != nil {
		t.Fatalf("create room assignment: %v", err)
	}
}

package controller

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "shiksha_backend/internals/databases"
	classModel "shiksha_backend/internals/features/school/academics/model"
	branchModel "shiksha_backend/internals/features/school/branches/model"
	feeModel "shiksha_backend/internals/features/school/fees/model"
	studentModel "shiksha_backend/internals/features/school/students/model"
	model "shiksha_backend/internals/features/school/transport/model"
)

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
	BranchID uuid.UUID
	ActorID  uuid.UUID
	ClassID  uuid.UUID
}

// newFixture seeds an isolated branch with a templated class. Routes, stops
// and students are added per test.
func newFixture(t *testing.T, db *gorm.DB, annualAmount int) *fixture {
	t.Helper()

	branch := branchModel.BranchModel{
		BranchName: "Transport Test " + uuid.NewString()[:8],
		BranchCode: "T" + uuid.NewString()[:8],
	}
	if err := db.Create(&branch).Error; err != nil {
		t.Fatalf("create branch: %v", err)
	}

	tpl := feeModel.FeeTemplateModel{
		FeeTemplateBranchID:     branch.BranchID,
		FeeTemplateName:         "Standard",
		FeeTemplateAnnualAmount: annualAmount,
	}
	if err := db.Create(&tpl).Error; err != nil {
		t.Fatalf("create template: %v", err)
	}

	class := classModel.SchoolClassModel{
		ClassBranchID:      branch.BranchID,
		ClassName:          "Grade 6",
		ClassGradeLevel:    6,
		ClassFeeTemplateID: &tpl.FeeTemplateID,
	}
	if err := db.Create(&class).Error; err != nil {
		t.Fatalf("create class: %v", err)
	}

	return &fixture{
		BranchID: branch.BranchID,
		ActorID:  uuid.New(),
		ClassID:  class.ClassID,
	}
}

func (f *fixture) addStudent(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	s := studentModel.StudentModel{
		StudentBranchID:   f.BranchID,
		StudentClassID:    &f.ClassID,
		StudentName:       "Meera Nair",
		StudentAdmittedAt: time.Now(),
		StudentStatus:     studentModel.StudentActive,
	}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}
	return s.StudentID
}

func (f *fixture) addRoute(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	route := model.TransportRouteModel{
		TransportRouteBranchID: f.BranchID,
		TransportRouteName:     name,
	}
	if err := db.Create(&route).Error; err != nil {
		t.Fatalf("create route: %v", err)
	}
	return route.TransportRouteID
}

func (f *fixture) addStop(t *testing.T, db *gorm.DB, routeID uuid.UUID, name string, monthlyCharge int) uuid.UUID {
	t.Helper()
	stop := model.TransportStopModel{
		TransportStopBranchID:      f.BranchID,
		TransportStopRouteID:       routeID,
		TransportStopName:          name,
		TransportStopMonthlyCharge: monthlyCharge,
	}
	if err := db.Create(&stop).Error; err != nil {
		t.Fatalf("create stop: %v", err)
	}
	return stop.TransportStopID
}

/* =========================================================
   HTTP harness
========================================================= */

// newTestApp mounts the transport handlers behind a stub of the auth
// middleware that hydrates the same locals the JWT layer would.
func newTestApp(db *gorm.DB, f *fixture) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("branch_id", f.BranchID.String())
		c.Locals("user_id", f.ActorID.String())
		return c.Next()
	})

	ctl := NewTransportController(db)
	app.Post("/transport/routes/:id/stops", ctl.CreateStop)
	app.Post("/transport/assignments", ctl.AssignTransport)
	app.Delete("/transport/assignments/students/:student_id", ctl.EndAssignment)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

package controller

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "shiksha_backend/internals/features/school/transport/model"
)

func assignBody(routeID, stopID, studentID uuid.UUID) map[string]string {
	return map[string]string{
		"route_id":   routeID.String(),
		"stop_id":    stopID.String(),
		"student_id": studentID.String(),
	}
}

func activeAssignments(t *testing.T, db *gorm.DB, studentID uuid.UUID) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&model.TransportAssignmentModel{}).
		Where("transport_assignment_student_id = ? AND transport_assignment_ended_at IS NULL", studentID).
		Count(&n).Error; err != nil {
		t.Fatalf("count assignments: %v", err)
	}
	return n
}

func TestCreateStopBelongsToPathRoute(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 12000)
	app := newTestApp(db, f)

	routeA := f.addRoute(t, db, "North Loop")
	routeB := f.addRoute(t, db, "South Loop")

	// A stray route id in the body must not override the path.
	body := map[string]any{
		"transport_stop_route_id":       routeB.String(),
		"transport_stop_name":           "Market Square",
		"transport_stop_monthly_charge": 300,
	}
	resp := postJSON(t, app, "/transport/routes/"+routeA.String()+"/stops", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var stop model.TransportStopModel
	if err := db.
		Where("transport_stop_branch_id = ? AND transport_stop_name = ?", f.BranchID, "Market Square").
		First(&stop).Error; err != nil {
		t.Fatalf("load stop: %v", err)
	}
	if stop.TransportStopRouteID != routeA {
		t.Errorf("stop route = %s, want path route %s", stop.TransportStopRouteID, routeA)
	}
}

func TestCreateStopRejectsBadRoute(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 12000)
	app := newTestApp(db, f)

	body := map[string]any{
		"transport_stop_name":           "Nowhere",
		"transport_stop_monthly_charge": 100,
	}

	if resp := postJSON(t, app, "/transport/routes/not-a-uuid/stops", body); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed route id status = %d, want 400", resp.StatusCode)
	}
	if resp := postJSON(t, app, "/transport/routes/"+uuid.NewString()+"/stops", body); resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown route status = %d, want 404", resp.StatusCode)
	}
}

func TestAssignTransportDuplicateActiveRejected(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 12000)
	app := newTestApp(db, f)

	routeA := f.addRoute(t, db, "East Loop")
	routeB := f.addRoute(t, db, "West Loop")
	stopA := f.addStop(t, db, routeA, "Temple Gate", 400)
	stopB := f.addStop(t, db, routeB, "River Bridge", 350)
	studentID := f.addStudent(t, db)

	if resp := postJSON(t, app, "/transport/assignments", assignBody(routeA, stopA, studentID)); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first assignment status = %d, want 201", resp.StatusCode)
	}
	resp := postJSON(t, app, "/transport/assignments", assignBody(routeB, stopB, studentID))
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate assignment status = %d, want 409", resp.StatusCode)
	}
	if n := activeAssignments(t, db, studentID); n != 1 {
		t.Errorf("active assignments = %d, want 1", n)
	}
}

func TestAssignTransportStopMustBeOnRoute(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 12000)
	app := newTestApp(db, f)

	routeA := f.addRoute(t, db, "Hill Loop")
	routeB := f.addRoute(t, db, "Lake Loop")
	stopOnB := f.addStop(t, db, routeB, "Lake View", 250)
	studentID := f.addStudent(t, db)

	resp := postJSON(t, app, "/transport/assignments", assignBody(routeA, stopOnB, studentID))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("mismatched stop status = %d, want 404", resp.StatusCode)
	}
	if n := activeAssignments(t, db, studentID); n != 0 {
		t.Errorf("active assignments = %d, want 0", n)
	}
}

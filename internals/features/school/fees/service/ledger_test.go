package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	model "shiksha_backend/internals/features/school/fees/model"
)

func TestGetOrInitFeeRecordUsesTemplateTotal(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 12000)

	rec, err := GetOrInitFeeRecord(db, f.Tenant, f.Student.StudentID)
	if err != nil {
		t.Fatalf("GetOrInitFeeRecord: %v", err)
	}

	if rec.FeeRecordTotalAmount != 12000 {
		t.Errorf("total = %d, want 12000", rec.FeeRecordTotalAmount)
	}
	if rec.FeeRecordPaidAmount != 0 {
		t.Errorf("paid = %d, want 0", rec.FeeRecordPaidAmount)
	}
	want := SessionStart(time.Now())
	if rec.FeeRecordDueDate.Month() != want.Month() || rec.FeeRecordDueDate.Day() != 1 {
		t.Errorf("due date = %s, want April 1", rec.FeeRecordDueDate.Format("2006-01-02"))
	}

	// Second call returns the same row, no re-derivation.
	again, err := GetOrInitFeeRecord(db, f.Tenant, f.Student.StudentID)
	if err != nil {
		t.Fatalf("second GetOrInitFeeRecord: %v", err)
	}
	if again.FeeRecordID != rec.FeeRecordID {
		t.Errorf("second call returned a different record")
	}
}

func TestGetOrInitFeeRecordCountsUnbilledServices(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 12000)

	// Unbilled hostel from session month 2 (June): 10 months at 500.
	f.addRoomAssignment(t, db, 500, 2, false)

	rec, err := GetOrInitFeeRecord(db, f.Tenant, f.Student.StudentID)
	if err != nil {
		t.Fatalf("GetOrInitFeeRecord: %v", err)
	}
	if want := 12000 + 500*10; rec.FeeRecordTotalAmount != want {
		t.Errorf("total = %d, want %d", rec.FeeRecordTotalAmount, want)
	}
}

func TestGetOrInitFeeRecordStudentNotFound(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 12000)

	_, err := GetOrInitFeeRecord(db, f.Tenant, uuid.New())
	assertFiberStatus(t, err, fiber.StatusNotFound)
}

func TestGetOrInitFeeRecordCrossTenant(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 12000)
	other := newFixture(t, db, 9000)

	// A tenant never sees another branch's student, even by exact id.
	_, err := GetOrInitFeeRecord(db, other.Tenant, f.Student.StudentID)
	assertFiberStatus(t, err, fiber.StatusNotFound)
}

func TestPostServiceChargeIncrementsAndAudits(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 12000)

	reason := ServiceChargeReason("Hostel", "Room 101", 7, 500)
	rec, err := PostServiceCharge(db, f.Tenant, f.Student.StudentID, 500, 7, reason)
	if err != nil {
		t.Fatalf("PostServiceCharge: %v", err)
	}
	if want := 12000 + 3500; rec.FeeRecordTotalAmount != want {
		t.Errorf("total = %d, want %d", rec.FeeRecordTotalAmount, want)
	}

	var adjs []model.FeeAdjustmentModel
	if err := db.Where("fee_adjustment_student_id = ?", f.Student.StudentID).Find(&adjs).Error; err != nil {
		t.Fatalf("load adjustments: %v", err)
	}
	if len(adjs) != 1 {
		t.Fatalf("adjustments = %d, want 1", len(adjs))
	}
	if adjs[0].FeeAdjustmentType != model.AdjustmentCharge || adjs[0].FeeAdjustmentAmount != 3500 {
		t.Errorf("adjustment = %s/%d, want charge/3500", adjs[0].FeeAdjustmentType, adjs[0].FeeAdjustmentAmount)
	}
	if adjs[0].FeeAdjustmentReason != reason {
		t.Errorf("reason = %q, want %q", adjs[0].FeeAdjustmentReason, reason)
	}
	if adjs[0].FeeAdjustmentAdjustedBy == nil || *adjs[0].FeeAdjustmentAdjustedBy != f.Tenant.ActorID {
		t.Errorf("adjusted_by not stamped with the actor")
	}
}

func TestPostServiceChargeIsNotIdempotent(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 0)

	for i := 0; i < 2; i++ {
		if _, err := PostServiceCharge(db, f.Tenant, f.Student.StudentID, 300, 6, "Transport Assigned: Stop A (6 months @ 300)"); err != nil {
			t.Fatalf("PostServiceCharge #%d: %v", i+1, err)
		}
	}

	var rec model.FeeRecordModel
	if err := db.Where("fee_record_student_id = ?", f.Student.StudentID).First(&rec).Error; err != nil {
		t.Fatalf("load record: %v", err)
	}
	if want := 2 * 300 * 6; rec.FeeRecordTotalAmount != want {
		t.Errorf("total = %d, want %d (two identical charges both count)", rec.FeeRecordTotalAmount, want)
	}
}

func TestRecordPayment(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 12000)

	txn := "TXN1"
	pay, err := RecordPayment(db, f.Tenant, f.Student.StudentID, 200, &txn, nil)
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if pay.FeePaymentAmount != 200 {
		t.Errorf("payment amount = %d, want 200", pay.FeePaymentAmount)
	}

	view, err := StudentLedger(db, f.Tenant, f.Student.StudentID)
	if err != nil {
		t.Fatalf("StudentLedger: %v", err)
	}
	if view.Totals.Paid != 200 {
		t.Errorf("paid = %d, want 200", view.Totals.Paid)
	}
	if view.Totals.Pending != 12000-200 {
		t.Errorf("pending = %d, want %d", view.Totals.Pending, 12000-200)
	}
	if len(view.Payments) != 1 || view.Payments[0].FeePaymentTransactionID == nil || *view.Payments[0].FeePaymentTransactionID != "TXN1" {
		t.Errorf("payment history missing TXN1")
	}
}

func TestRecordPaymentRejectsNonPositive(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 12000)

	for _, amount := range []int{0, -50} {
		_, err := RecordPayment(db, f.Tenant, f.Student.StudentID, amount, nil, nil)
		assertFiberStatus(t, err, fiber.StatusBadRequest)
	}

	// nothing was written
	var count int64
	db.Model(&model.FeePaymentModel{}).Where("fee_payment_student_id = ?", f.Student.StudentID).Count(&count)
	if count != 0 {
		t.Errorf("payments written = %d, want 0", count)
	}
}

func TestRecordPaymentAllowsOverpayment(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 1000)

	if _, err := RecordPayment(db, f.Tenant, f.Student.StudentID, 1500, nil, nil); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	view, err := StudentLedger(db, f.Tenant, f.Student.StudentID)
	if err != nil {
		t.Fatalf("StudentLedger: %v", err)
	}
	if view.Totals.Pending != -500 {
		t.Errorf("pending = %d, want -500", view.Totals.Pending)
	}
}

func TestPostAdjustment(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 12000)

	if _, err := PostAdjustment(db, f.Tenant, f.Student.StudentID, model.AdjustmentDiscount, 2000, "sibling discount"); err != nil {
		t.Fatalf("discount: %v", err)
	}
	if _, err := PostAdjustment(db, f.Tenant, f.Student.StudentID, model.AdjustmentCharge, 150, "late fee"); err != nil {
		t.Fatalf("charge: %v", err)
	}

	var rec model.FeeRecordModel
	if err := db.Where("fee_record_student_id = ?", f.Student.StudentID).First(&rec).Error; err != nil {
		t.Fatalf("load record: %v", err)
	}
	if want := 12000 - 2000 + 150; rec.FeeRecordTotalAmount != want {
		t.Errorf("total = %d, want %d", rec.FeeRecordTotalAmount, want)
	}
}

func TestPostAdjustmentRejectsBadInput(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 12000)

	_, err := PostAdjustment(db, f.Tenant, f.Student.StudentID, model.AdjustmentCharge, 0, "zero")
	assertFiberStatus(t, err, fiber.StatusBadRequest)

	_, err = PostAdjustment(db, f.Tenant, f.Student.StudentID, model.FeeAdjustmentType("refund"), 100, "bad kind")
	assertFiberStatus(t, err, fiber.StatusBadRequest)
}

// The ledger invariant: total always equals template base plus posted
// charges minus discounts, no matter the order of operations.
func TestLedgerInvariantAcrossOperations(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 12000)

	base := 12000
	charges, discounts := 0, 0

	check := func(step string) {
		t.Helper()
		var rec model.FeeRecordModel
		if err := db.Where("fee_record_student_id = ?", f.Student.StudentID).First(&rec).Error; err != nil {
			t.Fatalf("%s: load record: %v", step, err)
		}
		if want := base + charges - discounts; rec.FeeRecordTotalAmount != want {
			t.Errorf("%s: total = %d, want %d", step, rec.FeeRecordTotalAmount, want)
		}
	}

	if _, err := GetOrInitFeeRecord(db, f.Tenant, f.Student.StudentID); err != nil {
		t.Fatal(err)
	}
	check("init")

	if _, err := PostServiceCharge(db, f.Tenant, f.Student.StudentID, 500, 7, "Hostel Assigned: Room 101 (7 months @ 500)"); err != nil {
		t.Fatal(err)
	}
	charges += 3500
	check("hostel charge")

	if _, err := PostAdjustment(db, f.Tenant, f.Student.StudentID, model.AdjustmentDiscount, 1000, "scholarship"); err != nil {
		t.Fatal(err)
	}
	discounts += 1000
	check("discount")

	if _, err := RecordPayment(db, f.Tenant, f.Student.StudentID, 5000, nil, nil); err != nil {
		t.Fatal(err)
	}
	check("payment leaves total untouched")
}

// The derived (lazy) total must equal what materialization produces from the
// same state.
func TestDerivedTotalMatchesMaterialized(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 12000)
	f.addRoomAssignment(t, db, 500, 3, false)

	before, err := StudentLedger(db, f.Tenant, f.Student.StudentID)
	if err != nil {
		t.Fatalf("lazy ledger: %v", err)
	}
	if before.Totals.Materialized {
		t.Fatal("record materialized before any write")
	}

	rec, err := GetOrInitFeeRecord(db, f.Tenant, f.Student.StudentID)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if rec.FeeRecordTotalAmount != before.Totals.Total {
		t.Errorf("materialized total %d != derived total %d", rec.FeeRecordTotalAmount, before.Totals.Total)
	}
}

// A billed assignment's charge lives in the adjustments; the derived total
// must not count the service a second time.
func TestDerivedTotalSkipsBilledServices(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 12000)

	// Post the charge first, then record the assignment as billed. This is
	// the order the assignment endpoints use.
	months := 9
	if _, err := PostServiceCharge(db, f.Tenant, f.Student.StudentID, 500, months, "Hostel Assigned: Room 101 (9 months @ 500)"); err != nil {
		t.Fatal(err)
	}
	f.addRoomAssignment(t, db, 500, 12-months, true)

	view, err := StudentLedger(db, f.Tenant, f.Student.StudentID)
	if err != nil {
		t.Fatalf("StudentLedger: %v", err)
	}
	if want := 12000 + 500*months; view.Totals.Total != want {
		t.Errorf("total = %d, want %d (hostel counted once)", view.Totals.Total, want)
	}

	// The display breakdown still shows the hostel line every active month.
	hostelMonths := 0
	for _, m := range view.Breakdown {
		if m.Hostel > 0 {
			hostelMonths++
		}
	}
	if hostelMonths != months {
		t.Errorf("breakdown hostel months = %d, want %d", hostelMonths, months)
	}
}

func TestConcurrentFirstInitCreatesOneRecord(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 12000)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := GetOrInitFeeRecord(db, f.Tenant, f.Student.StudentID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent init: %v", err)
	}

	var count int64
	db.Model(&model.FeeRecordModel{}).Where("fee_record_student_id = ?", f.Student.StudentID).Count(&count)
	if count != 1 {
		t.Errorf("records = %d, want 1", count)
	}
}

func TestConcurrentPaymentsAllCount(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 12000)

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := RecordPayment(db, f.Tenant, f.Student.StudentID, 100, nil, nil); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent payment: %v", err)
	}

	var rec model.FeeRecordModel
	if err := db.Where("fee_record_student_id = ?", f.Student.StudentID).First(&rec).Error; err != nil {
		t.Fatalf("load record: %v", err)
	}
	if want := workers * 100; rec.FeeRecordPaidAmount != want {
		t.Errorf("paid = %d, want %d", rec.FeeRecordPaidAmount, want)
	}
}

func TestCrossStudentIsolation(t *testing.T) {
	db := requireDB(t)
	f := newFixture(t, db, 12000)
	g := newFixture(t, db, 9000)

	if _, err := PostServiceCharge(db, f.Tenant, f.Student.StudentID, 500, 7, "Hostel Assigned: Room 101 (7 months @ 500)"); err != nil {
		t.Fatal(err)
	}

	rec, err := GetOrInitFeeRecord(db, g.Tenant, g.Student.StudentID)
	if err != nil {
		t.Fatal(err)
	}
	if rec.FeeRecordTotalAmount != 9000 {
		t.Errorf("other student's total = %d, want 9000 (unaffected)", rec.FeeRecordTotalAmount)
	}
}

func assertFiberStatus(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected status %d error, got nil", want)
	}
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *fiber.Error, got %T: %v", err, err)
	}
	if fe.Code != want {
		t.Errorf("status = %d, want %d (%s)", fe.Code, want, fe.Message)
	}
}

package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	academicsModel "shiksha_backend/internals/features/school/academics/model"
	model "shiksha_backend/internals/features/school/fees/model"
	hostelModel "shiksha_backend/internals/features/school/hostel/model"
	studentModel "shiksha_backend/internals/features/school/students/model"
	transportModel "shiksha_backend/internals/features/school/transport/model"
)

/* =========================================================
   Ledger inputs (shared loader for the lazy and display paths)
========================================================= */

type ledgerInputs struct {
	Student  studentModel.StudentModel
	Template *model.FeeTemplateModel

	RoomAssignment      *hostelModel.RoomAssignmentModel
	TransportAssignment *transportModel.TransportAssignmentModel

	ChargeSum   int
	DiscountSum int
}

func loadLedgerInputs(tx *gorm.DB, tc TenantContext, studentID uuid.UUID) (*ledgerInputs, error) {
	var in ledgerInputs

	if err := tx.
		Where("student_id = ? AND student_branch_id = ?", studentID, tc.BranchID).
		First(&in.Student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "student not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if in.Student.StudentClassID != nil {
		var class academicsModel.SchoolClassModel
		err := tx.
			Where("class_id = ? AND class_branch_id = ?", *in.Student.StudentClassID, tc.BranchID).
			First(&class).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if err == nil && class.ClassFeeTemplateID != nil {
			var tpl model.FeeTemplateModel
			err := tx.
				Where("fee_template_id = ? AND fee_template_branch_id = ?", *class.ClassFeeTemplateID, tc.BranchID).
				First(&tpl).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			if err == nil {
				in.Template = &tpl
			}
		}
	}

	var room hostelModel.RoomAssignmentModel
	err := tx.
		Where("room_assignment_student_id = ? AND room_assignment_branch_id = ? AND room_assignment_ended_at IS NULL",
			studentID, tc.BranchID).
		First(&room).Error
	if err == nil {
		in.RoomAssignment = &room
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var tr transportModel.TransportAssignmentModel
	err = tx.
		Where("transport_assignment_student_id = ? AND transport_assignment_branch_id = ? AND transport_assignment_ended_at IS NULL",
			studentID, tc.BranchID).
		First(&tr).Error
	if err == nil {
		in.TransportAssignment = &tr
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	type sumRow struct {
		Kind string
		Sum  int
	}
	var sums []sumRow
	if err := tx.Model(&model.FeeAdjustmentModel{}).
		Select("fee_adjustment_type AS kind, COALESCE(SUM(fee_adjustment_amount),0) AS sum").
		Where("fee_adjustment_student_id = ? AND fee_adjustment_branch_id = ?", studentID, tc.BranchID).
		Group("fee_adjustment_type").
		Scan(&sums).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	for _, s := range sums {
		if s.Kind == string(model.AdjustmentCharge) {
			in.ChargeSum = s.Sum
		} else {
			in.DiscountSum = s.Sum
		}
	}

	return &in, nil
}

// breakdownInput assembles the pure-compute input. When unbilledOnly is set,
// service terms whose prorated charge has already been posted (and therefore
// already lives in the adjustment sums) are excluded, so the derived total
// never counts a service twice.
func (in *ledgerInputs) breakdownInput(unbilledOnly bool) (BreakdownInput, error) {
	bi := BreakdownInput{
		Hostel:    ServiceTerm{StartMonth: -1},
		Transport: ServiceTerm{StartMonth: -1},
	}

	if in.Template != nil {
		bi.AnnualAmount = in.Template.FeeTemplateAnnualAmount
		months, err := ParseTemplateMonths(in.Template.FeeTemplateMonthlyBreakdown)
		if err != nil {
			return bi, fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		bi.Months = months
	}

	if ra := in.RoomAssignment; ra != nil && (!unbilledOnly || !ra.RoomAssignmentBilled) {
		bi.Hostel = ServiceTerm{
			Name:       "Hostel",
			MonthlyFee: ra.RoomAssignmentMonthlyFee,
			StartMonth: int(ra.RoomAssignmentServiceStartMonth),
		}
	}
	if ta := in.TransportAssignment; ta != nil && (!unbilledOnly || !ta.TransportAssignmentBilled) {
		bi.Transport = ServiceTerm{
			Name:       "Transport",
			MonthlyFee: ta.TransportAssignmentMonthlyCharge,
			StartMonth: int(ta.TransportAssignmentServiceStartMonth),
		}
	}

	return bi, nil
}

// derivedNetTotal computes what a fee record would contain were it
// materialized right now: template base + prorated unbilled services +
// signed adjustments. Must stay in lockstep with GetOrInitFeeRecord.
func (in *ledgerInputs) derivedNetTotal() (int, error) {
	bi, err := in.breakdownInput(true)
	if err != nil {
		return 0, err
	}
	_, annual := ComputeMonthlyBreakdown(bi)
	return annual + in.ChargeSum - in.DiscountSum, nil
}

/* =========================================================
   Operations
========================================================= */

// GetOrInitFeeRecord returns the student's fee record, creating it from the
// derived total when absent. An existing record is authoritative and returned
// unchanged. Concurrent first-time calls are serialized by the unique
// student index: the loser's insert is a no-op and the winner's row is
// re-read.
func GetOrInitFeeRecord(tx *gorm.DB, tc TenantContext, studentID uuid.UUID) (*model.FeeRecordModel, error) {
	var rec model.FeeRecordModel
	err := tx.
		Where("fee_record_student_id = ? AND fee_record_branch_id = ?", studentID, tc.BranchID).
		First(&rec).Error
	if err == nil {
		return &rec, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	in, err := loadLedgerInputs(tx, tc, studentID)
	if err != nil {
		return nil, err
	}
	netTotal, err := in.derivedNetTotal()
	if err != nil {
		return nil, err
	}

	rec = model.FeeRecordModel{
		FeeRecordBranchID:    tc.BranchID,
		FeeRecordStudentID:   studentID,
		FeeRecordTotalAmount: netTotal,
		FeeRecordPaidAmount:  0,
		FeeRecordDueDate:     SessionStart(time.Now()),
	}
	if err := tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fee_record_student_id"}},
			DoNothing: true,
		}).
		Create(&rec).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// Re-read: covers the lost race as well as the normal insert.
	if err := tx.
		Where("fee_record_student_id = ? AND fee_record_branch_id = ?", studentID, tc.BranchID).
		First(&rec).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &rec, nil
}

// ServiceChargeReason builds the audit reason for a posted service charge,
// e.g. "Hostel Assigned: Room 101 (7 months @ 500)". Audit trail only; the
// breakdown renderer reads the typed service_start_month instead.
func ServiceChargeReason(service, detail string, months, monthlyRate int) string {
	return fmt.Sprintf("%s Assigned: %s (%d months @ %d)", service, detail, months, monthlyRate)
}

// PostServiceCharge posts monthlyRate*months against the student's ledger:
// an atomic increment of the record total plus a matching charge adjustment,
// in the caller's transaction. A zero or negative total charge is a no-op.
// Deliberately not idempotent; re-assignment guards live in the caller.
func PostServiceCharge(tx *gorm.DB, tc TenantContext, studentID uuid.UUID, monthlyRate, months int, reason string) (*model.FeeRecordModel, error) {
	totalCharge := monthlyRate * months
	if totalCharge <= 0 {
		return GetOrInitFeeRecord(tx, tc, studentID)
	}

	rec, err := GetOrInitFeeRecord(tx, tc, studentID)
	if err != nil {
		return nil, err
	}

	if err := tx.Model(&model.FeeRecordModel{}).
		Where("fee_record_id = ?", rec.FeeRecordID).
		UpdateColumn("fee_record_total_amount", gorm.Expr("fee_record_total_amount + ?", totalCharge)).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	adj := model.FeeAdjustmentModel{
		FeeAdjustmentBranchID:   tc.BranchID,
		FeeAdjustmentStudentID:  studentID,
		FeeAdjustmentType:       model.AdjustmentCharge,
		FeeAdjustmentAmount:     totalCharge,
		FeeAdjustmentReason:     reason,
		FeeAdjustmentAdjustedBy: actorPtr(tc),
	}
	if err := tx.Create(&adj).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	rec.FeeRecordTotalAmount += totalCharge
	return rec, nil
}

// PostAdjustment appends a manual charge or discount and applies the signed
// delta to the record total in one transaction.
func PostAdjustment(tx *gorm.DB, tc TenantContext, studentID uuid.UUID, kind model.FeeAdjustmentType, amount int, reason string) (*model.FeeAdjustmentModel, error) {
	if amount <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "adjustment amount must be positive")
	}
	if kind != model.AdjustmentCharge && kind != model.AdjustmentDiscount {
		return nil, fiber.NewError(fiber.StatusBadRequest, "adjustment type must be charge or discount")
	}

	rec, err := GetOrInitFeeRecord(tx, tc, studentID)
	if err != nil {
		return nil, err
	}

	delta := amount
	if kind == model.AdjustmentDiscount {
		delta = -amount
	}
	if err := tx.Model(&model.FeeRecordModel{}).
		Where("fee_record_id = ?", rec.FeeRecordID).
		UpdateColumn("fee_record_total_amount", gorm.Expr("fee_record_total_amount + ?", delta)).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	adj := model.FeeAdjustmentModel{
		FeeAdjustmentBranchID:   tc.BranchID,
		FeeAdjustmentStudentID:  studentID,
		FeeAdjustmentType:       kind,
		FeeAdjustmentAmount:     amount,
		FeeAdjustmentReason:     reason,
		FeeAdjustmentAdjustedBy: actorPtr(tc),
	}
	if err := tx.Create(&adj).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &adj, nil
}

// RecordPayment appends a payment row and atomically increments the record's
// paid amount. Non-positive amounts are rejected before any write.
// Overpayment is not rejected here: pending = total - paid may go negative
// and callers decide how to surface that.
func RecordPayment(tx *gorm.DB, tc TenantContext, studentID uuid.UUID, amount int, transactionID, details *string) (*model.FeePaymentModel, error) {
	if amount <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "payment amount must be positive")
	}

	rec, err := GetOrInitFeeRecord(tx, tc, studentID)
	if err != nil {
		return nil, err
	}

	pay := model.FeePaymentModel{
		FeePaymentBranchID:      tc.BranchID,
		FeePaymentRecordID:      rec.FeeRecordID,
		FeePaymentStudentID:     studentID,
		FeePaymentAmount:        amount,
		FeePaymentTransactionID: transactionID,
		FeePaymentDetails:       details,
		FeePaymentPaidAt:        time.Now(),
		FeePaymentReceivedBy:    actorPtr(tc),
	}
	if err := tx.Create(&pay).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if err := tx.Model(&model.FeeRecordModel{}).
		Where("fee_record_id = ?", rec.FeeRecordID).
		UpdateColumn("fee_record_paid_amount", gorm.Expr("fee_record_paid_amount + ?", amount)).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return &pay, nil
}

/* =========================================================
   Read views
========================================================= */

type LedgerTotals struct {
	Total        int  `json:"total"`
	Paid         int  `json:"paid"`
	Pending      int  `json:"pending"`
	Materialized bool `json:"materialized"`
}

type StudentLedgerView struct {
	Student     studentModel.StudentModel  `json:"student"`
	Record      *model.FeeRecordModel      `json:"record,omitempty"`
	Totals      LedgerTotals               `json:"totals"`
	Breakdown   []MonthBreakdown           `json:"breakdown"`
	AnnualTotal int                        `json:"annual_total"`
	Payments    []model.FeePaymentModel    `json:"payments"`
	Adjustments []model.FeeAdjustmentModel `json:"adjustments"`
}

// StudentLedger assembles the full read view: the materialized record when it
// exists (authoritative), otherwise the derived triple; plus the 12-month
// breakdown over all active services, payments and adjustments. Read-only.
func StudentLedger(db *gorm.DB, tc TenantContext, studentID uuid.UUID) (*StudentLedgerView, error) {
	in, err := loadLedgerInputs(db, tc, studentID)
	if err != nil {
		return nil, err
	}

	displayInput, err := in.breakdownInput(false)
	if err != nil {
		return nil, err
	}
	breakdown, annual := ComputeMonthlyBreakdown(displayInput)

	view := StudentLedgerView{
		Student:     in.Student,
		Breakdown:   breakdown,
		AnnualTotal: annual,
	}

	var rec model.FeeRecordModel
	err = db.
		Where("fee_record_student_id = ? AND fee_record_branch_id = ?", studentID, tc.BranchID).
		First(&rec).Error
	switch {
	case err == nil:
		view.Record = &rec
		view.Totals = LedgerTotals{
			Total:        rec.FeeRecordTotalAmount,
			Paid:         rec.FeeRecordPaidAmount,
			Pending:      rec.FeeRecordTotalAmount - rec.FeeRecordPaidAmount,
			Materialized: true,
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		derived, derr := in.derivedNetTotal()
		if derr != nil {
			return nil, derr
		}
		view.Totals = LedgerTotals{Total: derived, Pending: derived}
	default:
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if err := db.
		Where("fee_payment_student_id = ? AND fee_payment_branch_id = ?", studentID, tc.BranchID).
		Order("fee_payment_paid_at ASC").
		Find(&view.Payments).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if err := db.
		Where("fee_adjustment_student_id = ? AND fee_adjustment_branch_id = ?", studentID, tc.BranchID).
		Order("fee_adjustment_created_at ASC").
		Find(&view.Adjustments).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return &view, nil
}

func actorPtr(tc TenantContext) *uuid.UUID {
	if tc.ActorID == uuid.Nil {
		return nil
	}
	id := tc.ActorID
	return &id
}

package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "shiksha_backend/internals/features/school/fees/dto"
	model "shiksha_backend/internals/features/school/fees/model"
	"shiksha_backend/internals/features/school/fees/service"
	helper "shiksha_backend/internals/helpers"
)

type FeeController struct {
	DB *gorm.DB
}

func NewFeeController(db *gorm.DB) *FeeController {
	return &FeeController{DB: db}
}

func tenantFromToken(c *fiber.Ctx) (service.TenantContext, error) {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return service.TenantContext{}, err
	}
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return service.TenantContext{}, err
	}
	return service.TenantContext{BranchID: branchID, ActorID: actorID}, nil
}

/* ======================= PAYMENTS ======================= */
// POST /fees/payments
func (h *FeeController) CreatePayment(c *fiber.Ctx) error {
	tc, err := tenantFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	tx := h.DB.WithContext(c.UserContext()).Begin()
	if tx.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, tx.Error.Error())
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	pay, err := service.RecordPayment(tx, tc, req.StudentID, req.Amount, req.TransactionID, req.Details)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "payment recorded", pay)
}

/* ======================= ADJUSTMENTS ======================= */
// POST /fees/adjustments
func (h *FeeController) CreateAdjustment(c *fiber.Ctx) error {
	tc, err := tenantFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateAdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	tx := h.DB.WithContext(c.UserContext()).Begin()
	if tx.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, tx.Error.Error())
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	adj, err := service.PostAdjustment(tx, tc, req.StudentID, model.FeeAdjustmentType(req.Type), req.Amount, req.Reason)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "adjustment posted", adj)
}

/* ======================= LEDGER VIEWS ======================= */
// GET /fees/students/:id/ledger
func (h *FeeController) GetStudentLedger(c *fiber.Ctx) error {
	tc, err := tenantFromToken(c)
	if err != nil {
		return err
	}

	studentID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	view, err := service.StudentLedger(h.DB, tc, studentID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", view)
}

// GET /fees/students/:id/breakdown
func (h *FeeController) GetStudentBreakdown(c *fiber.Ctx) error {
	tc, err := tenantFromToken(c)
	if err != nil {
		return err
	}

	studentID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	view, err := service.StudentLedger(h.DB, tc, studentID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"breakdown":    view.Breakdown,
		"annual_total": view.AnnualTotal,
	})
}

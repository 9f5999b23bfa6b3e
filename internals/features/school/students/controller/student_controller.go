package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	feeService "shiksha_backend/internals/features/school/fees/service"
	dto "shiksha_backend/internals/features/school/students/dto"
	model "shiksha_backend/internals/features/school/students/model"
	helper "shiksha_backend/internals/helpers"
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

/* ======================= ADMISSION ======================= */
// POST /students
// Admission materializes the fee record eagerly in the same transaction, so
// there is one source of truth for the student's total from day one.
func (h *StudentController) Admit(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.AdmitStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	req.StudentBranchID = &branchID

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

	m := req.ToModel()
	if err := tx.Create(m).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "failed to admit student")
	}

	tc := feeService.TenantContext{BranchID: branchID, ActorID: actorID}
	rec, err := feeService.GetOrInitFeeRecord(tx, tc, m.StudentID)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "student admitted", fiber.Map{
		"student":    m,
		"fee_record": rec,
	})
}

/* ======================== GET BY ID ======================== */
// GET /students/:id  (includes the ledger view)
func (h *StudentController) GetByID(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	tc := feeService.TenantContext{BranchID: branchID, ActorID: actorID}
	view, err := feeService.StudentLedger(h.DB, tc, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", view)
}

/* ======================== LIST ======================== */
// GET /students?class_id=&status=&q=&page=&per_page=
func (h *StudentController) List(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	base := h.DB.Model(&model.StudentModel{}).
		Where("student_branch_id = ?", branchID)
	if classID := strings.TrimSpace(c.Query("class_id")); classID != "" {
		base = base.Where("student_class_id = ?", classID)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		base = base.Where("student_status = ?", status)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		base = base.Where("student_name ILIKE ?", "%"+q+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.StudentModel
	if err := base.
		Order("student_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, paging))
}

/* ======================== UPDATE ======================== */
// PATCH /students/:id
func (h *StudentController) Update(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	var row model.StudentModel
	if err := h.DB.
		Where("student_id = ? AND student_branch_id = ?", id, branchID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	req.ApplyTo(&row)
	if err := h.DB.Save(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update student")
	}
	return helper.JsonUpdated(c, "student updated", row)
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" must not be empty")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

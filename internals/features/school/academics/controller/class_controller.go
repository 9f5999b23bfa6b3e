package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "shiksha_backend/internals/features/school/academics/dto"
	model "shiksha_backend/internals/features/school/academics/model"
	feeModel "shiksha_backend/internals/features/school/fees/model"
	helper "shiksha_backend/internals/helpers"
)

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

/* ======================= CREATE ======================= */
// POST /classes
func (h *ClassController) Create(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	req.ClassBranchID = &branchID

	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	if req.ClassFeeTemplateID != nil {
		if err := h.ensureTemplate(branchID, *req.ClassFeeTemplateID); err != nil {
			return err
		}
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create class")
	}
	return helper.JsonCreated(c, "class created", m)
}

/* ======================== LIST ======================== */
// GET /classes?grade=&page=&per_page=
func (h *ClassController) List(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 50, 200)

	base := h.DB.Model(&model.SchoolClassModel{}).
		Where("class_branch_id = ?", branchID)
	if grade := strings.TrimSpace(c.Query("grade")); grade != "" {
		base = base.Where("class_grade_level = ?", grade)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.SchoolClassModel
	if err := base.
		Order("class_grade_level ASC, class_name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, paging))
}

/* ======================== GET BY ID ======================== */
// GET /classes/:id
func (h *ClassController) GetByID(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "id must not be empty")
	}

	var row model.SchoolClassModel
	if err := h.DB.
		Where("class_id = ? AND class_branch_id = ?", id, branchID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "class not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", row)
}

/* ======================== UPDATE ======================== */
// PATCH /classes/:id
func (h *ClassController) Update(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "id must not be empty")
	}

	var req dto.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	if req.ClassFeeTemplateID != nil {
		if err := h.ensureTemplate(branchID, *req.ClassFeeTemplateID); err != nil {
			return err
		}
	}

	var row model.SchoolClassModel
	if err := h.DB.
		Where("class_id = ? AND class_branch_id = ?", id, branchID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "class not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	req.ApplyTo(&row)
	if err := h.DB.Save(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update class")
	}
	return helper.JsonUpdated(c, "class updated", row)
}

// ensureTemplate rejects cross-tenant template references as not-found.
func (h *ClassController) ensureTemplate(branchID, templateID uuid.UUID) error {
	var tpl feeModel.FeeTemplateModel
	if err := h.DB.
		Where("fee_template_id = ? AND fee_template_branch_id = ?", templateID, branchID).
		First(&tpl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "fee template not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return nil
}

package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "shiksha_backend/internals/features/school/fees/dto"
	model "shiksha_backend/internals/features/school/fees/model"
	helper "shiksha_backend/internals/helpers"
)

type FeeTemplateController struct {
	DB *gorm.DB
}

func NewFeeTemplateController(db *gorm.DB) *FeeTemplateController {
	return &FeeTemplateController{DB: db}
}

/* ======================= CREATE ======================= */
// POST /fees/templates
func (h *FeeTemplateController) Create(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateFeeTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	// tenant always comes from the token
	req.FeeTemplateBranchID = &branchID

	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	m, err := req.ToModel()
	if err != nil {
		return err
	}
	if err := h.DB.Create(m).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "fee template already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create fee template")
	}
	return helper.JsonCreated(c, "fee template created", m)
}

/* ======================== GET BY ID ======================== */
// GET /fees/templates/:id
func (h *FeeTemplateController) GetByID(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var row model.FeeTemplateModel
	if err := h.DB.
		Where("fee_template_id = ? AND fee_template_branch_id = ?", id, branchID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "fee template not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", row)
}

/* ======================== LIST ======================== */
// GET /fees/templates?class_id=&page=&per_page=
func (h *FeeTemplateController) List(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	base := h.DB.Model(&model.FeeTemplateModel{}).
		Where("fee_template_branch_id = ?", branchID)
	if classID := strings.TrimSpace(c.Query("class_id")); classID != "" {
		base = base.Where("fee_template_class_id = ?", classID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.FeeTemplateModel
	if err := base.
		Order("fee_template_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, paging))
}

/* ======================== UPDATE ======================== */
// PATCH /fees/templates/:id
func (h *FeeTemplateController) Update(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateFeeTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	var row model.FeeTemplateModel
	if err := h.DB.
		Where("fee_template_id = ? AND fee_template_branch_id = ?", id, branchID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "fee template not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if err := req.ApplyTo(&row); err != nil {
		return err
	}
	if err := h.DB.Save(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update fee template")
	}
	return helper.JsonUpdated(c, "fee template updated", row)
}

package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	model "shiksha_backend/internals/features/school/branches/model"
	helper "shiksha_backend/internals/helpers"
)

type BranchController struct {
	DB *gorm.DB
}

func NewBranchController(db *gorm.DB) *BranchController {
	return &BranchController{DB: db}
}

type CreateBranchRequest struct {
	BranchName    string  `json:"branch_name"    validate:"required,min=2"`
	BranchCode    string  `json:"branch_code"    validate:"required,min=2,max=20"`
	BranchAddress *string `json:"branch_address" validate:"omitempty"`
	BranchPhone   *string `json:"branch_phone"   validate:"omitempty,min=6,max=20"`
}

// POST /branches
func (h *BranchController) Create(c *fiber.Ctx) error {
	var req CreateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	m := model.BranchModel{
		BranchName:    req.BranchName,
		BranchCode:    req.BranchCode,
		BranchAddress: req.BranchAddress,
		BranchPhone:   req.BranchPhone,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "branch code already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create branch")
	}
	return helper.JsonCreated(c, "branch created", m)
}

// GET /branches
func (h *BranchController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	var total int64
	if err := h.DB.Model(&model.BranchModel{}).Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.BranchModel
	if err := h.DB.
		Order("branch_name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, paging))
}

package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	feeService "shiksha_backend/internals/features/school/fees/service"
	dto "shiksha_backend/internals/features/school/transport/dto"
	model "shiksha_backend/internals/features/school/transport/model"
	helper "shiksha_backend/internals/helpers"
)

type TransportController struct {
	DB *gorm.DB
}

func NewTransportController(db *gorm.DB) *TransportController {
	return &TransportController{DB: db}
}

/* ======================= ROUTES & STOPS ======================= */
// POST /transport/routes
func (h *TransportController) CreateRoute(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	req.TransportRouteBranchID = &branchID

	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create route")
	}
	return helper.JsonCreated(c, "route created", m)
}

// GET /transport/routes
func (h *TransportController) ListRoutes(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 50, 200)

	base := h.DB.Model(&model.TransportRouteModel{}).
		Where("transport_route_branch_id = ?", branchID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.TransportRouteModel
	if err := base.
		Order("transport_route_name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, paging))
}

// POST /transport/routes/:id/stops
// The owning route comes from the path, never from the body.
func (h *TransportController) CreateStop(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	routeID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid route id")
	}

	var req dto.CreateStopRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	req.TransportStopBranchID = &branchID

	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	// route must exist in the same tenant
	var route model.TransportRouteModel
	if err := h.DB.
		Where("transport_route_id = ? AND transport_route_branch_id = ?", routeID, branchID).
		First(&route).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "route not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	m := req.ToModel(route.TransportRouteID)
	if err := h.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create stop")
	}
	return helper.JsonCreated(c, "stop created", m)
}

// GET /transport/routes/:id/stops
func (h *TransportController) ListStops(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	routeID := strings.TrimSpace(c.Params("id"))
	if routeID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "id must not be empty")
	}

	var rows []model.TransportStopModel
	if err := h.DB.
		Where("transport_stop_route_id = ? AND transport_stop_branch_id = ?", routeID, branchID).
		Order("transport_stop_name ASC").
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", rows)
}

/* ======================= ASSIGNMENT ======================= */
// POST /transport/assignments
// Mirrors hostel assignment: prorated charge for the rest of the session,
// posted atomically with the assignment row.
func (h *TransportController) AssignTransport(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.AssignTransportRequest
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

	var stop model.TransportStopModel
	if err := tx.
		Where("transport_stop_id = ? AND transport_stop_route_id = ? AND transport_stop_branch_id = ?",
			req.StopID, req.RouteID, branchID).
		First(&stop).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "stop not found on this route")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// Pre-check only; the partial unique index on the insert is the real
	// guard against concurrent assignments for the same student.
	var existing int64
	if err := tx.Model(&model.TransportAssignmentModel{}).
		Where("transport_assignment_student_id = ? AND transport_assignment_branch_id = ? AND transport_assignment_ended_at IS NULL",
			req.StudentID, branchID).
		Count(&existing).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if existing > 0 {
		tx.Rollback()
		return fiber.NewError(fiber.StatusConflict, "student already has a transport stop")
	}

	now := time.Now()
	months := feeService.MonthsRemaining(now)
	startMonth := feeService.SessionMonthIndex(now.Month())
	tc := feeService.TenantContext{BranchID: branchID, ActorID: actorID}

	// Charge first, assignment after; see hostel assignment for why.
	reason := feeService.ServiceChargeReason("Transport", stop.TransportStopName, months, stop.TransportStopMonthlyCharge)
	rec, err := feeService.PostServiceCharge(tx, tc, req.StudentID, stop.TransportStopMonthlyCharge, months, reason)
	if err != nil {
		tx.Rollback()
		return err
	}

	asg := model.TransportAssignmentModel{
		TransportAssignmentBranchID:          branchID,
		TransportAssignmentRouteID:           req.RouteID,
		TransportAssignmentStopID:            req.StopID,
		TransportAssignmentStudentID:         req.StudentID,
		TransportAssignmentMonthlyCharge:     stop.TransportStopMonthlyCharge,
		TransportAssignmentServiceStartMonth: int16(startMonth),
		TransportAssignmentBilled:            true,
		TransportAssignmentAssignedAt:        now,
	}
	if err := tx.Create(&asg).Error; err != nil {
		tx.Rollback()
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "student already has a transport stop")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create transport assignment")
	}

	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "transport assigned", fiber.Map{
		"assignment": asg,
		"fee_record": rec,
	})
}

// DELETE /transport/assignments/:student_id
func (h *TransportController) EndAssignment(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	raw := strings.TrimSpace(c.Params("student_id"))
	if raw == "" {
		return fiber.NewError(fiber.StatusBadRequest, "student_id must not be empty")
	}
	studentID, err := uuid.Parse(raw)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid student_id")
	}

	res := h.DB.Model(&model.TransportAssignmentModel{}).
		Where("transport_assignment_student_id = ? AND transport_assignment_branch_id = ? AND transport_assignment_ended_at IS NULL",
			studentID, branchID).
		Update("transport_assignment_ended_at", time.Now())
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "no active transport assignment")
	}
	return helper.JsonDeleted(c, "transport assignment ended", fiber.Map{"student_id": studentID})
}

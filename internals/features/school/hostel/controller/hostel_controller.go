package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	feeService "shiksha_backend/internals/features/school/fees/service"
	dto "shiksha_backend/internals/features/school/hostel/dto"
	model "shiksha_backend/internals/features/school/hostel/model"
	helper "shiksha_backend/internals/helpers"
)

type HostelController struct {
	DB *gorm.DB
}

func NewHostelController(db *gorm.DB) *HostelController {
	return &HostelController{DB: db}
}

/* ======================= ROOMS ======================= */
// POST /hostel/rooms
func (h *HostelController) CreateRoom(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	req.RoomBranchID = &branchID

	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create room")
	}
	return helper.JsonCreated(c, "room created", m)
}

// GET /hostel/rooms?page=&per_page=
func (h *HostelController) ListRooms(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 50, 200)

	base := h.DB.Model(&model.RoomModel{}).
		Where("room_branch_id = ?", branchID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.RoomModel
	if err := base.
		Order("room_number ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, paging))
}

// PATCH /hostel/rooms/:id
func (h *HostelController) UpdateRoom(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "id must not be empty")
	}

	var req dto.UpdateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	var row model.RoomModel
	if err := h.DB.
		Where("room_id = ? AND room_branch_id = ?", id, branchID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "room not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	req.ApplyTo(&row)
	if err := h.DB.Save(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update room")
	}
	return helper.JsonUpdated(c, "room updated", row)
}

/* ======================= ASSIGNMENT ======================= */
// POST /hostel/assignments
// Assigning a room posts the prorated service charge for the rest of the
// session in the same transaction. The room row is locked so concurrent
// assignments cannot overshoot capacity.
func (h *HostelController) AssignRoom(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.AssignRoomRequest
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

	var room model.RoomModel
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("room_id = ? AND room_branch_id = ?", req.RoomID, branchID).
		First(&room).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "room not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// One active hostel assignment per student. This count is the friendly
	// pre-check; the partial unique index on the insert below is what holds
	// under concurrent requests to different rooms.
	var existing int64
	if err := tx.Model(&model.RoomAssignmentModel{}).
		Where("room_assignment_student_id = ? AND room_assignment_branch_id = ? AND room_assignment_ended_at IS NULL",
			req.StudentID, branchID).
		Count(&existing).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if existing > 0 {
		tx.Rollback()
		return fiber.NewError(fiber.StatusConflict, "student already has a hostel room")
	}

	var occupancy int64
	if err := tx.Model(&model.RoomAssignmentModel{}).
		Where("room_assignment_room_id = ? AND room_assignment_ended_at IS NULL", room.RoomID).
		Count(&occupancy).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if occupancy >= int64(room.RoomCapacity) {
		tx.Rollback()
		return fiber.NewError(fiber.StatusConflict, "room is full")
	}

	now := time.Now()
	months := feeService.MonthsRemaining(now)
	startMonth := feeService.SessionMonthIndex(now.Month())
	tc := feeService.TenantContext{BranchID: branchID, ActorID: actorID}

	// Post the charge before inserting the assignment so lazy record
	// initialization never counts this service twice.
	reason := feeService.ServiceChargeReason("Hostel", "Room "+room.RoomNumber, months, room.RoomMonthlyFee)
	rec, err := feeService.PostServiceCharge(tx, tc, req.StudentID, room.RoomMonthlyFee, months, reason)
	if err != nil {
		tx.Rollback()
		return err
	}

	asg := model.RoomAssignmentModel{
		RoomAssignmentBranchID:          branchID,
		RoomAssignmentRoomID:            room.RoomID,
		RoomAssignmentStudentID:         req.StudentID,
		RoomAssignmentMonthlyFee:        room.RoomMonthlyFee,
		RoomAssignmentServiceStartMonth: int16(startMonth),
		RoomAssignmentBilled:            true,
		RoomAssignmentAssignedAt:        now,
	}
	if err := tx.Create(&asg).Error; err != nil {
		tx.Rollback()
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "student already has a hostel room")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create room assignment")
	}

	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "room assigned", fiber.Map{
		"assignment": asg,
		"fee_record": rec,
	})
}

// DELETE /hostel/assignments/:student_id
// Ends the active assignment. No retroactive credit: a discount for unused
// months is a deliberate manual adjustment, not an automatic reversal.
func (h *HostelController) EndAssignment(c *fiber.Ctx) error {
	branchID, err := helper.GetBranchIDFromToken(c)
	if err != nil {
		return err
	}

	studentID, err := parseStudentParam(c)
	if err != nil {
		return err
	}

	res := h.DB.Model(&model.RoomAssignmentModel{}).
		Where("room_assignment_student_id = ? AND room_assignment_branch_id = ? AND room_assignment_ended_at IS NULL",
			studentID, branchID).
		Update("room_assignment_ended_at", time.Now())
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "no active room assignment")
	}
	return helper.JsonDeleted(c, "room assignment ended", fiber.Map{"student_id": studentID})
}

func parseStudentParam(c *fiber.Ctx) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params("student_id"))
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "student_id must not be empty")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid student_id")
	}
	return id, nil
}

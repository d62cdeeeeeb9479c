package controller

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"noitru_backend/internals/features/school/duty/dto"
	"noitru_backend/internals/features/school/duty/model"
	"noitru_backend/internals/features/school/duty/service"
	helper "noitru_backend/internals/helpers"
)

type DutyController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewDutyController(db *gorm.DB) *DutyController {
	return &DutyController{DB: db, Validate: validator.New()}
}

/* ===================== LIST BY MONTH ===================== */
// GET /api/u/duty-entries?year=&month=
func (ctrl *DutyController) ListByMonth(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		return fiber.NewError(fiber.StatusBadRequest, "year không hợp lệ")
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		return fiber.NewError(fiber.StatusBadRequest, "month không hợp lệ")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	var entries []model.DutyEntry
	if err := ctrl.DB.
		Where("duty_date >= ? AND duty_date < ?", start, end).
		Order("duty_date ASC, teacher_name ASC").
		Find(&entries).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không tải được bảng trực")
	}
	return helper.Success(c, "OK", entries)
}

/* ===================== ACTIVE SHIFT ===================== */
// GET /api/u/duty-shift/active — ca trực đang chạy + ai đang trực + thiếu người.
// Tra bảng trực theo shift_date (trước 06:00 là ngày hôm qua), không theo hôm nay.
func (ctrl *DutyController) ActiveShift(c *fiber.Ctx) error {
	shift := service.ResolveActiveShift(time.Now())

	var entries []model.DutyEntry
	if err := ctrl.DB.
		Where("duty_date = ?", shift.ShiftDate).
		Order("teacher_name ASC").
		Find(&entries).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không tải được bảng trực")
	}

	return helper.Success(c, "OK", fiber.Map{
		"shift":            shift,
		"entries":          entries,
		"short_staffed_by": service.ShortStaffedBy(len(entries)),
	})
}

/* ===================== CREATE ===================== */
// POST /api/a/duty-entries
func (ctrl *DutyController) Create(c *fiber.Ctx) error {
	var req dto.CreateDutyEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	date, _ := time.Parse(dto.DateLayout, req.DutyDate)
	entry := model.DutyEntry{TeacherName: req.TeacherName, DutyDate: date, Notes: req.Notes}
	if err := ctrl.DB.Create(&entry).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không thêm được người trực")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Đã thêm người trực", entry)
}

/* ===================== UPDATE ===================== */
// PUT /api/a/duty-entries/:id
func (ctrl *DutyController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID không hợp lệ")
	}

	var req dto.UpdateDutyEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var entry model.DutyEntry
	if err := ctrl.DB.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Không tìm thấy người trực")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	updates := map[string]interface{}{}
	if req.TeacherName != nil {
		updates["teacher_name"] = *req.TeacherName
	}
	if req.DutyDate != nil {
		date, _ := time.Parse(dto.DateLayout, *req.DutyDate)
		updates["duty_date"] = date
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := ctrl.DB.Model(&entry).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Không cập nhật được người trực")
		}
	}
	return helper.Success(c, "Đã cập nhật", entry)
}

/* ===================== DELETE ===================== */
// DELETE /api/a/duty-entries/:id
func (ctrl *DutyController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID không hợp lệ")
	}
	if err := ctrl.DB.Delete(&model.DutyEntry{}, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không xóa được người trực")
	}
	return helper.Success(c, "Đã xóa", nil)
}

/* ===================== BULK ASSIGN (UPSERT) ===================== */
// POST /api/a/duty-entries/bulk
// Upsert theo cặp (teacher_name, duty_date): gửi lại cặp đã có thì bỏ qua,
// không tạo bản ghi trùng. Từng dòng độc lập, lỗi không chặn dòng sau.
func (ctrl *DutyController) BulkAssign(c *fiber.Ctx) error {
	var req dto.BulkAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	result := helper.BulkResult{}
	assignments := make([]service.Assignment, 0, len(req.Entries))
	for i, item := range req.Entries {
		date, err := time.Parse(dto.DateLayout, item.DutyDate)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("dòng %d: ngày không hợp lệ", i+1))
			continue
		}
		assignments = append(assignments, service.Assignment{TeacherName: item.TeacherName, DutyDate: date})
	}

	skipped := len(assignments)
	assignments = service.DedupAssignments(assignments)
	skipped -= len(assignments)

	for _, a := range assignments {
		var count int64
		if err := ctrl.DB.Model(&model.DutyEntry{}).
			Where("teacher_name = ? AND duty_date = ?", a.TeacherName, a.DutyDate).
			Count(&count).Error; err != nil {
			result.Failed++
			result.Errors = append(result.Errors, a.TeacherName)
			continue
		}
		if count > 0 {
			skipped++
			continue
		}

		entry := model.DutyEntry{TeacherName: a.TeacherName, DutyDate: a.DutyDate}
		if err := ctrl.DB.Create(&entry).Error; err != nil {
			result.Failed++
			result.Errors = append(result.Errors, a.TeacherName)
			continue
		}
		result.Succeeded++
	}

	return helper.Success(c,
		fmt.Sprintf("Phân công xong: thêm %d, trùng %d, lỗi %d", result.Succeeded, skipped, result.Failed),
		fiber.Map{"succeeded": result.Succeeded, "skipped": skipped, "failed": result.Failed, "errors": result.Errors})
}

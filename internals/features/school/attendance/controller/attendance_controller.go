package controller

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"noitru_backend/internals/constants"
	"noitru_backend/internals/features/school/attendance/dto"
	"noitru_backend/internals/features/school/attendance/model"
	"noitru_backend/internals/features/school/attendance/service"
	studentModel "noitru_backend/internals/features/school/students/model"
	helper "noitru_backend/internals/helpers"
)

type AttendanceController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db, Validate: validator.New()}
}

/* ===================== CREATE ===================== */
// POST /api/u/attendance-reports
func (ctrl *AttendanceController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	roles := helper.GetRolesFromLocals(c)
	isAdmin := helper.HasRole(roles, constants.RoleAdmin)

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if !canAccessReportType(roles, req.Type) {
		if req.Type == model.ReportTypeMeal {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorMeals("báo cáo"))
		}
		return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAttendance("báo cáo"))
	}

	// Cổng giờ chốt cho báo cơm (admin không bị chặn)
	if req.Type == model.ReportTypeMeal {
		if !service.IsMealRegistrationOpen(req.MealType, time.Now(), isAdmin) {
			return fiber.NewError(fiber.StatusForbidden, "Đã quá giờ chốt đăng ký bữa này")
		}
	}

	// GVCN bị ép phạm vi về lớp mình
	if helper.HasRole(roles, constants.RoleClassTeacher) && !isAdmin {
		own := helper.GetClassIDFromLocals(c)
		if own == nil {
			return fiber.NewError(fiber.StatusForbidden, "Tài khoản GVCN chưa gắn lớp")
		}
		if req.ClassID != nil && *req.ClassID != *own {
			return fiber.NewError(fiber.StatusForbidden, "GVCN chỉ được báo cáo cho lớp mình phụ trách")
		}
		req.ClassID = own
	}

	reporterName, _ := c.Locals("user_name").(string)
	form, err := req.ToForm(userID, reporterName)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Ngày không hợp lệ")
	}

	roster, err := ctrl.rosterInScope(req.Type, req.ClassID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không tải được danh sách học sinh")
	}

	report, err := service.BuildReport(form, roster)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := ctrl.DB.Create(&report).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không lưu được báo cáo")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Đã lưu báo cáo", report)
}

// rosterInScope: báo cơm / điểm danh nội trú tính trên học sinh nội trú,
// tự học tính trên toàn bộ; có class_id thì thu hẹp theo lớp.
func (ctrl *AttendanceController) rosterInScope(reportType string, classID *uuid.UUID) ([]studentModel.StudentModel, error) {
	q := ctrl.DB.Model(&studentModel.StudentModel{})
	if reportType != model.ReportTypeEveningStudy {
		q = q.Where("is_boarding = true")
	}
	if classID != nil {
		q = q.Where("class_id = ?", *classID)
	}
	var roster []studentModel.StudentModel
	err := q.Find(&roster).Error
	return roster, err
}

/* ===================== LIST ===================== */
// GET /api/u/attendance-reports?type=&meal_type=&session=&start=&end=&class_id=
func (ctrl *AttendanceController) List(c *fiber.Ctx) error {
	roles := helper.GetRolesFromLocals(c)
	q := ctrl.DB.Model(&model.AttendanceReport{}).Order("date DESC, created_at DESC")

	if t := c.Query("type"); t != "" {
		if !canAccessReportType(roles, t) {
			return fiber.NewError(fiber.StatusForbidden, "Bạn không có quyền xem loại báo cáo này")
		}
		q = q.Where("type = ?", t)
	} else {
		// không filter type: chỉ trả các loại mà bộ role này được xem
		q = q.Where("type IN ?", allowedReportTypes(roles))
	}
	if mt := c.Query("meal_type"); mt != "" {
		q = q.Where("meal_type = ?", mt)
	}
	if s := c.Query("session"); s != "" {
		q = q.Where("session = ?", s)
	}
	if raw := c.Query("class_id"); raw != "" {
		classID, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "class_id không hợp lệ")
		}
		q = q.Where("class_id = ?", classID)
	}
	if start := c.Query("start"); start != "" {
		d, err := time.Parse(dto.DateLayout, start)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "start không hợp lệ")
		}
		q = q.Where("date >= ?", d)
	}
	if end := c.Query("end"); end != "" {
		d, err := time.Parse(dto.DateLayout, end)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "end không hợp lệ")
		}
		q = q.Where("date <= ?", d)
	}

	// GVCN chỉ thấy báo cáo lớp mình
	if helper.HasRole(roles, constants.RoleClassTeacher) && !helper.HasRole(roles, constants.RoleAdmin) {
		if own := helper.GetClassIDFromLocals(c); own != nil {
			q = q.Where("class_id = ?", *own)
		}
	}

	paging := helper.ResolvePaging(c, 50, 500)
	var reports []model.AttendanceReport
	if err := q.Offset(paging.Offset).Limit(paging.Limit).Find(&reports).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không tải được báo cáo")
	}
	return helper.Success(c, "OK", reports)
}

/* ===================== BULK DELETE BY TYPE ===================== */
// DELETE /api/a/attendance-reports?type=
// Xóa từng report một, không transaction: report lỗi không chặn report sau,
// fail giữa chừng để lại tập xóa dở — trả tally để UI báo "xong N, lỗi M".
func (ctrl *AttendanceController) DeleteByType(c *fiber.Ctx) error {
	reportType := c.Query("type")
	switch reportType {
	case model.ReportTypeEveningStudy, model.ReportTypeBoarding, model.ReportTypeMeal:
	default:
		return fiber.NewError(fiber.StatusBadRequest, "type không hợp lệ")
	}

	var ids []uuid.UUID
	if err := ctrl.DB.Model(&model.AttendanceReport{}).
		Where("type = ?", reportType).
		Pluck("id", &ids).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không tải được danh sách báo cáo")
	}

	result := helper.BulkResult{}
	for _, id := range ids {
		if err := ctrl.DB.Delete(&model.AttendanceReport{}, "id = ?", id).Error; err != nil {
			result.Failed++
			result.Errors = append(result.Errors, id.String())
			continue
		}
		result.Succeeded++
	}

	return helper.Success(c,
		fmt.Sprintf("Đã xóa: thành công %d, lỗi %d", result.Succeeded, result.Failed),
		result)
}

/* ===================== MEAL DEADLINES ===================== */
// GET /api/u/meal-deadlines — trạng thái giờ chốt ba bữa, cho UI nhắc nhở.
func (ctrl *AttendanceController) MealDeadlines(c *fiber.Ctx) error {
	roles := helper.GetRolesFromLocals(c)
	isAdmin := helper.HasRole(roles, constants.RoleAdmin)
	now := time.Now()

	out := make([]dto.MealDeadlineResponse, 0, len(model.MealTypes))
	for _, mt := range model.MealTypes {
		out = append(out, dto.MealDeadlineResponse{
			MealType:         mt,
			Open:             service.IsMealRegistrationOpen(mt, now, isAdmin),
			MinutesRemaining: service.MinutesUntilCutoff(mt, now),
			NearDeadline:     service.IsNearDeadline(mt, now),
		})
	}
	return helper.Success(c, "OK", out)
}

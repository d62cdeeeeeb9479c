package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"noitru_backend/internals/features/school/attendance/dto"
	"noitru_backend/internals/features/school/attendance/model"
	"noitru_backend/internals/features/school/attendance/service"
	studentModel "noitru_backend/internals/features/school/students/model"
	helper "noitru_backend/internals/helpers"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

// loadMealInputs tải roster nội trú + mọi report bữa ăn chạm tới khoảng ngày.
// Nới biên trái 1 ngày vì bữa sáng ngày Start nằm ở report date = Start-1.
func (ctrl *StatsController) loadMealInputs(rng service.DateRange) ([]model.AttendanceReport, []studentModel.StudentModel, error) {
	var reports []model.AttendanceReport
	if err := ctrl.DB.
		Where("type = ?", model.ReportTypeMeal).
		Where("date >= ? AND date <= ?", rng.Start.AddDate(0, 0, -1), rng.End).
		Find(&reports).Error; err != nil {
		return nil, nil, err
	}

	var roster []studentModel.StudentModel
	if err := ctrl.DB.Where("is_boarding = true").Find(&roster).Error; err != nil {
		return nil, nil, err
	}
	return reports, roster, nil
}

/* ===================== DAILY ===================== */
// GET /api/u/stats/meals/daily?date=
func (ctrl *StatsController) DailyMeals(c *fiber.Ctx) error {
	date, err := time.Parse(dto.DateLayout, c.Query("date"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "date không hợp lệ")
	}

	rng := service.DateRange{Start: date, End: date}
	reports, roster, err := ctrl.loadMealInputs(rng)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không tải được dữ liệu thống kê")
	}

	return helper.Success(c, "OK", service.DailyMealStats(reports, roster, date))
}

/* ===================== RANGE ===================== */
// GET /api/u/stats/meals?start=&end= — tuần / tháng tùy khoảng truyền vào.
func (ctrl *StatsController) RangeMeals(c *fiber.Ctx) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	reports, roster, err := ctrl.loadMealInputs(rng)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không tải được dữ liệu thống kê")
	}

	return helper.Success(c, "OK", service.AggregateMeals(reports, roster, rng))
}

/* ===================== ATTENDANCE SLICE ===================== */
// GET /api/u/stats/attendance?date=&type=&session=
func (ctrl *StatsController) AttendanceSlice(c *fiber.Ctx) error {
	date, err := time.Parse(dto.DateLayout, c.Query("date"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "date không hợp lệ")
	}
	reportType := c.Query("type", model.ReportTypeEveningStudy)
	session := c.Query("session")

	var reports []model.AttendanceReport
	if err := ctrl.DB.
		Where("type = ? AND date = ?", reportType, date).
		Find(&reports).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không tải được dữ liệu thống kê")
	}

	q := ctrl.DB.Model(&studentModel.StudentModel{})
	if reportType != model.ReportTypeEveningStudy {
		q = q.Where("is_boarding = true")
	}
	var roster []studentModel.StudentModel
	if err := q.Find(&roster).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không tải được danh sách học sinh")
	}

	return helper.Success(c, "OK", service.AttendanceSliceStats(reports, roster, date, reportType, session))
}

func parseRange(c *fiber.Ctx) (service.DateRange, error) {
	start, err := time.Parse(dto.DateLayout, c.Query("start"))
	if err != nil {
		return service.DateRange{}, fiber.NewError(fiber.StatusBadRequest, "start không hợp lệ")
	}
	end, err := time.Parse(dto.DateLayout, c.Query("end"))
	if err != nil {
		return service.DateRange{}, fiber.NewError(fiber.StatusBadRequest, "end không hợp lệ")
	}
	return service.DateRange{Start: start, End: end}, nil
}

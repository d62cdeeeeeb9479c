package controller

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"noitru_backend/internals/features/school/attendance/service"
)

type ExportController struct {
	DB    *gorm.DB
	Stats *StatsController
}

func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{DB: db, Stats: NewStatsController(db)}
}

/* ===================== EXPORT XLSX ===================== */
// GET /api/u/stats/meals/export?start=&end=
// Xuất bảng tổng hợp bữa ăn của khoảng ngày ra file .xlsx.
func (ctrl *ExportController) MealsXLSX(c *fiber.Ctx) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	reports, roster, err := ctrl.Stats.loadMealInputs(rng)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không tải được dữ liệu thống kê")
	}
	stats := service.AggregateMeals(reports, roster, rng)

	f := excelize.NewFile()
	sheetName := "Báo cơm"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Ngày", "Sáng: có mặt", "Sáng: vắng", "Trưa: có mặt", "Trưa: vắng", "Tối: có mặt", "Tối: vắng", "Gạo (kg)"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, day := range stats.Days {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), day.Date.Format("02/01/2006"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), day.Breakfast.Present)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), day.Breakfast.Absent)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), day.Lunch.Present)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), day.Lunch.Absent)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), day.Dinner.Present)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), day.Dinner.Absent)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), day.RiceKg)
	}

	totalRow := len(stats.Days) + 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalRow), "Tổng gạo")
	f.SetCellValue(sheetName, fmt.Sprintf("H%d", totalRow), stats.TotalRiceKg)

	fileName := fmt.Sprintf("bao_com_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+fileName)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không ghi được file Excel")
	}
	return c.Send(buf.Bytes())
}

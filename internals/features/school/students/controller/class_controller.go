package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"noitru_backend/internals/features/school/students/model"
	helper "noitru_backend/internals/helpers"
)

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

// GET /api/u/classes — danh sách lớp (dữ liệu seed, chỉ đọc)
func (ctrl *ClassController) List(c *fiber.Ctx) error {
	var classes []model.ClassInfo
	if err := ctrl.DB.Order("grade ASC, name ASC").Find(&classes).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không tải được danh sách lớp")
	}
	return helper.Success(c, "OK", classes)
}

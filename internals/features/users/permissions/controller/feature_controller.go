package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"noitru_backend/internals/features/users/permissions/dto"
	"noitru_backend/internals/features/users/permissions/model"
	helper "noitru_backend/internals/helpers"
)

type FeatureController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewFeatureController(db *gorm.DB) *FeatureController {
	return &FeatureController{DB: db, Validate: validator.New()}
}

/* ===================== LIST ===================== */
// GET /api/a/features
func (ctrl *FeatureController) List(c *fiber.Ctx) error {
	var features []model.AppFeature
	q := ctrl.DB.Order("display_order ASC, code ASC")
	if c.Query("active") == "true" {
		q = q.Where("is_active = true")
	}
	if err := q.Find(&features).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không tải được danh sách chức năng")
	}
	return helper.Success(c, "OK", features)
}

/* ===================== CREATE ===================== */
// POST /api/a/features
func (ctrl *FeatureController) Create(c *fiber.Ctx) error {
	var req dto.CreateFeatureRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	feature := model.AppFeature{
		Code:         req.Code,
		Label:        req.Label,
		IconName:     req.IconName,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}
	if req.IsActive != nil {
		feature.IsActive = *req.IsActive
	}

	if err := ctrl.DB.Create(&feature).Error; err != nil {
		return fiber.NewError(fiber.StatusConflict, "Mã chức năng đã tồn tại")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Đã tạo chức năng", feature)
}

/* ===================== UPDATE ===================== */
// PUT /api/a/features/:id
func (ctrl *FeatureController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID không hợp lệ")
	}

	var req dto.UpdateFeatureRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var feature model.AppFeature
	if err := ctrl.DB.First(&feature, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Không tìm thấy chức năng")
	}

	updates := map[string]interface{}{}
	if req.Label != nil {
		updates["label"] = *req.Label
	}
	if req.IconName != nil {
		updates["icon_name"] = *req.IconName
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}
	// Tắt feature chỉ ẩn nó khỏi màn phân quyền — grant hiện có giữ nguyên.
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := ctrl.DB.Model(&feature).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Không cập nhật được chức năng")
		}
	}
	return helper.Success(c, "Đã cập nhật chức năng", feature)
}

/* ===================== DELETE ===================== */
// DELETE /api/a/features/:id — xóa feature thì cascade mọi grant tham chiếu nó.
func (ctrl *FeatureController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID không hợp lệ")
	}

	var feature model.AppFeature
	if err := ctrl.DB.First(&feature, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Không tìm thấy chức năng")
	}

	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, tx.Error.Error())
	}
	if err := tx.Where("feature_code = ?", feature.Code).Delete(&model.UserPermission{}).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "Không xóa được grant của chức năng")
	}
	if err := tx.Where("feature_code = ?", feature.Code).Delete(&model.GroupPermission{}).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "Không xóa được grant của chức năng")
	}
	if err := tx.Delete(&feature).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "Không xóa được chức năng")
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Đã xóa chức năng và toàn bộ grant liên quan", nil)
}

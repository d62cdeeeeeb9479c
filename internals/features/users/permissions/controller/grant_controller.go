package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	database "noitru_backend/internals/databases"
	"noitru_backend/internals/features/users/permissions/dto"
	"noitru_backend/internals/features/users/permissions/model"
	"noitru_backend/internals/features/users/permissions/service"
	helper "noitru_backend/internals/helpers"
)

type GrantController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewGrantController(db *gorm.DB) *GrantController {
	return &GrantController{DB: db, Validate: validator.New()}
}

/* ===================== USER GRANTS ===================== */

// GET /api/a/users/:userId/permissions
func (ctrl *GrantController) ListUserGrants(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "User ID không hợp lệ")
	}

	var grants []model.UserPermission
	if err := ctrl.DB.Where("user_id = ?", userID).Find(&grants).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không tải được danh sách quyền")
	}
	return helper.Success(c, "OK", grants)
}

// PUT /api/a/users/:userId/permissions
// Upsert theo (user, feature). Row toàn false không được lưu: xóa thay vì ghi.
func (ctrl *GrantController) SetUserGrant(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "User ID không hợp lệ")
	}

	var req dto.SetGrantRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	grant := service.Grant{
		CanView:   req.CanView,
		CanCreate: req.CanCreate,
		CanEdit:   req.CanEdit,
		CanDelete: req.CanDelete,
	}

	if grant.IsZero() {
		if err := ctrl.DB.
			Where("user_id = ? AND feature_code = ?", userID, req.FeatureCode).
			Delete(&model.UserPermission{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Không thu hồi được quyền")
		}
		service.InvalidateUser(c.UserContext(), database.RDB, userID)
		return helper.Success(c, "Đã thu hồi quyền", nil)
	}

	row := model.UserPermission{
		UserID:      userID,
		FeatureCode: req.FeatureCode,
		CanView:     req.CanView,
		CanCreate:   req.CanCreate,
		CanEdit:     req.CanEdit,
		CanDelete:   req.CanDelete,
	}
	if err := ctrl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "feature_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"can_view", "can_create", "can_edit", "can_delete", "updated_at"}),
	}).Create(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không lưu được quyền")
	}

	service.InvalidateUser(c.UserContext(), database.RDB, userID)
	return helper.Success(c, "Đã lưu quyền", row)
}

/* ===================== GROUP GRANTS ===================== */

// GET /api/a/permission-groups/:id/permissions
func (ctrl *GrantController) ListGroupGrants(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID không hợp lệ")
	}

	var grants []model.GroupPermission
	if err := ctrl.DB.Where("group_id = ?", groupID).Find(&grants).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không tải được danh sách quyền")
	}
	return helper.Success(c, "OK", grants)
}

// PUT /api/a/permission-groups/:id/permissions
func (ctrl *GrantController) SetGroupGrant(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID không hợp lệ")
	}

	var req dto.SetGrantRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	grant := service.Grant{
		CanView:   req.CanView,
		CanCreate: req.CanCreate,
		CanEdit:   req.CanEdit,
		CanDelete: req.CanDelete,
	}

	if grant.IsZero() {
		if err := ctrl.DB.
			Where("group_id = ? AND feature_code = ?", groupID, req.FeatureCode).
			Delete(&model.GroupPermission{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Không thu hồi được quyền")
		}
		service.InvalidateGroup(c.UserContext(), ctrl.DB, database.RDB, groupID)
		return helper.Success(c, "Đã thu hồi quyền", nil)
	}

	row := model.GroupPermission{
		GroupID:     groupID,
		FeatureCode: req.FeatureCode,
		CanView:     req.CanView,
		CanCreate:   req.CanCreate,
		CanEdit:     req.CanEdit,
		CanDelete:   req.CanDelete,
	}
	if err := ctrl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "feature_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"can_view", "can_create", "can_edit", "can_delete", "updated_at"}),
	}).Create(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không lưu được quyền")
	}

	service.InvalidateGroup(c.UserContext(), ctrl.DB, database.RDB, groupID)
	return helper.Success(c, "Đã lưu quyền", row)
}

/* ===================== MY ACCESS ===================== */

// GET /api/u/permissions/me — tập quyền hiệu lực của phiên hiện tại.
func (ctrl *GrantController) MyAccess(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	access, err := service.LoadEffectiveAccess(c.UserContext(), ctrl.DB, database.RDB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Không tìm thấy tài khoản")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Không tải được quyền")
	}

	return helper.Success(c, "OK", fiber.Map{
		"roles":                 access.Roles,
		"grants":                access.Grants,
		"is_admin":              access.IsAdmin(),
		"can_access_meals":      access.CanAccessMeals(),
		"can_access_attendance": access.CanAccessAttendance(),
	})
}

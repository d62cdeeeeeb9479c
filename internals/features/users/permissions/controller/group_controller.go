package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	database "noitru_backend/internals/databases"
	"noitru_backend/internals/features/users/permissions/dto"
	"noitru_backend/internals/features/users/permissions/model"
	"noitru_backend/internals/features/users/permissions/service"
	helper "noitru_backend/internals/helpers"
)

type GroupController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewGroupController(db *gorm.DB) *GroupController {
	return &GroupController{DB: db, Validate: validator.New()}
}

/* ===================== GROUP CRUD ===================== */

// GET /api/a/permission-groups
func (ctrl *GroupController) List(c *fiber.Ctx) error {
	var groups []model.PermissionGroup
	if err := ctrl.DB.Order("name ASC").Find(&groups).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không tải được danh sách nhóm quyền")
	}
	return helper.Success(c, "OK", groups)
}

// POST /api/a/permission-groups
func (ctrl *GroupController) Create(c *fiber.Ctx) error {
	var req dto.CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	group := model.PermissionGroup{Name: req.Name, Description: req.Description}
	if err := ctrl.DB.Create(&group).Error; err != nil {
		return fiber.NewError(fiber.StatusConflict, "Tên nhóm quyền đã tồn tại")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Đã tạo nhóm quyền", group)
}

// DELETE /api/a/permission-groups/:id — xóa nhóm kèm grant và membership.
func (ctrl *GroupController) Delete(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID không hợp lệ")
	}

	// invalidate cache trước khi membership bị xóa (cần danh sách thành viên)
	service.InvalidateGroup(c.UserContext(), ctrl.DB, database.RDB, groupID)

	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, tx.Error.Error())
	}
	if err := tx.Where("group_id = ?", groupID).Delete(&model.GroupPermission{}).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "Không xóa được grant của nhóm")
	}
	if err := tx.Where("group_id = ?", groupID).Delete(&model.UserGroupMembership{}).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "Không xóa được thành viên của nhóm")
	}
	if err := tx.Delete(&model.PermissionGroup{}, "id = ?", groupID).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "Không xóa được nhóm quyền")
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Đã xóa nhóm quyền", nil)
}

/* ===================== MEMBERSHIP ===================== */

// GET /api/a/permission-groups/:id/members
func (ctrl *GroupController) ListMembers(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID không hợp lệ")
	}

	var members []model.UserGroupMembership
	if err := ctrl.DB.Where("group_id = ?", groupID).Find(&members).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không tải được thành viên nhóm")
	}
	return helper.Success(c, "OK", members)
}

// POST /api/a/permission-groups/:id/members
func (ctrl *GroupController) AddMember(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID không hợp lệ")
	}

	var req dto.MembershipRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	membership := model.UserGroupMembership{UserID: req.UserID, GroupID: groupID}
	if err := ctrl.DB.Create(&membership).Error; err != nil {
		return fiber.NewError(fiber.StatusConflict, "User đã ở trong nhóm")
	}

	service.InvalidateUser(c.UserContext(), database.RDB, req.UserID)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Đã thêm thành viên", membership)
}

// DELETE /api/a/permission-groups/:id/members/:userId
func (ctrl *GroupController) RemoveMember(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID không hợp lệ")
	}
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "User ID không hợp lệ")
	}

	if err := ctrl.DB.
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&model.UserGroupMembership{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không xóa được thành viên")
	}

	service.InvalidateUser(c.UserContext(), database.RDB, userID)
	return helper.Success(c, "Đã xóa thành viên khỏi nhóm", nil)
}

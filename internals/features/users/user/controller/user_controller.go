package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	database "noitru_backend/internals/databases"
	"noitru_backend/internals/features/users/user/dto"
	"noitru_backend/internals/features/users/user/model"
	permService "noitru_backend/internals/features/users/permissions/service"
	helper "noitru_backend/internals/helpers"
)

type UserController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Validate: validator.New()}
}

/* ===================== LIST ===================== */
// GET /api/a/users?q=&role=&active=
func (ctrl *UserController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.UserModel{})
	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		q = q.Where("user_name ILIKE ? OR full_name ILIKE ? OR email ILIKE ?", like, like, like)
	}
	if role := c.Query("role"); role != "" {
		q = q.Where("? = ANY(roles)", role)
	}
	if active := c.Query("active"); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không tải được danh sách tài khoản")
	}

	var users []model.UserModel
	if err := q.Order("user_name ASC").
		Limit(paging.PerPage).Offset(paging.Offset).
		Find(&users).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không tải được danh sách tài khoản")
	}

	return helper.Success(c, "OK", fiber.Map{
		"users":    users,
		"total":    total,
		"page":     paging.Page,
		"per_page": paging.PerPage,
	})
}

/* ===================== DETAIL ===================== */
// GET /api/a/users/:id
func (ctrl *UserController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID không hợp lệ")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Không tìm thấy tài khoản")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", user)
}

/* ===================== UPDATE ===================== */
// PUT /api/a/users/:id — sửa hồ sơ, role, lớp phụ trách, khóa/mở tài khoản.
// Đổi role làm thay đổi quyền hiệu lực nên snapshot cache bị xóa ngay.
func (ctrl *UserController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID không hợp lệ")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Không tìm thấy tài khoản")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	updates := map[string]interface{}{}
	rolesChanged := false
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Roles != nil {
		updates["roles"] = pq.StringArray(req.Roles)
		rolesChanged = true
	}
	if req.ClearClass {
		updates["class_id"] = nil
	} else if req.ClassID != nil {
		updates["class_id"] = *req.ClassID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := ctrl.DB.Model(&user).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Không cập nhật được tài khoản")
		}
	}
	if rolesChanged {
		permService.InvalidateUser(c.UserContext(), database.RDB, user.ID)
	}

	return helper.Success(c, "Đã cập nhật tài khoản", user)
}

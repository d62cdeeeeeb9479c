package controller

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"noitru_backend/internals/constants"
	"noitru_backend/internals/features/school/students/dto"
	"noitru_backend/internals/features/school/students/model"
	helper "noitru_backend/internals/helpers"
)

type StudentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, Validate: validator.New()}
}

// scopeByClassTeacher áp data-filter cho GVCN: chỉ thấy lớp mình phụ trách.
// Quyền vào feature đã được middleware check; đây là lớp lọc dữ liệu phía sau.
func scopeByClassTeacher(c *fiber.Ctx, q *gorm.DB) *gorm.DB {
	roles := helper.GetRolesFromLocals(c)
	if helper.HasRole(roles, constants.RoleAdmin) {
		return q
	}
	if helper.HasRole(roles, constants.RoleClassTeacher) {
		if classID := helper.GetClassIDFromLocals(c); classID != nil {
			return q.Where("class_id = ?", *classID)
		}
	}
	return q
}

// classTeacherOwns kiểm tra GVCN có được thao tác trên lớp này không.
func classTeacherOwns(c *fiber.Ctx, classID uuid.UUID) bool {
	roles := helper.GetRolesFromLocals(c)
	if helper.HasRole(roles, constants.RoleAdmin) {
		return true
	}
	if !helper.HasRole(roles, constants.RoleClassTeacher) {
		return true // các role khác đã bị chặn/cho qua ở tầng route
	}
	own := helper.GetClassIDFromLocals(c)
	return own != nil && *own == classID
}

/* ===================== LIST ===================== */
// GET /api/u/students?class_id=&boarding=
func (ctrl *StudentController) List(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.StudentModel{}).Order("name ASC")
	q = scopeByClassTeacher(c, q)

	if raw := c.Query("class_id"); raw != "" {
		classID, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "class_id không hợp lệ")
		}
		q = q.Where("class_id = ?", classID)
	}
	if c.Query("boarding") == "true" {
		q = q.Where("is_boarding = true")
	}

	paging := helper.ResolvePaging(c, 50, 500)
	var students []model.StudentModel
	if err := q.Offset(paging.Offset).Limit(paging.Limit).Find(&students).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không tải được danh sách học sinh")
	}
	return helper.Success(c, "OK", students)
}

/* ===================== CREATE ===================== */
// POST /api/u/students
func (ctrl *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if !classTeacherOwns(c, req.ClassID) {
		return fiber.NewError(fiber.StatusForbidden, "GVCN chỉ được thêm học sinh lớp mình phụ trách")
	}

	student := req.ToModel()
	if err := ctrl.DB.Create(&student).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không thêm được học sinh")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Đã thêm học sinh", student)
}

/* ===================== UPDATE ===================== */
// PUT /api/u/students/:id
func (ctrl *StudentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID không hợp lệ")
	}

	var student model.StudentModel
	if err := scopeByClassTeacher(c, ctrl.DB.Model(&model.StudentModel{})).
		First(&student, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Không tìm thấy học sinh")
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.ClassID != nil && !classTeacherOwns(c, *req.ClassID) {
		return fiber.NewError(fiber.StatusForbidden, "GVCN không được chuyển học sinh sang lớp khác")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.ClassID != nil {
		updates["class_id"] = *req.ClassID
	}
	if req.DateOfBirth != nil {
		updates["date_of_birth"] = *req.DateOfBirth
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Room != nil {
		updates["room"] = *req.Room
	}
	if req.MealGroup != nil {
		updates["meal_group"] = *req.MealGroup
	}
	if req.IsBoarding != nil {
		updates["is_boarding"] = *req.IsBoarding
	}
	if req.ParentPhone != nil {
		updates["parent_phone"] = *req.ParentPhone
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.NationalIDNumber != nil {
		updates["national_id_number"] = *req.NationalIDNumber
	}

	if len(updates) > 0 {
		if err := ctrl.DB.Model(&student).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Không cập nhật được học sinh")
		}
	}
	// Báo cáo cũ giữ snapshot riêng trong absent_students nên không bị ảnh hưởng.
	return helper.Success(c, "Đã cập nhật học sinh", student)
}

/* ===================== DELETE ===================== */
// DELETE /api/u/students/:id — soft delete; báo cáo lịch sử giữ snapshot.
func (ctrl *StudentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID không hợp lệ")
	}

	var student model.StudentModel
	if err := scopeByClassTeacher(c, ctrl.DB.Model(&model.StudentModel{})).
		First(&student, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Không tìm thấy học sinh")
	}

	if err := ctrl.DB.Delete(&student).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Không xóa được học sinh")
	}
	return helper.Success(c, "Đã xóa học sinh", nil)
}

/* ===================== BULK INSERT ===================== */
// POST /api/u/students/bulk — import CSV đã parse sẵn phía client.
// Từng dòng insert độc lập, dòng lỗi không chặn dòng sau; trả tally.
func (ctrl *StudentController) BulkInsert(c *fiber.Ctx) error {
	var req dto.BulkInsertStudentsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Dữ liệu gửi lên không hợp lệ")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	result := helper.BulkResult{}
	for i, item := range req.Students {
		if !classTeacherOwns(c, item.ClassID) {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("dòng %d: không có quyền với lớp này", i+1))
			continue
		}
		student := item.ToModel()
		if err := ctrl.DB.Create(&student).Error; err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("dòng %d: %s", i+1, item.Name))
			continue
		}
		result.Succeeded++
	}

	return helper.Success(c,
		fmt.Sprintf("Import xong: thành công %d, lỗi %d", result.Succeeded, result.Failed),
		result)
}

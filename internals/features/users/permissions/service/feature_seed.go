package service

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"noitru_backend/internals/constants"
	"noitru_backend/internals/features/users/permissions/model"
)

// SeedDefaultFeatures đảm bảo danh mục chức năng chuẩn luôn tồn tại sau khi
// DB sẵn sàng. Chạy được nhiều lần: code đã có thì giữ nguyên label/icon do
// admin chỉnh, chỉ insert code còn thiếu.
func SeedDefaultFeatures(db *gorm.DB) {
	defaults := []model.AppFeature{
		{Code: constants.FeatureMeals, Label: "Báo cơm", IconName: "restaurant", DisplayOrder: 1},
		{Code: constants.FeatureAttendance, Label: "Điểm danh", IconName: "how_to_reg", DisplayOrder: 2},
		{Code: constants.FeatureStudents, Label: "Học sinh", IconName: "school", DisplayOrder: 3},
		{Code: constants.FeatureDuty, Label: "Trực nội trú", IconName: "night_shelter", DisplayOrder: 4},
		{Code: constants.FeatureReports, Label: "Thống kê", IconName: "bar_chart", DisplayOrder: 5},
		{Code: constants.FeatureUsers, Label: "Tài khoản", IconName: "group", DisplayOrder: 6},
		{Code: constants.FeaturePermissions, Label: "Phân quyền", IconName: "lock", DisplayOrder: 7},
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&defaults).Error; err != nil {
		log.Printf("[WARN] Không seed được danh mục chức năng: %v", err)
	}
}

package service

import (
	"time"

	"noitru_backend/internals/features/school/attendance/model"
)

// Giờ chốt đăng ký từng bữa. Bữa sáng của NGÀY MAI phải báo trước 22h hôm nay;
// trưa chốt 8h, tối chốt 15h cùng ngày.
var mealCutoffHour = map[string]int{
	model.MealBreakfast: 22,
	model.MealLunch:     8,
	model.MealDinner:    15,
}

// IsMealRegistrationOpen — cổng thời gian nghiệp vụ cho việc báo cơm.
// Admin không bao giờ bị chặn. Với người khác, chỉ so GIỜ trong ngày với giờ
// chốt: còn mở khi hour < cutoff, đóng từ đúng cutoff (07:59 mở, 08:00 đóng).
//
// Lưu ý đã biết: với bữa sáng, cổng này chỉ nhìn giờ hiện tại chứ không kiểm
// tra "hôm nay" có đúng là ngày trước ngày ăn hay không. Toàn hệ thống (kể cả
// phép lệch -1 ngày khi tổng hợp) giả định người báo luôn báo từ tối hôm
// trước, nên giữ nguyên hành vi này thay vì "sửa" thành check theo ngày.
func IsMealRegistrationOpen(mealType string, now time.Time, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	cutoff, ok := mealCutoffHour[mealType]
	if !ok {
		return false
	}
	return now.Hour() < cutoff
}

// MinutesUntilCutoff trả về số phút còn lại tới giờ chốt, 0 khi đã đóng.
// Chỉ dùng cho hiển thị nhắc nhở, không dùng để gate.
func MinutesUntilCutoff(mealType string, now time.Time) int {
	cutoff, ok := mealCutoffHour[mealType]
	if !ok || now.Hour() >= cutoff {
		return 0
	}
	deadline := time.Date(now.Year(), now.Month(), now.Day(), cutoff, 0, 0, 0, now.Location())
	return int(deadline.Sub(now) / time.Minute)
}

// IsNearDeadline: còn mở và còn ≤ 60 phút.
func IsNearDeadline(mealType string, now time.Time) bool {
	if !IsMealRegistrationOpen(mealType, now, false) {
		return false
	}
	return MinutesUntilCutoff(mealType, now) <= 60
}

// ReportDateForMeal: bữa sáng ăn ngày D được lưu dưới report.date = D-1
// (báo từ tối hôm trước); trưa/tối lưu đúng ngày ăn. Mọi điểm tổng hợp
// phải đi qua hàm này để phép lệch ngày luôn nhất quán.
func ReportDateForMeal(mealType string, mealDate time.Time) time.Time {
	if mealType == model.MealBreakfast {
		return mealDate.AddDate(0, 0, -1)
	}
	return mealDate
}

// MealDateForReport — chiều ngược lại: report.date → ngày ăn thực tế.
func MealDateForReport(mealType string, reportDate time.Time) time.Time {
	if mealType == model.MealBreakfast {
		return reportDate.AddDate(0, 0, 1)
	}
	return reportDate
}

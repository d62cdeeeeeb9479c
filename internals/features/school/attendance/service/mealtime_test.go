package service

import (
	"testing"
	"time"

	"noitru_backend/internals/features/school/attendance/model"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 15, hour, min, 0, 0, time.Local)
}

func TestIsMealRegistrationOpen(t *testing.T) {
	tests := []struct {
		name string
		meal string
		now  time.Time
		want bool
	}{
		{"trưa còn mở lúc 07:59", model.MealLunch, at(7, 59), true},
		{"trưa đóng đúng 08:00", model.MealLunch, at(8, 0), false},
		{"trưa đóng lúc 23:00", model.MealLunch, at(23, 0), false},
		{"tối còn mở lúc 14:59", model.MealDinner, at(14, 59), true},
		{"tối đóng đúng 15:00", model.MealDinner, at(15, 0), false},
		{"sáng còn mở lúc 21:59", model.MealBreakfast, at(21, 59), true},
		{"sáng đóng đúng 22:00", model.MealBreakfast, at(22, 0), false},
		{"sáng mở lại sau nửa đêm", model.MealBreakfast, at(0, 30), true},
		{"bữa không tồn tại luôn đóng", "supper", at(7, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMealRegistrationOpen(tt.meal, tt.now, false); got != tt.want {
				t.Errorf("IsMealRegistrationOpen(%s, %v) = %v, muốn %v", tt.meal, tt.now, got, tt.want)
			}
		})
	}
}

// Đã đóng thì không mở lại trong cùng ngày: true không bao giờ xuất hiện
// sau false khi quét giờ tăng dần.
func TestIsMealRegistrationOpen_MonotoneWithinDay(t *testing.T) {
	for _, meal := range model.MealTypes {
		closed := false
		for hour := 0; hour < 24; hour++ {
			open := IsMealRegistrationOpen(meal, at(hour, 0), false)
			if closed && open {
				t.Errorf("%s: mở lại lúc %02d:00 sau khi đã đóng", meal, hour)
			}
			if !open {
				closed = true
			}
		}
		if !closed {
			t.Errorf("%s: không bao giờ đóng trong ngày", meal)
		}
	}
}

func TestIsMealRegistrationOpen_AdminBypass(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for _, meal := range model.MealTypes {
			if !IsMealRegistrationOpen(meal, at(hour, 0), true) {
				t.Fatalf("admin bị chặn %s lúc %02d:00", meal, hour)
			}
		}
	}
}

func TestMinutesUntilCutoff(t *testing.T) {
	tests := []struct {
		name string
		meal string
		now  time.Time
		want int
	}{
		{"trưa lúc 07:00 còn 60 phút", model.MealLunch, at(7, 0), 60},
		{"trưa lúc 07:30 còn 30 phút", model.MealLunch, at(7, 30), 30},
		{"đã đóng thì 0", model.MealLunch, at(9, 0), 0},
		{"sáng lúc 20:00 còn 120 phút", model.MealBreakfast, at(20, 0), 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinutesUntilCutoff(tt.meal, tt.now); got != tt.want {
				t.Errorf("MinutesUntilCutoff = %d, muốn %d", got, tt.want)
			}
		})
	}
}

func TestIsNearDeadline(t *testing.T) {
	if !IsNearDeadline(model.MealLunch, at(7, 15)) {
		t.Error("07:15 còn 45 phút tới chốt trưa, phải là near-deadline")
	}
	if IsNearDeadline(model.MealLunch, at(6, 30)) {
		t.Error("06:30 còn 90 phút, chưa phải near-deadline")
	}
	if IsNearDeadline(model.MealLunch, at(8, 30)) {
		t.Error("đã đóng thì không near-deadline")
	}
}

func TestReportDateForMeal_BreakfastOffset(t *testing.T) {
	mealDay := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	got := ReportDateForMeal(model.MealBreakfast, mealDay)
	if want := mealDay.AddDate(0, 0, -1); !got.Equal(want) {
		t.Errorf("bữa sáng ăn 15/3 phải lưu dưới report.date 14/3, got %v", got)
	}

	for _, meal := range []string{model.MealLunch, model.MealDinner} {
		if got := ReportDateForMeal(meal, mealDay); !got.Equal(mealDay) {
			t.Errorf("%s: report.date phải trùng ngày ăn, got %v", meal, got)
		}
	}
}

func TestMealDateForReport_RoundTrip(t *testing.T) {
	day := time.Date(2026, 2, 28, 0, 0, 0, 0, time.Local) // qua ranh giới tháng
	for _, meal := range model.MealTypes {
		back := MealDateForReport(meal, ReportDateForMeal(meal, day))
		if !back.Equal(day) {
			t.Errorf("%s: round-trip %v → %v", meal, day, back)
		}
	}
}

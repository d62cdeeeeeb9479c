package service

import "time"

// Ca trực chạy từ 06:00 hôm nay đến 06:00 hôm sau — không trùng ngày lịch.
const ShiftBoundaryHour = 6

// Số người trực kỳ vọng mỗi ca. Chỉ là mức kỳ vọng cấu hình cho cảnh báo
// "thiếu người" — ít hơn hay nhiều hơn đều là dữ liệu hợp lệ.
const ExpectedDutyHeadcount = 3

type ActiveShift struct {
	// ShiftDate — "ngày trực" của ca đang chạy. Trước 06:00 thì ca của
	// NGÀY HÔM QUA vẫn đang chạy: UI phải tra bảng trực theo ShiftDate,
	// không phải theo ngày lịch hôm nay.
	ShiftDate time.Time `json:"shift_date"`
	ShiftEnd  time.Time `json:"shift_end"`

	RemainingHours   int `json:"remaining_hours"`
	RemainingMinutes int `json:"remaining_minutes"`
}

// ResolveActiveShift — hàm thuần, clock truyền tường minh.
// hour < 6 → ca của hôm qua; ngược lại ca của hôm nay.
// ShiftEnd luôn là ShiftDate+1 lúc 06:00, nên remaining không bao giờ âm.
func ResolveActiveShift(now time.Time) ActiveShift {
	shiftDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if now.Hour() < ShiftBoundaryHour {
		shiftDate = shiftDate.AddDate(0, 0, -1)
	}

	shiftEnd := shiftDate.AddDate(0, 0, 1).Add(ShiftBoundaryHour * time.Hour)

	remaining := shiftEnd.Sub(now)
	if remaining < 0 {
		remaining = 0
	}

	return ActiveShift{
		ShiftDate:        shiftDate,
		ShiftEnd:         shiftEnd,
		RemainingHours:   int(remaining / time.Hour),
		RemainingMinutes: int(remaining/time.Minute) % 60,
	}
}

// ShortStaffedBy — thiếu bao nhiêu người so với mức kỳ vọng (0 khi đủ).
func ShortStaffedBy(entryCount int) int {
	if entryCount >= ExpectedDutyHeadcount {
		return 0
	}
	return ExpectedDutyHeadcount - entryCount
}

// Assignment — một cặp người trực / ngày trực trong lô gán hàng loạt.
type Assignment struct {
	TeacherName string
	DutyDate    time.Time
}

// DedupAssignments bỏ cặp (teacher_name, duty_date) lặp trong cùng một lô,
// giữ lần xuất hiện đầu. Gửi cùng một bảng trực hai lần không được tạo
// bản ghi đôi — trùng với dữ liệu đã lưu do tầng controller tự check.
func DedupAssignments(in []Assignment) []Assignment {
	type pairKey struct {
		name string
		day  string
	}
	seen := make(map[pairKey]struct{}, len(in))
	out := make([]Assignment, 0, len(in))
	for _, a := range in {
		key := pairKey{name: a.TeacherName, day: a.DutyDate.Format("2006-01-02")}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}

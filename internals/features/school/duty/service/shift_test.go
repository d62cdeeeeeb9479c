package service

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestResolveActiveShift_BeforeBoundaryBelongsToYesterday(t *testing.T) {
	// 05:59 ngày 15 → vẫn là ca của ngày 14
	now := time.Date(2026, 3, 15, 5, 59, 0, 0, time.Local)
	shift := ResolveActiveShift(now)

	if !shift.ShiftDate.Equal(date(2026, 3, 14)) {
		t.Fatalf("ShiftDate = %v, muốn 2026-03-14", shift.ShiftDate)
	}
	want := time.Date(2026, 3, 15, 6, 0, 0, 0, time.Local)
	if !shift.ShiftEnd.Equal(want) {
		t.Fatalf("ShiftEnd = %v, muốn %v", shift.ShiftEnd, want)
	}
	if shift.RemainingHours != 0 || shift.RemainingMinutes != 1 {
		t.Fatalf("remaining = %dh%dm, muốn 0h1m", shift.RemainingHours, shift.RemainingMinutes)
	}
}

func TestResolveActiveShift_AtBoundaryStartsNewShift(t *testing.T) {
	// Đúng 06:00 ngày 15 → ca mới của ngày 15, còn tròn 24h
	now := time.Date(2026, 3, 15, 6, 0, 0, 0, time.Local)
	shift := ResolveActiveShift(now)

	if !shift.ShiftDate.Equal(date(2026, 3, 15)) {
		t.Fatalf("ShiftDate = %v, muốn 2026-03-15", shift.ShiftDate)
	}
	want := time.Date(2026, 3, 16, 6, 0, 0, 0, time.Local)
	if !shift.ShiftEnd.Equal(want) {
		t.Fatalf("ShiftEnd = %v, muốn %v", shift.ShiftEnd, want)
	}
	if shift.RemainingHours != 24 || shift.RemainingMinutes != 0 {
		t.Fatalf("remaining = %dh%dm, muốn 24h0m", shift.RemainingHours, shift.RemainingMinutes)
	}
}

func TestResolveActiveShift_Table(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantShift time.Time
	}{
		{"nửa đêm", time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local), date(2026, 3, 14)},
		{"3 giờ sáng", time.Date(2026, 3, 15, 3, 30, 0, 0, time.Local), date(2026, 3, 14)},
		{"giữa trưa", time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local), date(2026, 3, 15)},
		{"23 giờ", time.Date(2026, 3, 15, 23, 59, 0, 0, time.Local), date(2026, 3, 15)},
		{"qua đầu tháng", time.Date(2026, 4, 1, 2, 0, 0, 0, time.Local), date(2026, 3, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shift := ResolveActiveShift(tt.now)
			if !shift.ShiftDate.Equal(tt.wantShift) {
				t.Errorf("ShiftDate = %v, muốn %v", shift.ShiftDate, tt.wantShift)
			}
			if shift.RemainingHours < 0 || shift.RemainingMinutes < 0 {
				t.Errorf("remaining âm: %dh%dm", shift.RemainingHours, shift.RemainingMinutes)
			}
			if !shift.ShiftEnd.Equal(shift.ShiftDate.AddDate(0, 0, 1).Add(6 * time.Hour)) {
				t.Errorf("ShiftEnd = %v không khớp ShiftDate+1 06:00", shift.ShiftEnd)
			}
		})
	}
}

func TestDedupAssignments(t *testing.T) {
	d1, d2 := date(2026, 3, 15), date(2026, 3, 16)

	got := DedupAssignments([]Assignment{
		{TeacherName: "Thầy Nam", DutyDate: d1},
		{TeacherName: "Thầy Nam", DutyDate: d1}, // lặp y hệt
		{TeacherName: "Thầy Nam", DutyDate: d2}, // cùng tên, khác ngày
		{TeacherName: "Cô Hoa", DutyDate: d1},
	})
	if len(got) != 3 {
		t.Fatalf("len = %d, muốn 3", len(got))
	}
	if got[0].TeacherName != "Thầy Nam" || !got[0].DutyDate.Equal(d1) {
		t.Error("phải giữ lần xuất hiện đầu tiên")
	}
}

func TestDedupAssignments_Empty(t *testing.T) {
	if got := DedupAssignments(nil); len(got) != 0 {
		t.Errorf("lô rỗng phải ra rỗng, got %d", len(got))
	}
}

func TestShortStaffedBy(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{0, 3},
		{1, 2},
		{2, 1},
		{3, 0},
		{5, 0},
	}
	for _, tt := range tests {
		if got := ShortStaffedBy(tt.count); got != tt.want {
			t.Errorf("ShortStaffedBy(%d) = %d, muốn %d", tt.count, got, tt.want)
		}
	}
}

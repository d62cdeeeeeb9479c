package service

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"noitru_backend/internals/features/school/attendance/model"
	studentModel "noitru_backend/internals/features/school/students/model"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.Local)
}

func boardingRoster(classA, classB uuid.UUID) []studentModel.StudentModel {
	roster := []studentModel.StudentModel{}
	for i := 0; i < 25; i++ {
		roster = append(roster, studentModel.StudentModel{
			ID: uuid.New(), Name: "A", ClassID: classA, MealGroup: studentModel.MealGroupM1,
		})
	}
	for i := 0; i < 15; i++ {
		roster = append(roster, studentModel.StudentModel{
			ID: uuid.New(), Name: "B", ClassID: classB, MealGroup: studentModel.MealGroupM2,
		})
	}
	return roster
}

func mealReport(date time.Time, mealType string, classID *uuid.UUID, absent []model.AbsentEntry, createdAt time.Time) model.AttendanceReport {
	return model.AttendanceReport{
		ID:             uuid.New(),
		Date:           date,
		Type:           model.ReportTypeMeal,
		MealType:       mealType,
		ClassID:        classID,
		AbsentStudents: datatypes.NewJSONSlice(absent),
		CreatedAt:      createdAt,
	}
}

func absentEntry(s studentModel.StudentModel) model.AbsentEntry {
	return model.AbsentEntry{
		StudentID: s.ID, Name: s.Name, ClassID: s.ClassID,
		MealGroup: s.MealGroup, Permission: model.PermissionUnexcused,
	}
}

func TestRiceKg(t *testing.T) {
	// 40 suất trưa + 35 suất tối → 15.0 kg
	if got := RiceKg(40, 35); math.Abs(got-15.0) > 1e-9 {
		t.Errorf("RiceKg(40, 35) = %v, muốn 15.0", got)
	}
	if got := RiceKg(0, 0); got != 0 {
		t.Errorf("RiceKg(0, 0) = %v", got)
	}
}

func TestMealSliceStats_PresentDerivedFromRoster(t *testing.T) {
	classA, classB := uuid.New(), uuid.New()
	roster := boardingRoster(classA, classB)

	reports := []model.AttendanceReport{
		mealReport(day(15), model.MealLunch, &classA,
			[]model.AbsentEntry{absentEntry(roster[0]), absentEntry(roster[1])}, day(15).Add(7*time.Hour)),
	}

	stats := MealSliceStats(reports, roster, day(15), model.MealLunch)
	if stats.Total != 40 || stats.Absent != 2 || stats.Present != 38 {
		t.Errorf("total/absent/present = %d/%d/%d, muốn 40/2/38", stats.Total, stats.Absent, stats.Present)
	}
	if !stats.HasReports {
		t.Error("đã có report thì has_reports phải true")
	}
}

// Bữa sáng ăn ngày D đọc từ report có date = D-1.
func TestMealSliceStats_BreakfastReadsPreviousDay(t *testing.T) {
	classA, classB := uuid.New(), uuid.New()
	roster := boardingRoster(classA, classB)

	reports := []model.AttendanceReport{
		mealReport(day(14), model.MealBreakfast, nil,
			[]model.AbsentEntry{absentEntry(roster[3])}, day(14).Add(20*time.Hour)),
	}

	eatDay := MealSliceStats(reports, roster, day(15), model.MealBreakfast)
	if !eatDay.HasReports || eatDay.Absent != 1 {
		t.Errorf("bữa sáng 15/3 phải đọc report 14/3: has=%v absent=%d", eatDay.HasReports, eatDay.Absent)
	}

	// ngày 14 (ngày lưu report) KHÔNG được tính là ngày ăn của report này
	storeDay := MealSliceStats(reports, roster, day(14), model.MealBreakfast)
	if storeDay.HasReports {
		t.Error("report 14/3 là của bữa sáng 15/3, không phải 14/3")
	}
}

// Trùng slot cùng phạm vi lớp: report mới hơn thắng, không merge.
func TestMealSliceStats_MostRecentWinsPerScope(t *testing.T) {
	classA, classB := uuid.New(), uuid.New()
	roster := boardingRoster(classA, classB)

	old := mealReport(day(15), model.MealDinner, &classA,
		[]model.AbsentEntry{absentEntry(roster[0]), absentEntry(roster[1]), absentEntry(roster[2])},
		day(15).Add(10*time.Hour))
	newer := mealReport(day(15), model.MealDinner, &classA,
		[]model.AbsentEntry{absentEntry(roster[5])},
		day(15).Add(14*time.Hour))
	otherScope := mealReport(day(15), model.MealDinner, &classB,
		[]model.AbsentEntry{absentEntry(roster[30])},
		day(15).Add(9*time.Hour))

	stats := MealSliceStats([]model.AttendanceReport{old, newer, otherScope}, roster, day(15), model.MealDinner)

	// report mới của lớp A thay thế hẳn report cũ (1 vắng), lớp B giữ nguyên (1 vắng)
	if stats.Absent != 2 {
		t.Errorf("absent = %d, muốn 2 (report cũ lớp A phải bị thay thế)", stats.Absent)
	}
	for _, e := range stats.AbsentStudents {
		if e.StudentID == roster[0].ID {
			t.Error("học sinh trong report cũ bị thay thế không được xuất hiện")
		}
	}
}

func TestMealSliceStats_MealGroupBreakdownForLunchOnly(t *testing.T) {
	classA, classB := uuid.New(), uuid.New()
	roster := boardingRoster(classA, classB)

	lunchReports := []model.AttendanceReport{
		mealReport(day(15), model.MealLunch, nil,
			[]model.AbsentEntry{absentEntry(roster[0])}, day(15).Add(7*time.Hour)),
	}
	lunch := MealSliceStats(lunchReports, roster, day(15), model.MealLunch)
	if len(lunch.MealGroups) != 2 {
		t.Fatalf("trưa phải có breakdown theo mâm, got %d nhóm", len(lunch.MealGroups))
	}
	for _, g := range lunch.MealGroups {
		switch g.MealGroup {
		case studentModel.MealGroupM1:
			if g.Total != 25 || g.Absent != 1 || g.Present != 24 {
				t.Errorf("M1: %+v", g)
			}
		case studentModel.MealGroupM2:
			if g.Total != 15 || g.Absent != 0 {
				t.Errorf("M2: %+v", g)
			}
		}
	}

	bfReports := []model.AttendanceReport{
		mealReport(day(14), model.MealBreakfast, nil, nil, day(14).Add(20*time.Hour)),
	}
	breakfast := MealSliceStats(bfReports, roster, day(15), model.MealBreakfast)
	if breakfast.MealGroups != nil {
		t.Error("bữa sáng đi theo lớp, không có breakdown theo mâm")
	}
}

// Chưa có report nào: tổng về 0 hết (không được coi cả trường có mặt đủ),
// nhưng mọi lớp có học sinh vẫn bị liệt kê là chưa báo.
func TestMealSliceStats_NoReports(t *testing.T) {
	classA, classB := uuid.New(), uuid.New()
	roster := boardingRoster(classA, classB)

	stats := MealSliceStats(nil, roster, day(15), model.MealLunch)
	if stats.HasReports {
		t.Error("has_reports phải false")
	}
	if stats.Total != 0 || stats.Present != 0 || stats.Absent != 0 {
		t.Errorf("chưa ai báo thì total/present/absent phải 0/0/0, got %d/%d/%d",
			stats.Total, stats.Present, stats.Absent)
	}
	if len(stats.MissingClassIDs) != 2 {
		t.Errorf("cả 2 lớp phải nằm trong missing_class_ids, got %d", len(stats.MissingClassIDs))
	}
	if len(stats.Classes) != 2 {
		t.Fatalf("breakdown lớp không được rỗng, got %d", len(stats.Classes))
	}
	for _, c := range stats.Classes {
		if c.HasReports {
			t.Errorf("lớp %s không thể has_reports khi chưa ai báo", c.ClassID)
		}
		if c.Present != 0 {
			t.Errorf("lớp %s chưa báo thì present phải 0, got %d", c.ClassID, c.Present)
		}
		if c.Total == 0 {
			t.Errorf("lớp %s vẫn phải hiện sĩ số ghi danh", c.ClassID)
		}
	}
}

// Bữa không ai báo không được góp suất ảo vào lượng gạo.
func TestDailyMealStats_UnreportedMealContributesNoRice(t *testing.T) {
	classA, classB := uuid.New(), uuid.New()
	roster := boardingRoster(classA, classB) // 40 học sinh

	// chỉ có report trưa (đủ 40 suất), tối không ai báo
	reports := []model.AttendanceReport{
		mealReport(day(15), model.MealLunch, nil, nil, day(15).Add(7*time.Hour)),
	}

	stats := DailyMealStats(reports, roster, day(15))
	if stats.Lunch.Present != 40 {
		t.Fatalf("lunch present = %d", stats.Lunch.Present)
	}
	if stats.Dinner.HasReports || stats.Dinner.Present != 0 {
		t.Fatalf("dinner chưa báo: has=%v present=%d", stats.Dinner.HasReports, stats.Dinner.Present)
	}
	// chỉ 40 suất trưa × 0.2
	if math.Abs(stats.RiceKg-8.0) > 1e-9 {
		t.Errorf("rice_kg = %v, muốn 8.0", stats.RiceKg)
	}
}

func TestAttendanceSliceStats_SessionFilter(t *testing.T) {
	classA, classB := uuid.New(), uuid.New()
	roster := boardingRoster(classA, classB)

	nap := model.AttendanceReport{
		ID: uuid.New(), Date: day(15), Type: model.ReportTypeBoarding,
		Session:        model.SessionNoonNap,
		AbsentStudents: datatypes.NewJSONSlice([]model.AbsentEntry{absentEntry(roster[2])}),
		CreatedAt:      day(15).Add(13 * time.Hour),
	}
	sleep := model.AttendanceReport{
		ID: uuid.New(), Date: day(15), Type: model.ReportTypeBoarding,
		Session:        model.SessionEveningSleep,
		AbsentStudents: datatypes.NewJSONSlice([]model.AbsentEntry{absentEntry(roster[4]), absentEntry(roster[6])}),
		CreatedAt:      day(15).Add(22 * time.Hour),
	}

	stats := AttendanceSliceStats([]model.AttendanceReport{nap, sleep}, roster, day(15), model.ReportTypeBoarding, model.SessionNoonNap)
	if stats.Absent != 1 {
		t.Errorf("chỉ report trưa được tính, absent = %d", stats.Absent)
	}
	if stats.Session != model.SessionNoonNap {
		t.Errorf("session = %q", stats.Session)
	}
}

func TestDailyMealStats_RiceFromLunchAndDinner(t *testing.T) {
	classA, classB := uuid.New(), uuid.New()
	roster := boardingRoster(classA, classB) // 40 học sinh

	reports := []model.AttendanceReport{
		// trưa: vắng 0 → 40 suất; tối: vắng 5 → 35 suất
		mealReport(day(15), model.MealLunch, nil, nil, day(15).Add(7*time.Hour)),
		mealReport(day(15), model.MealDinner, nil, []model.AbsentEntry{
			absentEntry(roster[0]), absentEntry(roster[1]), absentEntry(roster[2]),
			absentEntry(roster[3]), absentEntry(roster[4]),
		}, day(15).Add(14*time.Hour)),
	}

	stats := DailyMealStats(reports, roster, day(15))
	if stats.Lunch.Present != 40 || stats.Dinner.Present != 35 {
		t.Fatalf("lunch/dinner present = %d/%d", stats.Lunch.Present, stats.Dinner.Present)
	}
	if math.Abs(stats.RiceKg-15.0) > 1e-9 {
		t.Errorf("rice_kg = %v, muốn 15.0 (bữa sáng không tính gạo)", stats.RiceKg)
	}
}

func TestAggregateMeals_Range(t *testing.T) {
	classA, classB := uuid.New(), uuid.New()
	roster := boardingRoster(classA, classB)

	reports := []model.AttendanceReport{
		mealReport(day(10), model.MealLunch, nil, nil, day(10).Add(7*time.Hour)),
		mealReport(day(11), model.MealLunch, nil, nil, day(11).Add(7*time.Hour)),
	}

	out := AggregateMeals(reports, roster, DateRange{Start: day(10), End: day(12)})
	if len(out.Days) != 3 {
		t.Fatalf("khoảng 10..12 bao gồm hai đầu phải ra 3 ngày, got %d", len(out.Days))
	}
	// 2 ngày × 40 suất trưa × 0.2
	if math.Abs(out.TotalRiceKg-16.0) > 1e-9 {
		t.Errorf("total_rice_kg = %v, muốn 16.0", out.TotalRiceKg)
	}
}

func TestAggregateMeals_EmptyRange(t *testing.T) {
	out := AggregateMeals(nil, nil, DateRange{Start: day(15), End: day(10)})
	if len(out.Days) != 0 {
		t.Errorf("End trước Start phải ra 0 ngày, got %d", len(out.Days))
	}
	if out.TotalRiceKg != 0 {
		t.Errorf("total_rice_kg = %v", out.TotalRiceKg)
	}
}

func TestDateRange_InRange(t *testing.T) {
	rng := DateRange{Start: day(10), End: day(12)}
	tests := []struct {
		d    time.Time
		want bool
	}{
		{day(9), false},
		{day(10), true},
		{day(11), true},
		{day(12), true},
		{day(13), false},
		{day(12).Add(23 * time.Hour), true}, // cùng ngày lịch với End
	}
	for _, tt := range tests {
		if got := rng.InRange(tt.d); got != tt.want {
			t.Errorf("InRange(%v) = %v, muốn %v", tt.d, got, tt.want)
		}
	}
}

package service

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"noitru_backend/internals/features/school/attendance/model"
	studentModel "noitru_backend/internals/features/school/students/model"
)

// Định mức gạo mỗi suất ăn trưa/tối (kg).
const riceKgPerServing = 0.2

// DateRange — khoảng ngày lịch, bao gồm cả hai đầu.
type DateRange struct {
	Start time.Time
	End   time.Time
}

type ClassBreakdown struct {
	ClassID    uuid.UUID `json:"class_id"`
	Total      int       `json:"total"`
	Present    int       `json:"present"`
	Absent     int       `json:"absent"`
	HasReports bool      `json:"has_reports"`
}

type MealGroupBreakdown struct {
	MealGroup string `json:"meal_group"`
	Total     int    `json:"total"`
	Present   int    `json:"present"`
	Absent    int    `json:"absent"`
}

// SliceStats — kết quả một lát cắt (một ngày × một bữa hoặc một session).
// Present luôn được suy ra bằng phép trừ từ roster, không bao giờ đếm
// trực tiếp "người có mặt" từ báo cáo (báo cáo chỉ liệt kê người vắng).
// Lát chưa có report nào thì total/present/absent đều 0: chưa ai xác nhận
// thì không được tính là có mặt đủ.
type SliceStats struct {
	Date     time.Time `json:"date"` // ngày ăn / ngày điểm danh thực tế
	Type     string    `json:"type"`
	MealType string    `json:"meal_type,omitempty"`
	Session  string    `json:"session,omitempty"`

	HasReports bool `json:"has_reports"`
	Total      int  `json:"total"`
	Present    int  `json:"present"`
	Absent     int  `json:"absent"`

	AbsentStudents []model.AbsentEntry  `json:"absent_students"`
	Classes        []ClassBreakdown     `json:"classes"`
	MealGroups     []MealGroupBreakdown `json:"meal_groups,omitempty"`

	// Lớp "chưa báo" theo heuristic: không report nào của lát cắt này tham
	// chiếu lớp đó (qua class_id hoặc qua snapshot học sinh vắng). Lớp đủ
	// sĩ số nhưng được gộp trong report toàn trường có thể bị xếp nhầm vào
	// đây — chấp nhận, vì dữ liệu không ghi nhận "lớp X xác nhận đủ".
	MissingClassIDs []uuid.UUID `json:"missing_class_ids"`
}

// DayMealStats — ba bữa của một ngày ăn + lượng gạo cần.
type DayMealStats struct {
	Date      time.Time  `json:"date"`
	Breakfast SliceStats `json:"breakfast"`
	Lunch     SliceStats `json:"lunch"`
	Dinner    SliceStats `json:"dinner"`
	RiceKg    float64    `json:"rice_kg"`
}

type RangeMealStats struct {
	Start       time.Time      `json:"start"`
	End         time.Time      `json:"end"`
	Days        []DayMealStats `json:"days"`
	TotalRiceKg float64        `json:"total_rice_kg"`
}

// RiceKg — lượng gạo (kg) cho một ngày: (suất trưa + suất tối) × 0.2.
// Đại lượng dẫn xuất, tính lại lúc đọc, không bao giờ lưu.
func RiceKg(lunchPresent, dinnerPresent int) float64 {
	return float64(lunchPresent+dinnerPresent) * riceKgPerServing
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// InRange: Start <= d <= End theo ngày lịch.
func (r DateRange) InRange(d time.Time) bool {
	if sameDay(d, r.Start) || sameDay(d, r.End) {
		return true
	}
	return d.After(r.Start) && d.Before(r.End)
}

// pickWinners chọn report hiệu lực cho một lát cắt: hai người báo trùng slot
// không được merge — report mới hơn (created_at) thắng trong cùng phạm vi
// class_id, report cũ âm thầm bị thay thế. Phạm vi khác nhau (từng lớp /
// toàn trường) tồn tại song song.
func pickWinners(candidates []model.AttendanceReport) []model.AttendanceReport {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})

	type scopeKey string
	seen := make(map[scopeKey]struct{})
	winners := make([]model.AttendanceReport, 0, len(candidates))
	for _, r := range candidates {
		key := scopeKey("")
		if r.ClassID != nil {
			key = scopeKey(r.ClassID.String())
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		winners = append(winners, r)
	}
	return winners
}

// MealSliceStats tổng hợp một bữa của một NGÀY ĂN. Phép lệch bữa sáng được
// áp ngay tại đây: bữa sáng ngày D đọc report có date = D-1 — mọi entry
// point (thống kê ngày, xuất tuần/tháng, nhắc nhở) đều đi qua hàm này nên
// phép lệch luôn nhất quán.
func MealSliceStats(reports []model.AttendanceReport, roster []studentModel.StudentModel, mealDate time.Time, mealType string) SliceStats {
	reportDate := ReportDateForMeal(mealType, mealDate)

	var candidates []model.AttendanceReport
	for _, r := range reports {
		if r.Type == model.ReportTypeMeal && r.MealType == mealType && sameDay(r.Date, reportDate) {
			candidates = append(candidates, r)
		}
	}

	return buildSlice(SliceStats{
		Date:     mealDate,
		Type:     model.ReportTypeMeal,
		MealType: mealType,
	}, pickWinners(candidates), roster, mealType != model.MealBreakfast)
}

// AttendanceSliceStats tổng hợp một lát điểm danh tự học / nội trú theo ngày.
func AttendanceSliceStats(reports []model.AttendanceReport, roster []studentModel.StudentModel, date time.Time, reportType, session string) SliceStats {
	var candidates []model.AttendanceReport
	for _, r := range reports {
		if r.Type != reportType || !sameDay(r.Date, date) {
			continue
		}
		if reportType == model.ReportTypeBoarding && r.Session != session {
			continue
		}
		candidates = append(candidates, r)
	}

	return buildSlice(SliceStats{
		Date:    date,
		Type:    reportType,
		Session: session,
	}, pickWinners(candidates), roster, false)
}

func buildSlice(base SliceStats, winners []model.AttendanceReport, roster []studentModel.StudentModel, byMealGroup bool) SliceStats {
	stats := base
	stats.Total = len(roster)
	stats.AbsentStudents = []model.AbsentEntry{}
	stats.HasReports = len(winners) > 0

	absentByStudent := make(map[uuid.UUID]model.AbsentEntry)
	reportedClasses := make(map[uuid.UUID]struct{})
	for _, r := range winners {
		if r.ClassID != nil {
			reportedClasses[*r.ClassID] = struct{}{}
		}
		for _, e := range r.AbsentStudents {
			if _, dup := absentByStudent[e.StudentID]; !dup {
				absentByStudent[e.StudentID] = e
				reportedClasses[e.ClassID] = struct{}{}
			}
		}
	}

	for _, e := range absentByStudent {
		stats.AbsentStudents = append(stats.AbsentStudents, e)
	}
	sort.Slice(stats.AbsentStudents, func(i, j int) bool {
		return stats.AbsentStudents[i].Name < stats.AbsentStudents[j].Name
	})

	stats.Absent = len(stats.AbsentStudents)
	stats.Present = stats.Total - stats.Absent

	// Chưa ai báo lát cắt này thì không được coi cả trường có mặt đủ:
	// tổng về 0 hết (gạo cũng vậy), chỉ breakdown lớp còn giữ để liệt kê
	// đủ danh sách lớp chưa báo.
	if !stats.HasReports {
		stats.Total = 0
		stats.Present = 0
		stats.Absent = 0
	}

	// breakdown theo lớp (luôn có): vắng tính theo snapshot, có mặt theo trừ
	absentPerClass := make(map[uuid.UUID]int)
	for _, e := range absentByStudent {
		absentPerClass[e.ClassID]++
	}
	classTotals := make(map[uuid.UUID]int)
	classOrder := []uuid.UUID{}
	for _, s := range roster {
		if _, ok := classTotals[s.ClassID]; !ok {
			classOrder = append(classOrder, s.ClassID)
		}
		classTotals[s.ClassID]++
	}
	stats.Classes = make([]ClassBreakdown, 0, len(classOrder))
	stats.MissingClassIDs = []uuid.UUID{}
	for _, classID := range classOrder {
		_, reported := reportedClasses[classID]
		total := classTotals[classID]
		absent := absentPerClass[classID]
		present := total - absent
		if !stats.HasReports {
			// mọi lớp có học sinh đều "chưa báo", sĩ số có mặt chưa xác nhận
			present = 0
		}
		stats.Classes = append(stats.Classes, ClassBreakdown{
			ClassID:    classID,
			Total:      total,
			Present:    present,
			Absent:     absent,
			HasReports: reported,
		})
		if !reported {
			stats.MissingClassIDs = append(stats.MissingClassIDs, classID)
		}
	}

	// breakdown theo mâm cho bữa trưa/tối (bữa sáng đi theo lớp);
	// chưa có report thì không có gì để chia theo mâm
	if byMealGroup && stats.HasReports {
		absentPerGroup := make(map[string]int)
		for _, e := range absentByStudent {
			absentPerGroup[e.MealGroup]++
		}
		groupTotals := make(map[string]int)
		for _, s := range roster {
			if s.MealGroup != "" {
				groupTotals[s.MealGroup]++
			}
		}
		stats.MealGroups = make([]MealGroupBreakdown, 0, len(studentModel.MealGroups))
		for _, g := range studentModel.MealGroups {
			if groupTotals[g] == 0 && absentPerGroup[g] == 0 {
				continue
			}
			stats.MealGroups = append(stats.MealGroups, MealGroupBreakdown{
				MealGroup: g,
				Total:     groupTotals[g],
				Present:   groupTotals[g] - absentPerGroup[g],
				Absent:    absentPerGroup[g],
			})
		}
	}

	return stats
}

// DailyMealStats — ba bữa của một ngày ăn + gạo.
func DailyMealStats(reports []model.AttendanceReport, roster []studentModel.StudentModel, date time.Time) DayMealStats {
	breakfast := MealSliceStats(reports, roster, date, model.MealBreakfast)
	lunch := MealSliceStats(reports, roster, date, model.MealLunch)
	dinner := MealSliceStats(reports, roster, date, model.MealDinner)

	return DayMealStats{
		Date:      date,
		Breakfast: breakfast,
		Lunch:     lunch,
		Dinner:    dinner,
		RiceKg:    RiceKg(lunch.Present, dinner.Present),
	}
}

// AggregateMeals tổng hợp toàn khoảng ngày (bao gồm hai đầu). Khoảng rỗng
// (End trước Start) trả về không ngày nào — không panic với bất kỳ input nào.
func AggregateMeals(reports []model.AttendanceReport, roster []studentModel.StudentModel, rng DateRange) RangeMealStats {
	out := RangeMealStats{Start: rng.Start, End: rng.End, Days: []DayMealStats{}}

	for d := rng.Start; !d.After(rng.End); d = d.AddDate(0, 0, 1) {
		day := DailyMealStats(reports, roster, d)
		out.Days = append(out.Days, day)
		out.TotalRiceKg += day.RiceKg
	}
	return out
}

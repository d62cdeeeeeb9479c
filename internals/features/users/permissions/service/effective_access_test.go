package service

import (
	"testing"

	"github.com/google/uuid"

	"noitru_backend/internals/constants"
	"noitru_backend/internals/features/users/permissions/model"
)

func TestResolveEffectiveAccess_UnionPerAction(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()

	direct := []model.UserPermission{
		{UserID: userID, FeatureCode: "meals", CanEdit: true},
	}
	group := []model.GroupPermission{
		{GroupID: groupID, FeatureCode: "meals", CanDelete: true},
	}

	access := ResolveEffectiveAccess([]string{constants.RoleTeacher}, direct, group)

	if access.CanView("meals") {
		t.Error("view chưa cấp ở nguồn nào mà vẫn true")
	}
	if access.CanCreate("meals") {
		t.Error("create chưa cấp ở nguồn nào mà vẫn true")
	}
	if !access.CanEdit("meals") {
		t.Error("edit cấp trực tiếp phải có hiệu lực")
	}
	if !access.CanDelete("meals") {
		t.Error("delete cấp qua group phải có hiệu lực")
	}
}

func TestResolveEffectiveAccess_ConflictingGroupsTakeMorePermissive(t *testing.T) {
	g1, g2 := uuid.New(), uuid.New()
	group := []model.GroupPermission{
		{GroupID: g1, FeatureCode: "students", CanView: true},
		{GroupID: g2, FeatureCode: "students", CanView: false, CanEdit: true},
	}

	access := ResolveEffectiveAccess(nil, nil, group)

	if !access.CanView("students") || !access.CanEdit("students") {
		t.Errorf("hai group xung đột phải lấy phía rộng hơn, got %+v", access.Grants["students"])
	}
}

func TestResolveEffectiveAccess_AdminOverridesEverything(t *testing.T) {
	userID := uuid.New()
	// row toàn false tường minh cũng không hạ được quyền admin
	direct := []model.UserPermission{
		{UserID: userID, FeatureCode: "duty"},
	}

	access := ResolveEffectiveAccess([]string{constants.RoleAdmin}, direct, nil)

	for _, feature := range []string{"duty", "meals", "students", "không-tồn-tại"} {
		if !access.CanView(feature) || !access.CanCreate(feature) ||
			!access.CanEdit(feature) || !access.CanDelete(feature) {
			t.Errorf("admin phải có đủ 4 quyền với feature %q", feature)
		}
	}
}

func TestResolveEffectiveAccess_AllFalseRowEqualsNoRow(t *testing.T) {
	direct := []model.UserPermission{
		{UserID: uuid.New(), FeatureCode: "reports"},
	}

	access := ResolveEffectiveAccess([]string{constants.RoleTeacher}, direct, nil)

	if _, ok := access.Grants["reports"]; ok {
		t.Error("row toàn false phải bị loại khỏi tập grant")
	}
	if access.CanView("reports") {
		t.Error("row toàn false không được cấp quyền gì")
	}
}

func TestResolveEffectiveAccess_EditWithoutViewStillGrantsEdit(t *testing.T) {
	// evaluator không giả định quy ước UI "edit kéo theo view"
	direct := []model.UserPermission{
		{UserID: uuid.New(), FeatureCode: "meals", CanEdit: true, CanView: false},
	}

	access := ResolveEffectiveAccess(nil, direct, nil)

	if !access.CanEdit("meals") {
		t.Error("edit lưu trong DB phải có hiệu lực dù view=false")
	}
	if access.CanView("meals") {
		t.Error("view=false phải giữ nguyên false")
	}
}

func TestCoarseRoleGates(t *testing.T) {
	tests := []struct {
		name           string
		roles          []string
		wantMeals      bool
		wantAttendance bool
	}{
		{"teacher thuần", []string{constants.RoleTeacher}, false, true},
		{"GVCN", []string{constants.RoleClassTeacher}, true, true},
		{"kế toán", []string{constants.RoleAccountant}, true, false},
		{"nhà bếp", []string{constants.RoleKitchen}, true, false},
		{"admin", []string{constants.RoleAdmin}, true, true},
		{"nhiều role", []string{constants.RoleTeacher, constants.RoleKitchen}, true, true},
		{"không role", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access := ResolveEffectiveAccess(tt.roles, nil, nil)
			if got := access.CanAccessMeals(); got != tt.wantMeals {
				t.Errorf("CanAccessMeals() = %v, want %v", got, tt.wantMeals)
			}
			if got := access.CanAccessAttendance(); got != tt.wantAttendance {
				t.Errorf("CanAccessAttendance() = %v, want %v", got, tt.wantAttendance)
			}
		})
	}
}

func TestGrantIsZero(t *testing.T) {
	if !(Grant{}).IsZero() {
		t.Error("Grant rỗng phải IsZero")
	}
	if (Grant{CanDelete: true}).IsZero() {
		t.Error("Grant có delete không phải IsZero")
	}
}

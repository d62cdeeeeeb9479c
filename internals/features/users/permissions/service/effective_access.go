package service

import (
	"noitru_backend/internals/constants"
	"noitru_backend/internals/features/users/permissions/model"
)

// Grant — bốn cờ CRUD cho một feature. Bốn cờ độc lập với nhau:
// UI giữ quy ước "edit kéo theo view" khi soạn quyền, nhưng evaluator
// không giả định điều đó — row lưu can_edit=true, can_view=false vẫn
// cho phép edit đúng như dữ liệu.
type Grant struct {
	CanView   bool `json:"can_view"`
	CanCreate bool `json:"can_create"`
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

// IsZero: row toàn false tương đương "không có grant" — không được lưu
// xuống DB (dedup lúc ghi) và khi đọc cũng xử lý y hệt vắng row.
func (g Grant) IsZero() bool {
	return !g.CanView && !g.CanCreate && !g.CanEdit && !g.CanDelete
}

func (g Grant) union(o Grant) Grant {
	return Grant{
		CanView:   g.CanView || o.CanView,
		CanCreate: g.CanCreate || o.CanCreate,
		CanEdit:   g.CanEdit || o.CanEdit,
		CanDelete: g.CanDelete || o.CanDelete,
	}
}

// EffectiveAccess — tập quyền hiệu lực bất biến của một user, resolve một
// lần cho mỗi phiên và truyền tường minh đến nơi cần (không global state).
type EffectiveAccess struct {
	Roles  []string         `json:"roles"`
	Grants map[string]Grant `json:"grants"`
}

// ResolveEffectiveAccess gộp ba nguồn quyền: role thô, grant trực tiếp
// (user_permissions) và grant qua group (group_permissions của mọi group
// user thuộc về). Luật gộp cho grant: OR theo từng action qua mọi nguồn —
// hai group xung đột thì kết quả là phía rộng hơn.
// Hàm thuần: không I/O, total với mọi input (kể cả roles rỗng, grants rỗng).
func ResolveEffectiveAccess(roles []string, direct []model.UserPermission, group []model.GroupPermission) EffectiveAccess {
	grants := make(map[string]Grant, len(direct)+len(group))

	for _, p := range direct {
		g := Grant{p.CanView, p.CanCreate, p.CanEdit, p.CanDelete}
		grants[p.FeatureCode] = grants[p.FeatureCode].union(g)
	}
	for _, p := range group {
		g := Grant{p.CanView, p.CanCreate, p.CanEdit, p.CanDelete}
		grants[p.FeatureCode] = grants[p.FeatureCode].union(g)
	}

	// row toàn false coi như không tồn tại
	for code, g := range grants {
		if g.IsZero() {
			delete(grants, code)
		}
	}

	out := EffectiveAccess{
		Roles:  make([]string, len(roles)),
		Grants: grants,
	}
	copy(out.Roles, roles)
	return out
}

func (e EffectiveAccess) HasRole(role string) bool {
	for _, r := range e.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin — role admin ghi đè toàn bộ hệ grant chi tiết.
func (e EffectiveAccess) IsAdmin() bool {
	return e.HasRole(constants.RoleAdmin)
}

func (e EffectiveAccess) CanView(feature string) bool {
	if e.IsAdmin() {
		return true
	}
	return e.Grants[feature].CanView
}

func (e EffectiveAccess) CanCreate(feature string) bool {
	if e.IsAdmin() {
		return true
	}
	return e.Grants[feature].CanCreate
}

func (e EffectiveAccess) CanEdit(feature string) bool {
	if e.IsAdmin() {
		return true
	}
	return e.Grants[feature].CanEdit
}

func (e EffectiveAccess) CanDelete(feature string) bool {
	if e.IsAdmin() {
		return true
	}
	return e.Grants[feature].CanDelete
}

// Hai shortcut theo role thô, tách biệt với hệ grant chi tiết và với nhau —
// các phần UI khác nhau hỏi hai cổng này độc lập.

// CanAccessMeals: teacher thuần không có quyền báo cơm mặc định.
func (e EffectiveAccess) CanAccessMeals() bool {
	for _, r := range constants.MealsRoles {
		if e.HasRole(r) {
			return true
		}
	}
	return false
}

func (e EffectiveAccess) CanAccessAttendance() bool {
	for _, r := range constants.AttendanceRoles {
		if e.HasRole(r) {
			return true
		}
	}
	return false
}

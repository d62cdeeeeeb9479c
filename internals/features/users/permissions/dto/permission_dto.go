package dto

import "github.com/google/uuid"

type CreateFeatureRequest struct {
	Code         string `json:"code" validate:"required,min=2,max=50"`
	Label        string `json:"label" validate:"required,max=100"`
	IconName     string `json:"icon_name" validate:"max=50"`
	DisplayOrder int    `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

type UpdateFeatureRequest struct {
	Label        *string `json:"label" validate:"omitempty,max=100"`
	IconName     *string `json:"icon_name" validate:"omitempty,max=50"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description"`
}

type MembershipRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

// SetGrantRequest — bốn cờ gửi nguyên trạng từ màn soạn quyền.
// Quy ước "bật create/edit/delete thì bật view" do UI giữ; server chỉ
// áp luật dedup: cả bốn false thì xóa row thay vì lưu.
type SetGrantRequest struct {
	FeatureCode string `json:"feature_code" validate:"required,min=2,max=50"`
	CanView     bool   `json:"can_view"`
	CanCreate   bool   `json:"can_create"`
	CanEdit     bool   `json:"can_edit"`
	CanDelete   bool   `json:"can_delete"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// AppFeature — danh mục các khu vực chức năng có thể phân quyền.
// Code là khóa ổn định ("meals", "students", ...), UI chỉ ẩn feature có
// IsActive=false chứ không xóa grant; grant chỉ bị xóa cascade khi xóa feature.
type AppFeature struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code         string    `gorm:"size:50;unique;not null" json:"code" validate:"required,min=2,max=50"`
	Label        string    `gorm:"size:100;not null" json:"label" validate:"required"`
	IconName     string    `gorm:"size:50" json:"icon_name"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AppFeature) TableName() string { return "app_features" }

type PermissionGroup struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"size:100;unique;not null" json:"name" validate:"required,min=2,max=100"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PermissionGroup) TableName() string { return "permission_groups" }

// GroupPermission — grant CRUD theo (group, feature).
type GroupPermission struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	GroupID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_group_feature" json:"group_id"`
	FeatureCode string    `gorm:"size:50;not null;uniqueIndex:idx_group_feature" json:"feature_code"`
	CanView     bool      `gorm:"not null;default:false" json:"can_view"`
	CanCreate   bool      `gorm:"not null;default:false" json:"can_create"`
	CanEdit     bool      `gorm:"not null;default:false" json:"can_edit"`
	CanDelete   bool      `gorm:"not null;default:false" json:"can_delete"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (GroupPermission) TableName() string { return "group_permissions" }

// UserPermission — grant CRUD trực tiếp theo (user, feature), không qua group.
type UserPermission struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_feature" json:"user_id"`
	FeatureCode string    `gorm:"size:50;not null;uniqueIndex:idx_user_feature" json:"feature_code"`
	CanView     bool      `gorm:"not null;default:false" json:"can_view"`
	CanCreate   bool      `gorm:"not null;default:false" json:"can_create"`
	CanEdit     bool      `gorm:"not null;default:false" json:"can_edit"`
	CanDelete   bool      `gorm:"not null;default:false" json:"can_delete"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserPermission) TableName() string { return "user_permissions" }

type UserGroupMembership struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_group" json:"user_id"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_group" json:"group_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (UserGroupMembership) TableName() string { return "user_group_memberships" }

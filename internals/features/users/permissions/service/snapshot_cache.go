package service

import (
	"context"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"noitru_backend/internals/features/users/permissions/model"
	userModel "noitru_backend/internals/features/users/user/model"
)

const snapshotTTL = 15 * time.Minute

func snapshotKey(userID uuid.UUID) string {
	return "perm:snapshot:" + userID.String()
}

// LoadEffectiveAccess trả về tập quyền hiệu lực của user, ưu tiên cache.
// rdb có thể nil (Redis tắt) — khi đó luôn resolve từ DB.
// Cache bị xóa chủ động mỗi khi roles/grant/membership của user thay đổi.
func LoadEffectiveAccess(ctx context.Context, db *gorm.DB, rdb *redis.Client, userID uuid.UUID) (EffectiveAccess, error) {
	if rdb != nil {
		if raw, err := rdb.Get(ctx, snapshotKey(userID)).Bytes(); err == nil {
			var cached EffectiveAccess
			if err := sonic.Unmarshal(raw, &cached); err == nil {
				if cached.Grants == nil {
					cached.Grants = map[string]Grant{}
				}
				return cached, nil
			}
		}
	}

	access, err := resolveFromDB(db, userID)
	if err != nil {
		return EffectiveAccess{Grants: map[string]Grant{}}, err
	}

	if rdb != nil {
		if raw, err := sonic.Marshal(access); err == nil {
			if err := rdb.Set(ctx, snapshotKey(userID), raw, snapshotTTL).Err(); err != nil {
				log.Printf("[WARN] Không ghi được cache quyền: %v", err)
			}
		}
	}
	return access, nil
}

func resolveFromDB(db *gorm.DB, userID uuid.UUID) (EffectiveAccess, error) {
	var user userModel.UserModel
	if err := db.Select("id", "roles").First(&user, "id = ?", userID).Error; err != nil {
		return EffectiveAccess{}, err
	}

	var direct []model.UserPermission
	if err := db.Where("user_id = ?", userID).Find(&direct).Error; err != nil {
		return EffectiveAccess{}, err
	}

	var groupIDs []uuid.UUID
	if err := db.Model(&model.UserGroupMembership{}).
		Where("user_id = ?", userID).
		Pluck("group_id", &groupIDs).Error; err != nil {
		return EffectiveAccess{}, err
	}

	var group []model.GroupPermission
	if len(groupIDs) > 0 {
		if err := db.Where("group_id IN ?", groupIDs).Find(&group).Error; err != nil {
			return EffectiveAccess{}, err
		}
	}

	return ResolveEffectiveAccess(user.Roles, direct, group), nil
}

// InvalidateUser xóa snapshot của một user — gọi sau mọi mutation về
// roles, grant trực tiếp hoặc membership của user đó.
func InvalidateUser(ctx context.Context, rdb *redis.Client, userID uuid.UUID) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, snapshotKey(userID)).Err(); err != nil {
		log.Printf("[WARN] Không xóa được cache quyền user %s: %v", userID, err)
	}
}

// InvalidateGroup xóa snapshot của mọi thành viên group — gọi sau khi
// grant của group hoặc danh sách thành viên thay đổi.
func InvalidateGroup(ctx context.Context, db *gorm.DB, rdb *redis.Client, groupID uuid.UUID) {
	if rdb == nil {
		return
	}
	var userIDs []uuid.UUID
	if err := db.Model(&model.UserGroupMembership{}).
		Where("group_id = ?", groupID).
		Pluck("user_id", &userIDs).Error; err != nil {
		log.Printf("[WARN] Không lấy được thành viên group %s: %v", groupID, err)
		return
	}
	for _, id := range userIDs {
		InvalidateUser(ctx, rdb, id)
	}
}

package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"noitru_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler dọn token_blacklist định kỳ (24h một lần).
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		// TTL từ env (mặc định 7 ngày)
		ttlDays := 7
		if val := os.Getenv("TOKEN_BLACKLIST_TTL_DAYS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil {
				ttlDays = parsed
			}
		}

		for {
			deleteBefore := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)

			var expired []model.TokenBlacklist
			if err := db.
				Where("expired_at < ? AND deleted_at IS NULL", deleteBefore).
				Limit(100).
				Find(&expired).Error; err != nil {
				log.Printf("[CLEANUP ERROR] Không lấy được token hết hạn: %v", err)
			} else if len(expired) > 0 {
				if err := db.Delete(&expired).Error; err != nil {
					log.Printf("[CLEANUP ERROR] Không xóa được token: %v", err)
				} else {
					log.Printf("[CLEANUP] Đã xóa %d token hết hạn", len(expired))
				}
			}

			time.Sleep(24 * time.Hour)
		}
	}()
}

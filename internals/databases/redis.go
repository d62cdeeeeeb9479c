package database

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// RDB là client Redis dùng chung (cache quyền hiệu lực).
// Nil khi REDIS_ADDR không được thiết lập — cache bị tắt, mọi thứ vẫn chạy.
var RDB *redis.Client

func ConnectRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("⚠️ REDIS_ADDR chưa thiết lập, tắt cache quyền.")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	if _, err := RDB.Ping(context.Background()).Result(); err != nil {
		log.Printf("[ERROR] Không kết nối được Redis: %v", err)
		RDB = nil
		return
	}
	log.Println("✅ Redis connected.")
}

package livesession

import (
	"fmt"

	"github.com/SlpAus/clone-pool-backend/internal/platform/database"
)

// PrimeDB 负责自动迁移场次表结构。
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&LiveSession{}); err != nil {
		return fmt.Errorf("无法迁移场次表: %w", err)
	}
	fmt.Println("场次数据库表迁移成功。")
	return nil
}

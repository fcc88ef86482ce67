package revenue

import (
	"fmt"

	"github.com/SlpAus/clone-pool-backend/internal/platform/database"
)

// PrimeDB 负责自动迁移收益台账表结构。
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&RevenueRecord{}); err != nil {
		return fmt.Errorf("无法迁移收益台账表: %w", err)
	}
	fmt.Println("收益台账数据库表迁移成功。")
	return nil
}

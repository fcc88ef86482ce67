package account

import (
	"fmt"

	"github.com/SlpAus/clone-pool-backend/internal/platform/database"
)

// PrimeDB 负责自动迁移账号相关的表结构。
// 只在gorm后端下由启动流程调用。
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Account{}, &AccLog{}); err != nil {
		return fmt.Errorf("无法迁移账号池表: %w", err)
	}
	fmt.Println("账号池数据库表迁移成功。")
	return nil
}

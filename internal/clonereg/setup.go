package clonereg

import (
	"fmt"

	"github.com/SlpAus/clone-pool-backend/internal/platform/database"
)

// PrimeDB 负责自动迁移登记表结构。
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&CloneReg{}); err != nil {
		return fmt.Errorf("无法迁移登记表: %w", err)
	}
	fmt.Println("登记表数据库表迁移成功。")
	return nil
}

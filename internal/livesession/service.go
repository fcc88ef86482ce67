package livesession

import (
	"errors"
	"fmt"

	"github.com/SlpAus/clone-pool-backend/internal/platform/database"
	"gorm.io/gorm"
)

// CreateSession 创建一个新的计价场次。
// 新场次创建后即成为“当前生效”的场次；旧场次保留，不做任何隐式关闭。
func CreateSession(name string, pricePerAccount int) (*LiveSession, error) {
	if pricePerAccount < 0 {
		return nil, errors.New("单价不能为负数")
	}

	session := LiveSession{SessionName: name, PricePerAccount: pricePerAccount}
	if err := database.DB.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("创建场次失败: %w", err)
	}
	return &session, nil
}

// ListSessions 按创建时间倒序返回全部场次。
func ListSessions() ([]LiveSession, error) {
	var sessions []LiveSession
	if err := database.DB.Order("created_at desc, id desc").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("查询场次失败: %w", err)
	}
	return sessions, nil
}

// ActiveSession 返回创建时间最新的场次；不存在任何场次时返回 (nil, nil)。
func ActiveSession(db *gorm.DB) (*LiveSession, error) {
	var session LiveSession
	err := db.Order("created_at desc, id desc").First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询当前场次失败: %w", err)
	}
	return &session, nil
}

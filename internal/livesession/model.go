package livesession

import "time"

// LiveSession 是一个命名的计价场次。
// 当前生效的场次定义为创建时间最新的一条——没有显式的开启/结束标志，
// 也不存在关闭一个场次的操作。
type LiveSession struct {
	ID uint `gorm:"primarykey" json:"id"`

	// SessionName 是操作员给场次起的名字，如 "live1"
	SessionName string `gorm:"size:160;not null" json:"sessionName"`

	// PricePerAccount 是本场次内每个停用账号计入的固定价格，非负
	PricePerAccount int `gorm:"not null" json:"pricePerAccount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

package revenue

import "time"

// RevenueRecord 是收益台账的一条不可变条目。
// 只在主池账号于场次生效期间从可用转为停用时创建，创建后不再修改。
// SessionID/AccountID 仅是id引用：被引用的场次或账号之后被删除时
// 允许悬空，不做级联清理。
type RevenueRecord struct {
	ID uint `gorm:"primarykey" json:"id"`

	// SessionID 指向创建时生效的场次，可能为空
	SessionID *uint `gorm:"index" json:"sessionId"`

	// AccountID 指向被停用的账号
	AccountID uint `gorm:"index" json:"accountId"`

	// PricePerAccount 是创建时刻场次单价的快照
	PricePerAccount int `json:"pricePerAccount"`

	// Revenue 等于创建时刻的单价
	Revenue int `json:"revenue"`

	CreatedAt time.Time `json:"createdAt"`
}

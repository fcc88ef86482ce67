package clonereg

import (
	"time"

	"gorm.io/datatypes"
)

// CloneReg 是手工维护的精选账号登记表。
// 它与状态/收益流程无关，没有状态字段，用户名唯一性独立于两个账号池。
type CloneReg struct {
	ID uint `gorm:"primarykey" json:"id"`

	Username string `gorm:"uniqueIndex;size:160;not null" json:"username"`
	Password string `gorm:"size:160;not null" json:"password"`

	// ChampionList / SkinList 以JSON列存储的有序字符串列表
	ChampionList datatypes.JSONSlice[string] `json:"championList"`
	SkinList     datatypes.JSONSlice[string] `json:"skinList"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

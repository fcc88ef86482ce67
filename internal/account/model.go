package account

import (
	"time"

	"gorm.io/datatypes"
)

// Pool 标识账号所属的池。两个池结构相近，但用户名唯一性各自独立。
type Pool string

const (
	// PoolAccount 是主账号池
	PoolAccount Pool = "account"
	// PoolArchive 是存档池（AccLog），不参与收益结算
	PoolArchive Pool = "acclog"
)

// Account 定义了主账号池在数据库中的持久化模型。
type Account struct {
	ID uint `gorm:"primarykey" json:"id"`

	// Username 是账号的登录名，在本池内唯一
	Username string `gorm:"uniqueIndex;size:160;not null" json:"username"`

	// Password 是账号的明文密码（内部工具，按原样存储）
	Password string `gorm:"size:160;not null" json:"password"`

	// Level 是账号等级，非负
	Level int `gorm:"default:0" json:"level"`

	// Status 表示账号是否可用，true=可用(ON) false=停用(OFF)
	Status bool `gorm:"default:true" json:"status"`

	// Tag 是操作员手工标注的自由文本标签
	Tag string `json:"tag"`

	// ChampionList / SkinList 以JSON列存储的有序字符串列表
	ChampionList datatypes.JSONSlice[string] `json:"championList"`
	SkinList     datatypes.JSONSlice[string] `json:"skinList"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AccLog 定义了存档池的持久化模型。
// 它与Account结构相同，但没有标签和英雄/皮肤列表，唯一性域也相互独立。
type AccLog struct {
	ID uint `gorm:"primarykey" json:"id"`

	Username string `gorm:"uniqueIndex;size:160;not null" json:"username"`
	Password string `gorm:"size:160;not null" json:"password"`
	Level    int    `gorm:"default:0" json:"level"`
	Status   bool   `gorm:"default:true" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Record 是两个池共用的领域记录。仓库接口只操作Record，
// 由具体实现负责与各自的表结构互转。
type Record struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Password     string    `json:"password"`
	Level        int       `json:"level"`
	Status       bool      `json:"status"`
	Tag          string    `json:"tag,omitempty"`
	ChampionList []string  `json:"championList,omitempty"`
	SkinList     []string  `json:"skinList,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Stats 是池的即时统计，每次请求都从持久化集合重新计算。
type Stats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

func accountToRecord(a *Account) Record {
	return Record{
		ID:           a.ID,
		Username:     a.Username,
		Password:     a.Password,
		Level:        a.Level,
		Status:       a.Status,
		Tag:          a.Tag,
		ChampionList: a.ChampionList,
		SkinList:     a.SkinList,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func recordToAccount(r *Record) Account {
	return Account{
		ID:           r.ID,
		Username:     r.Username,
		Password:     r.Password,
		Level:        r.Level,
		Status:       r.Status,
		Tag:          r.Tag,
		ChampionList: datatypes.NewJSONSlice(r.ChampionList),
		SkinList:     datatypes.NewJSONSlice(r.SkinList),
	}
}

func accLogToRecord(a *AccLog) Record {
	return Record{
		ID:        a.ID,
		Username:  a.Username,
		Password:  a.Password,
		Level:     a.Level,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func recordToAccLog(r *Record) AccLog {
	return AccLog{
		ID:       r.ID,
		Username: r.Username,
		Password: r.Password,
		Level:    r.Level,
		Status:   r.Status,
	}
}

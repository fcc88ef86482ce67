package revenue

import (
	"fmt"

	"github.com/SlpAus/clone-pool-backend/internal/livesession"
	"gorm.io/gorm"
)

// Recorder 实现收益归因规则：为每个 可用→停用 的账号登记一条收益。
// 它实现了account.RevenueRecorder，由账号服务在状态变更时调用。
type Recorder struct {
	db *gorm.DB
}

// NewRecorder 创建一个收益登记器。
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// RecordDeactivations 为给定的一批账号各登记一条收益。
// 单价取当前生效场次（创建时间最新的一条）的快照；
// 不存在任何场次时不登记，直接成功返回。
func (r *Recorder) RecordDeactivations(accountIDs []uint) error {
	if len(accountIDs) == 0 {
		return nil
	}

	session, err := livesession.ActiveSession(r.db)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	records := make([]RevenueRecord, 0, len(accountIDs))
	for _, id := range accountIDs {
		sessionID := session.ID
		records = append(records, RevenueRecord{
			SessionID:       &sessionID,
			AccountID:       id,
			PricePerAccount: session.PricePerAccount,
			Revenue:         session.PricePerAccount,
		})
	}

	if err := r.db.Create(&records).Error; err != nil {
		return fmt.Errorf("写入收益台账失败: %w", err)
	}
	return nil
}

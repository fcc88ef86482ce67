package account

import (
	"fmt"
	"time"
)

// Notifier 是状态变更广播的能力抽象。
// 广播是尽力而为的通知，投递不保证、无应答；
// 错过广播的查看端会在下一次完整拉取时自愈。
type Notifier interface {
	PublishStatusChange(pool Pool, ids []uint, status bool, at time.Time)
}

// RevenueRecorder 是收益登记的能力抽象，由revenue模块实现。
type RevenueRecorder interface {
	RecordDeactivations(accountIDs []uint) error
}

// StatusChangeResult 汇总一次状态变更操作的结果。
type StatusChangeResult struct {
	// Updated 是实际写入新状态的记录数
	Updated int64 `json:"updated"`
	// Transitioned 是本次从可用变为停用的记录数，
	// 也是应当产生的收益记录数
	Transitioned int `json:"transitioned"`
}

// Service 封装账号池的业务操作。
// 广播器和收益登记器都是显式注入的依赖，不持有任何隐式全局。
type Service struct {
	repo     Repository
	notifier Notifier
	recorder RevenueRecorder
}

// NewService 创建账号服务。
func NewService(repo Repository, notifier Notifier, recorder RevenueRecorder) *Service {
	return &Service{repo: repo, notifier: notifier, recorder: recorder}
}

// Repo 暴露底层仓库，供导出等只读路径使用。
func (s *Service) Repo() Repository {
	return s.repo
}

// List 分页返回池内记录。
func (s *Service) List(pool Pool, page, pageSize int) ([]Record, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}
	return s.repo.List(pool, (page-1)*pageSize, pageSize)
}

// Stats 即时重算池的统计数据。
func (s *Service) Stats(pool Pool) (Stats, error) {
	return s.repo.Stats(pool)
}

// UpdateStatusByID 更新单条记录的状态。目标不存在时返回ErrNotFound。
func (s *Service) UpdateStatusByID(pool Pool, id uint, status bool) (*StatusChangeResult, error) {
	rec, err := s.repo.GetByID(pool, id)
	if err != nil {
		return nil, err
	}
	return s.applyStatusChange(pool, []Record{*rec}, status)
}

// UpdateStatusByIDs 批量更新选中记录的状态。不存在的id被忽略。
func (s *Service) UpdateStatusByIDs(pool Pool, ids []uint, status bool) (*StatusChangeResult, error) {
	targets, err := s.repo.FindByIDs(pool, ids)
	if err != nil {
		return nil, err
	}
	return s.applyStatusChange(pool, targets, status)
}

// UpdateStatusAll 把整个池更新为给定状态。
func (s *Service) UpdateStatusAll(pool Pool, status bool) (*StatusChangeResult, error) {
	targets, err := s.repo.FindAll(pool)
	if err != nil {
		return nil, err
	}
	return s.applyStatusChange(pool, targets, status)
}

// applyStatusChange 是所有状态变更入口的公共路径。
// 转变判定以更新前的快照为准：只有快照中可用、且本次被置为停用的
// 记录才产生收益登记。收益登记失败只记录日志，状态更新照常上报成功。
func (s *Service) applyStatusChange(pool Pool, targets []Record, status bool) (*StatusChangeResult, error) {
	if len(targets) == 0 {
		return &StatusChangeResult{}, nil
	}

	ids := make([]uint, 0, len(targets))
	transitioning := []uint{}
	for _, rec := range targets {
		ids = append(ids, rec.ID)
		if rec.Status && !status {
			transitioning = append(transitioning, rec.ID)
		}
	}

	updated, err := s.repo.UpdateStatus(pool, ids, status)
	if err != nil {
		return nil, err
	}

	// 收益只在主池的 可用→停用 转变上登记，反向转变永不登记
	if pool == PoolAccount && !status && len(transitioning) > 0 {
		if err := s.recorder.RecordDeactivations(transitioning); err != nil {
			fmt.Printf("警告: 收益登记失败（状态更新不受影响）: %v\n", err)
		}
	}

	s.notifier.PublishStatusChange(pool, ids, status, time.Now())

	return &StatusChangeResult{Updated: updated, Transitioned: len(transitioning)}, nil
}

// UpdateTag 更新单条记录的标签。
func (s *Service) UpdateTag(pool Pool, id uint, tag string) error {
	return s.repo.UpdateTag(pool, id, tag)
}

// DeleteByID 删除单条记录。目标不存在时返回ErrNotFound。
func (s *Service) DeleteByID(pool Pool, id uint) error {
	affected, err := s.repo.Delete(pool, []uint{id})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByIDs 批量删除，返回实际删除的行数。
func (s *Service) DeleteByIDs(pool Pool, ids []uint) (int64, error) {
	return s.repo.Delete(pool, ids)
}

// ExportRecords 返回池内全部记录，供文本/表格导出使用。
func (s *Service) ExportRecords(pool Pool) ([]Record, error) {
	return s.repo.FindAll(pool)
}

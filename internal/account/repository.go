package account

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository 是账号池的存储接口。
// 实现由启动配置显式选择（gorm或memory），业务逻辑不感知具体后端。
type Repository interface {
	// List 按id倒序分页返回记录和池内总数
	List(pool Pool, offset, limit int) ([]Record, int64, error)
	// FindAll 返回池内全部记录
	FindAll(pool Pool) ([]Record, error)
	// FindByIDs 返回给定id中实际存在的记录
	FindByIDs(pool Pool, ids []uint) ([]Record, error)
	// GetByID 返回单条记录，不存在时返回ErrNotFound
	GetByID(pool Pool, id uint) (*Record, error)
	// Usernames 返回池内全部用户名的集合，用作导入去重的快照
	Usernames(pool Pool) (map[string]struct{}, error)
	// Create 持久化一条新记录并回填id和时间戳，
	// 用户名冲突时返回ErrDuplicateKey
	Create(pool Pool, rec *Record) error
	// UpdateStatus 批量写入状态并返回受影响的行数
	UpdateStatus(pool Pool, ids []uint, status bool) (int64, error)
	// UpdateTag 更新单条记录的标签，不存在时返回ErrNotFound
	UpdateTag(pool Pool, id uint, tag string) error
	// Delete 批量删除并返回受影响的行数
	Delete(pool Pool, ids []uint) (int64, error)
	// Stats 重新计算池的总数/可用/停用统计
	Stats(pool Pool) (Stats, error)
}

// gormRepository 是基于GORM的持久化实现，SQLite和PostgreSQL通用。
type gormRepository struct {
	db *gorm.DB
}

// NewGormRepository 创建一个由关系数据库支撑的账号仓库。
func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) List(pool Pool, offset, limit int) ([]Record, int64, error) {
	var total int64
	records := []Record{}

	switch pool {
	case PoolArchive:
		if err := r.db.Model(&AccLog{}).Count(&total).Error; err != nil {
			return nil, 0, fmt.Errorf("统计存档池记录数失败: %w", err)
		}
		var rows []AccLog
		if err := r.db.Order("id desc").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
			return nil, 0, fmt.Errorf("查询存档池失败: %w", err)
		}
		for i := range rows {
			records = append(records, accLogToRecord(&rows[i]))
		}
	default:
		if err := r.db.Model(&Account{}).Count(&total).Error; err != nil {
			return nil, 0, fmt.Errorf("统计主池记录数失败: %w", err)
		}
		var rows []Account
		if err := r.db.Order("id desc").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
			return nil, 0, fmt.Errorf("查询主池失败: %w", err)
		}
		for i := range rows {
			records = append(records, accountToRecord(&rows[i]))
		}
	}

	return records, total, nil
}

func (r *gormRepository) FindAll(pool Pool) ([]Record, error) {
	records := []Record{}

	switch pool {
	case PoolArchive:
		var rows []AccLog
		if err := r.db.Order("id asc").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("查询存档池失败: %w", err)
		}
		for i := range rows {
			records = append(records, accLogToRecord(&rows[i]))
		}
	default:
		var rows []Account
		if err := r.db.Order("id asc").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("查询主池失败: %w", err)
		}
		for i := range rows {
			records = append(records, accountToRecord(&rows[i]))
		}
	}

	return records, nil
}

func (r *gormRepository) FindByIDs(pool Pool, ids []uint) ([]Record, error) {
	records := []Record{}
	if len(ids) == 0 {
		return records, nil
	}

	switch pool {
	case PoolArchive:
		var rows []AccLog
		if err := r.db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("按id查询存档池失败: %w", err)
		}
		for i := range rows {
			records = append(records, accLogToRecord(&rows[i]))
		}
	default:
		var rows []Account
		if err := r.db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("按id查询主池失败: %w", err)
		}
		for i := range rows {
			records = append(records, accountToRecord(&rows[i]))
		}
	}

	return records, nil
}

func (r *gormRepository) GetByID(pool Pool, id uint) (*Record, error) {
	switch pool {
	case PoolArchive:
		var row AccLog
		if err := r.db.First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("查询存档池记录失败: %w", err)
		}
		rec := accLogToRecord(&row)
		return &rec, nil
	default:
		var row Account
		if err := r.db.First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("查询主池记录失败: %w", err)
		}
		rec := accountToRecord(&row)
		return &rec, nil
	}
}

func (r *gormRepository) Usernames(pool Pool) (map[string]struct{}, error) {
	var names []string
	var err error

	switch pool {
	case PoolArchive:
		err = r.db.Model(&AccLog{}).Pluck("username", &names).Error
	default:
		err = r.db.Model(&Account{}).Pluck("username", &names).Error
	}
	if err != nil {
		return nil, fmt.Errorf("读取用户名快照失败: %w", err)
	}

	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set, nil
}

func (r *gormRepository) Create(pool Pool, rec *Record) error {
	switch pool {
	case PoolArchive:
		row := recordToAccLog(rec)
		if err := r.db.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateKey
			}
			return fmt.Errorf("写入存档池失败: %w", err)
		}
		*rec = accLogToRecord(&row)
	default:
		row := recordToAccount(rec)
		if err := r.db.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateKey
			}
			return fmt.Errorf("写入主池失败: %w", err)
		}
		*rec = accountToRecord(&row)
	}
	return nil
}

func (r *gormRepository) UpdateStatus(pool Pool, ids []uint, status bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var res *gorm.DB
	switch pool {
	case PoolArchive:
		res = r.db.Model(&AccLog{}).Where("id IN ?", ids).Update("status", status)
	default:
		res = r.db.Model(&Account{}).Where("id IN ?", ids).Update("status", status)
	}
	if res.Error != nil {
		return 0, fmt.Errorf("批量更新状态失败: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *gormRepository) UpdateTag(pool Pool, id uint, tag string) error {
	// 存档池没有标签字段
	if pool == PoolArchive {
		return ErrNotFound
	}

	res := r.db.Model(&Account{}).Where("id = ?", id).Update("tag", tag)
	if res.Error != nil {
		return fmt.Errorf("更新标签失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRepository) Delete(pool Pool, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var res *gorm.DB
	switch pool {
	case PoolArchive:
		res = r.db.Where("id IN ?", ids).Delete(&AccLog{})
	default:
		res = r.db.Where("id IN ?", ids).Delete(&Account{})
	}
	if res.Error != nil {
		return 0, fmt.Errorf("批量删除失败: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *gormRepository) Stats(pool Pool) (Stats, error) {
	var stats Stats
	var model interface{}

	switch pool {
	case PoolArchive:
		model = &AccLog{}
	default:
		model = &Account{}
	}

	if err := r.db.Model(model).Count(&stats.Total).Error; err != nil {
		return Stats{}, fmt.Errorf("统计总数失败: %w", err)
	}
	if err := r.db.Model(model).Where("status = ?", true).Count(&stats.Active).Error; err != nil {
		return Stats{}, fmt.Errorf("统计可用数失败: %w", err)
	}
	stats.Inactive = stats.Total - stats.Active
	return stats, nil
}

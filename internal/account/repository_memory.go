package account

import (
	"sort"
	"sync"
	"time"
)

// memoryRepository 是账号仓库的纯内存实现。
// 用于无数据库的演示环境和单元测试，语义与gorm实现保持一致。
type memoryRepository struct {
	mu     sync.RWMutex
	pools  map[Pool]map[uint]*Record
	nextID uint
}

// NewMemoryRepository 创建一个空的内存账号仓库。
func NewMemoryRepository() Repository {
	return &memoryRepository{
		pools: map[Pool]map[uint]*Record{
			PoolAccount: {},
			PoolArchive: {},
		},
		nextID: 1,
	}
}

func (r *memoryRepository) pool(p Pool) map[uint]*Record {
	if m, ok := r.pools[p]; ok {
		return m
	}
	return r.pools[PoolAccount]
}

// sortedRecords 返回池内记录的按id排序副本
func (r *memoryRepository) sortedRecords(p Pool, desc bool) []Record {
	m := r.pool(p)
	out := make([]Record, 0, len(m))
	for _, rec := range m {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].ID > out[j].ID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *memoryRepository) List(p Pool, offset, limit int) ([]Record, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.sortedRecords(p, true)
	total := int64(len(all))

	if offset >= len(all) {
		return []Record{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *memoryRepository) FindAll(p Pool) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedRecords(p, false), nil
}

func (r *memoryRepository) FindByIDs(p Pool, ids []uint) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m := r.pool(p)
	out := []Record{}
	// 重复的id只返回一次，与关系库的 IN 语义一致
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if rec, ok := m[id]; ok {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *memoryRepository) GetByID(p Pool, id uint) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rec, ok := r.pool(p)[id]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *memoryRepository) Usernames(p Pool) (map[string]struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m := r.pool(p)
	set := make(map[string]struct{}, len(m))
	for _, rec := range m {
		set[rec.Username] = struct{}{}
	}
	return set, nil
}

func (r *memoryRepository) Create(p Pool, rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.pool(p)
	for _, existing := range m {
		if existing.Username == rec.Username {
			return ErrDuplicateKey
		}
	}

	now := time.Now()
	rec.ID = r.nextID
	r.nextID++
	rec.CreatedAt = now
	rec.UpdatedAt = now

	// 存档池没有标签和列表字段
	if p == PoolArchive {
		rec.Tag = ""
		rec.ChampionList = nil
		rec.SkinList = nil
	}

	cp := *rec
	m[rec.ID] = &cp
	return nil
}

func (r *memoryRepository) UpdateStatus(p Pool, ids []uint, status bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.pool(p)
	var affected int64
	// 重复的id只计一次受影响行
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if rec, ok := m[id]; ok {
			rec.Status = status
			rec.UpdatedAt = time.Now()
			affected++
		}
	}
	return affected, nil
}

func (r *memoryRepository) UpdateTag(p Pool, id uint, tag string) error {
	if p == PoolArchive {
		return ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.pool(p)[id]
	if !ok {
		return ErrNotFound
	}
	rec.Tag = tag
	rec.UpdatedAt = time.Now()
	return nil
}

func (r *memoryRepository) Delete(p Pool, ids []uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.pool(p)
	var affected int64
	for _, id := range ids {
		if _, ok := m[id]; ok {
			delete(m, id)
			affected++
		}
	}
	return affected, nil
}

func (r *memoryRepository) Stats(p Pool) (Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats Stats
	for _, rec := range r.pool(p) {
		stats.Total++
		if rec.Status {
			stats.Active++
		} else {
			stats.Inactive++
		}
	}
	return stats, nil
}

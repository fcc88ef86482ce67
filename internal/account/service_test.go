package account

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	calls []struct {
		pool   Pool
		ids    []uint
		status bool
	}
}

func (n *fakeNotifier) PublishStatusChange(pool Pool, ids []uint, status bool, at time.Time) {
	n.calls = append(n.calls, struct {
		pool   Pool
		ids    []uint
		status bool
	}{pool, ids, status})
}

type fakeRecorder struct {
	recorded [][]uint
	err      error
}

func (r *fakeRecorder) RecordDeactivations(accountIDs []uint) error {
	r.recorded = append(r.recorded, accountIDs)
	return r.err
}

// seedAccounts 向仓库写入n条记录并按给定下标置为停用
func seedAccounts(t *testing.T, repo Repository, pool Pool, n int, inactive ...int) []uint {
	t.Helper()

	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		rec := Record{
			Username: string(pool) + "-user-" + string(rune('a'+i)),
			Password: "pw1234",
			Status:   true,
		}
		require.NoError(t, repo.Create(pool, &rec))
		ids = append(ids, rec.ID)
	}
	for _, idx := range inactive {
		_, err := repo.UpdateStatus(pool, []uint{ids[idx]}, false)
		require.NoError(t, err)
	}
	return ids
}

func newTestService() (*Service, Repository, *fakeNotifier, *fakeRecorder) {
	repo := NewMemoryRepository()
	notifier := &fakeNotifier{}
	recorder := &fakeRecorder{}
	return NewService(repo, notifier, recorder), repo, notifier, recorder
}

func TestUpdateStatusByIDRecordsRevenueOnDeactivation(t *testing.T) {
	svc, repo, notifier, recorder := newTestService()
	ids := seedAccounts(t, repo, PoolAccount, 1)

	result, err := svc.UpdateStatusByID(PoolAccount, ids[0], false)
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Updated)
	assert.Equal(t, 1, result.Transitioned)
	require.Len(t, recorder.recorded, 1)
	assert.Equal(t, []uint{ids[0]}, recorder.recorded[0])
	require.Len(t, notifier.calls, 1)
	assert.False(t, notifier.calls[0].status)
}

func TestUpdateStatusNoRevenueWhenAlreadyInactive(t *testing.T) {
	svc, repo, _, recorder := newTestService()
	ids := seedAccounts(t, repo, PoolAccount, 1, 0)

	result, err := svc.UpdateStatusByID(PoolAccount, ids[0], false)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Transitioned)
	assert.Empty(t, recorder.recorded)
}

func TestUpdateStatusNoRevenueOnActivation(t *testing.T) {
	svc, repo, notifier, recorder := newTestService()
	ids := seedAccounts(t, repo, PoolAccount, 1, 0)

	result, err := svc.UpdateStatusByID(PoolAccount, ids[0], true)
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Updated)
	assert.Equal(t, 0, result.Transitioned)
	assert.Empty(t, recorder.recorded)
	// 反向转变仍然广播
	require.Len(t, notifier.calls, 1)
	assert.True(t, notifier.calls[0].status)
}

func TestUpdateStatusByIDsOnlyCountsTransitions(t *testing.T) {
	svc, repo, notifier, recorder := newTestService()
	// 5条记录，下标3、4已停用
	ids := seedAccounts(t, repo, PoolAccount, 5, 3, 4)

	result, err := svc.UpdateStatusByIDs(PoolAccount, ids, false)
	require.NoError(t, err)

	assert.Equal(t, int64(5), result.Updated)
	assert.Equal(t, 3, result.Transitioned)
	require.Len(t, recorder.recorded, 1)
	assert.ElementsMatch(t, ids[:3], recorder.recorded[0])

	// 广播覆盖全部目标，而不只是发生转变的记录
	require.Len(t, notifier.calls, 1)
	assert.Len(t, notifier.calls[0].ids, 5)
}

func TestUpdateStatusAll(t *testing.T) {
	svc, repo, _, recorder := newTestService()
	seedAccounts(t, repo, PoolAccount, 3, 2)

	result, err := svc.UpdateStatusAll(PoolAccount, false)
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.Updated)
	assert.Equal(t, 2, result.Transitioned)
	require.Len(t, recorder.recorded, 1)

	stats, err := repo.Stats(PoolAccount)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Active)
	assert.Equal(t, int64(3), stats.Inactive)
}

func TestArchivePoolNeverRecordsRevenue(t *testing.T) {
	svc, repo, notifier, recorder := newTestService()
	ids := seedAccounts(t, repo, PoolArchive, 2)

	result, err := svc.UpdateStatusByIDs(PoolArchive, ids, false)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Transitioned)
	assert.Empty(t, recorder.recorded)
	// 存档池的状态变更照常广播
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, PoolArchive, notifier.calls[0].pool)
}

func TestRecorderFailureDoesNotFailStatusUpdate(t *testing.T) {
	svc, repo, notifier, recorder := newTestService()
	recorder.err = assert.AnError
	ids := seedAccounts(t, repo, PoolAccount, 1)

	result, err := svc.UpdateStatusByID(PoolAccount, ids[0], false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Updated)
	assert.Len(t, notifier.calls, 1)

	rec, err := repo.GetByID(PoolAccount, ids[0])
	require.NoError(t, err)
	assert.False(t, rec.Status)
}

func TestUpdateStatusByIDNotFound(t *testing.T) {
	svc, _, notifier, _ := newTestService()

	_, err := svc.UpdateStatusByID(PoolAccount, 999, false)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, notifier.calls)
}

func TestUpdateStatusByIDsDuplicateIDsCountOnce(t *testing.T) {
	svc, repo, _, recorder := newTestService()
	ids := seedAccounts(t, repo, PoolAccount, 1)

	// 同一id重复出现时只算一条记录、一次转变、一条收益
	result, err := svc.UpdateStatusByIDs(PoolAccount, []uint{ids[0], ids[0]}, false)
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Updated)
	assert.Equal(t, 1, result.Transitioned)
	require.Len(t, recorder.recorded, 1)
	assert.Equal(t, []uint{ids[0]}, recorder.recorded[0])
}

func TestUpdateStatusByIDsIgnoresMissing(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ids := seedAccounts(t, repo, PoolAccount, 2)

	result, err := svc.UpdateStatusByIDs(PoolAccount, append(ids, 999), false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Updated)
}

func TestDeleteByID(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ids := seedAccounts(t, repo, PoolAccount, 1)

	require.NoError(t, svc.DeleteByID(PoolAccount, ids[0]))
	assert.ErrorIs(t, svc.DeleteByID(PoolAccount, ids[0]), ErrNotFound)

	stats, err := repo.Stats(PoolAccount)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Total)
}

func TestStatsInvariant(t *testing.T) {
	svc, repo, _, _ := newTestService()
	seedAccounts(t, repo, PoolAccount, 7, 1, 4, 6)

	stats, err := svc.Stats(PoolAccount)
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.Total)
	assert.Equal(t, int64(4), stats.Active)
	assert.Equal(t, int64(3), stats.Inactive)
	assert.Equal(t, stats.Total, stats.Active+stats.Inactive)
}

func TestListPagination(t *testing.T) {
	svc, repo, _, _ := newTestService()
	seedAccounts(t, repo, PoolAccount, 5)

	page1, total, err := svc.List(PoolAccount, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page1, 2)

	page3, _, err := svc.List(PoolAccount, 3, 2)
	require.NoError(t, err)
	assert.Len(t, page3, 1)

	// 越界页返回空列表而非错误
	empty, _, err := svc.List(PoolAccount, 99, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUpdateTag(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ids := seedAccounts(t, repo, PoolAccount, 1)

	require.NoError(t, svc.UpdateTag(PoolAccount, ids[0], "直播专用"))
	rec, err := repo.GetByID(PoolAccount, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "直播专用", rec.Tag)

	assert.ErrorIs(t, svc.UpdateTag(PoolAccount, 999, "x"), ErrNotFound)
}

package account

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestImporter() (*Importer, Repository) {
	repo := NewMemoryRepository()
	return NewImporter(repo, 0, 0), repo
}

func TestImportTextBasic(t *testing.T) {
	im, repo := newTestImporter()

	report, err := im.ImportText(PoolAccount, "alice|pw1234|lv5\nbob|pw5678")
	require.NoError(t, err)

	assert.Equal(t, 2, report.ImportedCount)
	assert.Equal(t, 0, report.ErrorCount)
	require.Len(t, report.CreatedRecords, 2)

	assert.Equal(t, "alice", report.CreatedRecords[0].Username)
	assert.Equal(t, 5, report.CreatedRecords[0].Level)
	assert.Equal(t, "bob", report.CreatedRecords[1].Username)
	assert.Equal(t, 0, report.CreatedRecords[1].Level)

	// 新导入的记录初始均为可用
	for _, rec := range report.CreatedRecords {
		assert.True(t, rec.Status)
	}

	stats, err := repo.Stats(PoolAccount)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(2), stats.Active)
}

func TestImportTextReimportIsIdempotent(t *testing.T) {
	im, repo := newTestImporter()
	content := "alice|pw1234|lv5\nbob|pw5678"

	_, err := im.ImportText(PoolAccount, content)
	require.NoError(t, err)

	report, err := im.ImportText(PoolAccount, content)
	require.NoError(t, err)

	assert.Equal(t, 0, report.ImportedCount)
	assert.Equal(t, 2, report.ErrorCount)
	require.Len(t, report.ErrorDetails, 2)
	for _, detail := range report.ErrorDetails {
		assert.Equal(t, "数据库中已存在", detail.ErrorMessage)
	}

	stats, err := repo.Stats(PoolAccount)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
}

func TestImportTextDuplicateWithinBatch(t *testing.T) {
	im, _ := newTestImporter()

	report, err := im.ImportText(PoolAccount, "alice|pw1234\nalice|other99")
	require.NoError(t, err)

	assert.Equal(t, 1, report.ImportedCount)
	assert.Equal(t, 1, report.ErrorCount)
	require.Len(t, report.ErrorDetails, 1)
	assert.Equal(t, "文件内重复", report.ErrorDetails[0].ErrorMessage)
}

func TestImportTextCountInvariant(t *testing.T) {
	im, _ := newTestImporter()

	// 成功、解析失败、短密码、批内重复混合
	report, err := im.ImportText(PoolAccount, strings.Join([]string{
		"alice|pw1234|lv5",
		"onlyuser",
		"bob|pw1",
		"alice|again99",
		"carol|pw9999",
	}, "\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, report.ImportedCount)
	assert.Equal(t, 3, report.ErrorCount)
	assert.Equal(t, 5, report.ImportedCount+report.ErrorCount)
}

func TestImportTextParseFailureKeepsRawLine(t *testing.T) {
	im, _ := newTestImporter()

	report, err := im.ImportText(PoolAccount, "onlyuser")
	require.NoError(t, err)

	require.Len(t, report.ErrorDetails, 1)
	assert.Equal(t, "onlyuser", report.ErrorDetails[0].OriginalRecord)
	assert.Equal(t, "无法解析该行（字段数不足）", report.ErrorDetails[0].ErrorMessage)
}

func TestImportTextUsernameComparisonIsCaseSensitive(t *testing.T) {
	im, _ := newTestImporter()

	report, err := im.ImportText(PoolAccount, "Alice|pw1234\nalice|pw5678")
	require.NoError(t, err)

	// 精确匹配，大小写不同视为两个账号
	assert.Equal(t, 2, report.ImportedCount)
	assert.Equal(t, 0, report.ErrorCount)
}

func TestImportTextSizeCaps(t *testing.T) {
	repo := NewMemoryRepository()
	im := NewImporter(repo, 32, 2)

	_, err := im.ImportText(PoolAccount, strings.Repeat("a", 64))
	assert.ErrorIs(t, err, ErrImportTooLarge)

	_, err = im.ImportText(PoolAccount, "a|pw1234\nb|pw1234\nc|pw1234")
	assert.ErrorIs(t, err, ErrTooManyRecords)
}

func TestImportFile(t *testing.T) {
	im, _ := newTestImporter()

	t.Run("JS风格文件恢复后逐条导入", func(t *testing.T) {
		data := []byte(`var list = [{username: 'alice', password: 'pw1234', level: 5}, {username: 'bob', password: 'pw5678'},]`)
		report, err := im.ImportFile(PoolAccount, data)
		require.NoError(t, err)
		assert.Equal(t, 2, report.ImportedCount)
	})

	t.Run("容器整体无法恢复时不做逐条处理", func(t *testing.T) {
		_, err := im.ImportFile(PoolAccount, []byte("完全不是数组"))
		assert.ErrorIs(t, err, ErrMalformedContainer)
	})
}

func TestImportListSourceLabel(t *testing.T) {
	im, _ := newTestImporter()

	report, err := im.ImportList(PoolAccount, []Candidate{
		{Username: "alice", Password: "pw1234"},
		{Username: "bob", Password: "pw5678", Tag: "手动录入"},
	}, "批次A")
	require.NoError(t, err)

	require.Len(t, report.CreatedRecords, 2)
	assert.Equal(t, "批次A", report.CreatedRecords[0].Tag)
	// 已有标签的记录不被来源标注覆盖
	assert.Equal(t, "手动录入", report.CreatedRecords[1].Tag)
}

func TestImportListValidation(t *testing.T) {
	im, _ := newTestImporter()

	report, err := im.ImportList(PoolAccount, []Candidate{
		{Username: "", Password: "pw1234"},
		{Username: "alice", Password: "pw1234", Level: -1},
	}, "")
	require.NoError(t, err)

	assert.Equal(t, 0, report.ImportedCount)
	assert.Equal(t, 2, report.ErrorCount)
	for _, detail := range report.ErrorDetails {
		assert.Contains(t, detail.ErrorMessage, "字段校验失败")
	}
}

func TestImportTrimsWhitespaceBeforeDedup(t *testing.T) {
	im, _ := newTestImporter()

	_, err := im.ImportList(PoolAccount, []Candidate{{Username: "alice", Password: "pw1234"}}, "")
	require.NoError(t, err)

	report, err := im.ImportList(PoolAccount, []Candidate{{Username: "  alice  ", Password: "pw1234"}}, "")
	require.NoError(t, err)

	assert.Equal(t, 0, report.ImportedCount)
	require.Len(t, report.ErrorDetails, 1)
	assert.Equal(t, "数据库中已存在", report.ErrorDetails[0].ErrorMessage)
}

func TestImportPoolsAreIndependent(t *testing.T) {
	im, _ := newTestImporter()

	_, err := im.ImportText(PoolAccount, "alice|pw1234")
	require.NoError(t, err)

	// 同名账号可以同时存在于主池和存档池
	report, err := im.ImportText(PoolArchive, "alice|pw1234")
	require.NoError(t, err)
	assert.Equal(t, 1, report.ImportedCount)
}

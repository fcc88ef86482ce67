package account

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// 去重拒绝的两个子情形使用可区分的提示语
const (
	msgDuplicateInBatch = "文件内重复"
	msgDuplicateInStore = "数据库中已存在"
)

// chunkSize 是结构化导入路径的内部分块大小，
// 用于约束单次去重检查的内存和耗时
const chunkSize = 1000

// ImportErrorDetail 记录单条被拒绝记录的原始内容和原因。
type ImportErrorDetail struct {
	// OriginalRecord 是原始输入：文本模式下为原始行，其余为候选记录
	OriginalRecord interface{} `json:"originalRecord"`
	ErrorMessage   string      `json:"errorMessage"`
}

// ImportReport 是一次导入的部分成功报告。
// 每条输入记录恰好落入成功或失败两个桶之一，
// ImportedCount+ErrorCount 恒等于输入记录总数。
type ImportReport struct {
	ImportedCount  int                 `json:"importedCount"`
	ErrorCount     int                 `json:"errorCount"`
	CreatedRecords []Record            `json:"createdRecords"`
	ErrorDetails   []ImportErrorDetail `json:"errorDetails"`
}

// merge 把另一个分块的报告拼接到当前报告
func (r *ImportReport) merge(other *ImportReport) {
	r.ImportedCount += other.ImportedCount
	r.ErrorCount += other.ErrorCount
	r.CreatedRecords = append(r.CreatedRecords, other.CreatedRecords...)
	r.ErrorDetails = append(r.ErrorDetails, other.ErrorDetails...)
}

// Importer 实现去重感知的批量导入管线。
type Importer struct {
	repo       Repository
	validate   *validator.Validate
	maxBytes   int
	maxRecords int
}

// NewImporter 创建一个导入器。maxBytes/maxRecords 不合法时取默认上限。
func NewImporter(repo Repository, maxBytes, maxRecords int) *Importer {
	if maxBytes <= 0 {
		maxBytes = 1 << 20
	}
	if maxRecords <= 0 {
		maxRecords = 1000
	}
	return &Importer{
		repo:       repo,
		validate:   validator.New(),
		maxBytes:   maxBytes,
		maxRecords: maxRecords,
	}
}

// ImportText 解析并导入 user|pass[|lv] / user:pass[:lv] 格式的多行文本。
func (im *Importer) ImportText(pool Pool, raw string) (*ImportReport, error) {
	if len(raw) > im.maxBytes {
		return nil, ErrImportTooLarge
	}

	entries := parseTextLines(raw)
	if len(entries) > im.maxRecords {
		return nil, ErrTooManyRecords
	}

	return im.importEntries(pool, entries)
}

// ImportFile 从上传文件的原始字节中恢复一个JSON风格的账号数组并导入。
// 容器整体无法恢复时返回ErrMalformedContainer，不做任何逐条处理。
func (im *Importer) ImportFile(pool Pool, data []byte) (*ImportReport, error) {
	if len(data) > im.maxBytes {
		return nil, ErrImportTooLarge
	}

	candidates, err := extractCandidateArray(data)
	if err != nil {
		return nil, err
	}
	if len(candidates) > im.maxRecords {
		return nil, ErrTooManyRecords
	}

	entries := make([]importEntry, len(candidates))
	for i, cand := range candidates {
		entries[i] = importEntry{candidate: cand}
	}
	return im.importEntries(pool, entries)
}

// ImportList 导入一批已结构化的候选记录。超过分块大小的批次
// 按固定分块依次处理，返回各分块结果的拼接。
// source 是可选的来源标注，会写入未带标签记录的标签字段。
func (im *Importer) ImportList(pool Pool, candidates []Candidate, source string) (*ImportReport, error) {
	report := &ImportReport{CreatedRecords: []Record{}, ErrorDetails: []ImportErrorDetail{}}

	for start := 0; start < len(candidates); start += chunkSize {
		end := start + chunkSize
		if end > len(candidates) {
			end = len(candidates)
		}

		entries := make([]importEntry, 0, end-start)
		for _, cand := range candidates[start:end] {
			if source != "" && cand.Tag == "" {
				cand.Tag = source
			}
			entries = append(entries, importEntry{candidate: cand})
		}

		chunkReport, err := im.importEntries(pool, entries)
		if err != nil {
			return nil, err
		}
		report.merge(chunkReport)
	}

	return report, nil
}

// importEntries 是三条入口共用的核心管线。
// 现存用户名快照在处理开始前取一次，之后每条接受的记录把自己的
// 键加入快照，使同批次后续记录能看到它。记录严格按输入顺序处理。
func (im *Importer) importEntries(pool Pool, entries []importEntry) (*ImportReport, error) {
	existing, err := im.repo.Usernames(pool)
	if err != nil {
		return nil, fmt.Errorf("读取现有用户名快照失败: %w", err)
	}

	report := &ImportReport{CreatedRecords: []Record{}, ErrorDetails: []ImportErrorDetail{}}
	seen := make(map[string]struct{}, len(entries))

	reject := func(entry importEntry, msg string) {
		detail := ImportErrorDetail{ErrorMessage: msg}
		if entry.raw != "" {
			detail.OriginalRecord = entry.raw
		} else {
			detail.OriginalRecord = entry.candidate
		}
		report.ErrorCount++
		report.ErrorDetails = append(report.ErrorDetails, detail)
	}

	for _, entry := range entries {
		// 解析阶段已被拒绝的行直接进入错误桶
		if entry.preErr != "" {
			reject(entry, entry.preErr)
			continue
		}

		cand := entry.candidate
		cand.Username = strings.TrimSpace(cand.Username)
		cand.Password = strings.TrimSpace(cand.Password)

		if err := im.validate.Struct(&cand); err != nil {
			reject(entry, "字段校验失败: "+err.Error())
			continue
		}

		// 去重键是去除首尾空白后的用户名，大小写敏感的精确匹配
		key := cand.Username
		if _, dup := seen[key]; dup {
			reject(entry, msgDuplicateInBatch)
			continue
		}
		if _, dup := existing[key]; dup {
			reject(entry, msgDuplicateInStore)
			continue
		}

		rec := Record{
			Username:     cand.Username,
			Password:     cand.Password,
			Level:        cand.Level,
			Status:       true,
			Tag:          cand.Tag,
			ChampionList: cand.ChampionList,
			SkinList:     cand.SkinList,
		}
		if err := im.repo.Create(pool, &rec); err != nil {
			// 唯一约束是并发导入竞争下的最终兜底
			if errors.Is(err, ErrDuplicateKey) {
				reject(entry, msgDuplicateInStore)
			} else {
				reject(entry, "写入数据库失败")
			}
			continue
		}

		seen[key] = struct{}{}
		report.ImportedCount++
		report.CreatedRecords = append(report.CreatedRecords, rec)
	}

	return report, nil
}

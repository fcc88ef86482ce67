package account

import "errors"

var (
	// ErrNotFound 表示单条操作的目标id在池中不存在
	ErrNotFound = errors.New("记录不存在")

	// ErrDuplicateKey 表示用户名与池中已有记录冲突
	ErrDuplicateKey = errors.New("用户名已存在")

	// ErrMalformedContainer 表示导入文件中找不到可恢复的数组结构，
	// 整个导入调用在任何逐条处理开始前失败
	ErrMalformedContainer = errors.New("无法识别的导入文件格式")

	// ErrImportTooLarge 表示导入内容的字节数超过上限
	ErrImportTooLarge = errors.New("导入内容超出大小限制")

	// ErrTooManyRecords 表示单次导入的记录数超过上限
	ErrTooManyRecords = errors.New("导入记录数超出限制")
)

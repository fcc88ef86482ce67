package account

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Candidate 是一条待导入的账号记录。
// 文本解析、文件恢复和结构化提交三条入口最终都收敛到这个形状。
type Candidate struct {
	Username     string   `json:"username" validate:"required,max=160"`
	Password     string   `json:"password" validate:"required,max=160"`
	Level        int      `json:"level" validate:"gte=0"`
	Tag          string   `json:"tag"`
	ChampionList []string `json:"championList"`
	SkinList     []string `json:"skinList"`
}

// importEntry 是导入管线的最小处理单元：
// 要么是一条候选记录，要么是一条在解析阶段就被拒绝的行。
type importEntry struct {
	candidate Candidate
	// raw 保留文本模式下的原始行，用于错误报告
	raw string
	// preErr 非空表示该条目在进入校验/去重之前已被拒绝
	preErr string
}

// levelToken 匹配可选的 lv/LV 前缀等级字段，如 "lv5"、"LV30"、"7"
var levelToken = regexp.MustCompile(`^(?i:lv)?(\d+)$`)

// parseLevel 解析等级字段。缺失或无法解析时按0处理。
func parseLevel(token string) int {
	m := levelToken.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// splitLine 按 | 或 : 切分一行。两种分隔符不混用，优先 |。
func splitLine(line string) []string {
	delim := ":"
	if strings.Contains(line, "|") {
		delim = "|"
	}
	fields := strings.Split(line, delim)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// parseTextLines 把一段多行文本解析为导入条目序列，保持输入顺序。
// 空行被跳过，不计入任何桶；无法切出两个字段的行
// 会带着独立于校验错误的解析诊断进入错误桶。
func parseTextLines(raw string) []importEntry {
	entries := []importEntry{}

	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := splitLine(line)
		if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
			entries = append(entries, importEntry{raw: line, preErr: "无法解析该行（字段数不足）"})
			continue
		}

		username, password := fields[0], fields[1]
		if len(password) < 4 {
			entries = append(entries, importEntry{raw: line, preErr: "密码长度不足4位"})
			continue
		}

		cand := Candidate{Username: username, Password: password}
		if len(fields) >= 3 {
			cand.Level = parseLevel(fields[2])
		}
		entries = append(entries, importEntry{candidate: cand, raw: line})
	}

	return entries
}

// unquotedKey 匹配JS风格对象里未加引号的键名，如 { username: ... }
var unquotedKey = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)

// trailingComma 匹配 ] 或 } 之前多余的逗号
var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// normalizeQuotes 把单引号字符串改写为双引号字符串。
// 双引号字符串内部的单引号（如口令里的撇号）保持原样；
// 单引号字符串内部的双引号被转义。
func normalizeQuotes(span []byte) []byte {
	out := make([]byte, 0, len(span))
	inDouble := false
	inSingle := false

	for i := 0; i < len(span); i++ {
		ch := span[i]

		if inDouble {
			out = append(out, ch)
			if ch == '\\' && i+1 < len(span) {
				i++
				out = append(out, span[i])
				continue
			}
			if ch == '"' {
				inDouble = false
			}
			continue
		}

		if inSingle {
			if ch == '\\' && i+1 < len(span) {
				i++
				// JSON不转义单引号，\' 还原为裸撇号
				if span[i] == '\'' {
					out = append(out, '\'')
				} else {
					out = append(out, '\\', span[i])
				}
				continue
			}
			switch ch {
			case '\'':
				out = append(out, '"')
				inSingle = false
			case '"':
				out = append(out, '\\', '"')
			default:
				out = append(out, ch)
			}
			continue
		}

		switch ch {
		case '"':
			inDouble = true
			out = append(out, ch)
		case '\'':
			inSingle = true
			out = append(out, '"')
		default:
			out = append(out, ch)
		}
	}
	return out
}

// repairLooseJSON 对JS风格的数组文本做轻量修复，使其能被标准JSON解析：
// 未加引号的键名补引号、单引号字符串换双引号、去掉尾逗号。
func repairLooseJSON(span []byte) []byte {
	repaired := unquotedKey.ReplaceAll(span, []byte(`$1"$2":`))
	repaired = normalizeQuotes(repaired)
	repaired = trailingComma.ReplaceAll(repaired, []byte("$1"))
	return repaired
}

// extractCandidateArray 在文件内容中定位最外层的 [...] 区段，
// 修复后按JSON数组解析。找不到可恢复的数组结构时返回ErrMalformedContainer，
// 此时整个导入调用失败，不进行任何逐条处理。
func extractCandidateArray(data []byte) ([]Candidate, error) {
	start := bytes.IndexByte(data, '[')
	end := bytes.LastIndexByte(data, ']')
	if start < 0 || end <= start {
		return nil, ErrMalformedContainer
	}

	span := repairLooseJSON(data[start : end+1])

	var candidates []Candidate
	if err := json.Unmarshal(span, &candidates); err != nil {
		return nil, ErrMalformedContainer
	}
	return candidates, nil
}

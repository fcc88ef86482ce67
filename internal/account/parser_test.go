package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]int{
		"lv5":   5,
		"LV30":  30,
		"Lv7":   7,
		"12":    12,
		" lv3 ": 3,
		"":      0,
		"abc":   0,
		"lv":    0,
		"-5":    0,
	}
	for input, want := range cases {
		assert.Equal(t, want, parseLevel(input), "输入: %q", input)
	}
}

func TestParseTextLines(t *testing.T) {
	t.Run("竖线分隔带等级", func(t *testing.T) {
		entries := parseTextLines("alice|pw1234|lv5\nbob|pw5678")
		require.Len(t, entries, 2)

		assert.Empty(t, entries[0].preErr)
		assert.Equal(t, "alice", entries[0].candidate.Username)
		assert.Equal(t, "pw1234", entries[0].candidate.Password)
		assert.Equal(t, 5, entries[0].candidate.Level)

		assert.Empty(t, entries[1].preErr)
		assert.Equal(t, "bob", entries[1].candidate.Username)
		assert.Equal(t, 0, entries[1].candidate.Level)
	})

	t.Run("冒号分隔", func(t *testing.T) {
		entries := parseTextLines("carol:secret99:10")
		require.Len(t, entries, 1)
		assert.Equal(t, "carol", entries[0].candidate.Username)
		assert.Equal(t, "secret99", entries[0].candidate.Password)
		assert.Equal(t, 10, entries[0].candidate.Level)
	})

	t.Run("空行跳过不计入任何桶", func(t *testing.T) {
		entries := parseTextLines("\n\nalice|pw1234\n\n\nbob|pw5678\n")
		assert.Len(t, entries, 2)
	})

	t.Run("字段不足的行带解析诊断", func(t *testing.T) {
		entries := parseTextLines("onlyuser")
		require.Len(t, entries, 1)
		assert.Equal(t, "无法解析该行（字段数不足）", entries[0].preErr)
		assert.Equal(t, "onlyuser", entries[0].raw)
	})

	t.Run("短密码被拒绝", func(t *testing.T) {
		entries := parseTextLines("alice|pw1")
		require.Len(t, entries, 1)
		assert.Equal(t, "密码长度不足4位", entries[0].preErr)
	})

	t.Run("CRLF换行", func(t *testing.T) {
		entries := parseTextLines("alice|pw1234\r\nbob|pw5678")
		require.Len(t, entries, 2)
		assert.Equal(t, "bob", entries[1].candidate.Username)
	})

	t.Run("无法解析的等级字段按0处理", func(t *testing.T) {
		entries := parseTextLines("alice|pw1234|vip")
		require.Len(t, entries, 1)
		assert.Empty(t, entries[0].preErr)
		assert.Equal(t, 0, entries[0].candidate.Level)
	})
}

func TestExtractCandidateArray(t *testing.T) {
	t.Run("标准JSON数组", func(t *testing.T) {
		data := []byte(`[{"username":"alice","password":"pw1234","level":5}]`)
		cands, err := extractCandidateArray(data)
		require.NoError(t, err)
		require.Len(t, cands, 1)
		assert.Equal(t, "alice", cands[0].Username)
		assert.Equal(t, 5, cands[0].Level)
	})

	t.Run("JS风格未加引号的键名", func(t *testing.T) {
		data := []byte(`const accounts = [{username: 'alice', password: 'pw1234'}, {username: 'bob', password: 'pw5678'},];`)
		cands, err := extractCandidateArray(data)
		require.NoError(t, err)
		require.Len(t, cands, 2)
		assert.Equal(t, "alice", cands[0].Username)
		assert.Equal(t, "pw5678", cands[1].Password)
	})

	t.Run("带列表字段", func(t *testing.T) {
		data := []byte(`[{username: "alice", password: "pw1234", championList: ["Ahri", "Lux"]}]`)
		cands, err := extractCandidateArray(data)
		require.NoError(t, err)
		require.Len(t, cands, 1)
		assert.Equal(t, []string{"Ahri", "Lux"}, cands[0].ChampionList)
	})

	t.Run("双引号字符串内的撇号保持原样", func(t *testing.T) {
		data := []byte(`[{"username": "alice", "password": "it's4long"}]`)
		cands, err := extractCandidateArray(data)
		require.NoError(t, err)
		require.Len(t, cands, 1)
		assert.Equal(t, "it's4long", cands[0].Password)
	})

	t.Run("单引号字符串内的双引号被转义", func(t *testing.T) {
		data := []byte(`[{username: 'o"ne', password: 'pw1234'}]`)
		cands, err := extractCandidateArray(data)
		require.NoError(t, err)
		require.Len(t, cands, 1)
		assert.Equal(t, `o"ne`, cands[0].Username)
	})

	t.Run("单引号字符串内转义的单引号还原为撇号", func(t *testing.T) {
		data := []byte(`[{username: 'al\'ice', password: 'pw1234'}]`)
		cands, err := extractCandidateArray(data)
		require.NoError(t, err)
		require.Len(t, cands, 1)
		assert.Equal(t, "al'ice", cands[0].Username)
	})

	t.Run("无数组结构返回容器错误", func(t *testing.T) {
		_, err := extractCandidateArray([]byte("这不是一个数组"))
		assert.ErrorIs(t, err, ErrMalformedContainer)
	})

	t.Run("数组内容无法修复返回容器错误", func(t *testing.T) {
		_, err := extractCandidateArray([]byte(`[{username: func()}]`))
		assert.ErrorIs(t, err, ErrMalformedContainer)
	})
}

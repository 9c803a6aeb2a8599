package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feynlearn/feynlearn/internal/feynman"
	"github.com/feynlearn/feynlearn/internal/store"
	"github.com/feynlearn/feynlearn/internal/terminology"
)

func sampleRecords() []*store.Record {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return []*store.Record{
		{
			ID:        "rec-1",
			Knowledge: "TCP 协议",
			Questions: []string{"这是什么？", "有什么用？"},
			Answer:    "一种可靠的传输协议",
			Assessment: &feynman.AssessmentResult{
				RubricScores:    feynman.RubricScores{Clarity: 8, Logic: 7, Completeness: 9, Terminology: 3},
				Overall:         8,
				TerminologyList: []terminology.Item{{Term: "协议", Position: 9}},
				Suggestions:     []string{"多举例子"},
				AssessedAt:      created,
				ReferenceAnswer: "参考讲解正文",
			},
			CreatedAt: created,
			UpdatedAt: created,
		},
		{
			ID:        "rec-2",
			Knowledge: "缓存",
			Questions: []string{"这是什么？"},
			CreatedAt: created.Add(time.Hour),
			UpdatedAt: created.Add(time.Hour),
		},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	records := sampleRecords()

	data, err := RecordsJSON(records)
	require.NoError(t, err)

	got, err := ImportJSON(data)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "rec-1", got[0].ID)
	assert.Equal(t, records[0].Questions, got[0].Questions)
	require.NotNil(t, got[0].Assessment)
	assert.Equal(t, 8, got[0].Assessment.Overall)
	assert.Equal(t, "参考讲解正文", got[0].Assessment.ReferenceAnswer)
	assert.True(t, got[0].CreatedAt.Equal(records[0].CreatedAt))

	assert.Nil(t, got[1].Assessment)
}

func TestImportJSONRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "hello"},
		{"not an array", `{"id":"x"}`},
		{"missing required fields", `[{"id":"x"}]`},
		{"empty id", `[{"id":"","knowledge":"k","questions":[],"answer":"","createdAt":"t","updatedAt":"t"}]`},
		{"mistyped questions", `[{"id":"x","knowledge":"k","questions":"not-array","answer":"","createdAt":"t","updatedAt":"t"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportJSON([]byte(tt.data))
			require.Error(t, err)
		})
	}
}

func TestImportJSONAcceptsEmptyArray(t *testing.T) {
	got, err := ImportJSON([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecordMarkdown(t *testing.T) {
	md := RecordMarkdown(sampleRecords()[0], []string{"网络", "基础"})

	assert.Contains(t, md, "# TCP 协议")
	assert.Contains(t, md, "**标签**: 网络, 基础")
	assert.Contains(t, md, "1. 这是什么？")
	assert.Contains(t, md, "2. 有什么用？")
	assert.Contains(t, md, "一种可靠的传输协议")
	assert.Contains(t, md, "**总体评分**: 8/10")
	assert.Contains(t, md, "**术语使用**: 8/10", "terminology is shown inverted")
	assert.Contains(t, md, "- 协议")
	assert.Contains(t, md, "- 多举例子")
	assert.Contains(t, md, "参考讲解正文")
}

func TestRecordMarkdownWithoutAssessment(t *testing.T) {
	md := RecordMarkdown(sampleRecords()[1], nil)

	assert.Contains(t, md, "# 缓存")
	assert.NotContains(t, md, "评估结果")
	assert.NotContains(t, md, "**标签**")
}

func TestReportMarkdown(t *testing.T) {
	md := ReportMarkdown(sampleRecords())

	assert.Contains(t, md, "# 知识点记录报告")
	assert.Contains(t, md, "**记录数量**: 2")
	assert.Contains(t, md, "**平均评分**: 8.0/10")
	assert.Contains(t, md, "**最高评分**: 8/10")
	assert.Contains(t, md, "**训练次数**: 1 次")
	assert.Contains(t, md, "# TCP 协议")
	assert.Contains(t, md, "# 缓存")
}

func TestRecordsCSV(t *testing.T) {
	data, err := RecordsCSV(sampleRecords())
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "rec-1", rows[1][0])
	assert.Equal(t, "8", rows[1][3])
	assert.Equal(t, "3", rows[1][7])

	// Unassessed record leaves score columns empty.
	assert.Equal(t, "rec-2", rows[2][0])
	assert.Equal(t, "", rows[2][3])
}

package feynman

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feynlearn/feynlearn/internal/llm"
)

func TestGenerateQuestions(t *testing.T) {
	t.Run("parses numbered response", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{
			Content: "1. 这是什么？\n2. 它有什么用？",
		})
		svc := NewService(mock)

		questions, err := svc.GenerateQuestions(context.Background(), "TCP 协议")
		require.NoError(t, err)
		assert.Equal(t, []string{"这是什么？", "它有什么用？"}, questions)

		require.Equal(t, 1, mock.CallCount())
		assert.Contains(t, mock.Calls[0].Messages[0].Content, "TCP 协议")
	})

	t.Run("blank knowledge rejected before any call", func(t *testing.T) {
		mock := llm.NewMockProvider()
		svc := NewService(mock)

		_, err := svc.GenerateQuestions(context.Background(), "   ")
		var invalid *InvalidInputError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, "knowledge", invalid.Field)
		assert.Equal(t, 0, mock.CallCount())
	})

	t.Run("unusable response falls back to defaults", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Content: "\n\n  \n"})
		svc := NewService(mock)

		questions, err := svc.GenerateQuestions(context.Background(), "缓存")
		require.NoError(t, err)
		assert.Equal(t, defaultQuestions, questions)
	})

	t.Run("provider error propagates", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("backend down")})
		svc := NewService(mock)

		_, err := svc.GenerateQuestions(context.Background(), "缓存")
		require.Error(t, err)
	})
}

func TestAssessAnswer(t *testing.T) {
	const goodAssessment = `{"clarity":8,"logic":7,"completeness":9,"terminology":3,"suggestions":["多举例子"]}`

	t.Run("full result without reference answer", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Content: goodAssessment})
		svc := NewService(mock)

		result, err := svc.AssessAnswer(context.Background(), "API", "这是什么？", "API 就是程序之间约定好的对话方式。", nil)
		require.NoError(t, err)

		assert.Equal(t, 8, result.Clarity)
		assert.Equal(t, 7, result.Logic)
		assert.Equal(t, 9, result.Completeness)
		assert.Equal(t, 3, result.Terminology)
		assert.Equal(t, 8, result.Overall)
		assert.Equal(t, []string{"多举例子"}, result.Suggestions)
		assert.Empty(t, result.ReferenceAnswer)
		assert.False(t, result.AssessedAt.IsZero())

		// The answer mentions "API", so the local scan must flag it.
		require.NotEmpty(t, result.TerminologyList)
		assert.Equal(t, "API", result.TerminologyList[0].Term)

		assert.Equal(t, 1, mock.CallCount())
	})

	t.Run("blank answer rejected before any call", func(t *testing.T) {
		mock := llm.NewMockProvider()
		svc := NewService(mock)

		_, err := svc.AssessAnswer(context.Background(), "API", "q", "  \n ", nil)
		var invalid *InvalidInputError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, "answer", invalid.Field)
		assert.Equal(t, 0, mock.CallCount())
	})

	t.Run("malformed assessment degrades to defaults", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Content: "讲得挺好的！"})
		svc := NewService(mock)

		result, err := svc.AssessAnswer(context.Background(), "缓存", "q", "就是临时存着常用的东西", nil)
		require.NoError(t, err)

		assert.Equal(t, RubricScores{Clarity: 5, Logic: 5, Completeness: 5, Terminology: 5}, result.RubricScores)
		assert.Equal(t, 5, result.Overall)
		assert.Equal(t, []string{parseFailedSuggestion}, result.Suggestions)
	})

	t.Run("reference answer generated when questions given", func(t *testing.T) {
		mock := llm.NewMockProvider(
			llm.MockResponse{Content: goodAssessment},
			llm.MockResponse{Content: "```\n参考讲解正文\n```"},
		)
		svc := NewService(mock)

		questions := []string{"这是什么？", "有什么用？"}
		result, err := svc.AssessAnswer(context.Background(), "缓存", "这是什么？", "临时仓库", questions)
		require.NoError(t, err)

		assert.Equal(t, "参考讲解正文", result.ReferenceAnswer)
		require.Equal(t, 2, mock.CallCount())
		assert.Contains(t, mock.Calls[1].Messages[0].Content, "1. 这是什么？")
		assert.Contains(t, mock.Calls[1].Messages[0].Content, "2. 有什么用？")
	})

	t.Run("reference answer failure is absorbed", func(t *testing.T) {
		mock := llm.NewMockProvider(
			llm.MockResponse{Content: goodAssessment},
			llm.MockResponse{Err: errors.New("backend down")},
		)
		svc := NewService(mock)

		result, err := svc.AssessAnswer(context.Background(), "缓存", "q", "临时仓库", []string{"这是什么？"})
		require.NoError(t, err)
		assert.Empty(t, result.ReferenceAnswer)
		assert.Equal(t, 8, result.Overall)
	})

	t.Run("empty reference text uses fallback hint", func(t *testing.T) {
		mock := llm.NewMockProvider(
			llm.MockResponse{Content: goodAssessment},
			llm.MockResponse{Content: "   "},
		)
		svc := NewService(mock)

		result, err := svc.AssessAnswer(context.Background(), "缓存", "q", "临时仓库", []string{"这是什么？"})
		require.NoError(t, err)
		assert.Equal(t, referenceAnswerFallback, result.ReferenceAnswer)
	})

	t.Run("assessment call failure propagates", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("backend down")})
		svc := NewService(mock)

		_, err := svc.AssessAnswer(context.Background(), "缓存", "q", "临时仓库", nil)
		require.Error(t, err)
	})
}

func TestBuildPrompts(t *testing.T) {
	t.Run("question prompt substitution", func(t *testing.T) {
		p := BuildQuestionPrompt("DNS 解析")
		assert.Contains(t, p, "知识点：DNS 解析")
		assert.NotContains(t, p, "{knowledge}")
	})

	t.Run("assessment prompt substitution", func(t *testing.T) {
		p := BuildAssessmentPrompt("DNS", "这是什么？", "电话簿")
		assert.Contains(t, p, "知识点：DNS")
		assert.Contains(t, p, "问题：这是什么？")
		assert.Contains(t, p, "回答：电话簿")
		assert.NotContains(t, p, "{question}")
		assert.NotContains(t, p, "{answer}")
	})

	t.Run("reference prompt numbers questions", func(t *testing.T) {
		p := BuildReferenceAnswerPrompt("DNS", []string{"甲", "乙"})
		assert.Contains(t, p, "1. 甲\n2. 乙")
		assert.NotContains(t, p, "{questions}")
	})
}

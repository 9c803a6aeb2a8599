package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Events().AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "qianfan",
		Model:        "ernie-4.5-turbo-128k",
		Purpose:      "question-gen",
		InputTokens:  120,
		OutputTokens: 48,
		LatencyMs:    850,
		Success:      true,
		RequestBody:  `{"model":"ernie-4.5-turbo-128k"}`,
		ResponseBody: `{"result":"ok"}`,
	}))
	require.NoError(t, s.Events().AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "qianfan",
		Model:        "ernie-3.5-8k",
		Purpose:      "assessment",
		Success:      false,
		ErrorMessage: "rate limit",
	}))

	events, err := s.Events().QueryLLMEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first.
	assert.Equal(t, "assessment", events[0].Purpose)
	assert.False(t, events[0].Success)
	assert.Equal(t, "rate limit", events[0].ErrorMessage)

	assert.Equal(t, "question-gen", events[1].Purpose)
	assert.True(t, events[1].Success)
	assert.Equal(t, 120, events[1].InputTokens)
	assert.False(t, events[1].Timestamp.IsZero())

	got, err := s.Events().GetLLMEvent(ctx, events[1].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"model":"ernie-4.5-turbo-128k"}`, got.RequestBody)
	assert.Equal(t, `{"result":"ok"}`, got.ResponseBody)

	missing, err := s.Events().GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestEventQueryLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Events().AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "mock", Model: "mock", Purpose: "assessment", Success: true,
		}))
	}

	events, err := s.Events().QueryLLMEvents(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestEventUsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	appendEvent := func(purpose string, in, out int, latency int64) {
		require.NoError(t, s.Events().AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "qianfan", Model: "m", Purpose: purpose,
			InputTokens: in, OutputTokens: out, LatencyMs: latency, Success: true,
		}))
	}
	appendEvent("question-gen", 100, 40, 800)
	appendEvent("question-gen", 200, 60, 1200)
	appendEvent("assessment", 50, 20, 500)

	usage, err := s.Events().UsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 2)

	byPurpose := map[string]LLMUsage{}
	for _, u := range usage {
		byPurpose[u.Purpose] = u
	}

	qg := byPurpose["question-gen"]
	assert.Equal(t, 2, qg.Calls)
	assert.Equal(t, 300, qg.InputTokens)
	assert.Equal(t, 100, qg.OutputTokens)
	assert.Equal(t, int64(1000), qg.AvgLatencyMs)

	as := byPurpose["assessment"]
	assert.Equal(t, 1, as.Calls)
	assert.Equal(t, 50, as.InputTokens)
}

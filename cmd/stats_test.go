package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feynlearn/feynlearn/internal/feynman"
	"github.com/feynlearn/feynlearn/internal/store"
)

func assessedStatsRecord(overall, clarity, logic, completeness, terminology int) *store.Record {
	return &store.Record{
		ID:        "rec",
		Knowledge: "概念",
		Answer:    "回答",
		Assessment: &feynman.AssessmentResult{
			RubricScores: feynman.RubricScores{
				Clarity:      clarity,
				Logic:        logic,
				Completeness: completeness,
				Terminology:  terminology,
			},
			Overall: overall,
		},
	}
}

func TestSummarizeRecords(t *testing.T) {
	records := []*store.Record{
		assessedStatsRecord(8, 9, 8, 7, 2),
		assessedStatsRecord(4, 3, 5, 4, 6),
		{ID: "unassessed", Knowledge: "概念", Answer: "回答"},
	}

	sum := summarizeRecords(records)

	assert.Equal(t, 2, sum.Assessed)
	assert.InDelta(t, 6.0, sum.AvgOverall, 1e-9)
	assert.Equal(t, 8, sum.Best)
	assert.Equal(t, 4, sum.Worst)
	assert.InDelta(t, 6.0, sum.AvgClarity, 1e-9)
	assert.InDelta(t, 6.5, sum.AvgLogic, 1e-9)
	assert.InDelta(t, 5.5, sum.AvgCompleteness, 1e-9)
	// Terminology averages over the inverted display score 11-x.
	assert.InDelta(t, 7.0, sum.AvgTerminology, 1e-9)
}

func TestSummarizeRecords_NoAssessed(t *testing.T) {
	sum := summarizeRecords([]*store.Record{
		{ID: "a", Knowledge: "概念", Answer: "回答"},
	})
	assert.Equal(t, 0, sum.Assessed)
	assert.Equal(t, 0, sum.Best)
	assert.Equal(t, 0, sum.Worst)
}

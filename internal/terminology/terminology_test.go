package terminology

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_SimpleASCIITerm(t *testing.T) {
	items := Detect("API")
	require.Len(t, items, 1)
	assert.Equal(t, "API", items[0].Term)
	assert.Equal(t, 0, items[0].Position)
}

func TestDetect_CaseInsensitivePreservesSource(t *testing.T) {
	items := Detect("我用了 api 接口")
	// "api" matches the dictionary term "API"; "接口" matches too.
	var terms []string
	for _, it := range items {
		terms = append(terms, it.Term)
	}
	assert.Contains(t, terms, "api")
	assert.Contains(t, terms, "接口")
}

func TestDetect_RejectsEmbeddedMatch(t *testing.T) {
	// "rapidly" contains "api" but both neighbors are letters.
	for _, it := range Detect("rapidly") {
		assert.NotEqual(t, "api", strings.ToLower(it.Term))
	}
	assert.Empty(t, Detect("rapidly"))
}

func TestDetect_CJKNeighborBlocksMatch(t *testing.T) {
	// An ideograph adjacent to an ASCII term still extends the word.
	items := Detect("同步器")
	// "同步" is in the dictionary but is followed by 器, a CJK ideograph.
	assert.Empty(t, items)
}

func TestDetect_MultipleOccurrences(t *testing.T) {
	items := Detect("API 和 API")
	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].Position)
	assert.Equal(t, len("API 和 "), items[1].Position)
}

func TestDetect_PunctuationIsBoundary(t *testing.T) {
	items := Detect("(API)")
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Position)
}

func TestDetect_WidthChangingRunes(t *testing.T) {
	// Ⱥ (U+023A) is 2 bytes but its lowercase ⱥ (U+2C65) is 3, so positions
	// must come from the source text, not a lowercased copy.
	items := Detect("ȺȺȺȺapi")
	require.Len(t, items, 1)
	assert.Equal(t, "api", items[0].Term)
	assert.Equal(t, len("ȺȺȺȺ"), items[0].Position)

	items = Detect("Ⱥ Api 很好")
	require.Len(t, items, 1)
	assert.Equal(t, "Api", items[0].Term)
	assert.Equal(t, len("Ⱥ "), items[0].Position)
}

func TestDensity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"empty", "", 0},
		{"whitespace only", "   \n\t ", 0},
		{"no terms", "just plain words here", 0},
		{"one term four tokens", "API is very useful", 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Density(tt.text), 1e-9)
		})
	}
}

func TestDensity_MonotonicInTermCount(t *testing.T) {
	// Same token count, more term occurrences, density must not decrease.
	low := Density("API word word word")
	high := Density("API SDK word word")
	assert.GreaterOrEqual(t, high, low)
}

func TestCategory(t *testing.T) {
	cat, ok := Category("API")
	require.True(t, ok)
	assert.Equal(t, "technology", cat)

	cat, ok = Category("KPI")
	require.True(t, ok)
	assert.Equal(t, "business", cat)

	_, ok = Category("nonexistent")
	assert.False(t, ok)
}

func TestDetect_Deterministic(t *testing.T) {
	text := "API 接口 算法 KPI"
	first := Detect(text)
	for range 5 {
		assert.Equal(t, first, Detect(text))
	}
}

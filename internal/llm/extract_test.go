package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractContent(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
		ok   bool
	}{
		{
			name: "openai choices shape",
			body: `{"choices":[{"message":{"role":"assistant","content":"你好"}}]}`,
			want: "你好",
			ok:   true,
		},
		{
			name: "result shape",
			body: `{"result":"answer text"}`,
			want: "answer text",
			ok:   true,
		},
		{
			name: "content shape",
			body: `{"content":"direct"}`,
			want: "direct",
			ok:   true,
		},
		{
			name: "choices preferred over result",
			body: `{"choices":[{"message":{"content":"from choices"}}],"result":"from result"}`,
			want: "from choices",
			ok:   true,
		},
		{name: "empty string content", body: `{"result":""}`, ok: false},
		{name: "non-string content", body: `{"result":42}`, ok: false},
		{name: "empty object", body: `{}`, ok: false},
		{name: "not json", body: `oops`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractContent([]byte(tt.body))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractAPIError(t *testing.T) {
	t.Run("error object present", func(t *testing.T) {
		apiErr := extractAPIError([]byte(`{"error":{"code":"insufficient_balance","message":"余额不足"}}`))
		require.NotNil(t, apiErr)
		assert.Equal(t, "insufficient_balance", apiErr.Code)
		assert.Equal(t, "余额不足", apiErr.Message)
	})

	t.Run("no error object", func(t *testing.T) {
		assert.Nil(t, extractAPIError([]byte(`{"result":"fine"}`)))
	})
}

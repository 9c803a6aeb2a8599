package llm

import "github.com/tidwall/gjson"

// extractStrategy names one known response shape and the path to its text.
// Strategies are tried in order; the first that yields a non-empty string
// wins. Keeping this an explicit list makes the fallback order testable.
type extractStrategy struct {
	name string
	path string
}

var extractStrategies = []extractStrategy{
	{name: "openai-choices", path: "choices.0.message.content"},
	{name: "result", path: "result"},
	{name: "content", path: "content"},
}

// extractContent pulls the generated text out of a chat-completion response
// body, trying each known shape in turn.
func extractContent(body []byte) (string, bool) {
	for _, s := range extractStrategies {
		v := gjson.GetBytes(body, s.path)
		if v.Exists() && v.Type == gjson.String && v.Str != "" {
			return v.Str, true
		}
	}
	return "", false
}

// extractAPIError returns the structured error carried in a 2xx response
// body, or nil when the body has no error object.
func extractAPIError(body []byte) *APIError {
	v := gjson.GetBytes(body, "error")
	if !v.Exists() {
		return nil
	}
	return &APIError{
		Code:    v.Get("code").String(),
		Message: v.Get("message").String(),
	}
}

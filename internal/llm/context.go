package llm

import "context"

type contextKey string

const purposeKey contextKey = "llm_purpose"

// Canonical purpose labels for the practice flow. Events are grouped by
// these strings, so callers should prefer them over ad-hoc labels.
const (
	PurposeQuestionGen     = "question-gen"
	PurposeAssessment      = "assessment"
	PurposeReferenceAnswer = "reference-answer"
)

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

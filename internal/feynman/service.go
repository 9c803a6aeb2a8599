package feynman

import (
	"context"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/feynlearn/feynlearn/internal/llm"
	"github.com/feynlearn/feynlearn/internal/terminology"
)

// maxQuestions caps how many generated questions are kept.
const maxQuestions = 5

// defaultQuestions is returned when the model response yields no usable
// questions at all.
var defaultQuestions = []string{
	"这是什么？",
	"它有什么用？",
	"为什么需要它？",
}

const referenceAnswerFallback = "参考版本生成失败，请重试"

// Service drives the practice pipeline on top of any llm.Provider.
type Service struct {
	provider llm.Provider
}

// NewService creates a Service backed by the given provider.
func NewService(provider llm.Provider) *Service {
	return &Service{provider: provider}
}

// GenerateQuestions asks the model for simple probing questions about a
// knowledge concept. It fails fast on blank input; an unparseable model
// response falls back to a fixed default question set rather than failing.
func (s *Service) GenerateQuestions(ctx context.Context, knowledge string) ([]string, error) {
	if strings.TrimSpace(knowledge) == "" {
		return nil, &InvalidInputError{Field: "knowledge"}
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)
	resp, err := s.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: BuildQuestionPrompt(knowledge)},
		},
	})
	if err != nil {
		return nil, err
	}

	questions := parseQuestions(resp.Content, maxQuestions)
	if len(questions) == 0 {
		return append([]string(nil), defaultQuestions...), nil
	}
	return questions, nil
}

// AssessAnswer scores an explanation. The model's rubric scores are merged
// with a local terminology scan into a composite result. Once the
// assessment call itself succeeds the method always returns a usable
// result: a malformed assessment JSON degrades to default scores, and a
// failed reference-answer generation is absorbed.
//
// questions is optional; when non-empty a reference answer is additionally
// generated, best-effort.
func (s *Service) AssessAnswer(ctx context.Context, knowledge, question, answer string, questions []string) (*AssessmentResult, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, &InvalidInputError{Field: "answer"}
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, llm.PurposeAssessment), llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: BuildAssessmentPrompt(knowledge, question, answer)},
		},
	})
	if err != nil {
		return nil, err
	}

	scores, suggestions, ok := parseAssessment(resp.Content)
	if !ok {
		log.WithField("response", resp.Content).Warn("assessment response not parseable, using defaults")
		scores = RubricScores{
			Clarity:      defaultScore,
			Logic:        defaultScore,
			Completeness: defaultScore,
			Terminology:  defaultScore,
		}
		suggestions = []string{parseFailedSuggestion}
	}

	result := &AssessmentResult{
		RubricScores:    scores,
		Overall:         scores.Composite(),
		TerminologyList: terminology.Detect(answer),
		Suggestions:     suggestions,
	}

	if len(questions) > 0 {
		ref, refErr := s.generateReferenceAnswer(ctx, knowledge, questions)
		if refErr != nil {
			// Best-effort only; the assessment stands without it.
			log.WithError(refErr).Warn("reference answer generation failed")
		} else {
			result.ReferenceAnswer = ref
		}
	}

	result.AssessedAt = time.Now()
	return result, nil
}

// generateReferenceAnswer asks the model for an exemplar explanation
// answering the generated questions.
func (s *Service) generateReferenceAnswer(ctx context.Context, knowledge string, questions []string) (string, error) {
	resp, err := s.provider.Generate(llm.WithPurpose(ctx, llm.PurposeReferenceAnswer), llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: BuildReferenceAnswerPrompt(knowledge, questions)},
		},
	})
	if err != nil {
		return "", err
	}

	ref := stripCodeFence(resp.Content)
	if ref == "" {
		return referenceAnswerFallback, nil
	}
	return ref, nil
}

// Package feynman implements the Feynman-technique practice pipeline:
// generating probing questions for a knowledge concept, assessing the
// learner's explanation with an LLM, and merging the remote rubric scores
// with a local terminology scan into a composite result.
package feynman

import (
	"time"

	"github.com/feynlearn/feynlearn/internal/terminology"
)

// RubricScores are the four per-dimension scores returned by the model,
// each in [1,10].
type RubricScores struct {
	Clarity      int `json:"clarity"`
	Logic        int `json:"logic"`
	Completeness int `json:"completeness"`
	// Terminology grades jargon usage: lower means fewer unexplained
	// technical terms, which is better.
	Terminology int `json:"terminology"`
}

// AssessmentResult is the composite outcome of assessing one explanation.
// It is created once per assessment and never mutated afterwards.
type AssessmentResult struct {
	RubricScores

	// Overall is the weighted composite score in [1,10].
	Overall int `json:"overall"`

	// TerminologyList is the locally detected jargon in the answer. It is
	// a display artifact, independent of the model's terminology score.
	TerminologyList []terminology.Item `json:"terminologyList"`

	// Suggestions are the model's improvement hints.
	Suggestions []string `json:"suggestions"`

	// AssessedAt is when the composite was assembled.
	AssessedAt time.Time `json:"assessedAt"`

	// ReferenceAnswer is a model-written exemplar explanation. Optional:
	// generation is best-effort and absent on failure.
	ReferenceAnswer string `json:"referenceAnswer,omitempty"`
}

// InvalidInputError is returned when a required text field is blank. It is
// raised before any network call and always surfaced to the caller.
type InvalidInputError struct {
	Field string
}

func (e *InvalidInputError) Error() string {
	return e.Field + " must not be empty"
}

// Composite-score weights. Preserved exactly from the product definition:
// the terminology dimension is inverted (11-x) because a lower raw score
// means fewer unexplained terms, which should raise the composite.
const (
	clarityWeight      = 0.30
	logicWeight        = 0.25
	completenessWeight = 0.25
	terminologyWeight  = 0.20
)

// Composite computes the weighted overall score for a set of rubric scores.
func (r RubricScores) Composite() int {
	v := float64(r.Clarity)*clarityWeight +
		float64(r.Logic)*logicWeight +
		float64(r.Completeness)*completenessWeight +
		float64(11-r.Terminology)*terminologyWeight
	return roundScore(v)
}

func roundScore(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

package risk

import "time"

// Feedback captures the user's verdict on an executed action.
type Feedback string

const (
	FeedbackPositive Feedback = "positive"
	FeedbackNeutral  Feedback = "neutral"
	FeedbackNegative Feedback = "negative"
)

// Outcome records what actually happened after an assessed action ran.
// Append-only; it never alters the originating assessment.
type Outcome struct {
	ID           string    `json:"id"`
	AssessmentID string    `json:"assessmentId"`
	Success      bool      `json:"success"`
	Error        string    `json:"error,omitempty"`
	ActualImpact string    `json:"actualImpact,omitempty"`
	UserFeedback Feedback  `json:"userFeedback,omitempty"`
	RecordedAt   time.Time `json:"recordedAt"`
}

// LearningKind classifies a divergence between predicted risk and feedback.
type LearningKind string

const (
	LearningUnderestimate LearningKind = "underestimate"
	LearningOverestimate  LearningKind = "overestimate"
)

// LearningEvent flags a single assessment whose predicted score diverged
// from the realized feedback. Events feed offline recalibration of factor
// weights and thresholds; nothing in this module consumes them online.
type LearningEvent struct {
	ID             string       `json:"id"`
	AssessmentID   string       `json:"assessmentId"`
	Kind           LearningKind `json:"kind"`
	PredictedScore float64      `json:"predictedScore"`
	Feedback       Feedback     `json:"feedback"`
	CreatedAt      time.Time    `json:"createdAt"`
}

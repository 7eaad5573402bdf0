package response_models

import "yogafunnel/internal/quiz"

type QuizSessionResponse struct {
	SessionID   string        `json:"session_id"`
	CurrentStep quiz.Step     `json:"current_step"`
	StepKind    quiz.Kind     `json:"step_kind"`
	Position    int           `json:"position"`
	TotalSteps  int           `json:"total_steps"`
	CanAdvance  bool          `json:"can_advance"`
	Answers     quiz.Snapshot `json:"answers"`
}

// StepResult answers a select/continue action. When Advanced is false the
// session did not move and NextStep equals the step that was acted on.
type StepResult struct {
	SessionID string        `json:"session_id"`
	Step      quiz.Step     `json:"step"`
	Advanced  bool          `json:"advanced"`
	NextStep  quiz.Step     `json:"next_step"`
	Answers   quiz.Snapshot `json:"answers"`
}

type NextStepResponse struct {
	From quiz.Step `json:"from"`
	Next quiz.Step `json:"next"`
}

type EmailCaptureResponse struct {
	Accepted bool `json:"accepted"`
}

type BMIResponse struct {
	Stored        bool    `json:"stored"`
	BodyMassIndex float64 `json:"body_mass_index"`
}

package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"yogafunnel/internal/metrics"
	"yogafunnel/internal/models/request_models"
	"yogafunnel/internal/models/response_models"
	"yogafunnel/internal/quiz"
	mem "yogafunnel/pkg/memcache"
	"yogafunnel/pkg/utils"
)

type QuizServiceInterface interface {
	StartSession() *response_models.QuizSessionResponse
	GetSession(sessionID string) (*response_models.QuizSessionResponse, error)
	SelectOption(sessionID string, step quiz.Step, option string) (*response_models.StepResult, error)
	Continue(sessionID string, step quiz.Step) (*response_models.StepResult, error)
	PeekNext(sessionID string, step quiz.Step) (*response_models.NextStepResponse, error)
	SetBMI(sessionID string, req request_models.BMIRequest) (*response_models.BMIResponse, error)
	CaptureEmail(sessionID, email string) (*response_models.EmailCaptureResponse, error)
	ChoosePlan(sessionID, planCode string) (*response_models.QuizSessionResponse, error)
	Summary(sessionID string) (*response_models.PlanSummary, error)

	// BeginCheckout records the plan on the session, moves it to the
	// checkout step and returns the captured email (may be empty).
	BeginCheckout(sessionID string, plan quiz.PlanCode) (string, error)
}

type QuizService struct {
	sessions mem.SessionStore
	plans    PlanServiceInterface
	leads    LeadServiceInterface
	funnel   *metrics.Funnel
}

func NewQuizService(
	sessions mem.SessionStore,
	plans PlanServiceInterface,
	leads LeadServiceInterface,
	funnel *metrics.Funnel,
) QuizServiceInterface {
	return &QuizService{
		sessions: sessions,
		plans:    plans,
		leads:    leads,
		funnel:   funnel,
	}
}

func (q *QuizService) StartSession() *response_models.QuizSessionResponse {
	sess := &mem.Session{
		ID:      uuid.NewString(),
		Answers: quiz.NewAnswers(),
		Step:    quiz.StartStep,
	}
	q.sessions.Put(sess)
	q.funnel.SessionStarted(q.sessions.Len())

	log.Debug().Str("session_id", sess.ID).Msg("quiz session started")
	return sessionResponse(sess)
}

func (q *QuizService) GetSession(sessionID string) (*response_models.QuizSessionResponse, error) {
	var resp *response_models.QuizSessionResponse
	if !q.sessions.View(sessionID, func(s *mem.Session) {
		resp = sessionResponse(s)
	}) {
		return nil, utils.ErrSessionNotFound
	}
	return resp, nil
}

// SelectOption applies one click on a choice screen. Single-choice screens
// store the value and advance; multi-choice screens toggle and stay put.
// An option the step does not offer leaves the session untouched, and so
// does a select on a step the session is not at.
func (q *QuizService) SelectOption(sessionID string, step quiz.Step, option string) (*response_models.StepResult, error) {
	var (
		result *response_models.StepResult
		err    error
	)
	found := q.sessions.Update(sessionID, func(s *mem.Session) {
		if outOfTurn(s, step) {
			result = q.blocked(s, step)
			return
		}
		if err = applyOption(s.Answers, step, option); err != nil {
			return
		}
		result = q.move(s, step)
	})
	if !found {
		return nil, utils.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func applyOption(a *quiz.Answers, step quiz.Step, option string) error {
	bad := fmt.Errorf("%w: %q on %s", utils.ErrUnknownOption, option, step)

	switch step {
	case quiz.StepAgeSelection:
		v, ok := quiz.ParseAgeRange(option)
		if !ok {
			return bad
		}
		a.SetAgeRange(v)
	case quiz.StepChairYogaExperience:
		v, ok := quiz.ParseExperience(option)
		if !ok {
			return bad
		}
		a.SetChairYogaExperience(v)
	case quiz.StepBodyType:
		v, ok := quiz.ParseBodyType(option)
		if !ok {
			return bad
		}
		a.SetBodyType(v)
	case quiz.StepDreamBody:
		v, ok := quiz.ParseDreamBody(option)
		if !ok {
			return bad
		}
		a.SetDreamBody(v)
	case quiz.StepAvailableTime:
		v, ok := quiz.ParseAvailableTime(option)
		if !ok {
			return bad
		}
		a.SetAvailableTime(v)
	case quiz.StepSales:
		v, ok := quiz.ParsePlanCode(option)
		if !ok {
			return bad
		}
		a.SetSelectedPlan(v)
	case quiz.StepGoals:
		if !a.ToggleGoal(option) {
			return bad
		}
	case quiz.StepTargetZones:
		v, ok := quiz.ParseTargetZone(option)
		if !ok {
			return bad
		}
		a.ToggleTargetZone(v)
	case quiz.StepSensitivityCheck:
		v, ok := quiz.ParseSensitivity(option)
		if !ok {
			return bad
		}
		a.ToggleSensitivity(v)
	case quiz.StepExerciseStyle:
		v, ok := quiz.ParseExerciseStyle(option)
		if !ok {
			return bad
		}
		a.ToggleExerciseStyle(v)
	default:
		return bad
	}
	return nil
}

// move advances single-choice screens right after a select. Must run inside
// SessionStore.Update.
func (q *QuizService) move(s *mem.Session, step quiz.Step) *response_models.StepResult {
	res := &response_models.StepResult{
		SessionID: s.ID,
		Step:      step,
		NextStep:  step,
	}
	if quiz.KindOf(step) == quiz.KindSingleChoice {
		if next, ok := quiz.Advance(step, s.Answers); ok {
			q.funnel.Advanced(string(step), string(next))
			s.Step = next
			res.Advanced = true
			res.NextStep = next
		}
	}
	res.Answers = s.Answers.Snapshot()
	return res
}

// outOfTurn reports an action on a known step the session is not at.
// Unknown steps are not out of turn; they recover to the start step.
func outOfTurn(s *mem.Session, step quiz.Step) bool {
	return quiz.Known(step) && step != s.Step
}

// blocked reports a refused action. Must run inside SessionStore.Update.
func (q *QuizService) blocked(s *mem.Session, step quiz.Step) *response_models.StepResult {
	q.funnel.Blocked(string(step))
	return &response_models.StepResult{
		SessionID: s.ID,
		Step:      step,
		NextStep:  step,
		Answers:   s.Answers.Snapshot(),
	}
}

// Continue is the "next" button. A step the validators reject, or one the
// session has not reached, is reported with Advanced=false and the session
// stays where it was.
func (q *QuizService) Continue(sessionID string, step quiz.Step) (*response_models.StepResult, error) {
	var result *response_models.StepResult
	found := q.sessions.Update(sessionID, func(s *mem.Session) {
		if outOfTurn(s, step) {
			result = q.blocked(s, step)
			return
		}
		next, ok := quiz.Advance(step, s.Answers)
		result = &response_models.StepResult{
			SessionID: s.ID,
			Step:      step,
			Advanced:  ok,
			NextStep:  next,
		}
		if ok {
			q.funnel.Advanced(string(step), string(next))
			s.Step = next
		} else {
			q.funnel.Blocked(string(step))
		}
		result.Answers = s.Answers.Snapshot()
	})
	if !found {
		return nil, utils.ErrSessionNotFound
	}
	return result, nil
}

func (q *QuizService) PeekNext(sessionID string, step quiz.Step) (*response_models.NextStepResponse, error) {
	var next quiz.Step
	if !q.sessions.View(sessionID, func(s *mem.Session) {
		next = quiz.NextStep(step, s.Answers)
	}) {
		return nil, utils.ErrSessionNotFound
	}
	return &response_models.NextStepResponse{From: step, Next: next}, nil
}

// SetBMI takes either a ready BMI or height and weight. Only the first
// accepted value is kept.
func (q *QuizService) SetBMI(sessionID string, req request_models.BMIRequest) (*response_models.BMIResponse, error) {
	bmi := req.BMI
	if bmi <= 0 {
		bmi = quiz.ComputeBMI(req.HeightCm, req.WeightKg)
	}
	if bmi <= 0 {
		return nil, fmt.Errorf("%w: bmi needs a positive value or height and weight", utils.ErrInvalidInput)
	}

	resp := &response_models.BMIResponse{}
	if !q.sessions.Update(sessionID, func(s *mem.Session) {
		resp.Stored = s.Answers.SetBodyMassIndex(bmi)
		resp.BodyMassIndex = s.Answers.BodyMassIndex()
	}) {
		return nil, utils.ErrSessionNotFound
	}
	return resp, nil
}

// CaptureEmail stores the address and hands the lead off without waiting.
// A malformed address is not an error; it is reported as not accepted.
func (q *QuizService) CaptureEmail(sessionID, email string) (*response_models.EmailCaptureResponse, error) {
	var (
		accepted bool
		changed  bool
		lead     LeadCapture
	)
	found := q.sessions.Update(sessionID, func(s *mem.Session) {
		previous := s.Answers.Email()
		if accepted = s.Answers.SetEmail(email); !accepted {
			return
		}
		if changed = s.Answers.Email() != previous; !changed {
			return
		}
		lead = LeadCapture{
			SessionID: s.ID,
			Email:     s.Answers.Email(),
			PlanName:  q.plans.Summarize(s.Answers).PlanName,
			Answers:   s.Answers.Snapshot(),
		}
	})
	if !found {
		return nil, utils.ErrSessionNotFound
	}

	q.funnel.EmailCaptured(accepted)
	// resubmitting the stored address does not mail again
	if changed && q.leads != nil {
		q.leads.Capture(lead)
	}
	return &response_models.EmailCaptureResponse{Accepted: accepted}, nil
}

// ChoosePlan records the plan picked on the sales page without moving the
// session.
func (q *QuizService) ChoosePlan(sessionID, planCode string) (*response_models.QuizSessionResponse, error) {
	code, ok := quiz.ParsePlanCode(planCode)
	if !ok {
		return nil, fmt.Errorf("%w: %q", utils.ErrPlanNotFound, planCode)
	}

	var resp *response_models.QuizSessionResponse
	if !q.sessions.Update(sessionID, func(s *mem.Session) {
		s.Answers.SetSelectedPlan(code)
		resp = sessionResponse(s)
	}) {
		return nil, utils.ErrSessionNotFound
	}
	return resp, nil
}

func (q *QuizService) Summary(sessionID string) (*response_models.PlanSummary, error) {
	var summary response_models.PlanSummary
	if !q.sessions.View(sessionID, func(s *mem.Session) {
		summary = q.plans.Summarize(s.Answers)
	}) {
		return nil, utils.ErrSessionNotFound
	}
	return &summary, nil
}

// BeginCheckout is only allowed once the session has reached the sales page.
func (q *QuizService) BeginCheckout(sessionID string, plan quiz.PlanCode) (string, error) {
	var (
		email   string
		reached bool
	)
	if !q.sessions.Update(sessionID, func(s *mem.Session) {
		if reached = quiz.Position(s.Step) >= quiz.Position(quiz.StepSales); !reached {
			return
		}
		s.Answers.SetSelectedPlan(plan)
		s.Step = quiz.StepCheckout
		email = s.Answers.Email()
	}) {
		return "", utils.ErrSessionNotFound
	}
	if !reached {
		return "", fmt.Errorf("%w: checkout needs the sales step", utils.ErrStepNotReached)
	}
	return email, nil
}

func sessionResponse(s *mem.Session) *response_models.QuizSessionResponse {
	return &response_models.QuizSessionResponse{
		SessionID:   s.ID,
		CurrentStep: s.Step,
		StepKind:    quiz.KindOf(s.Step),
		Position:    quiz.Position(s.Step),
		TotalSteps:  quiz.TotalSteps(),
		CanAdvance:  quiz.CanAdvance(s.Step, s.Answers),
		Answers:     s.Answers.Snapshot(),
	}
}

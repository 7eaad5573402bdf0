package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"yogafunnel/internal/models/request_models"
	"yogafunnel/internal/quiz"
	"yogafunnel/pkg/utils"
)

func TestQuizService_StartSession(t *testing.T) {
	svc, store := newTestQuizService(nil)

	resp := svc.StartSession()

	require.NotEmpty(t, resp.SessionID)
	assert.Equal(t, quiz.StartStep, resp.CurrentStep)
	assert.Equal(t, quiz.KindSingleChoice, resp.StepKind)
	assert.Equal(t, 1, resp.Position)
	assert.Equal(t, quiz.TotalSteps(), resp.TotalSteps)
	assert.False(t, resp.CanAdvance)
	assert.Equal(t, 1, store.Len())
}

func TestQuizService_UnknownSession(t *testing.T) {
	svc, _ := newTestQuizService(nil)

	_, err := svc.GetSession("missing")
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)

	_, err = svc.SelectOption("missing", quiz.StepAgeSelection, "45-54")
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)

	_, err = svc.Continue("missing", quiz.StepGoals)
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)

	_, err = svc.CaptureEmail("missing", "a@b.com")
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
}

func TestQuizService_SingleChoiceSetsAndAdvances(t *testing.T) {
	svc, _ := newTestQuizService(nil)
	id := svc.StartSession().SessionID

	res, err := svc.SelectOption(id, quiz.StepAgeSelection, "45-54")
	require.NoError(t, err)

	assert.True(t, res.Advanced)
	assert.Equal(t, quiz.StepGoals, res.NextStep)
	assert.Equal(t, quiz.Age45to54, res.Answers.AgeRange)

	sess, err := svc.GetSession(id)
	require.NoError(t, err)
	assert.Equal(t, quiz.StepGoals, sess.CurrentStep)
}

func TestQuizService_UnknownOptionChangesNothing(t *testing.T) {
	svc, _ := newTestQuizService(nil)
	id := svc.StartSession().SessionID

	_, err := svc.SelectOption(id, quiz.StepAgeSelection, "18-24")
	assert.ErrorIs(t, err, utils.ErrUnknownOption)

	sess, err := svc.GetSession(id)
	require.NoError(t, err)
	assert.Equal(t, quiz.StartStep, sess.CurrentStep)
	assert.Empty(t, sess.Answers.AgeRange)

	walkTo(t, svc, id, quiz.StepGoals)
	_, err = svc.SelectOption(id, quiz.StepGoals, "fly")
	assert.ErrorIs(t, err, utils.ErrUnknownOption)

	sess, err = svc.GetSession(id)
	require.NoError(t, err)
	assert.Equal(t, quiz.StepGoals, sess.CurrentStep)
	for _, g := range sess.Answers.Goals {
		assert.False(t, g.Selected, g.ID)
	}

	walkTo(t, svc, id, quiz.StepChairYogaInfo)
	_, err = svc.SelectOption(id, quiz.StepChairYogaInfo, "anything")
	assert.ErrorIs(t, err, utils.ErrUnknownOption)

	sess, err = svc.GetSession(id)
	require.NoError(t, err)
	assert.Equal(t, quiz.StepChairYogaInfo, sess.CurrentStep)
}

func TestQuizService_ContinueOnUnreachedStepIsBlocked(t *testing.T) {
	svc, _ := newTestQuizService(nil)
	id := svc.StartSession().SessionID

	res, err := svc.Continue(id, quiz.StepChairYogaInfo)
	require.NoError(t, err)
	assert.False(t, res.Advanced)
	assert.Equal(t, quiz.StepChairYogaInfo, res.NextStep)

	sess, err := svc.GetSession(id)
	require.NoError(t, err)
	assert.Equal(t, quiz.StepAgeSelection, sess.CurrentStep)
	assert.Empty(t, sess.Answers.AgeRange)
}

func TestQuizService_SelectOnOtherStepChangesNothing(t *testing.T) {
	svc, _ := newTestQuizService(nil)
	id := svc.StartSession().SessionID

	res, err := svc.SelectOption(id, quiz.StepSales, "starter")
	require.NoError(t, err)
	assert.False(t, res.Advanced)
	assert.Empty(t, res.Answers.SelectedPlan)

	res, err = svc.SelectOption(id, quiz.StepGoals, quiz.GoalLoseWeight)
	require.NoError(t, err)
	assert.False(t, res.Advanced)
	for _, g := range res.Answers.Goals {
		assert.False(t, g.Selected, g.ID)
	}

	sess, err := svc.GetSession(id)
	require.NoError(t, err)
	assert.Equal(t, quiz.StartStep, sess.CurrentStep)
	assert.Empty(t, sess.Answers.SelectedPlan)
}

// Scenario: a stale tab re-submits the age screen after the visitor moved on.
func TestQuizService_StaleStepCannotRewindSession(t *testing.T) {
	svc, _ := newTestQuizService(nil)
	id := svc.StartSession().SessionID
	walkTo(t, svc, id, quiz.StepChairYogaExperience)

	res, err := svc.SelectOption(id, quiz.StepAgeSelection, "65+")
	require.NoError(t, err)
	assert.False(t, res.Advanced)

	res, err = svc.Continue(id, quiz.StepGoals)
	require.NoError(t, err)
	assert.False(t, res.Advanced)

	sess, err := svc.GetSession(id)
	require.NoError(t, err)
	assert.Equal(t, quiz.StepChairYogaExperience, sess.CurrentStep)
	assert.Equal(t, quiz.Age45to54, sess.Answers.AgeRange)
}

// Scenario: goals screen blocks until one goal is picked, then moves on.
func TestQuizService_GoalsGateContinue(t *testing.T) {
	svc, _ := newTestQuizService(nil)
	id := svc.StartSession().SessionID
	_, err := svc.SelectOption(id, quiz.StepAgeSelection, "45-54")
	require.NoError(t, err)

	blocked, err := svc.Continue(id, quiz.StepGoals)
	require.NoError(t, err)
	assert.False(t, blocked.Advanced)
	assert.Equal(t, quiz.StepGoals, blocked.NextStep)

	toggled, err := svc.SelectOption(id, quiz.StepGoals, quiz.GoalLoseWeight)
	require.NoError(t, err)
	assert.False(t, toggled.Advanced)

	moved, err := svc.Continue(id, quiz.StepGoals)
	require.NoError(t, err)
	assert.True(t, moved.Advanced)
	assert.Equal(t, quiz.StepChairYogaExperience, moved.NextStep)
}

func TestQuizService_SensitivityBranch(t *testing.T) {
	svc, _ := newTestQuizService(nil)
	id := svc.StartSession().SessionID
	walkTo(t, svc, id, quiz.StepSensitivityCheck)

	next, err := svc.PeekNext(id, quiz.StepSensitivityCheck)
	require.NoError(t, err)
	assert.Equal(t, quiz.StepExerciseStyle, next.Next)

	_, err = svc.SelectOption(id, quiz.StepSensitivityCheck, "knees")
	require.NoError(t, err)
	next, err = svc.PeekNext(id, quiz.StepSensitivityCheck)
	require.NoError(t, err)
	assert.Equal(t, quiz.StepSupport, next.Next)

	res, err := svc.SelectOption(id, quiz.StepSensitivityCheck, "none")
	require.NoError(t, err)
	assert.Equal(t, []quiz.Sensitivity{quiz.SensitivityNone}, res.Answers.Sensitivities)

	moved, err := svc.Continue(id, quiz.StepSensitivityCheck)
	require.NoError(t, err)
	assert.Equal(t, quiz.StepExerciseStyle, moved.NextStep)
}

func TestQuizService_ContinueUnknownStepFallsBackToStart(t *testing.T) {
	svc, _ := newTestQuizService(nil)
	id := svc.StartSession().SessionID

	res, err := svc.Continue(id, quiz.Step("nope"))
	require.NoError(t, err)
	assert.True(t, res.Advanced)
	assert.Equal(t, quiz.StartStep, res.NextStep)
}

func TestQuizService_SetBMI(t *testing.T) {
	svc, _ := newTestQuizService(nil)
	id := svc.StartSession().SessionID

	_, err := svc.SetBMI(id, request_models.BMIRequest{})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	first, err := svc.SetBMI(id, request_models.BMIRequest{HeightCm: 170, WeightKg: 80})
	require.NoError(t, err)
	assert.True(t, first.Stored)
	assert.InDelta(t, 27.7, first.BodyMassIndex, 0.001)

	second, err := svc.SetBMI(id, request_models.BMIRequest{BMI: 22})
	require.NoError(t, err)
	assert.False(t, second.Stored)
	assert.InDelta(t, 27.7, second.BodyMassIndex, 0.001)
}

func TestQuizService_CaptureEmail(t *testing.T) {
	leads := &recordingLeads{}
	svc, _ := newTestQuizService(leads)
	id := svc.StartSession().SessionID
	_, err := svc.SelectOption(id, quiz.StepAgeSelection, "55-64")
	require.NoError(t, err)

	bad, err := svc.CaptureEmail(id, "not-an-email")
	require.NoError(t, err)
	assert.False(t, bad.Accepted)
	assert.Empty(t, leads.captured)

	ok, err := svc.CaptureEmail(id, "  ana@example.com ")
	require.NoError(t, err)
	assert.True(t, ok.Accepted)

	require.Len(t, leads.captured, 1)
	lead := leads.captured[0]
	assert.Equal(t, id, lead.SessionID)
	assert.Equal(t, "ana@example.com", lead.Email)
	assert.Equal(t, quiz.Age55to64, lead.Answers.AgeRange)
	assert.NotEmpty(t, lead.PlanName)
}

func TestQuizService_CaptureSameEmailHandsOffOnce(t *testing.T) {
	leads := &recordingLeads{}
	svc, _ := newTestQuizService(leads)
	id := svc.StartSession().SessionID

	for _, email := range []string{"ana@example.com", " ana@example.com", "ana@example.com"} {
		res, err := svc.CaptureEmail(id, email)
		require.NoError(t, err)
		assert.True(t, res.Accepted)
	}
	require.Len(t, leads.captured, 1)

	res, err := svc.CaptureEmail(id, "bea@example.com")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	require.Len(t, leads.captured, 2)
	assert.Equal(t, "bea@example.com", leads.captured[1].Email)
}

func TestQuizService_ChoosePlanAndCheckout(t *testing.T) {
	svc, _ := newTestQuizService(nil)
	id := svc.StartSession().SessionID

	_, err := svc.ChoosePlan(id, "gold")
	assert.ErrorIs(t, err, utils.ErrPlanNotFound)

	resp, err := svc.ChoosePlan(id, "premium")
	require.NoError(t, err)
	assert.Equal(t, quiz.PlanPremium, resp.Answers.SelectedPlan)
	assert.Equal(t, quiz.StartStep, resp.CurrentStep)

	_, err = svc.BeginCheckout(id, quiz.PlanComplete)
	assert.ErrorIs(t, err, utils.ErrStepNotReached)
	sess, err := svc.GetSession(id)
	require.NoError(t, err)
	assert.Equal(t, quiz.StartStep, sess.CurrentStep)
	assert.Equal(t, quiz.PlanPremium, sess.Answers.SelectedPlan)

	walkTo(t, svc, id, quiz.StepSales)
	email, err := svc.BeginCheckout(id, quiz.PlanComplete)
	require.NoError(t, err)
	assert.Empty(t, email)

	sess, err = svc.GetSession(id)
	require.NoError(t, err)
	assert.Equal(t, quiz.StepCheckout, sess.CurrentStep)
	assert.Equal(t, quiz.PlanComplete, sess.Answers.SelectedPlan)

	// a second click from the checkout page is still allowed
	_, err = svc.BeginCheckout(id, quiz.PlanStarter)
	require.NoError(t, err)
}

func TestQuizService_SalesSelectAdvancesToCheckout(t *testing.T) {
	svc, _ := newTestQuizService(nil)
	id := svc.StartSession().SessionID
	walkTo(t, svc, id, quiz.StepSales)

	res, err := svc.SelectOption(id, quiz.StepSales, "starter")
	require.NoError(t, err)
	assert.True(t, res.Advanced)
	assert.Equal(t, quiz.StepCheckout, res.NextStep)
	assert.Equal(t, quiz.PlanStarter, res.Answers.SelectedPlan)
}

func TestQuizService_ConcurrentTogglesStayConsistent(t *testing.T) {
	svc, _ := newTestQuizService(nil)
	id := svc.StartSession().SessionID
	walkTo(t, svc, id, quiz.StepSensitivityCheck)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = svc.SelectOption(id, quiz.StepSensitivityCheck, "none")
		}()
		go func() {
			defer wg.Done()
			_, _ = svc.SelectOption(id, quiz.StepSensitivityCheck, "back")
		}()
	}
	wg.Wait()

	sess, err := svc.GetSession(id)
	require.NoError(t, err)
	got := sess.Answers.Sensitivities
	if len(got) > 1 {
		assert.NotContains(t, got, quiz.SensitivityNone)
	}
}

func TestQuizService_Summary(t *testing.T) {
	svc, _ := newTestQuizService(nil)
	id := svc.StartSession().SessionID
	walkTo(t, svc, id, quiz.StepGoals)
	_, err := svc.SelectOption(id, quiz.StepGoals, quiz.GoalImproveMobility)
	require.NoError(t, err)

	summary, err := svc.Summary(id)
	require.NoError(t, err)
	assert.Equal(t, "Method Chair Yoga for Mobility", summary.PlanName)
}

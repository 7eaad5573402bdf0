package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"yogafunnel/internal/metrics"
	"yogafunnel/internal/models/db_models"
	"yogafunnel/internal/models/request_models"
	"yogafunnel/internal/quiz"
	mem "yogafunnel/pkg/memcache"
)

type recordingLeads struct {
	mu       sync.Mutex
	captured []LeadCapture
}

func (r *recordingLeads) Capture(lead LeadCapture) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.captured = append(r.captured, lead)
}

func (r *recordingLeads) Wait() {}

type fakeLeadRepo struct {
	mu    sync.Mutex
	leads []*db_models.Lead
	err   error
}

func (f *fakeLeadRepo) CreateLead(_ context.Context, lead *db_models.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.leads = append(f.leads, lead)
	return nil
}

type sentMail struct {
	to, planName, resumeURL string
}

type fakeMail struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeMail) SendPlanReady(to, planName, resumeURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, planName, resumeURL})
	return nil
}

type fakeCheckoutRepo struct {
	mu    sync.Mutex
	rows  map[string]*db_models.Checkout // by provider txn id
	fails bool
}

func newFakeCheckoutRepo() *fakeCheckoutRepo {
	return &fakeCheckoutRepo{rows: map[string]*db_models.Checkout{}}
}

func (f *fakeCheckoutRepo) CreateCheckout(_ context.Context, c *db_models.Checkout) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fails {
		return errors.New("connection refused")
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.rows[c.ProviderTxnID] = c
	return nil
}

func (f *fakeCheckoutRepo) UpdateCheckout(_ context.Context, id string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.rows {
		if c.ID.String() != id {
			continue
		}
		if v, ok := fields["status"]; ok {
			c.Status = v.(db_models.CheckoutStatus)
		}
		if v, ok := fields["payment_url"]; ok {
			c.PaymentURL = v.(string)
		}
		if v, ok := fields["metadata"]; ok {
			c.Metadata = v.([]byte)
		}
	}
	return nil
}

func (f *fakeCheckoutRepo) GetByProviderTxnID(_ context.Context, txnID string) (*db_models.Checkout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.rows[txnID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCheckoutRepo) MarkPaid(_ context.Context, txnID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.rows[txnID]
	if !ok || c.Status == db_models.CheckoutPaid {
		return false, nil
	}
	c.Status = db_models.CheckoutPaid
	return true, nil
}

type fakeGateway struct {
	requests  []PaymentLinkRequest
	linkErr   error
	event     *WebhookEvent
	verifyErr error
}

func (g *fakeGateway) CreateLink(_ context.Context, req PaymentLinkRequest) (*PaymentLink, error) {
	g.requests = append(g.requests, req)
	if g.linkErr != nil {
		return nil, g.linkErr
	}
	return &PaymentLink{
		CheckoutURL:   "https://pay.example/link/" + req.ItemName,
		PaymentLinkID: "pl_1",
		Status:        "PENDING",
	}, nil
}

func (g *fakeGateway) VerifyWebhook(_ []byte) (*WebhookEvent, error) {
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return g.event, nil
}

func newTestFunnel() *metrics.Funnel {
	return metrics.MustNewFunnel(prometheus.NewRegistry())
}

func newTestQuizService(leads LeadServiceInterface) (*QuizService, mem.SessionStore) {
	store := mem.NewSessions(0, 0)
	svc := NewQuizService(store, NewPlanService(), leads, newTestFunnel()).(*QuizService)
	return svc, store
}

var walkPicks = map[quiz.Step]string{
	quiz.StepAgeSelection:        string(quiz.Age45to54),
	quiz.StepGoals:               quiz.GoalLoseWeight,
	quiz.StepChairYogaExperience: string(quiz.ExperienceNever),
	quiz.StepBodyType:            string(quiz.BodyNormal),
	quiz.StepDreamBody:           string(quiz.DreamFit),
	quiz.StepTargetZones:         string(quiz.ZoneBelly),
	quiz.StepExerciseStyle:       string(quiz.StyleYoga),
	quiz.StepAvailableTime:       string(quiz.Time15to30),
}

// walkTo answers every screen in order until the session sits on target.
// target must not be past sales.
func walkTo(t *testing.T, svc QuizServiceInterface, id string, target quiz.Step) {
	t.Helper()
	for i := 0; i < quiz.TotalSteps(); i++ {
		sess, err := svc.GetSession(id)
		require.NoError(t, err)
		step := sess.CurrentStep
		if step == target {
			return
		}

		if step == quiz.StepBMICalculator {
			_, err = svc.SetBMI(id, request_models.BMIRequest{BMI: 24})
			require.NoError(t, err)
		}
		if pick, ok := walkPicks[step]; ok {
			_, err = svc.SelectOption(id, step, pick)
			require.NoError(t, err, step)
		}
		if quiz.KindOf(step) != quiz.KindSingleChoice {
			res, err := svc.Continue(id, step)
			require.NoError(t, err)
			require.True(t, res.Advanced, step)
		}
	}
	t.Fatalf("session never reached %s", target)
}

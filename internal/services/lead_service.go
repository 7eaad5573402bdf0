package services

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"yogafunnel/internal/models/db_models"
	"yogafunnel/internal/quiz"
	"yogafunnel/internal/repositories"
)

// LeadCapture is what the quiz knows when a visitor leaves their email.
type LeadCapture struct {
	SessionID string
	Email     string
	PlanName  string
	Answers   quiz.Snapshot
}

type LeadServiceInterface interface {
	// Capture persists the lead and sends the plan-ready mail in the
	// background. It never blocks the caller and never reports failure.
	Capture(lead LeadCapture)
	// Wait blocks until every in-flight capture has finished.
	Wait()
}

const leadHandoffTimeout = 15 * time.Second

type LeadService struct {
	repo    repositories.LeadRepositoryInterface
	mail    IMailService
	baseURL string
	wg      sync.WaitGroup
}

// NewLeadService accepts a nil mail service; leads are then stored only.
func NewLeadService(repo repositories.LeadRepositoryInterface, mail IMailService, baseURL string) *LeadService {
	return &LeadService{
		repo:    repo,
		mail:    mail,
		baseURL: baseURL,
	}
}

func (l *LeadService) Capture(lead LeadCapture) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), leadHandoffTimeout)
		defer cancel()
		l.handoff(ctx, lead)
	}()
}

func (l *LeadService) Wait() {
	l.wg.Wait()
}

func (l *LeadService) handoff(ctx context.Context, lead LeadCapture) {
	logger := log.With().Str("session_id", lead.SessionID).Logger()

	if l.repo != nil {
		row, err := leadRow(lead)
		if err != nil {
			logger.Error().Err(err).Msg("encode lead answers")
		} else if err := l.repo.CreateLead(ctx, row); err != nil {
			logger.Error().Err(err).Msg("store lead")
		}
	}

	if l.mail == nil {
		return
	}
	if err := l.mail.SendPlanReady(lead.Email, lead.PlanName, l.resumeURL(lead.SessionID)); err != nil {
		logger.Warn().Err(err).Msg("plan-ready mail not sent")
		return
	}
	logger.Info().Msg("plan-ready mail sent")
}

func (l *LeadService) resumeURL(sessionID string) string {
	return l.baseURL + "/results?session=" + url.QueryEscape(sessionID)
}

func leadRow(lead LeadCapture) (*db_models.Lead, error) {
	var goals []string
	for _, g := range lead.Answers.Goals {
		if g.Selected {
			goals = append(goals, g.ID)
		}
	}
	if goals == nil {
		goals = []string{}
	}
	goalsJSON, err := json.Marshal(goals)
	if err != nil {
		return nil, err
	}
	answersJSON, err := json.Marshal(lead.Answers)
	if err != nil {
		return nil, err
	}
	return &db_models.Lead{
		SessionID: lead.SessionID,
		Email:     lead.Email,
		AgeRange:  string(lead.Answers.AgeRange),
		Goals:     goalsJSON,
		Answers:   answersJSON,
	}, nil
}

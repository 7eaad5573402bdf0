package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"yogafunnel/internal/quiz"
)

func sampleLead() LeadCapture {
	a := quiz.NewAnswers()
	a.SetAgeRange(quiz.Age45to54)
	a.ToggleGoal(quiz.GoalManageMood)
	a.SetEmail("bia@example.com")
	return LeadCapture{
		SessionID: "sess-1",
		Email:     a.Email(),
		PlanName:  "Method Chair Yoga for Balance",
		Answers:   a.Snapshot(),
	}
}

func TestLeadService_StoresAndMails(t *testing.T) {
	repo := &fakeLeadRepo{}
	mail := &fakeMail{}
	svc := NewLeadService(repo, mail, "https://quiz.example")

	svc.Capture(sampleLead())
	svc.Wait()

	require.Len(t, repo.leads, 1)
	row := repo.leads[0]
	assert.Equal(t, "sess-1", row.SessionID)
	assert.Equal(t, "bia@example.com", row.Email)
	assert.Equal(t, "45-54", row.AgeRange)

	var goals []string
	require.NoError(t, json.Unmarshal(row.Goals, &goals))
	assert.Equal(t, []string{quiz.GoalManageMood}, goals)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "bia@example.com", mail.sent[0].to)
	assert.Equal(t, "https://quiz.example/results?session=sess-1", mail.sent[0].resumeURL)
}

func TestLeadService_FailuresAreSwallowed(t *testing.T) {
	repo := &fakeLeadRepo{err: errors.New("db down")}
	mail := &fakeMail{err: errors.New("smtp down")}
	svc := NewLeadService(repo, mail, "")

	assert.NotPanics(t, func() {
		svc.Capture(sampleLead())
		svc.Wait()
	})
	assert.Empty(t, repo.leads)
}

func TestLeadService_NoMailer(t *testing.T) {
	repo := &fakeLeadRepo{}
	svc := NewLeadService(repo, nil, "")

	svc.Capture(sampleLead())
	svc.Wait()

	assert.Len(t, repo.leads, 1)
}

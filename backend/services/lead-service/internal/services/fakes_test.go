package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/form"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-models"
)

// fakeBackend implements backend.Client with canned answers.
type fakeBackend struct {
	mu sync.Mutex

	submitErr   error
	submitHook  func()
	submitted   []form.State
	estimates   []models.EstimateRequest
	estimateErr error

	testimonials []models.Testimonial
	deleted      []string

	chatReply   string
	chatErr     error
	chatHistory []models.ChatMessage
}

func (f *fakeBackend) SubmitRequest(_ context.Context, s form.State) error {
	if f.submitHook != nil {
		f.submitHook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, s)
	return f.submitErr
}

func (f *fakeBackend) ListTestimonials(context.Context) ([]models.Testimonial, error) {
	return append([]models.Testimonial(nil), f.testimonials...), nil
}

func (f *fakeBackend) DeleteTestimonial(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) ListEstimates(context.Context) ([]models.Estimate, error) {
	return nil, nil
}

func (f *fakeBackend) SubmitEstimate(_ context.Context, req models.EstimateRequest) error {
	f.estimates = append(f.estimates, req)
	return f.estimateErr
}

func (f *fakeBackend) Chat(_ context.Context, _ string, history []models.ChatMessage) (string, error) {
	f.chatHistory = history
	return f.chatReply, f.chatErr
}

func (f *fakeBackend) Ping(context.Context) error { return nil }

type recordingNotifier struct {
	calls []models.SubmittedRequest
	err   error
}

func (n *recordingNotifier) LeadSubmitted(_ context.Context, _ form.State, rec models.SubmittedRequest) error {
	n.calls = append(n.calls, rec)
	return n.err
}

func filledContainer(t *testing.T) *form.Container {
	t.Helper()
	c := form.New()
	require.NoError(t, c.SetContact(form.ContactFirstName, "Jane"))
	require.NoError(t, c.SetContact(form.ContactLastName, "Doe"))
	require.NoError(t, c.SetContact(form.ContactEmail, "jane@example.com"))
	require.NoError(t, c.SetContact(form.ContactPhone, "(812) 457-3433"))
	c.SetPropertyType("Residential")
	require.NoError(t, c.SetService(form.ServiceTreeRemoval, true))
	require.NoError(t, c.SetService(form.ServiceRootHealth, true))
	return c
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/clients/backend"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/form"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/retention"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-models"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

// SubmitResult is what a visitor sees after an accepted submission.
type SubmitResult struct {
	Record         models.SubmittedRequest
	RecentRequests []models.SubmittedRequest
}

// LeadService runs the contact-form submission flow for one browser scope.
type LeadService interface {
	// Submit validates c, sends it to the backend and records the summary.
	// On success c is reset; on any error it is left untouched.
	Submit(ctx context.Context, scope string, c *form.Container) (*SubmitResult, error)
	// Recent lists the scope's requests younger than the retention horizon.
	// Only browser scopes keep history; any other scope lists nothing.
	Recent(ctx context.Context, scope string) ([]models.SubmittedRequest, error)
}

type leadService struct {
	client   backend.Client
	cache    *retention.Cache
	notifier NotificationService
	now      func() time.Time
	newID    func() (uuid.UUID, error)

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewLeadService(client backend.Client, cache *retention.Cache, notifier NotificationService) LeadService {
	return &leadService{
		client:   client,
		cache:    cache,
		notifier: notifier,
		now:      time.Now,
		newID:    uuid.NewV7,
		inFlight: make(map[string]struct{}),
	}
}

func (s *leadService) Submit(ctx context.Context, scope string, c *form.Container) (*SubmitResult, error) {
	if !s.acquire(scope) {
		return nil, utils.ErrSubmissionInFlight
	}
	defer s.release(scope)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	state := c.State()
	if err := s.client.SubmitRequest(ctx, state); err != nil {
		return nil, err
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("generate request id: %w", err)
	}
	rec := c.Summary(id.String(), s.now())

	if utils.IsBrowserScope(scope) {
		if _, err := s.cache.Append(ctx, scope, rec); err != nil {
			utils.Logger.WithError(err).WithField("scope", scope).Warn("Error saving submitted request")
		}
	}
	c.Reset()

	if err := s.notifier.LeadSubmitted(ctx, state, rec); err != nil {
		utils.Logger.WithError(err).WithField("requestId", rec.ID).Error("Failed to send lead notification")
	}

	recent, err := s.Recent(ctx, scope)
	if err != nil {
		return nil, err
	}
	utils.Logger.WithField("requestId", rec.ID).Infof("Service request submitted (%d image(s))", len(state.Images))

	return &SubmitResult{Record: rec, RecentRequests: recent}, nil
}

func (s *leadService) Recent(ctx context.Context, scope string) ([]models.SubmittedRequest, error) {
	if !utils.IsBrowserScope(scope) {
		return []models.SubmittedRequest{}, nil
	}
	res, err := s.cache.LoadValid(ctx, scope)
	var werr *retention.WriteError
	if errors.As(err, &werr) {
		utils.Logger.WithError(err).WithField("scope", scope).Warn("Error saving pruned requests")
	} else if err != nil {
		return nil, err
	}
	return res.Records, nil
}

func (s *leadService) acquire(scope string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[scope]; busy {
		return false
	}
	s.inFlight[scope] = struct{}{}
	return true
}

func (s *leadService) release(scope string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, scope)
}

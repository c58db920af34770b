package services

import (
	"context"
	"errors"

	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/retention"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

// RetentionCleanupService re-checks every stored scope so expired requests
// disappear even for browsers that never come back.
type RetentionCleanupService struct {
	cache *retention.Cache
}

func NewRetentionCleanupService(cache *retention.Cache) *RetentionCleanupService {
	return &RetentionCleanupService{cache: cache}
}

// CleanupHourly prunes every scope once. Write failures on single scopes
// are logged and skipped.
func (s *RetentionCleanupService) CleanupHourly(ctx context.Context) error {
	scopes, err := s.cache.Scopes(ctx)
	if err != nil {
		return err
	}

	var pruned, failed int
	for _, scope := range scopes {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := s.cache.LoadValid(ctx, scope)
		var werr *retention.WriteError
		if errors.As(err, &werr) {
			failed++
			utils.Logger.WithError(err).WithField("scope", scope).Warn("Failed to persist pruned requests")
			continue
		}
		pruned += res.Pruned
	}

	utils.Logger.Infof("Retention sweep checked %d scope(s), pruned %d request(s), %d write failure(s)", len(scopes), pruned, failed)
	return nil
}

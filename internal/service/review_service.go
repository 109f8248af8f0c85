package service

import (
	"context"

	"github.com/lshigami/softskills/internal/dto"
	"github.com/lshigami/softskills/internal/model"
	"github.com/lshigami/softskills/internal/repository"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	DefaultPendingLimit = 50
	MaxPendingLimit     = 200
)

type ReviewService interface {
	ListPending(ctx context.Context, limit int) ([]dto.PendingAttemptDTO, error)
}

type reviewService struct {
	attemptRepo    repository.AttemptRepository
	users          UserDirectory
	scoreConverter ScoreConverterService
}

func NewReviewService(attemptRepo repository.AttemptRepository, users UserDirectory, scoreConverter ScoreConverterService) ReviewService {
	return &reviewService{attemptRepo: attemptRepo, users: users, scoreConverter: scoreConverter}
}

// ListPending returns pending attempts newest first. User info is best effort:
// a failed lookup leaves User nil and never fails the listing.
func (s *reviewService) ListPending(ctx context.Context, limit int) ([]dto.PendingAttemptDTO, error) {
	if limit <= 0 {
		limit = DefaultPendingLimit
	}
	if limit > MaxPendingLimit {
		limit = MaxPendingLimit
	}

	attempts, err := s.attemptRepo.ListByStatus(ctx, model.StatusPending, limit)
	if err != nil {
		log.Error().Err(err).Msg("ListPending: failed to list pending attempts")
		return nil, errors.Wrap(err, "list pending attempts")
	}

	seen := make(map[string]*dto.UserInfoDTO)
	result := make([]dto.PendingAttemptDTO, 0, len(attempts))
	for i := range attempts {
		a := &attempts[i]

		info, looked := seen[a.UserID]
		if !looked {
			var lookupErr error
			info, lookupErr = s.users.Lookup(ctx, a.UserID)
			if lookupErr != nil {
				log.Warn().Err(lookupErr).Str("userID", a.UserID).Msg("ListPending: user lookup failed")
				info = nil
			}
			seen[a.UserID] = info
		}

		resp, err := buildAttemptResponse(a, s.scoreConverter)
		if err != nil {
			return nil, err
		}
		result = append(result, dto.PendingAttemptDTO{AttemptResponse: *resp, User: info})
	}
	return result, nil
}

package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hamagardy/mandoubi-api/internal/application/dto"
	"github.com/hamagardy/mandoubi-api/internal/domain"
	"github.com/hamagardy/mandoubi-api/internal/domain/repository"
	"github.com/hamagardy/mandoubi-api/pkg/logger"
)

// TargetUseCase monthly sales targets. Targets are stored in the baseline
// currency (IQD); any display-time conversion is the export adapters'
// business.
type TargetUseCase struct {
	userRepo repository.UserRepository
	log      *logger.Logger
}

// NewTargetUseCase builds the use case.
func NewTargetUseCase(userRepo repository.UserRepository, log *logger.Logger) *TargetUseCase {
	return &TargetUseCase{userRepo: userRepo, log: log}
}

// GetTarget returns the user's target for the month index (0-11), falling
// back to the documented default when none is stored.
func (uc *TargetUseCase) GetTarget(ctx context.Context, userID string, monthIndex int) (decimal.Decimal, error) {
	if monthIndex < 0 || monthIndex > 11 {
		return decimal.Zero, domain.ErrValidation
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if user == nil {
		return decimal.Zero, domain.ErrUserNotFound
	}
	return user.TargetFor(monthIndex), nil
}

// SetTarget writes one month's target. A member updates only its own record.
// An admin updates its own record first and then fans the value out to every
// other user at the same month index, best-effort: a failure on one user
// does not stop the others, and the collected failures come back as a
// PartialPropagationError while the response still reports the caller's own
// successful write.
func (uc *TargetUseCase) SetTarget(ctx context.Context, actorID string, monthIndex int, value decimal.Decimal) (*dto.TargetUpdateResponse, error) {
	if monthIndex < 0 || monthIndex > 11 {
		return nil, domain.ErrValidation
	}
	if !value.IsPositive() {
		return nil, domain.ErrValidation
	}
	actor, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrUserNotFound
	}

	// Own record first: this write must succeed for the operation to count.
	if err := uc.userRepo.SetTarget(ctx, actorID, monthIndex, value); err != nil {
		return nil, fmt.Errorf("set own target: %w", err)
	}
	resp := &dto.TargetUpdateResponse{MonthIndex: monthIndex, Value: value, UpdatedUsers: 1}

	if !actor.IsAdmin() {
		return resp, nil
	}

	users, err := uc.userRepo.List(ctx)
	if err != nil {
		// Fan-out could not even start; the caller's record is updated.
		uc.log.Error().Err(err).Int("month", monthIndex).Msg("target fan-out: listing users")
		resp.Warning = "target saved, but propagation to other users could not start"
		return resp, nil
	}

	var failed []string
	for i := range users {
		if users[i].ID == actorID {
			continue
		}
		if err := uc.userRepo.SetTarget(ctx, users[i].ID, monthIndex, value); err != nil {
			uc.log.Warn().Err(err).
				Str("user_id", users[i].ID).
				Int("month", monthIndex).
				Msg("target fan-out: user update failed")
			failed = append(failed, users[i].ID)
			continue
		}
		resp.UpdatedUsers++
	}

	if len(failed) > 0 {
		perr := &domain.PartialPropagationError{MonthIndex: monthIndex, FailedUserIDs: failed}
		resp.FailedUserIDs = failed
		resp.Warning = perr.Error()
	}
	return resp, nil
}

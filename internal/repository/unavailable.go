package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ROHITHC1526/CyberGuardBOT/internal/models"
)

var ErrStoreUnavailable = errors.New("message store unavailable")

// unavailableRepository stands in when the store could not be reached at
// startup. Every call fails, so analysis falls back to ephemeral results and
// the read paths report a store failure.
type unavailableRepository struct {
	cause error
}

func NewUnavailableRepository(cause error) MessageRepository {
	return &unavailableRepository{cause: cause}
}

func (r *unavailableRepository) err() error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, r.cause)
}

func (r *unavailableRepository) Create(context.Context, *models.ScoredMessage) error {
	return r.err()
}

func (r *unavailableRepository) Find(context.Context, models.MessageFilter, int, int) ([]models.ScoredMessage, int, error) {
	return nil, 0, r.err()
}

func (r *unavailableRepository) Count(context.Context, *models.Label) (int, error) {
	return 0, r.err()
}

func (r *unavailableRepository) Aggregate(context.Context, models.Label) (*models.ConfidenceStats, error) {
	return nil, r.err()
}

func (r *unavailableRepository) Ping(context.Context) error {
	return r.err()
}

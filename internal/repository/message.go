package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/ROHITHC1526/CyberGuardBOT/internal/models"
)

// MessageRepository persists scored messages and answers the read-side queries.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.ScoredMessage) error
	Find(ctx context.Context, filter models.MessageFilter, limit, skip int) ([]models.ScoredMessage, int, error)
	Count(ctx context.Context, label *models.Label) (int, error)
	Aggregate(ctx context.Context, label models.Label) (*models.ConfidenceStats, error)
	Ping(ctx context.Context) error
}

// AddressSealer encrypts the source address before it is stored.
type AddressSealer interface {
	Seal(address string) (string, error)
}

type messageRepository struct {
	db     *sqlx.DB
	sealer AddressSealer
	logger *zap.Logger
	now    func() time.Time
}

// NewMessageRepository returns a repository backed by db. sealer may be nil,
// in which case source addresses are stored as given.
func NewMessageRepository(db *sqlx.DB, sealer AddressSealer, logger *zap.Logger) MessageRepository {
	return &messageRepository{
		db:     db,
		sealer: sealer,
		logger: logger,
		now:    time.Now,
	}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.ScoredMessage) error {
	if !msg.Label.Valid() {
		return fmt.Errorf("invalid label %q", msg.Label)
	}

	address := msg.SourceAddress
	if address != nil && r.sealer != nil {
		sealed, err := r.sealer.Seal(*address)
		if err != nil {
			return fmt.Errorf("failed to seal source address: %w", err)
		}
		address = &sealed
	}

	id := uuid.NewString()
	createdAt := r.now().UTC()

	query := r.db.Rebind(`INSERT INTO messages (id, message, prediction, probability, explanations, source_address, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query, id, msg.Text, msg.Label, msg.Confidence, msg.Explanations, address, createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	msg.ID = id
	msg.CreatedAt = createdAt
	if msg.Explanations == nil {
		msg.Explanations = models.Explanations{}
	}
	return nil
}

func (r *messageRepository) Find(ctx context.Context, filter models.MessageFilter, limit, skip int) ([]models.ScoredMessage, int, error) {
	where, args := whereClause(filter.Label)

	query := r.db.Rebind(`SELECT id, message, prediction, probability, explanations, created_at
		FROM messages` + where + `
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`)

	messages := []models.ScoredMessage{}
	if err := r.db.SelectContext(ctx, &messages, query, append(args, limit, skip)...); err != nil {
		return nil, 0, fmt.Errorf("failed to query messages: %w", err)
	}

	total, err := r.Count(ctx, filter.Label)
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

func (r *messageRepository) Count(ctx context.Context, label *models.Label) (int, error) {
	where, args := whereClause(label)

	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(`SELECT COUNT(*) FROM messages`+where), args...); err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return total, nil
}

type aggregateRow struct {
	Matched int             `db:"matched"`
	Avg     sql.NullFloat64 `db:"avg_probability"`
	Min     sql.NullFloat64 `db:"min_probability"`
	Max     sql.NullFloat64 `db:"max_probability"`
}

// Aggregate returns nil stats when no message carries the label.
func (r *messageRepository) Aggregate(ctx context.Context, label models.Label) (*models.ConfidenceStats, error) {
	query := r.db.Rebind(`SELECT COUNT(*) AS matched,
			AVG(probability) AS avg_probability,
			MIN(probability) AS min_probability,
			MAX(probability) AS max_probability
		FROM messages
		WHERE prediction = ?`)

	var row aggregateRow
	if err := r.db.GetContext(ctx, &row, query, label); err != nil {
		return nil, fmt.Errorf("failed to aggregate %s messages: %w", label, err)
	}

	if row.Matched == 0 {
		return nil, nil
	}

	return &models.ConfidenceStats{
		AvgProbability: row.Avg.Float64,
		MinProbability: row.Min.Float64,
		MaxProbability: row.Max.Float64,
	}, nil
}

func (r *messageRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func whereClause(label *models.Label) (string, []any) {
	if label == nil {
		return "", nil
	}
	return " WHERE prediction = ?", []any{*label}
}

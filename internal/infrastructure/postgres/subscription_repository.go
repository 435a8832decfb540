package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

// SubscriptionRepository implements repository.SubscriptionRepository using PostgreSQL.
type SubscriptionRepository struct {
	db DBTX
}

// NewSubscriptionRepository creates a new SubscriptionRepository instance.
func NewSubscriptionRepository(db DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Find(ctx context.Context, subscriberID, channelID uuid.UUID) (*model.Subscription, error) {
	const query = `
		SELECT id, subscriber_id, channel_id, created_at
		FROM subscriptions
		WHERE subscriber_id = $1 AND channel_id = $2
	`

	metrics.ObserveQuery(metrics.DBQuerySelect, metrics.TableSubscriptions)
	var sub model.Subscription
	err := r.db.QueryRow(ctx, query, subscriberID, channelID).Scan(
		&sub.ID,
		&sub.SubscriberID,
		&sub.ChannelID,
		&sub.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}

	return &sub, nil
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	const query = `
		INSERT INTO subscriptions (id, subscriber_id, channel_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (subscriber_id, channel_id) DO NOTHING
	`

	metrics.ObserveQuery(metrics.DBQueryInsert, metrics.TableSubscriptions)
	tag, err := r.db.Exec(ctx, query, sub.ID, sub.SubscriberID, sub.ChannelID, sub.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateSubscription
		}
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrDuplicateSubscription
	}

	return nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM subscriptions WHERE id = $1`

	metrics.ObserveQuery(metrics.DBQueryDelete, metrics.TableSubscriptions)
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrSubscriptionNotFound
	}

	return nil
}

func (r *SubscriptionRepository) ListByChannel(ctx context.Context, channelID uuid.UUID) ([]*model.Subscription, error) {
	const query = `
		SELECT id, subscriber_id, channel_id, created_at
		FROM subscriptions
		WHERE channel_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, channelID)
}

func (r *SubscriptionRepository) ListBySubscriber(ctx context.Context, subscriberID uuid.UUID) ([]*model.Subscription, error) {
	const query = `
		SELECT id, subscriber_id, channel_id, created_at
		FROM subscriptions
		WHERE subscriber_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, subscriberID)
}

func (r *SubscriptionRepository) list(ctx context.Context, query string, id uuid.UUID) ([]*model.Subscription, error) {
	metrics.ObserveQuery(metrics.DBQuerySelect, metrics.TableSubscriptions)
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	subs := []*model.Subscription{}
	for rows.Next() {
		var sub model.Subscription
		if err := rows.Scan(&sub.ID, &sub.SubscriberID, &sub.ChannelID, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, &sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}

	return subs, nil
}

var _ repository.SubscriptionRepository = (*SubscriptionRepository)(nil)

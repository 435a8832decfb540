package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// SubscriptionResult is the outcome of a subscription toggle.
type SubscriptionResult struct {
	Subscription *model.Subscription
	Subscribed   bool
}

// SubscriptionService defines channel subscription operations.
type SubscriptionService interface {
	// Toggle subscribes subscriberID to channelID, or unsubscribes if already subscribed.
	Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (*SubscriptionResult, error)

	// ListSubscribers returns the subscriptions whose channel is channelID.
	ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*model.Subscription, error)

	// ListSubscribedChannels returns the subscriptions held by subscriberID.
	ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*model.Subscription, error)
}

type subscriptionService struct {
	subs   repository.SubscriptionRepository
	users  repository.UserRepository
	locker repository.Locker
}

// NewSubscriptionService creates a new SubscriptionService instance. locker may be nil.
func NewSubscriptionService(
	subs repository.SubscriptionRepository,
	users repository.UserRepository,
	locker repository.Locker,
) SubscriptionService {
	return &subscriptionService{
		subs:   subs,
		users:  users,
		locker: locker,
	}
}

func (s *subscriptionService) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (*SubscriptionResult, error) {
	if subscriberID == uuid.Nil {
		return nil, model.ErrInvalidSubscriberID
	}
	if channelID == uuid.Nil {
		return nil, model.ErrInvalidChannelID
	}

	if _, err := s.users.GetByID(ctx, channelID); err != nil {
		return nil, err
	}

	release := acquire(ctx, s.locker, fmt.Sprintf("subscription:%s:%s", subscriberID, channelID))
	defer release()

	existing, err := s.subs.Find(ctx, subscriberID, channelID)
	switch {
	case err == nil:
		if err := s.subs.Delete(ctx, existing.ID); err != nil && !errors.Is(err, repository.ErrSubscriptionNotFound) {
			return nil, persistErr("failed to remove subscription", err)
		}
		return &SubscriptionResult{Subscription: existing, Subscribed: false}, nil
	case !errors.Is(err, repository.ErrSubscriptionNotFound):
		return nil, fmt.Errorf("find subscription: %w", err)
	}

	sub, err := model.NewSubscription(subscriberID, channelID)
	if err != nil {
		return nil, err
	}

	if err := s.subs.Create(ctx, sub); err != nil {
		if !errors.Is(err, repository.ErrDuplicateSubscription) {
			return nil, persistErr("failed to save subscription", err)
		}
		current, findErr := s.subs.Find(ctx, subscriberID, channelID)
		if findErr != nil {
			return nil, fmt.Errorf("find subscription after conflict: %w", findErr)
		}
		return &SubscriptionResult{Subscription: current, Subscribed: true}, nil
	}

	return &SubscriptionResult{Subscription: sub, Subscribed: true}, nil
}

func (s *subscriptionService) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*model.Subscription, error) {
	if channelID == uuid.Nil {
		return nil, model.ErrInvalidChannelID
	}

	subs, err := s.subs.ListByChannel(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return subs, nil
}

func (s *subscriptionService) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*model.Subscription, error) {
	if subscriberID == uuid.Nil {
		return nil, model.ErrInvalidSubscriberID
	}

	subs, err := s.subs.ListBySubscriber(ctx, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("list subscribed channels: %w", err)
	}
	return subs, nil
}

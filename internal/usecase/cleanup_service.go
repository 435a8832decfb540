package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

const (
	// DefaultMaxRetries is the default number of failed attempts before a task is dead-lettered.
	DefaultMaxRetries = 5
)

// CleanupServiceConfig holds configuration for CleanupService.
type CleanupServiceConfig struct {
	MaxRetries int
}

// DefaultCleanupServiceConfig returns the default configuration.
func DefaultCleanupServiceConfig() CleanupServiceConfig {
	return CleanupServiceConfig{
		MaxRetries: DefaultMaxRetries,
	}
}

// CleanupService deletes orphaned media assets.
type CleanupService interface {
	// ProcessTask deletes the asset a task points at. Transient failures are
	// returned as plain errors; failures that retrying cannot fix wrap
	// repository.ErrDeadLetter.
	ProcessTask(ctx context.Context, task repository.CleanupTask) error
}

type cleanupService struct {
	media      repository.MediaStore
	maxRetries int
}

// NewCleanupService creates a new CleanupService instance.
func NewCleanupService(media repository.MediaStore, cfg CleanupServiceConfig) CleanupService {
	return &cleanupService{
		media:      media,
		maxRetries: cfg.MaxRetries,
	}
}

func (s *cleanupService) ProcessTask(ctx context.Context, task repository.CleanupTask) error {
	if task.RetryCount >= s.maxRetries {
		return s.deadLetter(fmt.Sprintf("gave up after %d attempts", task.RetryCount))
	}
	if task.URL == "" || !task.Kind.IsValid() {
		return s.deadLetter(fmt.Sprintf("malformed task for kind %q", task.Kind))
	}

	key, err := s.media.Delete(ctx, task.URL, task.Kind)
	switch {
	case err == nil, errors.Is(err, repository.ErrObjectNotFound):
	case errors.Is(err, repository.ErrInvalidMediaURL):
		return s.deadLetter("URL does not belong to the media store")
	default:
		metrics.CleanupTasksTotal.WithLabelValues(metrics.CleanupRetried).Inc()
		return fmt.Errorf("delete asset: %w", err)
	}

	slog.InfoContext(ctx, "orphaned asset deleted",
		"key", key,
		"reason", task.Reason,
		"retry_count", task.RetryCount,
	)
	metrics.CleanupTasksTotal.WithLabelValues(metrics.CleanupDeleted).Inc()
	return nil
}

func (s *cleanupService) deadLetter(reason string) error {
	metrics.CleanupTasksTotal.WithLabelValues(metrics.CleanupDeadLettered).Inc()
	return fmt.Errorf("%w: %s", repository.ErrDeadLetter, reason)
}

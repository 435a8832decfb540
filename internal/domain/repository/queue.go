package repository

import (
	"context"
	"errors"
)

// ErrDeadLetter marks a task that must not be retried. Queue implementations
// park such tasks on a dead-letter queue instead of republishing them.
var ErrDeadLetter = errors.New("task is not retryable")

// CleanupTask asks the worker to delete a media asset no record references.
type CleanupTask struct {
	URL        string    `json:"url"`
	Kind       MediaKind `json:"kind"`
	Reason     string    `json:"reason"`
	RetryCount int       `json:"retry_count"`
}

// CleanupQueue carries orphaned-asset cleanup tasks from the API to the worker.
type CleanupQueue interface {
	// PublishCleanupTask sends a cleanup task to the queue.
	PublishCleanupTask(ctx context.Context, task CleanupTask) error

	// ConsumeCleanupTasks calls handler for each received task until ctx is done.
	// A handler error is retried with RetryCount+1 unless it wraps ErrDeadLetter.
	ConsumeCleanupTasks(ctx context.Context, handler func(task CleanupTask) error) error

	Close() error
}

package store

import (
	"context"
	"errors"
)

var (
	// ErrAlreadyRegistered is returned by Put when the chat already has a username.
	ErrAlreadyRegistered = errors.New("chat already registered")
	// ErrNotRegistered is returned by Get when the chat is unknown.
	ErrNotRegistered = errors.New("chat not registered")
	// ErrPersist wraps failures to write the durable copy of the mapping.
	// The in-memory state is still updated; callers log and continue.
	ErrPersist = errors.New("persist users")
)

// Repo defines storage operations for the chat→LeetCode username mapping.
type Repo interface {
	Get(ctx context.Context, chatID int64) (string, error)
	Put(ctx context.Context, chatID int64, username string) error
	All(ctx context.Context) (map[int64]string, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// Package tasktags implements the task↔tag association: owner-scoped link
// records between the task ledger and the tag registry.
package tasktags

import (
	"context"
	"time"

	"github.com/mzhadan/pomotrack/internal/server/tags"
	"github.com/mzhadan/pomotrack/internal/server/tasks"
)

type Service struct {
	repo     Repository
	taskRepo tasks.Repository
	tagRepo  tags.Repository
}

func NewService(repo Repository, taskRepo tasks.Repository, tagRepo tags.Repository) *Service {
	return &Service{repo: repo, taskRepo: taskRepo, tagRepo: tagRepo}
}

// Link attaches a tag to a task. Both ends must be active records owned by
// the caller; anything else fails ErrorNotFound. The insert itself is a
// plain append — duplicate links are not rejected.
func (s *Service) Link(ctx context.Context, userID, taskID, tagID string) (*Link, error) {

	if _, err := s.taskRepo.GetOwned(ctx, taskID, userID); err != nil {
		return nil, err
	}
	if _, err := s.tagRepo.GetOwned(ctx, tagID, userID); err != nil {
		return nil, err
	}

	link := &Link{
		UserID:    userID,
		TaskID:    taskID,
		TagID:     tagID,
		CreatedAt: time.Now().UTC(),
		Version:   1,
	}

	return s.repo.Create(ctx, link)
}

// ListByTask returns the links of an owned task.
func (s *Service) ListByTask(ctx context.Context, userID, taskID string) ([]*Link, error) {
	if _, err := s.taskRepo.GetOwned(ctx, taskID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByTask(ctx, taskID)
}

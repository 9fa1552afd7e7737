// Package tasks implements the task ledger: todo/distraction items with a
// completion transition and soft deletion.
package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/mzhadan/pomotrack/internal/common"
	"github.com/mzhadan/pomotrack/internal/server/record"
)

// LinkCleaner removes task-tag links when a task goes away. Implemented by
// the tasktags repository; declared here to keep the dependency one-way.
type LinkCleaner interface {
	DeleteByTask(ctx context.Context, taskID string) (int64, error)
}

type Service struct {
	repo  Repository
	links LinkCleaner
}

func NewService(repo Repository, links LinkCleaner) *Service {
	return &Service{repo: repo, links: links}
}

// Create validates and stores a new task. Status defaults to pending.
func (s *Service) Create(ctx context.Context, userID, title, description string, taskType Type, status Status) (*Task, error) {

	if title == "" || !taskType.Valid() {
		return nil, common.ErrorValidation
	}
	if status == "" {
		status = StatusPending
	}
	if !status.Valid() {
		return nil, common.ErrorValidation
	}

	task := &Task{
		Meta:        record.NewMeta(userID, time.Now().UTC()),
		Title:       title,
		Description: description,
		Type:        taskType,
		Status:      status,
	}

	return s.repo.Create(ctx, task)
}

func (s *Service) List(ctx context.Context, userID string, taskType Type) ([]*Task, error) {
	if taskType != "" && !taskType.Valid() {
		return nil, common.ErrorValidation
	}
	return s.repo.List(ctx, userID, taskType)
}

func (s *Service) Get(ctx context.Context, userID, taskID string) (*Task, error) {
	return s.repo.GetOwned(ctx, taskID, userID)
}

// Complete transitions the task to completed. A task that exists for the
// owner but is already completed yields ErrorNoChange rather than success,
// so callers can tell a no-op apart from a real transition.
func (s *Service) Complete(ctx context.Context, userID, taskID string) error {

	n, err := s.repo.Complete(ctx, taskID, userID, time.Now().UTC())
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	task, err := s.repo.GetOwned(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return err
	}
	if task.Status == StatusCompleted {
		return common.ErrorNoChange
	}
	return common.ErrorNotFound
}

// Delete soft-deletes the task and then clears its tag links. The link
// cleanup is not owner-checked again; the guarded soft delete already proved
// ownership.
func (s *Service) Delete(ctx context.Context, userID, taskID string) error {

	if err := s.repo.SoftDelete(ctx, taskID, userID, time.Now().UTC()); err != nil {
		return err
	}

	if _, err := s.links.DeleteByTask(ctx, taskID); err != nil {
		return err
	}
	return nil
}

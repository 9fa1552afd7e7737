// Package tags implements the tag registry: user-owned labels with
// per-owner name uniqueness and cascade cleanup of task links on delete.
package tags

import (
	"context"
	"time"

	"github.com/mzhadan/pomotrack/internal/common"
	"github.com/mzhadan/pomotrack/internal/server/record"
)

// LinkCleaner removes task-tag links when a tag goes away. Implemented by
// the tasktags repository.
type LinkCleaner interface {
	DeleteByTag(ctx context.Context, tagID string) (int64, error)
}

type Service struct {
	repo  Repository
	links LinkCleaner
}

func NewService(repo Repository, links LinkCleaner) *Service {
	return &Service{repo: repo, links: links}
}

// Create stores a new tag. The name must be free among the owner's active
// tags; a soft-deleted tag does not block reuse of its name.
func (s *Service) Create(ctx context.Context, userID, name, color string) (*Tag, error) {

	if name == "" {
		return nil, common.ErrorValidation
	}
	if color == "" {
		color = DefaultColor
	}

	exists, err := s.repo.NameExists(ctx, userID, name)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if exists {
		return nil, common.ErrorConflict
	}

	tag := &Tag{
		Meta:  record.NewMeta(userID, time.Now().UTC()),
		Name:  name,
		Color: color,
	}

	return s.repo.Create(ctx, tag)
}

func (s *Service) List(ctx context.Context, userID string) ([]*Tag, error) {
	return s.repo.List(ctx, userID)
}

// Delete soft-deletes the tag and, only once that succeeds, removes every
// task link referencing it. Link removal is unconditional: the guarded soft
// delete already proved the caller owns the tag.
func (s *Service) Delete(ctx context.Context, userID, tagID string) error {

	if err := s.repo.SoftDelete(ctx, tagID, userID, time.Now().UTC()); err != nil {
		return err
	}

	if _, err := s.links.DeleteByTag(ctx, tagID); err != nil {
		return err
	}
	return nil
}

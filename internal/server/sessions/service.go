// Package sessions implements the session tracker: timed work/break runs
// with an active → completed state machine.
package sessions

import (
	"context"
	"time"

	"github.com/mzhadan/pomotrack/internal/common"
	"github.com/mzhadan/pomotrack/internal/server/record"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Start creates a session in the active state. taskID is optional; nil
// means untethered focus time.
func (s *Service) Start(ctx context.Context, userID, timerTypeID string, taskID *string, workDuration, breakDuration int) (*Session, error) {

	if timerTypeID == "" || workDuration <= 0 || breakDuration < 0 {
		return nil, common.ErrorValidation
	}
	if taskID != nil && *taskID == "" {
		taskID = nil
	}

	now := time.Now().UTC()
	session := &Session{
		Meta:          record.NewMeta(userID, now),
		TaskID:        taskID,
		TimerTypeID:   timerTypeID,
		StartTime:     now,
		WorkDuration:  workDuration,
		BreakDuration: breakDuration,
		Status:        StatusActive,
	}

	return s.repo.Create(ctx, session)
}

func (s *Service) List(ctx context.Context, userID string) ([]*Session, error) {
	return s.repo.List(ctx, userID)
}

// Stop completes an active session and returns the elapsed minutes.
// Stopping a session twice, a foreign session, or an unknown id all fail
// the same way: ErrorNotFound.
func (s *Service) Stop(ctx context.Context, userID, sessionID string) (float64, error) {
	return s.repo.Stop(ctx, sessionID, userID, time.Now().UTC())
}

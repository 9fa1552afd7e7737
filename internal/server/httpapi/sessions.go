package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mzhadan/pomotrack/internal/server/sessions"
)

type startSessionInput struct {
	TimerTypeID   string `json:"timer_type_id" binding:"required"`
	TaskID        string `json:"task_id"`
	WorkDuration  int    `json:"work_duration" binding:"required"`
	BreakDuration int    `json:"break_duration"`
}

type sessionResponse struct {
	ID            string   `json:"id"`
	TaskID        *string  `json:"task_id"`
	TimerTypeID   string   `json:"timer_type_id"`
	StartTime     string   `json:"start_time"`
	EndTime       *string  `json:"end_time"`
	WorkDuration  int      `json:"work_duration"`
	BreakDuration int      `json:"break_duration"`
	Status        string   `json:"status"`
	Duration      *float64 `json:"duration"`
	Version       int64    `json:"version"`
}

func toSessionResponse(s *sessions.Session) sessionResponse {
	out := sessionResponse{
		ID:            s.ID,
		TaskID:        s.TaskID,
		TimerTypeID:   s.TimerTypeID,
		StartTime:     s.StartTime.Format(timeLayout),
		WorkDuration:  s.WorkDuration,
		BreakDuration: s.BreakDuration,
		Status:        string(s.Status),
		Duration:      s.Duration,
		Version:       s.Version,
	}
	if s.EndTime != nil {
		end := s.EndTime.Format(timeLayout)
		out.EndTime = &end
	}
	return out
}

func (s *Server) startSession(c *gin.Context) {
	var in startSessionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var taskID *string
	if in.TaskID != "" {
		taskID = &in.TaskID
	}

	session, err := s.sessions.Start(c.Request.Context(), currentUserID(c),
		in.TimerTypeID, taskID, in.WorkDuration, in.BreakDuration)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSessionResponse(session))
}

func (s *Server) listSessions(c *gin.Context) {
	items, err := s.sessions.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]sessionResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toSessionResponse(item))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) stopSession(c *gin.Context) {
	duration, err := s.sessions.Stop(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "session stopped", "duration": duration})
}

func (s *Server) listTimerTypes(c *gin.Context) {
	items, err := s.timerTypes.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}

	type timerTypeResponse struct {
		ID          string `json:"id"`
		TypeName    string `json:"type_name"`
		Description string `json:"description"`
	}

	out := make([]timerTypeResponse, 0, len(items))
	for _, t := range items {
		out = append(out, timerTypeResponse{ID: t.ID, TypeName: t.TypeName, Description: t.Description})
	}
	c.JSON(http.StatusOK, out)
}

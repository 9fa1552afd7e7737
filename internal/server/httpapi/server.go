// Package httpapi exposes the service layer over HTTP. Handlers are thin:
// they bind JSON, pull the caller's user id out of the verified token, call
// one service method and translate its error into a status code.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mzhadan/pomotrack/internal/common"
	"github.com/mzhadan/pomotrack/internal/logging"
	"github.com/mzhadan/pomotrack/internal/server/sessions"
	"github.com/mzhadan/pomotrack/internal/server/tags"
	"github.com/mzhadan/pomotrack/internal/server/tasks"
	"github.com/mzhadan/pomotrack/internal/server/tasktags"
	"github.com/mzhadan/pomotrack/internal/server/timertypes"
	"github.com/mzhadan/pomotrack/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

type UserService interface {
	Register(ctx context.Context, email, username, password, name string) (*users.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetProfile(ctx context.Context, userID string) (*users.User, error)
	UpdateProfile(ctx context.Context, userID string, name, username *string) error
}

type TaskService interface {
	Create(ctx context.Context, userID, title, description string, taskType tasks.Type, status tasks.Status) (*tasks.Task, error)
	List(ctx context.Context, userID string, taskType tasks.Type) ([]*tasks.Task, error)
	Complete(ctx context.Context, userID, taskID string) error
	Delete(ctx context.Context, userID, taskID string) error
}

type TagService interface {
	Create(ctx context.Context, userID, name, color string) (*tags.Tag, error)
	List(ctx context.Context, userID string) ([]*tags.Tag, error)
	Delete(ctx context.Context, userID, tagID string) error
}

type SessionService interface {
	Start(ctx context.Context, userID, timerTypeID string, taskID *string, workDuration, breakDuration int) (*sessions.Session, error)
	List(ctx context.Context, userID string) ([]*sessions.Session, error)
	Stop(ctx context.Context, userID, sessionID string) (float64, error)
}

type LinkService interface {
	Link(ctx context.Context, userID, taskID, tagID string) (*tasktags.Link, error)
	ListByTask(ctx context.Context, userID, taskID string) ([]*tasktags.Link, error)
}

type Server struct {
	addr       string
	secretKey  []byte
	logger     logging.Logger
	users      UserService
	tasks      TaskService
	tags       TagService
	sessions   SessionService
	links      LinkService
	timerTypes timertypes.Repository
}

func NewServer(addr string, secretKey []byte, logger logging.Logger,
	users UserService, tasks TaskService, tags TagService,
	sessions SessionService, links LinkService, timerTypes timertypes.Repository) *Server {
	return &Server{
		addr:       addr,
		secretKey:  secretKey,
		logger:     logger,
		users:      users,
		tasks:      tasks,
		tags:       tags,
		sessions:   sessions,
		links:      links,
		timerTypes: timerTypes,
	}
}

// Router builds the gin engine with all routes registered. Everything under
// /api except the auth endpoints requires a bearer token.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestIDMiddleware())
	r.Use(s.loggingMiddleware())

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)
	}

	protected := api.Group("")
	protected.Use(s.authMiddleware())
	{
		protected.GET("/users/me", s.me)
		protected.PUT("/users/profile", s.updateProfile)

		protected.GET("/tasks", s.listTasks)
		protected.POST("/tasks", s.createTask)
		protected.GET("/tasks/todos", s.listTodos)
		protected.GET("/tasks/distractions", s.listDistractions)
		protected.POST("/tasks/:id/complete", s.completeTask)
		protected.DELETE("/tasks/:id", s.deleteTask)
		protected.POST("/tasks/:id/tags", s.linkTag)
		protected.GET("/tasks/:id/tags", s.listTaskTags)

		protected.GET("/tags", s.listTags)
		protected.POST("/tags", s.createTag)
		protected.DELETE("/tags/:id", s.deleteTag)

		protected.GET("/sessions", s.listSessions)
		protected.POST("/sessions", s.startSession)
		protected.POST("/sessions/:id/stop", s.stopSession)

		protected.GET("/timer-types", s.listTimerTypes)
	}

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// writeError maps a service error to an HTTP response. A no-change outcome
// is not an error for HTTP clients: it answers 200 with a message, the way
// the API has always behaved.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrorInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, common.ErrorConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrorNoChange):
		c.JSON(http.StatusOK, gin.H{"message": "no changes made"})
	default:
		s.logger.Error(c.Request.Context(), "internal error", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

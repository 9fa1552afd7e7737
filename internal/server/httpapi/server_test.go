package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mzhadan/pomotrack/internal/common"
	"github.com/mzhadan/pomotrack/internal/logging"
	"github.com/mzhadan/pomotrack/internal/server/auth"
	"github.com/mzhadan/pomotrack/internal/server/sessions"
	"github.com/mzhadan/pomotrack/internal/server/tags"
	"github.com/mzhadan/pomotrack/internal/server/tasks"
	"github.com/mzhadan/pomotrack/internal/server/tasktags"
	"github.com/mzhadan/pomotrack/internal/server/timertypes"
	"github.com/mzhadan/pomotrack/internal/server/users"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

type fakeUserService struct {
	registerErr error
	loginErr    error
	user        *users.User
	updateErr   error
}

func (f *fakeUserService) Register(ctx context.Context, email, username, password, name string) (*users.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.user, nil
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "token-123", nil
}

func (f *fakeUserService) GetProfile(ctx context.Context, userID string) (*users.User, error) {
	if f.user == nil {
		return nil, common.ErrorNotFound
	}
	return f.user, nil
}

func (f *fakeUserService) UpdateProfile(ctx context.Context, userID string, name, username *string) error {
	return f.updateErr
}

type fakeTaskService struct {
	completeErr error
	task        *tasks.Task
}

func (f *fakeTaskService) Create(ctx context.Context, userID, title, description string, taskType tasks.Type, status tasks.Status) (*tasks.Task, error) {
	if title == "" || !taskType.Valid() {
		return nil, common.ErrorValidation
	}
	return f.task, nil
}

func (f *fakeTaskService) List(ctx context.Context, userID string, taskType tasks.Type) ([]*tasks.Task, error) {
	if f.task == nil {
		return nil, nil
	}
	if taskType != "" && f.task.Type != taskType {
		return nil, nil
	}
	return []*tasks.Task{f.task}, nil
}

func (f *fakeTaskService) Complete(ctx context.Context, userID, taskID string) error {
	return f.completeErr
}

func (f *fakeTaskService) Delete(ctx context.Context, userID, taskID string) error { return nil }

type fakeTagService struct {
	createErr error
	tag       *tags.Tag
}

func (f *fakeTagService) Create(ctx context.Context, userID, name, color string) (*tags.Tag, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.tag, nil
}

func (f *fakeTagService) List(ctx context.Context, userID string) ([]*tags.Tag, error) {
	return nil, nil
}

func (f *fakeTagService) Delete(ctx context.Context, userID, tagID string) error { return nil }

type fakeSessionService struct {
	stopped bool
	session *sessions.Session
}

func (f *fakeSessionService) Start(ctx context.Context, userID, timerTypeID string, taskID *string, workDuration, breakDuration int) (*sessions.Session, error) {
	if timerTypeID == "" || workDuration <= 0 {
		return nil, common.ErrorValidation
	}
	return f.session, nil
}

func (f *fakeSessionService) List(ctx context.Context, userID string) ([]*sessions.Session, error) {
	return nil, nil
}

func (f *fakeSessionService) Stop(ctx context.Context, userID, sessionID string) (float64, error) {
	if f.stopped {
		return 0, common.ErrorNotFound
	}
	f.stopped = true
	return 25.5, nil
}

type fakeLinkService struct{}

func (f *fakeLinkService) Link(ctx context.Context, userID, taskID, tagID string) (*tasktags.Link, error) {
	return &tasktags.Link{ID: "l-1", UserID: userID, TaskID: taskID, TagID: tagID, Version: 1}, nil
}

func (f *fakeLinkService) ListByTask(ctx context.Context, userID, taskID string) ([]*tasktags.Link, error) {
	return []*tasktags.Link{{ID: "l-1", UserID: userID, TaskID: taskID, TagID: "g-1", Version: 1}}, nil
}

type fakeTimerTypeRepo struct{}

func (f *fakeTimerTypeRepo) List(ctx context.Context) ([]*timertypes.TimerType, error) {
	return []*timertypes.TimerType{{ID: "tt-1", TypeName: "Pomodoro"}}, nil
}

func newTestServer(t *testing.T, us *fakeUserService, ts *fakeTaskService,
	gs *fakeTagService, ss *fakeSessionService) *Server {
	t.Helper()
	if us == nil {
		us = &fakeUserService{}
	}
	if ts == nil {
		ts = &fakeTaskService{}
	}
	if gs == nil {
		gs = &fakeTagService{}
	}
	if ss == nil {
		ss = &fakeSessionService{}
	}
	return NewServer(":0", testSecret, logging.NewNopLogger(),
		us, ts, gs, ss, &fakeLinkService{}, &fakeTimerTypeRepo{})
}

func bearerToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, testSecret, time.Minute)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegister_Created(t *testing.T) {
	now := time.Now().UTC()
	us := &fakeUserService{user: &users.User{
		ID: "u-1", Email: "a@b.c", Username: "alice", UserType: users.UserTypeUser,
		CreatedAt: now, UpdatedAt: now, LastLoginAt: now, Version: 1,
	}}
	srv := newTestServer(t, us, nil, nil, nil)

	w := doJSON(t, srv.Router(), http.MethodPost, "/api/auth/register", "",
		map[string]string{"email": "a@b.c", "username": "alice", "password": "pw"})

	require.Equal(t, http.StatusCreated, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "u-1", got["id"])
	require.Equal(t, "alice", got["username"])
	require.NotContains(t, got, "password_hash")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	us := &fakeUserService{registerErr: users.ErrEmailTaken}
	srv := newTestServer(t, us, nil, nil, nil)

	w := doJSON(t, srv.Router(), http.MethodPost, "/api/auth/register", "",
		map[string]string{"email": "a@b.c", "username": "alice", "password": "pw"})

	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "email already registered")
}

func TestLogin_BadCredentials(t *testing.T) {
	us := &fakeUserService{loginErr: common.ErrorUnauthorized}
	srv := newTestServer(t, us, nil, nil, nil)

	w := doJSON(t, srv.Router(), http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "a@b.c", "password": "wrong"})

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_Success(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil, nil)

	w := doJSON(t, srv.Router(), http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "a@b.c", "password": "pw"})

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "access_token")
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil, nil)

	w := doJSON(t, srv.Router(), http.MethodGet, "/api/tasks", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil, nil)

	w := doJSON(t, srv.Router(), http.MethodGet, "/api/tasks", "Bearer nonsense", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe_ReturnsProfile(t *testing.T) {
	now := time.Now().UTC()
	us := &fakeUserService{user: &users.User{
		ID: "u-1", Email: "a@b.c", Username: "alice",
		CreatedAt: now, UpdatedAt: now, LastLoginAt: now, Version: 2,
	}}
	srv := newTestServer(t, us, nil, nil, nil)

	w := doJSON(t, srv.Router(), http.MethodGet, "/api/users/me", bearerToken(t, "u-1"), nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.EqualValues(t, 2, got["version"])
}

func TestUpdateProfile_NoChange(t *testing.T) {
	us := &fakeUserService{updateErr: common.ErrorNoChange}
	srv := newTestServer(t, us, nil, nil, nil)

	w := doJSON(t, srv.Router(), http.MethodPut, "/api/users/profile",
		bearerToken(t, "u-1"), map[string]any{})

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "no changes made")
}

func TestCreateTask_InvalidType(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil, nil)

	w := doJSON(t, srv.Router(), http.MethodPost, "/api/tasks", bearerToken(t, "u-1"),
		map[string]string{"title": "x", "task_type": "chore"})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompleteTask_AlreadyCompleted(t *testing.T) {
	ts := &fakeTaskService{completeErr: common.ErrorNoChange}
	srv := newTestServer(t, nil, ts, nil, nil)

	w := doJSON(t, srv.Router(), http.MethodPost, "/api/tasks/t-1/complete",
		bearerToken(t, "u-1"), nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "no changes made")
}

func TestCompleteTask_Foreign(t *testing.T) {
	ts := &fakeTaskService{completeErr: common.ErrorNotFound}
	srv := newTestServer(t, nil, ts, nil, nil)

	w := doJSON(t, srv.Router(), http.MethodPost, "/api/tasks/t-1/complete",
		bearerToken(t, "u-2"), nil)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTag_DuplicateName(t *testing.T) {
	gs := &fakeTagService{createErr: common.ErrorConflict}
	srv := newTestServer(t, nil, nil, gs, nil)

	w := doJSON(t, srv.Router(), http.MethodPost, "/api/tags", bearerToken(t, "u-1"),
		map[string]string{"name": "work"})

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestStopSession_SecondStopIsNotFound(t *testing.T) {
	ss := &fakeSessionService{}
	srv := newTestServer(t, nil, nil, nil, ss)
	router := srv.Router()
	token := bearerToken(t, "u-1")

	w := doJSON(t, router, http.MethodPost, "/api/sessions/s-1/stop", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "25.5")

	w = doJSON(t, router, http.MethodPost, "/api/sessions/s-1/stop", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestLinkTag_Created(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil, nil)

	w := doJSON(t, srv.Router(), http.MethodPost, "/api/tasks/t-1/tags",
		bearerToken(t, "u-1"), map[string]string{"tag_id": "g-1"})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"tag_id":"g-1"`)
}

func TestListTaskTags(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil, nil)

	w := doJSON(t, srv.Router(), http.MethodGet, "/api/tasks/t-1/tags",
		bearerToken(t, "u-1"), nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"tag_id":"g-1"`)
}

func TestListTimerTypes(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil, nil)

	w := doJSON(t, srv.Router(), http.MethodGet, "/api/timer-types",
		bearerToken(t, "u-1"), nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Pomodoro")
}

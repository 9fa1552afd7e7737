package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mzhadan/pomotrack/internal/common"
	"github.com/mzhadan/pomotrack/internal/server/auth"
	"github.com/mzhadan/pomotrack/internal/server/config"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepo struct {
	created *User

	emailTaken    bool
	usernameTaken bool

	getByEmailOut *User
	getByEmailErr error

	getByIDOut *User
	getByIDErr error

	touched    []string
	touchErr   error
	updated    bool
	updateErr  error
	lastName   *string
	lastUserNm *string
}

func (f *fakeRepo) Create(ctx context.Context, u *User) (*User, error) {
	f.created = u
	u.ID = "u-new"
	return u, nil
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if f.getByEmailErr != nil {
		return nil, f.getByEmailErr
	}
	return f.getByEmailOut, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*User, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	return f.getByIDOut, nil
}

func (f *fakeRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return f.emailTaken, nil
}

func (f *fakeRepo) UsernameExists(ctx context.Context, username, excludeID string) (bool, error) {
	return f.usernameTaken, nil
}

func (f *fakeRepo) TouchLogin(ctx context.Context, id string, now time.Time) error {
	f.touched = append(f.touched, id)
	return f.touchErr
}

func (f *fakeRepo) UpdateProfile(ctx context.Context, id string, name, username *string, now time.Time) error {
	f.updated = true
	f.lastName, f.lastUserNm = name, username
	return f.updateErr
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
		BcryptCost:                  bcrypt.MinCost,
	}
}

func TestRegister_Success(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo, testConfig())

	u, err := s.Register(context.Background(), "a@x.com", "a", "p", "Alice")
	require.NoError(t, err)
	require.Equal(t, "u-new", u.ID)
	require.Equal(t, UserTypeUser, u.UserType)
	require.True(t, u.IsActive)
	require.EqualValues(t, 1, u.Version)
	require.Equal(t, u.CreatedAt, u.UpdatedAt)
	require.Equal(t, u.CreatedAt, u.LastLoginAt)

	// stored hash verifies against the plaintext and is not the plaintext
	require.NotEqual(t, "p", u.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("p")))
}

func TestRegister_MissingFields(t *testing.T) {
	s := NewService(&fakeRepo{}, testConfig())

	for _, args := range [][3]string{{"", "a", "p"}, {"a@x.com", "", "p"}, {"a@x.com", "a", ""}} {
		_, err := s.Register(context.Background(), args[0], args[1], args[2], "")
		require.ErrorIs(t, err, common.ErrorValidation)
	}
}

func TestRegister_EmailConflictCheckedFirst(t *testing.T) {
	// both taken: email error must win
	repo := &fakeRepo{emailTaken: true, usernameTaken: true}
	s := NewService(repo, testConfig())

	_, err := s.Register(context.Background(), "a@x.com", "a", "p", "")
	require.ErrorIs(t, err, ErrEmailTaken)
	require.ErrorIs(t, err, common.ErrorConflict)
}

func TestRegister_UsernameConflict(t *testing.T) {
	repo := &fakeRepo{usernameTaken: true}
	s := NewService(repo, testConfig())

	_, err := s.Register(context.Background(), "a@x.com", "a", "p", "")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("p"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeRepo{getByEmailOut: &User{ID: "u-1", PasswordHash: string(hash)}}
	s := NewService(repo, testConfig())

	token, err := s.Login(context.Background(), "a@x.com", "p")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// login must have been recorded before the token was issued
	require.Equal(t, []string{"u-1"}, repo.touched)

	userID, err := auth.GetUserIDFromToken(token, []byte("k"))
	require.NoError(t, err)
	require.Equal(t, "u-1", userID)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("p"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeRepo{getByEmailOut: &User{ID: "u-1", PasswordHash: string(hash)}}
	s := NewService(repo, testConfig())

	_, err = s.Login(context.Background(), "a@x.com", "wrong")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	require.Empty(t, repo.touched)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := &fakeRepo{getByEmailErr: common.ErrorNotFound}
	s := NewService(repo, testConfig())

	_, err := s.Login(context.Background(), "ghost@x.com", "p")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestUpdateProfile_NothingToDo(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo, testConfig())

	err := s.UpdateProfile(context.Background(), "u-1", nil, nil)
	require.ErrorIs(t, err, common.ErrorNoChange)
	require.False(t, repo.updated)
}

func TestUpdateProfile_UsernameConflict(t *testing.T) {
	repo := &fakeRepo{usernameTaken: true}
	s := NewService(repo, testConfig())

	name := "b"
	err := s.UpdateProfile(context.Background(), "u-1", nil, &name)
	require.ErrorIs(t, err, ErrUsernameTaken)
	require.False(t, repo.updated)
}

func TestUpdateProfile_Success(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo, testConfig())

	name := "New"
	require.NoError(t, s.UpdateProfile(context.Background(), "u-1", &name, nil))
	require.True(t, repo.updated)
	require.Equal(t, &name, repo.lastName)
	require.Nil(t, repo.lastUserNm)
}

func TestUpdateProfile_RaceConflict(t *testing.T) {
	repo := &fakeRepo{updateErr: common.ErrorConflict}
	s := NewService(repo, testConfig())

	name := "b"
	err := s.UpdateProfile(context.Background(), "u-1", nil, &name)
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestGetProfile_PassesThroughNotFound(t *testing.T) {
	repo := &fakeRepo{getByIDErr: common.ErrorNotFound}
	s := NewService(repo, testConfig())

	_, err := s.GetProfile(context.Background(), "u-gone")
	require.True(t, errors.Is(err, common.ErrorNotFound))
}

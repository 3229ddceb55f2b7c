package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apebrain-backend/internal/dto"
	"apebrain-backend/internal/model"
	"apebrain-backend/internal/notify"
	"apebrain-backend/internal/repository"
)

type fakeUserRepo struct {
	users map[string]*model.User // keyed by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (r *fakeUserRepo) Insert(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) RecordLogin(_ context.Context, id string, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.LastLogin = &at
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id, hashed string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.HashedPassword = hashed
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]*model.PasswordResetToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*model.PasswordResetToken{}}
}

func (r *fakeTokenRepo) Insert(_ context.Context, t *model.PasswordResetToken) error {
	r.tokens[t.Token] = t
	return nil
}

func (r *fakeTokenRepo) FindUnused(_ context.Context, token string) (*model.PasswordResetToken, error) {
	t, ok := r.tokens[token]
	if !ok || t.Used {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (r *fakeTokenRepo) MarkUsed(_ context.Context, token string) error {
	t, ok := r.tokens[token]
	if !ok {
		return repository.ErrNotFound
	}
	t.Used = true
	return nil
}

func newTestAuthService(users *fakeUserRepo, tokens *fakeTokenRepo, disp notify.Dispatcher) *AuthService {
	return NewAuthService(users, tokens, disp, "test-secret", "https://apebrain.example", testLogger())
}

func registerTestUser(t *testing.T, a *AuthService, email, password string) *dto.AuthResponse {
	t.Helper()
	resp, err := a.Register(context.Background(), dto.RegisterRequest{
		Email:     email,
		Password:  password,
		FirstName: "Mora",
		LastName:  "Sporeman",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	a := newTestAuthService(newFakeUserRepo(), newFakeTokenRepo(), &recordingDispatcher{})

	reg := registerTestUser(t, a, "Mora@Example.com", "shiitake-happens")
	assert.True(t, reg.Success)
	assert.Equal(t, "mora@example.com", reg.User.Email, "email is stored lowercased")
	assert.NotEmpty(t, reg.AccessToken)

	login, err := a.Login(context.Background(), dto.LoginRequest{Email: "mora@example.com", Password: "shiitake-happens"})
	require.NoError(t, err)

	userID, err := a.ValidateToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, userID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	a := newTestAuthService(newFakeUserRepo(), newFakeTokenRepo(), &recordingDispatcher{})
	registerTestUser(t, a, "mora@example.com", "shiitake-happens")

	_, err := a.Register(context.Background(), dto.RegisterRequest{
		Email: "MORA@example.com", Password: "different",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	a := newTestAuthService(newFakeUserRepo(), newFakeTokenRepo(), &recordingDispatcher{})
	registerTestUser(t, a, "mora@example.com", "shiitake-happens")

	_, errUnknown := a.Login(context.Background(), dto.LoginRequest{Email: "ghost@example.com", Password: "x"})
	_, errWrongPw := a.Login(context.Background(), dto.LoginRequest{Email: "mora@example.com", Password: "wrong"})

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	a := newTestAuthService(newFakeUserRepo(), newFakeTokenRepo(), &recordingDispatcher{})

	_, err := a.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordResetFlow(t *testing.T) {
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	disp := &recordingDispatcher{}
	a := newTestAuthService(users, tokens, disp)
	registerTestUser(t, a, "mora@example.com", "old-password")

	a.RequestPasswordReset(context.Background(), "mora@example.com")

	require.Len(t, disp.jobs, 1)
	job := disp.jobs[0]
	assert.Equal(t, notify.KindPasswordReset, job.Kind)
	assert.Equal(t, "mora@example.com", job.To)
	require.Contains(t, job.Link, "/reset-password?token=")
	token := strings.SplitN(job.Link, "token=", 2)[1]

	require.NoError(t, a.ResetPassword(context.Background(), token, "new-password"))

	_, err := a.Login(context.Background(), dto.LoginRequest{Email: "mora@example.com", Password: "old-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = a.Login(context.Background(), dto.LoginRequest{Email: "mora@example.com", Password: "new-password"})
	assert.NoError(t, err)
}

func TestPasswordResetTokenIsSingleUse(t *testing.T) {
	users := newFakeUserRepo()
	disp := &recordingDispatcher{}
	a := newTestAuthService(users, newFakeTokenRepo(), disp)
	registerTestUser(t, a, "mora@example.com", "old-password")

	a.RequestPasswordReset(context.Background(), "mora@example.com")
	require.Len(t, disp.jobs, 1)
	token := strings.SplitN(disp.jobs[0].Link, "token=", 2)[1]

	require.NoError(t, a.ResetPassword(context.Background(), token, "first-new"))
	err := a.ResetPassword(context.Background(), token, "second-new")
	assert.ErrorIs(t, err, ErrBadResetToken)
}

func TestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	disp := &recordingDispatcher{}
	a := newTestAuthService(newFakeUserRepo(), newFakeTokenRepo(), disp)

	a.RequestPasswordReset(context.Background(), "nobody@example.com")
	assert.Empty(t, disp.jobs)
}

func TestResetTokenCannotBeUsedAsSession(t *testing.T) {
	disp := &recordingDispatcher{}
	a := newTestAuthService(newFakeUserRepo(), newFakeTokenRepo(), disp)
	registerTestUser(t, a, "mora@example.com", "password")

	a.RequestPasswordReset(context.Background(), "mora@example.com")
	require.Len(t, disp.jobs, 1)
	token := strings.SplitN(disp.jobs[0].Link, "token=", 2)[1]

	_, err := a.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAdminToken(t *testing.T) {
	a := newTestAuthService(newFakeUserRepo(), newFakeTokenRepo(), &recordingDispatcher{})

	token, err := a.IssueAdminToken("admin")
	require.NoError(t, err)
	assert.NoError(t, a.ValidateAdminToken(token))

	// a customer token carries no admin role
	reg := registerTestUser(t, a, "mora@example.com", "password")
	assert.ErrorIs(t, a.ValidateAdminToken(reg.AccessToken), ErrInvalidToken)
}

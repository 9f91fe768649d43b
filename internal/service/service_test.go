package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/portfolio-site/internal/apiclient"
	"github.com/sakif/portfolio-site/internal/apperror"
	"github.com/sakif/portfolio-site/internal/form"
	"github.com/sakif/portfolio-site/internal/model"
)

// call is one write the fake backend received.
type call struct {
	op      string
	token   string
	id      int64
	payload *apiclient.Payload
}

// fakeBackend implements Backend in memory. Set an errs entry to make the
// named operation fail.
type fakeBackend struct {
	mu    sync.Mutex
	calls []call
	errs  map[string]error

	profile     *model.Profile
	techs       []model.Tech
	experiences []model.Experience
	projects    []model.Project
	admin       *model.AdminSession

	// block, when set, makes the named read wait for ctx to be cancelled.
	block string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{errs: map[string]error{}}
}

func (f *fakeBackend) record(op, token string, id int64, p *apiclient.Payload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: op, token: token, id: id, payload: p})
	return f.errs[op]
}

func (f *fakeBackend) read(ctx context.Context, op string) error {
	if f.block == op {
		<-ctx.Done()
		return ctx.Err()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs[op]
}

func (f *fakeBackend) GetProfile(ctx context.Context) (*model.Profile, error) {
	if err := f.read(ctx, "GetProfile"); err != nil {
		return nil, err
	}
	return f.profile, nil
}

func (f *fakeBackend) UpdateProfile(_ context.Context, token string, p *apiclient.Payload) error {
	return f.record("UpdateProfile", token, 0, p)
}

func (f *fakeBackend) ListTechs(ctx context.Context) ([]model.Tech, error) {
	if err := f.read(ctx, "ListTechs"); err != nil {
		return nil, err
	}
	return f.techs, nil
}

func (f *fakeBackend) CreateTech(_ context.Context, token string, p *apiclient.Payload) error {
	return f.record("CreateTech", token, 0, p)
}

func (f *fakeBackend) UpdateTech(_ context.Context, token string, id int64, p *apiclient.Payload) error {
	return f.record("UpdateTech", token, id, p)
}

func (f *fakeBackend) DeleteTech(_ context.Context, token string, id int64) error {
	return f.record("DeleteTech", token, id, nil)
}

func (f *fakeBackend) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	if err := f.read(ctx, "ListExperiences"); err != nil {
		return nil, err
	}
	return f.experiences, nil
}

func (f *fakeBackend) CreateExperience(_ context.Context, token string, p *apiclient.Payload) error {
	return f.record("CreateExperience", token, 0, p)
}

func (f *fakeBackend) UpdateExperience(_ context.Context, token string, id int64, p *apiclient.Payload) error {
	return f.record("UpdateExperience", token, id, p)
}

func (f *fakeBackend) DeleteExperience(_ context.Context, token string, id int64) error {
	return f.record("DeleteExperience", token, id, nil)
}

func (f *fakeBackend) ListProjects(ctx context.Context) ([]model.Project, error) {
	if err := f.read(ctx, "ListProjects"); err != nil {
		return nil, err
	}
	return f.projects, nil
}

func (f *fakeBackend) CreateProject(_ context.Context, token string, p *apiclient.Payload) error {
	return f.record("CreateProject", token, 0, p)
}

func (f *fakeBackend) UpdateProject(_ context.Context, token string, id int64, p *apiclient.Payload) error {
	return f.record("UpdateProject", token, id, p)
}

func (f *fakeBackend) DeleteProject(_ context.Context, token string, id int64) error {
	return f.record("DeleteProject", token, id, nil)
}

func (f *fakeBackend) Login(_ context.Context, username, password string) (*model.AdminSession, error) {
	if err := f.record("Login", "", 0, nil); err != nil {
		return nil, err
	}
	return f.admin, nil
}

type fakeSessions struct {
	logins   map[string]model.AdminSession
	loginErr error
}

func (f *fakeSessions) Login(_ context.Context, clientID string, admin model.AdminSession) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.logins[clientID] = admin
	return nil
}

func (f *fakeSessions) Logout(_ context.Context, clientID string) error {
	delete(f.logins, clientID)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSaveTech_ValidationStopsBeforeNetwork(t *testing.T) {
	backend := newFakeBackend()
	svc := NewContentService(backend, testLogger())

	f := form.NewTechForm()
	f.Name = "Go"

	err := svc.SaveTech(context.Background(), "tok", f)

	require.Error(t, err)
	assert.Equal(t, form.TechRequiredMessage, apperror.UserMessage(err))
	assert.Empty(t, backend.calls)
	assert.Equal(t, form.StateFailed, f.State())
}

func TestSaveTech_CreateOrUpdate(t *testing.T) {
	backend := newFakeBackend()
	svc := NewContentService(backend, testLogger())

	create := form.NewTechForm()
	create.Name = "Go"
	create.Icon = &apiclient.Upload{FileName: "go.svg", Data: []byte("<svg/>")}
	require.NoError(t, svc.SaveTech(context.Background(), "tok", create))

	edit := form.EditTech(model.Tech{ID: 4, Name: "Golang"})
	require.NoError(t, svc.SaveTech(context.Background(), "tok", edit))

	require.Len(t, backend.calls, 2)
	assert.Equal(t, "CreateTech", backend.calls[0].op)
	assert.Equal(t, []string{"name", "icon"}, backend.calls[0].payload.Keys())
	assert.Equal(t, "UpdateTech", backend.calls[1].op)
	assert.Equal(t, int64(4), backend.calls[1].id)
	assert.NotContains(t, backend.calls[1].payload.Keys(), "icon")
	assert.Equal(t, "tok", backend.calls[1].token)
}

func TestSaveExperience_FailureKeepsValues(t *testing.T) {
	backend := newFakeBackend()
	backend.errs["CreateExperience"] = apperror.Upstream(400, "start_year is required")
	svc := NewContentService(backend, testLogger())

	f := form.NewExperienceForm()
	f.Position = "Dev"
	f.Jobdesk = form.StringList{"A", "B"}

	err := svc.SaveExperience(context.Background(), "tok", f)

	require.Error(t, err)
	assert.Equal(t, "start_year is required", apperror.UserMessage(err))
	assert.Equal(t, form.StateFailed, f.State())
	assert.Equal(t, "Dev", f.Position)
	assert.Equal(t, form.StringList{"A", "B"}, f.Jobdesk)
}

func TestSaveProject_EditUsesID(t *testing.T) {
	backend := newFakeBackend()
	svc := NewContentService(backend, testLogger())

	f := form.EditProject(model.Project{ID: 12, Name: "Site", Tech: []string{"Go"}})
	require.NoError(t, svc.SaveProject(context.Background(), "tok", f))

	require.Len(t, backend.calls, 1)
	assert.Equal(t, "UpdateProject", backend.calls[0].op)
	assert.Equal(t, int64(12), backend.calls[0].id)
	assert.Equal(t, form.StateSucceeded, f.State())
}

func TestDelete_PassesError(t *testing.T) {
	backend := newFakeBackend()
	backend.errs["DeleteExperience"] = apperror.Upstream(500, "")
	svc := NewContentService(backend, testLogger())

	err := svc.DeleteExperience(context.Background(), "tok", 3)
	assert.ErrorIs(t, err, apperror.ErrUpstream)

	require.NoError(t, svc.DeleteProject(context.Background(), "tok", 5))
	assert.Equal(t, int64(5), backend.calls[1].id)
}

func TestAuthService_Login(t *testing.T) {
	t.Run("success records the session", func(t *testing.T) {
		backend := newFakeBackend()
		backend.admin = &model.AdminSession{ID: 1, Username: "admin", Token: "T"}
		sessions := &fakeSessions{logins: map[string]model.AdminSession{}}
		svc := NewAuthService(backend, sessions, testLogger())

		admin, err := svc.Login(context.Background(), "client", &form.LoginForm{Username: "admin", Password: "pw"})

		require.NoError(t, err)
		assert.Equal(t, "T", admin.Token)
		assert.Equal(t, "T", sessions.logins["client"].Token)
	})

	t.Run("rejected credentials record nothing", func(t *testing.T) {
		backend := newFakeBackend()
		backend.errs["Login"] = apperror.Upstream(401, "Invalid credentials")
		sessions := &fakeSessions{logins: map[string]model.AdminSession{}}
		svc := NewAuthService(backend, sessions, testLogger())

		f := &form.LoginForm{Username: "admin", Password: "bad"}
		_, err := svc.Login(context.Background(), "client", f)

		assert.Equal(t, "Invalid credentials", apperror.UserMessage(err))
		assert.Empty(t, sessions.logins)
		assert.Equal(t, "admin", f.Username)
	})

	t.Run("missing fields skip the backend", func(t *testing.T) {
		backend := newFakeBackend()
		sessions := &fakeSessions{logins: map[string]model.AdminSession{}}
		svc := NewAuthService(backend, sessions, testLogger())

		_, err := svc.Login(context.Background(), "client", &form.LoginForm{})

		assert.ErrorIs(t, err, apperror.ErrValidation)
		assert.Empty(t, backend.calls)
	})

	t.Run("session write failure fails the login", func(t *testing.T) {
		backend := newFakeBackend()
		backend.admin = &model.AdminSession{ID: 1, Username: "admin", Token: "T"}
		sessions := &fakeSessions{logins: map[string]model.AdminSession{}, loginErr: errors.New("disk full")}
		svc := NewAuthService(backend, sessions, testLogger())

		_, err := svc.Login(context.Background(), "client", &form.LoginForm{Username: "admin", Password: "pw"})
		assert.Error(t, err)
	})
}

func TestAuthService_Logout(t *testing.T) {
	sessions := &fakeSessions{logins: map[string]model.AdminSession{"client": {Token: "T"}}}
	svc := NewAuthService(newFakeBackend(), sessions, testLogger())

	require.NoError(t, svc.Logout(context.Background(), "client"))
	assert.Empty(t, sessions.logins)
}

func TestHomeService_Load(t *testing.T) {
	t.Run("all four reads succeed", func(t *testing.T) {
		backend := newFakeBackend()
		backend.profile = &model.Profile{Name: "Sakif"}
		backend.techs = []model.Tech{{ID: 1, Name: "Go"}}
		backend.experiences = []model.Experience{{ID: 2}}
		backend.projects = []model.Project{{ID: 3}}

		data, err := NewHomeService(backend, testLogger()).Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "Sakif", data.Profile.Name)
		assert.Len(t, data.Techs, 1)
		assert.Len(t, data.Experiences, 1)
		assert.Len(t, data.Projects, 1)
	})

	t.Run("first failure cancels the rest and nothing is kept", func(t *testing.T) {
		backend := newFakeBackend()
		backend.profile = &model.Profile{Name: "Sakif"}
		backend.errs["ListTechs"] = apperror.Upstream(500, "db down")
		backend.block = "ListProjects" // would hang forever without cancellation

		data, err := NewHomeService(backend, testLogger()).Load(context.Background())

		require.Error(t, err)
		assert.Nil(t, data)
		assert.ErrorIs(t, err, apperror.ErrUpstream)
	})
}

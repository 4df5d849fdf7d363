package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"user-accounts-api/internal/application/ports"
	domain "user-accounts-api/internal/domain/user"
	jwtSvc "user-accounts-api/internal/infrastructure/jwt"
	"user-accounts-api/internal/interface/api/rest/middleware"
)

const testSecret = "test-secret"

type FakeUserService struct {
	RegisterUserFunc      func(ctx context.Context, r domain.Registration) (*domain.User, error)
	BulkRegisterUsersFunc func(ctx context.Context, rs []domain.Registration) domain.BulkResult
	FindUserByIDFunc      func(ctx context.Context, id domain.ID) (*domain.User, error)
	FindActiveUsersFunc   func(ctx context.Context) (domain.Users, error)
	FilterUsersFunc       func(ctx context.Context, p domain.FilterParams) (domain.Users, error)
	UpdateUserFunc        func(ctx context.Context, id domain.ID, ch domain.Changes) error
	DeleteUserFunc        func(ctx context.Context, id domain.ID) error
}

func (f *FakeUserService) RegisterUser(ctx context.Context, r domain.Registration) (*domain.User, error) {
	if f.RegisterUserFunc == nil {
		return nil, errors.New("not used")
	}
	return f.RegisterUserFunc(ctx, r)
}
func (f *FakeUserService) BulkRegisterUsers(ctx context.Context, rs []domain.Registration) domain.BulkResult {
	if f.BulkRegisterUsersFunc == nil {
		return domain.BulkResult{Failed: len(rs)}
	}
	return f.BulkRegisterUsersFunc(ctx, rs)
}
func (f *FakeUserService) FindUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	if f.FindUserByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindUserByIDFunc(ctx, id)
}
func (f *FakeUserService) FindActiveUsers(ctx context.Context) (domain.Users, error) {
	if f.FindActiveUsersFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindActiveUsersFunc(ctx)
}
func (f *FakeUserService) FilterUsers(ctx context.Context, p domain.FilterParams) (domain.Users, error) {
	if f.FilterUsersFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FilterUsersFunc(ctx, p)
}
func (f *FakeUserService) UpdateUser(ctx context.Context, id domain.ID, ch domain.Changes) error {
	if f.UpdateUserFunc == nil {
		return errors.New("not used")
	}
	return f.UpdateUserFunc(ctx, id, ch)
}
func (f *FakeUserService) DeleteUser(ctx context.Context, id domain.ID) error {
	if f.DeleteUserFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteUserFunc(ctx, id)
}

type fakeAuthService struct {
	LoginFunc  func(ctx context.Context, email, password string) (*ports.AuthToken, error)
	LogoutFunc func(ctx context.Context, claims *jwtSvc.Claims) error
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*ports.AuthToken, error) {
	if f.LoginFunc == nil {
		return nil, errors.New("not used")
	}
	return f.LoginFunc(ctx, email, password)
}
func (f *fakeAuthService) Logout(ctx context.Context, claims *jwtSvc.Claims) error {
	if f.LogoutFunc == nil {
		return errors.New("not used")
	}
	return f.LogoutFunc(ctx, claims)
}

type fakeDenylist struct {
	revoked map[string]bool
	err     error
}

func (f *fakeDenylist) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.revoked[tokenID] = true
	return nil
}
func (f *fakeDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return f.revoked[tokenID], f.err
}

type testServer struct {
	router   *gin.Engine
	tokens   *jwtSvc.Service
	denylist *fakeDenylist
}

// newTestServer wires both controllers the same way the app does.
func newTestServer(t *testing.T, us ports.UserService, as ports.Auth) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		router:   gin.New(),
		tokens:   jwtSvc.New(testSecret),
		denylist: &fakeDenylist{revoked: map[string]bool{}},
	}
	if as == nil {
		as = &fakeAuthService{}
	}

	NewAuthController(ts.router, zap.NewNop(), us, as, ts.tokens)
	NewUserController(ts.router, us, zap.NewNop(), ts.tokens, ts.denylist)

	return ts
}

func (ts *testServer) token(t *testing.T, userID uint64, roles ...string) map[string]string {
	t.Helper()
	tok, err := ts.tokens.GenerateJWT(userID, roles, time.Hour)
	require.NoError(t, err)
	return map[string]string{middleware.HeaderToken: tok}
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func message(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	msg, _ := resp["message"].(string)
	return msg
}

func activeUser(id domain.ID) *domain.User {
	return &domain.User{
		ID:        id,
		Name:      "John",
		Email:     "john.doe@example.com",
		Cellphone: "+33612345678",
		Status:    true,
		Roles:     []string{domain.RoleUser},
	}
}

// existingUsers answers FindUserByID for the given ids only.
func existingUsers(ids ...domain.ID) func(ctx context.Context, id domain.ID) (*domain.User, error) {
	return func(_ context.Context, id domain.ID) (*domain.User, error) {
		for _, known := range ids {
			if known == id {
				return activeUser(id), nil
			}
		}
		return nil, nil
	}
}

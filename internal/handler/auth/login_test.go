package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"user-api/internal/database"
	"user-api/internal/model"
	"user-api/internal/service"
	"user-api/internal/store"
	"user-api/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

// stubPool 同步執行提交的任務
type stubPool struct {
	mu    sync.Mutex
	tasks int
}

func (p *stubPool) Submit(t worker.Task) {
	p.mu.Lock()
	p.tasks++
	p.mu.Unlock()
	t()
}

func (p *stubPool) Stop() {}

func restore() {
	getUserByEmail = store.GetUserByEmail
	authenticateUser = service.AuthenticateUser
	touchLastLogin = store.TouchLastLogin
	timeNow = time.Now
}

func newLoginCtx(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newAuth(t *testing.T) *service.Auth {
	t.Helper()
	a, err := service.NewAuth("testsecret", time.Hour)
	require.NoError(t, err)
	return a
}

func TestLoginHandler(t *testing.T) {
	e := echo.New()
	a := newAuth(t)

	t.Run("bind error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newLoginCtx(e, "{")
		require.NoError(t, LoginHandler(nil, a, &stubPool{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validate error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{err: errors.New("v")}
		ctx, rec := newLoginCtx(e, `{"email":"a@b.com"}`)
		require.NoError(t, LoginHandler(nil, a, &stubPool{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown user is 404", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(_ context.Context, _ database.DB, _ string) (*model.User, error) {
			return nil, store.ErrNotFound
		}
		ctx, rec := newLoginCtx(e, `{"email":"nobody@x.com","password":"Secret123!"}`)
		require.NoError(t, LoginHandler(nil, a, &stubPool{})(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "user not found")
	})

	t.Run("lookup failure is 500", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(_ context.Context, _ database.DB, _ string) (*model.User, error) {
			return nil, errors.New("down")
		}
		ctx, rec := newLoginCtx(e, `{"email":"a@b.com","password":"Secret123!"}`)
		require.NoError(t, LoginHandler(nil, a, &stubPool{})(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("bad password is 401", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(_ context.Context, _ database.DB, _ string) (*model.User, error) {
			return &model.User{ID: 1, Email: "a@b.com"}, nil
		}
		authenticateUser = func(_ context.Context, _ model.User, _ string) error {
			return errors.New("invalid password")
		}
		ctx, rec := newLoginCtx(e, `{"email":"a@b.com","password":"Wrong123!"}`)
		require.NoError(t, LoginHandler(nil, a, &stubPool{})(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid credentials")
	})

	t.Run("success issues a verifiable token", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		var lookedUp string
		getUserByEmail = func(_ context.Context, _ database.DB, email string) (*model.User, error) {
			lookedUp = email
			return &model.User{ID: 9, Email: "a@b.com", Role: model.RoleAdmin}, nil
		}
		authenticateUser = func(_ context.Context, _ model.User, _ string) error { return nil }
		touched := 0
		touchLastLogin = func(_ context.Context, _ database.DB, id int) error {
			require.Equal(t, 9, id)
			touched++
			return nil
		}
		wp := &stubPool{}
		ctx, rec := newLoginCtx(e, `{"email":"A@B.com","password":"Secret123!"}`)
		require.NoError(t, LoginHandler(nil, a, wp)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "a@b.com", lookedUp)
		require.Equal(t, 1, wp.tasks)
		require.Equal(t, 1, touched)

		// 回傳的令牌必須可被同一把金鑰驗證，並帶回 id 與 role
		body := rec.Body.String()
		start := strings.Index(body, `"access_token":"`) + len(`"access_token":"`)
		end := strings.Index(body[start:], `"`)
		claims, err := a.VerifyAccessToken(body[start : start+end])
		require.NoError(t, err)
		require.Equal(t, 9, claims.UserID)
		require.Equal(t, model.RoleAdmin, claims.Role)
	})
}

package router

import (
	"net/http"
	"testing"
	"time"

	"user-api/internal/cache"
	"user-api/internal/database"
	"user-api/internal/service"
	"user-api/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestSetupRoutes(t *testing.T) {
	e := echo.New()
	authSvc, err := service.NewAuth("testsecret", time.Hour)
	require.NoError(t, err)
	wp := worker.NewPool(1)
	defer wp.Stop()

	Setup(e, &database.FakeDB{}, &cache.FakeCache{}, authSvc, wp)

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /api/ping",
		http.MethodPost + " /api/users/login",
		http.MethodPost + " /api/users",
		http.MethodGet + " /api/users",
		http.MethodGet + " /api/users/:id",
		http.MethodPut + " /api/users/:id",
		http.MethodPatch + " /api/users/:id",
		http.MethodDelete + " /api/users/:id",
	}

	require.Equal(t, len(expected), len(got))
	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}

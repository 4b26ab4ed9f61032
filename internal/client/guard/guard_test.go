package guard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shop-service/internal/client/api"
	"github.com/spec-kit/shop-service/internal/client/session"
)

type stubCheck struct {
	calls  int
	ok     bool
	status int
	err    error
}

func (s *stubCheck) fn(_ context.Context) (bool, int, error) {
	s.calls++
	return s.ok, s.status, s.err
}

func newGuardEnv(t *testing.T, check CheckFunc) (*Guard, *session.Manager, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "auth.json")
	storage, err := session.NewFileStorage(path)
	require.NoError(t, err)
	client := api.New("http://unused.invalid")
	manager, err := session.NewManager(session.NewStore(), storage, client)
	require.NoError(t, err)
	return New(manager, check), manager, path
}

func TestEvaluateWithoutTokenSkipsNetwork(t *testing.T) {
	check := &stubCheck{}
	guard, _, _ := newGuardEnv(t, check.fn)

	require.Equal(t, StateUnauthorized, guard.Evaluate(context.Background()))
	require.Zero(t, check.calls)
}

func TestEvaluateAuthorized(t *testing.T) {
	check := &stubCheck{ok: true, status: http.StatusOK}
	guard, manager, path := newGuardEnv(t, check.fn)
	require.NoError(t, manager.Login(&session.Profile{ID: "u1"}, "tok"))

	require.Equal(t, StateAuthorized, guard.Evaluate(context.Background()))
	require.Equal(t, 1, check.calls)

	// Session untouched.
	require.Equal(t, "tok", manager.Store().Get().Token)
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestEvaluateDefinitiveRejectionLogsOut(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusUnauthorized, http.StatusForbidden} {
		check := &stubCheck{ok: false, status: status}
		guard, manager, path := newGuardEnv(t, check.fn)
		require.NoError(t, manager.Login(&session.Profile{ID: "u1"}, "tok"))

		var emptySets int
		manager.Store().Subscribe(func(c session.Context) {
			if c.Token == "" {
				emptySets++
			}
		})

		require.Equal(t, StateUnauthorized, guard.Evaluate(context.Background()))
		require.Equal(t, 1, emptySets, "status %d: logout must happen exactly once", status)
		require.Empty(t, manager.Store().Get().Token)
		_, err := os.Stat(path)
		require.True(t, os.IsNotExist(err), "status %d: blob must be removed", status)
	}
}

func TestEvaluateTransientStatusKeepsSession(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusBadGateway, http.StatusNotFound} {
		check := &stubCheck{ok: false, status: status}
		guard, manager, path := newGuardEnv(t, check.fn)
		require.NoError(t, manager.Login(&session.Profile{ID: "u1"}, "tok"))

		require.Equal(t, StateUnauthorized, guard.Evaluate(context.Background()))
		require.Equal(t, "tok", manager.Store().Get().Token, "status %d", status)
		_, err := os.Stat(path)
		require.NoError(t, err, "status %d: blob must survive", status)
	}
}

func TestEvaluateTransportErrorKeepsSession(t *testing.T) {
	check := &stubCheck{err: errors.New("connection refused")}
	guard, manager, _ := newGuardEnv(t, check.fn)
	require.NoError(t, manager.Login(&session.Profile{ID: "u1"}, "tok"))

	require.Equal(t, StateUnauthorized, guard.Evaluate(context.Background()))
	require.Equal(t, "tok", manager.Store().Get().Token)
}

func TestOnChangeTransitions(t *testing.T) {
	check := &stubCheck{ok: true, status: http.StatusOK}
	guard, manager, _ := newGuardEnv(t, check.fn)
	require.NoError(t, manager.Login(&session.Profile{ID: "u1"}, "tok"))

	var states []State
	guard.OnChange(func(s State) { states = append(states, s) })

	guard.Evaluate(context.Background())
	require.Equal(t, []State{StateAuthorized}, states)

	// A later rejection transitions again.
	check.ok = false
	check.status = http.StatusUnauthorized
	guard.Evaluate(context.Background())
	require.Equal(t, []State{StateAuthorized, StatePending, StateUnauthorized}, states)
}

// End-to-end over a real HTTP round trip: the guard driven by the API
// client's VerifyUser against a server that rejects the token.
func TestGuardAgainstServer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"ok":false,"success":false,"message":"Unauthorized Access"}`))
	}))
	defer srv.Close()

	client := api.New(srv.URL)
	storage, err := session.NewFileStorage(filepath.Join(t.TempDir(), "auth.json"))
	require.NoError(t, err)
	manager, err := session.NewManager(session.NewStore(), storage, client)
	require.NoError(t, err)
	require.NoError(t, manager.Login(&session.Profile{ID: "u1"}, "stale-token"))

	guard := New(manager, client.VerifyUser)
	require.Equal(t, StateUnauthorized, guard.Evaluate(context.Background()))
	require.Equal(t, "stale-token", gotAuth)

	// The 401 was definitive: the session is gone and the header cleared.
	require.Empty(t, manager.Store().Get().Token)
	require.Empty(t, client.AuthHeader())
}

func TestWatchReactsToTokenChange(t *testing.T) {
	check := &stubCheck{ok: true, status: http.StatusOK}
	guard, manager, _ := newGuardEnv(t, check.fn)

	stop := guard.Watch(context.Background())
	defer stop()

	require.NoError(t, manager.Login(&session.Profile{ID: "u1"}, "tok"))
	require.Eventually(t, func() bool {
		return guard.State() == StateAuthorized
	}, time.Second, 10*time.Millisecond)
}

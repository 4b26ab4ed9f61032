// Package guard implements the protected-view state machine: before a
// protected part of the client renders, the held token is verified with
// the server, and a confirmed-stale session is actively destroyed while
// transient failures leave it intact.
package guard

import (
	"context"
	"net/http"
	"sync"

	"github.com/spec-kit/shop-service/internal/client/session"
)

// State of a guarded view.
type State int

const (
	// StatePending means a verification round trip is in flight; the
	// view shows a waiting indicator.
	StatePending State = iota
	// StateAuthorized admits the protected content.
	StateAuthorized
	// StateUnauthorized blocks the protected content.
	StateUnauthorized
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAuthorized:
		return "authorized"
	case StateUnauthorized:
		return "unauthorized"
	}
	return "unknown"
}

// CheckFunc performs the server round trip: the decoded ok flag, the
// HTTP status (zero when no response arrived) and any transport error.
// api.Client.VerifyUser and VerifyAdmin have this shape.
type CheckFunc func(ctx context.Context) (ok bool, status int, err error)

// Guard gates one protected subtree. The standard and admin variants
// differ only in the CheckFunc they are built with.
type Guard struct {
	sess  *session.Manager
	check CheckFunc

	mu       sync.Mutex
	state    State
	onChange func(State)
}

// New builds a guard in the Pending state.
func New(sess *session.Manager, check CheckFunc) *Guard {
	return &Guard{sess: sess, check: check, state: StatePending}
}

// OnChange registers a callback invoked on every state transition.
func (g *Guard) OnChange(fn func(State)) {
	g.mu.Lock()
	g.onChange = fn
	g.mu.Unlock()
}

// State returns the current state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Guard) setState(s State) {
	g.mu.Lock()
	changed := g.state != s
	g.state = s
	fn := g.onChange
	g.mu.Unlock()

	if changed && fn != nil {
		fn(s)
	}
}

// Evaluate runs one verification cycle and returns the resulting state.
//
// With no token held, the guard goes straight to Unauthorized without a
// network call. With a token, the server's verdict decides:
//   - ok=true admits the view;
//   - a definitive response (status 200, 401 or 403) that is not
//     ok=true destroys the session via Logout, exactly once;
//   - any other status, or a transport failure, leaves the session
//     alone — the view is blocked for now but a network blip must not
//     log the user out.
func (g *Guard) Evaluate(ctx context.Context) State {
	token := g.sess.Store().Get().Token
	if token == "" {
		g.setState(StateUnauthorized)
		return StateUnauthorized
	}

	g.setState(StatePending)

	ok, status, err := g.check(ctx)
	if err != nil && status == 0 {
		g.setState(StateUnauthorized)
		return StateUnauthorized
	}

	if ok {
		g.setState(StateAuthorized)
		return StateAuthorized
	}

	if definitive(status) {
		_ = g.sess.Logout()
	}
	g.setState(StateUnauthorized)
	return StateUnauthorized
}

// definitive reports whether the status is an authoritative verdict on
// the session rather than a transient failure.
func definitive(status int) bool {
	switch status {
	case http.StatusOK, http.StatusUnauthorized, http.StatusForbidden:
		return true
	}
	return false
}

// Watch re-evaluates whenever the held token changes, e.g. when a login
// completes elsewhere in the client. Returns a stop function. An
// in-flight stale evaluation is not cancelled; the last response wins.
func (g *Guard) Watch(ctx context.Context) func() {
	var lastToken string
	var mu sync.Mutex

	unsubscribe := g.sess.Store().Subscribe(func(c session.Context) {
		mu.Lock()
		same := c.Token == lastToken
		lastToken = c.Token
		mu.Unlock()
		if same {
			return
		}
		go g.Evaluate(ctx)
	})
	return unsubscribe
}

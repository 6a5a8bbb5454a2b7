package navigation

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"iusearch/application/auth"
	"iusearch/utils/logger"
)

// State is the controller's authentication gate. Loading exists only until
// the first auth check resolves and is terminal once left.
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "loading"
	}
}

// Screen names the navigable screens. The two graphs are mutually exclusive
// and non-overlapping: a screen reachable in one state is unreachable in the
// other.
type Screen string

const (
	ScreenLogin         Screen = "login"
	ScreenHome          Screen = "home"
	ScreenPeopleSearch  Screen = "people_search"
	ScreenVehicleSearch Screen = "vehicle_search"
	ScreenSearchResults Screen = "search_results"
	ScreenDetail        Screen = "detail"
)

var unauthenticatedGraph = map[Screen]bool{
	ScreenLogin: true,
}

var authenticatedGraph = map[Screen]bool{
	ScreenHome:          true,
	ScreenPeopleSearch:  true,
	ScreenVehicleSearch: true,
	ScreenSearchResults: true,
	ScreenDetail:        true,
}

// Observer is notified after a state change is recorded, never before, so no
// authenticated screen can mount ahead of the transition.
type Observer func(State)

// Controller gates navigation on session state. It holds exactly one of two
// graphs at a time, re-evaluating on every navigation transition and
// swapping only when the freshly observed state differs from the held one.
type Controller struct {
	mu        sync.Mutex
	auth      auth.AuthApp
	state     State
	observers []Observer
}

func NewController(authApp auth.AuthApp) *Controller {
	return &Controller{auth: authApp, state: StateLoading}
}

// Start resolves the initial authentication check. Until it returns, the
// controller reports Loading and no graph is navigable. A failed check
// resolves to Unauthenticated rather than failing startup.
func (c *Controller) Start(ctx context.Context) State {
	next := StateUnauthenticated
	if c.auth.IsAuthenticated(ctx) {
		next = StateAuthenticated
	}

	c.mu.Lock()
	if c.state != StateLoading {
		state := c.state
		c.mu.Unlock()
		return state
	}
	c.state = next
	observers := append([]Observer(nil), c.observers...)
	c.mu.Unlock()

	logger.Debug("[Navigation] initial state resolved", zap.String("state", next.String()))
	for _, fn := range observers {
		fn(next)
	}
	return next
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// HandleTransition is the navigation-event hook: it re-checks the auth
// service and swaps graphs only when the observed boolean differs from the
// held state. This covers the gateway clearing the session out-of-band while
// the user was mid-navigation. Called before Start has resolved, it is a
// no-op; Loading is never re-entered.
func (c *Controller) HandleTransition(ctx context.Context) State {
	authed := c.auth.IsAuthenticated(ctx)

	next := StateUnauthenticated
	if authed {
		next = StateAuthenticated
	}

	c.mu.Lock()
	if c.state == StateLoading || c.state == next {
		state := c.state
		c.mu.Unlock()
		return state
	}
	c.state = next
	observers := append([]Observer(nil), c.observers...)
	c.mu.Unlock()

	logger.Info("[Navigation] state changed", zap.String("state", next.String()))
	for _, fn := range observers {
		fn(next)
	}
	return next
}

// Observe registers a callback for recorded state changes. The contract is
// deliberately decoupled from any UI event types.
func (c *Controller) Observe(fn Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// CanNavigate reports whether screen is reachable in the current state.
// Nothing is reachable while loading.
func (c *Controller) CanNavigate(screen Screen) bool {
	switch c.State() {
	case StateUnauthenticated:
		return unauthenticatedGraph[screen]
	case StateAuthenticated:
		return authenticatedGraph[screen]
	default:
		return false
	}
}

// Graph lists the screens reachable in the current state.
func (c *Controller) Graph() []Screen {
	switch c.State() {
	case StateUnauthenticated:
		return []Screen{ScreenLogin}
	case StateAuthenticated:
		return []Screen{ScreenHome, ScreenPeopleSearch, ScreenVehicleSearch, ScreenSearchResults, ScreenDetail}
	default:
		return nil
	}
}

package session

import (
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"mcserver/internal/api"
	"mcserver/pkg/logging"
	pkgstrings "mcserver/pkg/strings"
)

const controllerSubsystem = "SessionController"

const (
	// DefaultSettleDelay is how long Create waits after spawning a session
	// before typing into it.
	DefaultSettleDelay = 300 * time.Millisecond

	// lastUsedConcurrency bounds parallel last-used reads while tagging.
	lastUsedConcurrency = 8
)

// Display tags attached to servers by the tagging operations.
const (
	TagActive  = "active"
	TagExited  = "exited"
	TagUnknown = "unknown"
)

// sleep is a variable to allow tests to observe the settle delay
var sleep = time.Sleep

// LastUsedRecorder reads and writes per-server last-used records.
type LastUsedRecorder interface {
	SaveLastUsed(server string) error
	// LastUsedAge returns the formatted age of the record and whether one
	// exists.
	LastUsedAge(server string) (string, bool, error)
}

// Controller drives server sessions through a Backend.
type Controller struct {
	backend     Backend
	records     LastUsedRecorder
	settleDelay time.Duration
}

// NewController creates a controller with the default settle delay.
func NewController(backend Backend, records LastUsedRecorder) *Controller {
	return &Controller{
		backend:     backend,
		records:     records,
		settleDelay: DefaultSettleDelay,
	}
}

// SetSettleDelay overrides the delay between spawning and typing.
func (c *Controller) SetSettleDelay(d time.Duration) {
	c.settleDelay = d
}

// States lists sessions once and returns the state of every managed server
// the multiplexer knows about. A server listed both running and exited is
// running.
func (c *Controller) States(ctx context.Context) (map[string]api.SessionState, error) {
	infos, err := c.backend.List(ctx)
	if err != nil {
		return nil, err
	}

	states := make(map[string]api.SessionState, len(infos))
	for _, info := range infos {
		server, ok := ServerName(info.Name)
		if !ok {
			continue
		}
		if info.Exited {
			if _, seen := states[server]; !seen {
				states[server] = api.StateExited
			}
			continue
		}
		states[server] = api.StateRunning
	}

	logging.Debug(controllerSubsystem, "Discovered %d server sessions", len(states))
	return states, nil
}

// AliveSessions returns the names of servers with a running session.
func (c *Controller) AliveSessions(ctx context.Context) (map[string]struct{}, error) {
	states, err := c.States(ctx)
	if err != nil {
		return nil, err
	}

	alive := make(map[string]struct{}, len(states))
	for server, state := range states {
		if state.IsAlive() {
			alive[server] = struct{}{}
		}
	}
	return alive, nil
}

// State returns the lifecycle state of a single server.
func (c *Controller) State(ctx context.Context, server string) (api.SessionState, error) {
	states, err := c.States(ctx)
	if err != nil {
		return api.StateUnknown, err
	}
	if state, ok := states[server]; ok {
		return state, nil
	}

	_, ok, err := c.records.LastUsedAge(server)
	if err != nil || !ok {
		return api.StateUnknown, nil
	}
	return api.StateGone, nil
}

// Create starts a fresh session for server and blocks until the session's
// client exits. Any stale session of the same name is deleted first, so
// calling Create repeatedly is safe. If initialCommand is not empty it is
// typed into the new session once it has settled.
func (c *Controller) Create(ctx context.Context, server, initialCommand string) error {
	session := SessionName(server)

	if err := c.records.SaveLastUsed(server); err != nil {
		return err
	}

	if err := c.backend.Delete(ctx, session); err != nil {
		logging.Debug(controllerSubsystem, "Ignoring delete failure for %s: %v", session, err)
	}

	logging.Debug(controllerSubsystem, "Spawning session %s", session)
	proc, err := c.backend.Spawn(ctx, session)
	if err != nil {
		return err
	}

	sleep(c.settleDelay)

	if initialCommand != "" {
		if err := c.WriteLine(ctx, session, initialCommand); err != nil {
			c.abandon(ctx, session, proc)
			return fmt.Errorf("failed to send initial command to %s: %w", session, err)
		}
	}

	if err := proc.Wait(); err != nil {
		if !api.IsCommandFailure(err) {
			return err
		}
		logging.Debug(controllerSubsystem, "Session client for %s exited: %v", session, err)
	}

	return c.records.SaveLastUsed(server)
}

// abandon kills a session whose start command could not be sent and waits
// for its client to release the terminal.
func (c *Controller) abandon(ctx context.Context, session string, proc Process) {
	if err := c.backend.Kill(ctx, session); err != nil {
		logging.Debug(controllerSubsystem, "Failed to kill abandoned session %s: %v", session, err)
	}
	if err := proc.Wait(); err != nil {
		logging.Debug(controllerSubsystem, "Session client for %s exited: %v", session, err)
	}
}

// Attach connects the terminal to server's session and records the use.
func (c *Controller) Attach(ctx context.Context, server string) error {
	session := SessionName(server)
	if err := c.backend.Attach(ctx, session); err != nil {
		return err
	}
	return c.records.SaveLastUsed(server)
}

// WriteChars types text into session without submitting it.
func (c *Controller) WriteChars(ctx context.Context, session, text string) error {
	return c.backend.WriteChars(ctx, session, text)
}

// WriteLine types text into session and presses enter.
func (c *Controller) WriteLine(ctx context.Context, session, text string) error {
	logging.Debug(controllerSubsystem, "Typing %q into %s", pkgstrings.Summarize(text, pkgstrings.DefaultSummaryLen), session)
	if err := c.backend.WriteChars(ctx, session, text); err != nil {
		return err
	}
	return c.backend.WriteKey(ctx, session, CarriageReturn)
}

// KillSession terminates session.
func (c *Controller) KillSession(ctx context.Context, session string) error {
	logging.Debug(controllerSubsystem, "Killing session %s", session)
	return c.backend.Kill(ctx, session)
}

// RetainActive keeps only servers with a running session and tags them.
func (c *Controller) RetainActive(ctx context.Context, servers []api.Server) ([]api.Server, error) {
	states, err := c.States(ctx)
	if err != nil {
		return servers, err
	}

	servers = slices.DeleteFunc(servers, func(s api.Server) bool {
		return !states[s.Name].IsAlive()
	})
	for i := range servers {
		servers[i].State = api.StateRunning
		servers[i].AddTag(TagActive)
	}
	return servers, nil
}

// RetainInactive keeps only servers without a running session and tags
// them with their last-used age.
func (c *Controller) RetainInactive(ctx context.Context, servers []api.Server) ([]api.Server, error) {
	states, err := c.States(ctx)
	if err != nil {
		return servers, err
	}

	servers = slices.DeleteFunc(servers, func(s api.Server) bool {
		return states[s.Name].IsAlive()
	})
	return servers, c.tagInactive(ctx, servers, states)
}

// RetainDead keeps only servers whose session is listed as exited.
func (c *Controller) RetainDead(ctx context.Context, servers []api.Server) ([]api.Server, error) {
	states, err := c.States(ctx)
	if err != nil {
		return servers, err
	}

	servers = slices.DeleteFunc(servers, func(s api.Server) bool {
		return states[s.Name] != api.StateExited
	})
	return servers, c.tagInactive(ctx, servers, states)
}

// TagServers annotates every server with its state and display tags.
func (c *Controller) TagServers(ctx context.Context, servers []api.Server) error {
	states, err := c.States(ctx)
	if err != nil {
		return err
	}

	var inactive []int
	for i := range servers {
		if states[servers[i].Name].IsAlive() {
			servers[i].State = api.StateRunning
			servers[i].AddTag(TagActive)
			continue
		}
		inactive = append(inactive, i)
	}

	return c.tagLastUsed(ctx, servers, inactive, states)
}

func (c *Controller) tagInactive(ctx context.Context, servers []api.Server, states map[string]api.SessionState) error {
	idx := make([]int, len(servers))
	for i := range idx {
		idx[i] = i
	}
	return c.tagLastUsed(ctx, servers, idx, states)
}

// tagLastUsed reads the last-used records of servers[idx...] concurrently.
// Each goroutine writes only its own element. An unreadable record is
// tagged unknown.
func (c *Controller) tagLastUsed(ctx context.Context, servers []api.Server, idx []int, states map[string]api.SessionState) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lastUsedConcurrency)

	for _, i := range idx {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			s := &servers[i]
			exited := states[s.Name] == api.StateExited

			age, ok, err := c.records.LastUsedAge(s.Name)
			if err != nil {
				logging.Debug(controllerSubsystem, "Unreadable last-used record for %s: %v", s.Name, err)
				ok = false
			}

			switch {
			case exited:
				s.State = api.StateExited
			case ok:
				s.State = api.StateGone
			default:
				s.State = api.StateUnknown
			}

			if exited {
				s.AddTag(TagExited)
			}
			if ok {
				s.AddTag(fmt.Sprintf("last used %s ago", age))
			} else {
				s.AddTag(TagUnknown)
			}
			return nil
		})
	}

	return g.Wait()
}

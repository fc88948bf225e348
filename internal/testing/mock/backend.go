package mock

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"mcserver/internal/api"
	"mcserver/internal/session"
)

// FakeBackend is an in-memory session.Backend.
//
// Spawn adds a running session to the listing, Kill and Delete remove one.
// Errors are scripted per operation name ("list", "attach", "spawn",
// "delete", "write-chars", "write", "kill", "wait").
type FakeBackend struct {
	mu       sync.Mutex
	calls    []string
	sessions []api.SessionInfo
	errs     map[string]error
}

var _ session.Backend = (*FakeBackend)(nil)

// NewFakeBackend creates a backend with no sessions.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{errs: make(map[string]error)}
}

// SetSessions replaces the session listing.
func (f *FakeBackend) SetSessions(sessions ...api.SessionInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = slices.Clone(sessions)
}

// Sessions returns a copy of the current listing.
func (f *FakeBackend) Sessions() []api.SessionInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.sessions)
}

// SetError makes every later call of op fail with err. A nil err clears it.
func (f *FakeBackend) SetError(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.errs, op)
		return
	}
	f.errs[op] = err
}

// Record appends an arbitrary marker to the call log, for interleaving
// events such as sleeps with backend calls.
func (f *FakeBackend) Record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

// Calls returns the call log in order.
func (f *FakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// CountCalls returns how many recorded calls start with op.
func (f *FakeBackend) CountCalls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op || len(c) > len(op) && c[:len(op)+1] == op+" " {
			n++
		}
	}
	return n
}

// call records the call and returns the scripted error for op. Callers
// hold f.mu.
func (f *FakeBackend) call(op string, args ...any) error {
	entry := op
	for _, a := range args {
		entry += fmt.Sprintf(" %v", a)
	}
	f.calls = append(f.calls, entry)
	return f.errs[op]
}

func (f *FakeBackend) remove(name string) {
	f.sessions = slices.DeleteFunc(f.sessions, func(s api.SessionInfo) bool {
		return s.Name == name
	})
}

func (f *FakeBackend) List(ctx context.Context) ([]api.SessionInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("list"); err != nil {
		return nil, err
	}
	return slices.Clone(f.sessions), nil
}

func (f *FakeBackend) Attach(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.call("attach", name)
}

func (f *FakeBackend) Spawn(ctx context.Context, name string) (session.Process, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("spawn", name); err != nil {
		return nil, err
	}
	f.remove(name)
	f.sessions = append(f.sessions, api.SessionInfo{Name: name})
	return &FakeProcess{backend: f, session: name}, nil
}

func (f *FakeBackend) Delete(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("delete", name); err != nil {
		return err
	}
	f.remove(name)
	return nil
}

func (f *FakeBackend) WriteChars(ctx context.Context, name, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.call("write-chars", name, text)
}

func (f *FakeBackend) WriteKey(ctx context.Context, name string, code byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.call("write", name, code)
}

func (f *FakeBackend) Kill(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("kill", name); err != nil {
		return err
	}
	f.remove(name)
	return nil
}

// FakeProcess is the session client returned by FakeBackend.Spawn.
type FakeProcess struct {
	backend *FakeBackend
	session string
}

// Wait records the wait and returns the scripted "wait" error.
func (p *FakeProcess) Wait() error {
	p.backend.mu.Lock()
	defer p.backend.mu.Unlock()
	return p.backend.call("wait", p.session)
}

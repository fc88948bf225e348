// Package mock provides test doubles for mcserver components.
//
// MockClock is a controllable clock for last-used timestamps. FakeBackend
// stands in for the zellij CLI: it records every call in order, serves a
// scripted session listing, and lets a test decide how spawned sessions
// exit.
//
//	backend := mock.NewFakeBackend()
//	backend.SetSessions(api.SessionInfo{Name: "alpha.mcserver"})
//	ctrl := session.NewController(backend, registry)
//
// Calls are recorded as strings such as "delete beta.mcserver" or
// "write-chars beta.mcserver stop" so tests can assert ordering directly.
package mock

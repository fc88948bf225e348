// Package session maps server names onto zellij sessions and drives their
// lifecycle.
//
// A server named "survival" lives in the session "survival.mcserver". The
// Backend interface is the only place that talks to zellij. ZellijBackend
// runs the real binary and the controller layers the create, attach and
// tagging semantics on top of it, recording last-used timestamps through a
// LastUsedRecorder.
package session

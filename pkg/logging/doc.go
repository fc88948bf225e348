// Package logging provides the subsystem-tagged logger used throughout mcserver.
//
// It is a thin layer over log/slog. Every record carries a "subsystem" attribute
// so output from the configuration store, the session controller and the CLI
// can be told apart when running with --debug.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelWarn, os.Stderr)
//
//	logging.Debug("SessionController", "Spawning session %s", name)
//	logging.Warn("ConfigStore", "Config file %s is empty", path)
//	logging.Error("Registry", err, "Failed to remove %s", dir)
//
// Core packages only log at debug level; user-facing output is the job of the
// cmd package.
package logging

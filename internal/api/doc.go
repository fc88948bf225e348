// Package api holds the types shared between mcserver's packages: the error
// taxonomy returned by the core, the session lifecycle states and the
// transient Server listing record.
//
// It imports nothing from the rest of the module so that config, servers,
// session and cmd can all depend on it without cycles.
//
// # Errors
//
// Every failure the core can report has a dedicated type or sentinel:
//
//   - IOError: filesystem or process-spawn failures
//   - CommandFailureError: an external tool ran but exited non-zero
//   - ConfigParseError / ConfigSerializeError: settings file problems
//   - PathExpansionError: unresolvable "~" or "$VAR" references
//   - MissingDirectoryError / MissingFileError: expected entities absent
//   - InvalidTimestampFileError: corrupt last-used record
//   - LockPoisonedError: a previous config accessor panicked
//   - InvalidServersDirectoryError / ErrNoServerChild: working-directory inference failed
//
// Callers match them with errors.As and errors.Is; only the cmd package
// prints errors or picks exit codes.
package api

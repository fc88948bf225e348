// Package config owns mcserver's settings.
//
// There are two kinds of configuration:
//
//   - StaticConfig: build-time values (contact string, config directory,
//     release repository) returned by GetStatic. They are set with -ldflags
//     and never change at runtime.
//   - DynamicConfig: the user's settings in <config dir>/config.toml. It holds
//     the servers directory, the default server, java launch flags and the
//     per-server rcon credentials.
//
// # Store
//
// A Store is the single owner of a DynamicConfig. Nothing is read until the
// first access; if no file exists the defaults are written immediately. All
// access goes through With, or View for a copy, which serialize readers and
// writers. If a function passed to With panics, the store is poisoned and
// every later access returns a LockPoisonedError instead of possibly
// half-written data.
//
// EnsureWritten is called once when the process exits. It compares the
// current value with the one loaded from disk and writes only on change.
//
//	store := config.NewStore(config.GetStatic())
//	defer func() {
//	    if err := store.EnsureWritten(); err != nil {
//	        // report as a warning; the command's own result stands
//	    }
//	}()
//
//	if err := store.SetDefaultServer("survival"); err != nil {
//	    return err
//	}
//
// # Paths
//
// Paths may use "~" and "$VAR" references. They are expanded with shell
// semantics; referencing an unset variable is a PathExpansionError rather
// than silently expanding to an empty string.
package config

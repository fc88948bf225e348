// Package rcon opens a remote console to a running server with mcrcon,
// using the connection settings stored in the configuration.
package rcon

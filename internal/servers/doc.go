// Package servers manages the server directories under the servers root.
//
// Every immediate subdirectory of the root is a server. A server's game files
// live in its Server/ subdirectory and the jar to launch is named by
// Server/jarfile.txt. Directories ending in ".template" are templates that
// can be copied into new servers but never deployed.
//
// The registry also owns the per-server ".last_used" record: eight bytes
// holding the little-endian Unix time of the last start or attach.
package servers

// Package terminal answers capability queries for the controlling terminal.
//
// Features:
//   - Process-wide capability store with an override layer (Store, Term)
//   - Compiled terminfo database lookups with TERMINFO/TERMINFO_DIRS search order
//   - Compiled-in fallback descriptions when the system database is missing
//   - 256-color and 24-bit color support resolution from environment and terminfo
//   - Title-setting support heuristic and controlling tty name lookup
//
// Capability values are returned as Go strings and numbers; nothing handed out by the
// store refers to the database of a previous Setup generation.
package terminal

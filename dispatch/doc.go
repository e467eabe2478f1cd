// Package dispatch reacts to changes of shell variables.
//
// A Table maps variable names to callbacks and is frozen once built. The Dispatcher owns
// the table used by the shell: it re-initializes the locale, sets up the terminal capability
// store with fallbacks and patches, resolves colour support and keeps the derived values in a
// status.Registry, notifying the rest of the shell through Hooks.
//
// Startup calls Init once with the variable snapshot; afterwards every mutation the variable
// engine reports goes through VarChange.
package dispatch

// Package cli provides the interactive Health Navigator command-line client.
//
// It wires configuration, the local state database, API services and an
// interactive REPL. Typical flow: restore the persisted session and advisory
// list, start a background token watcher, and execute user commands.
//
// Key features:
//   - Register / Login / Logout, profile view and edit
//   - Advisory list with color filter, detail view, create / edit / delete
//   - Heatmap of advisory locations
//   - Chat with the health assistant
//   - Document vault (images only, kept in memory)
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartTokenWatcher, and runREPL for details.
package cli

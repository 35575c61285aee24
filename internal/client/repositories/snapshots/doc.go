// Package snapshots stores versioned, namespaced state blobs in the local
// SQLite database. One row per key; writes replace the previous value.
package snapshots

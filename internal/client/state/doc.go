// Package state holds the client's application state: the session domain
// (identity, profile, tokens) and the alerts domain (advisory list and the
// detail-view selection).
//
// A Store applies one mutation at a time and hands subscribers a deep copy
// of the resulting state. Mutators on SessionState and AlertsState are plain
// methods so they can be tested without a store.
package state

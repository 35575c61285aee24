// Package client talks to the Health Navigator backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     authentication, profile, alerts and the chat assistant.
//  2. A concrete HTTP implementation (see HTTPClient) with a fixed base URL,
//     a per-request timeout and default headers. A bearer token is attached
//     to every call that is given one.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError carrying the server's message.
// Common conditions match sentinel errors with errors.Is: ErrUnavailable for
// transport failures and timeouts, ErrUnauthorized for 401/403 and
// ErrNotFound for 404.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation.
package client

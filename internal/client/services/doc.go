// Package services contains the application services of the navigator
// client. Each operation performs one remote call through client.Client and
// reconciles the outcome into the state store: status goes to loading, then
// to succeeded or failed with a human-readable message. Every failure is
// also returned to the caller.
package services

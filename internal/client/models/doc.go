// Package models defines the client-side data models of the Health
// Navigator: the user profile, advisories ("cards"), vault documents and
// assistant chat messages.
package models

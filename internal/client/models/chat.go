package models

import "time"

// ChatMessage is one line of an assistant conversation.
type ChatMessage struct {
	Text     string
	FromUser bool
	At       time.Time
}

// ChatReply is the assistant backend's answer. ThreadID identifies the
// conversation and must be echoed on every following message.
type ChatReply struct {
	ThreadID string `json:"thread_id"`
	Message  string `json:"message"`
}

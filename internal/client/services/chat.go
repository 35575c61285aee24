package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/dmitrijs2005/healthnav/internal/client/client"
	"github.com/dmitrijs2005/healthnav/internal/client/models"
	"github.com/dmitrijs2005/healthnav/internal/client/state"
	"github.com/dmitrijs2005/healthnav/internal/client/token"
	"github.com/dmitrijs2005/healthnav/internal/logging"
)

// Disclaimer is shown before every conversation with the assistant.
const Disclaimer = "You're talking to an AI health assistant. This is not a substitute for professional medical advice. Always consult with your physician before making any health-related decisions."

var (
	ErrChatNotStarted = errors.New("chat is not started")
	ErrEmptyMessage   = errors.New("message is empty")
)

// ChatService holds one assistant conversation. The server identifies it by
// the thread id returned when the conversation is opened.
type ChatService struct {
	client client.Client
	store  *state.Store
	log    logging.Logger
	now    func() time.Time

	mu         sync.Mutex
	threadID   string
	transcript []models.ChatMessage
}

func NewChatService(c client.Client, store *state.Store, log logging.Logger) *ChatService {
	return &ChatService{client: c, store: store, log: log.With("service", "chat"), now: time.Now}
}

func (c *ChatService) bearer() (string, error) {
	tok := c.store.Session().AccessToken
	if err := token.Validate(tok).Err(); err != nil {
		return "", err
	}
	return tok, nil
}

// Start opens a new thread and returns the assistant's greeting. Any
// previous conversation is discarded.
func (c *ChatService) Start(ctx context.Context) (models.ChatMessage, error) {
	tok, err := c.bearer()
	if err != nil {
		return models.ChatMessage{}, err
	}

	reply, err := c.client.SendChatMessage(ctx, tok, "", "")
	if err != nil {
		c.log.Warn(ctx, "open chat failed", "error", err)
		return models.ChatMessage{}, fmt.Errorf("open chat: %w", err)
	}
	if reply == nil || reply.ThreadID == "" {
		return models.ChatMessage{}, fmt.Errorf("open chat: %w", errors.New("server returned no thread id"))
	}

	greeting := models.ChatMessage{Text: HTMLToText(reply.Message), At: c.now()}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.threadID = reply.ThreadID
	c.transcript = []models.ChatMessage{greeting}
	return greeting, nil
}

// Send posts text to the open thread and returns the assistant's answer.
// The user's message stays in the transcript even when sending fails.
func (c *ChatService) Send(ctx context.Context, text string) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	c.mu.Lock()
	thread := c.threadID
	if thread != "" {
		c.transcript = append(c.transcript, models.ChatMessage{Text: text, FromUser: true, At: c.now()})
	}
	c.mu.Unlock()
	if thread == "" {
		return models.ChatMessage{}, ErrChatNotStarted
	}

	tok, err := c.bearer()
	if err != nil {
		return models.ChatMessage{}, err
	}

	reply, err := c.client.SendChatMessage(ctx, tok, thread, text)
	if err != nil {
		c.log.Warn(ctx, "send chat message failed", "error", err, "thread", thread)
		return models.ChatMessage{}, fmt.Errorf("send message: %w", err)
	}

	answer := models.ChatMessage{At: c.now()}
	if reply != nil {
		answer.Text = HTMLToText(reply.Message)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// a concurrent Start replaced the thread; drop the stale answer
	if c.threadID == thread {
		c.transcript = append(c.transcript, answer)
	}
	return answer, nil
}

// Transcript returns a copy of the conversation so far.
func (c *ChatService) Transcript() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.ChatMessage(nil), c.transcript...)
}

// ThreadID is the id of the open thread, or "".
func (c *ChatService) ThreadID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.threadID
}

// Reset forgets the conversation.
func (c *ChatService) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.threadID = ""
	c.transcript = nil
}

var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "ul": true, "ol": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "table": true, "blockquote": true, "pre": true,
}

// HTMLToText renders an assistant reply for a terminal. Block elements
// become line breaks, list items get a "- " prefix, runs of blanks collapse
// and script or style content is dropped. Plain text passes through.
func HTMLToText(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))

	var (
		b    strings.Builder
		skip int
	)
	newline := func() {
		out := b.String()
		if out != "" && !strings.HasSuffix(out, "\n") {
			b.WriteByte('\n')
		}
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return tidy(b.String())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case tag == "script" || tag == "style":
				if tt == html.StartTagToken {
					skip++
				}
			case tag == "li":
				newline()
				b.WriteString("- ")
			case blockTags[tag]:
				newline()
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case tag == "script" || tag == "style":
				if skip > 0 {
					skip--
				}
			case blockTags[tag]:
				newline()
			}
		case html.TextToken:
			if skip > 0 {
				continue
			}
			t := z.Text()
			if len(t) == 0 {
				continue
			}
			if isSpace(t[0]) {
				b.WriteByte(' ')
			}
			b.WriteString(strings.Join(strings.Fields(string(t)), " "))
			if isSpace(t[len(t)-1]) {
				b.WriteByte(' ')
			}
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func tidy(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		l = strings.Join(strings.Fields(l), " ")
		if l != "" && l != "-" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

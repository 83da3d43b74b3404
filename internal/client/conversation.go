package client

import (
	"context"
	"strings"
	"sync"

	"deepti.app/relay/internal/model"
	"github.com/google/uuid"
)

// Message is a transcript entry. ID only keys presentation updates; it never
// leaves the client.
type Message struct {
	ID      string
	Role    model.Role
	Content string
}

type EventType int

const (
	EventMessageAppended EventType = iota + 1
	EventSendingChanged
)

// Event describes one state change. Message is set for EventMessageAppended,
// Sending for EventSendingChanged.
type Event struct {
	Type    EventType
	Message Message
	Sending bool
}

type Option func(*Conversation)

// WithGreeting seeds the transcript with an assistant message.
func WithGreeting(text string) Option {
	return func(c *Conversation) {
		c.greeting = text
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(c *Conversation) {
		c.newID = fn
	}
}

const subscriberBuffer = 64

// Conversation is the client-side transcript. At most one relay call is in flight:
// Submit is refused while the sending flag is set.
type Conversation struct {
	transport Transport
	newID     func() string
	greeting  string

	mu       sync.Mutex
	messages []Message
	sending  bool

	subsMu sync.RWMutex
	subs   []chan Event
}

func NewConversation(transport Transport, opts ...Option) *Conversation {
	c := &Conversation{
		transport: transport,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	if strings.TrimSpace(c.greeting) != "" {
		c.messages = append(c.messages, Message{ID: c.newID(), Role: model.RoleAssistant, Content: c.greeting})
	}
	return c
}

// Messages returns a copy of the transcript.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending
}

// Submit appends text as a user message and sends the whole transcript to the relay,
// then appends the reply or an error message. It blocks until the turn is complete.
// It returns false without touching the transcript when text is blank or another
// submission is in flight.
func (c *Conversation) Submit(ctx context.Context, text string) bool {
	content := strings.TrimSpace(text)
	if content == "" {
		return false
	}

	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		return false
	}
	userMsg := Message{ID: c.newID(), Role: model.RoleUser, Content: content}
	c.messages = append(c.messages, userMsg)
	c.sending = true
	history := toHistory(c.messages)
	c.mu.Unlock()

	c.publish(Event{Type: EventMessageAppended, Message: userMsg})
	c.publish(Event{Type: EventSendingChanged, Sending: true})

	reply, err := c.transport.Send(ctx, history)
	content = strings.TrimSpace(reply)
	if err != nil {
		content = errorText(err)
	}

	c.mu.Lock()
	assistantMsg := Message{ID: c.newID(), Role: model.RoleAssistant, Content: content}
	c.messages = append(c.messages, assistantMsg)
	c.sending = false
	c.mu.Unlock()

	c.publish(Event{Type: EventMessageAppended, Message: assistantMsg})
	c.publish(Event{Type: EventSendingChanged, Sending: false})
	return true
}

// Subscribe returns a channel of state changes and a func that closes it.
// Events are dropped for a subscriber whose buffer is full.
func (c *Conversation) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	c.subsMu.Lock()
	c.subs = append(c.subs, ch)
	c.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.subsMu.Lock()
			defer c.subsMu.Unlock()
			for i, s := range c.subs {
				if s == ch {
					c.subs = append(c.subs[:i], c.subs[i+1:]...)
					close(ch)
					return
				}
			}
		})
	}
}

func (c *Conversation) publish(ev Event) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()

	for _, ch := range c.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func toHistory(msgs []Message) model.History {
	h := make(model.History, len(msgs))
	for i, m := range msgs {
		h[i] = model.Message{Role: m.Role, Content: m.Content}
	}
	return h
}

func errorText(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return model.UnexpectedFailure
}

// Package session records a transcript of calculator activity and can
// persist it as YAML. The transcript is append-only and observes the
// event bus rather than the engine, so it never affects calculation.
package session

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dshills/revcalc/internal/event"
)

// Entry is one recorded calculator action.
type Entry struct {
	Seq    int       `yaml:"seq"`
	Token  string    `yaml:"token"`
	Action string    `yaml:"action"` // applied, undone, rejected
	Value  int       `yaml:"value"`
	Reason string    `yaml:"reason,omitempty"`
	At     time.Time `yaml:"at"`
}

// Actions recorded in transcript entries.
const (
	ActionApplied  = "applied"
	ActionUndone   = "undone"
	ActionRejected = "rejected"
)

// Session is a transcript of one calculator run.
type Session struct {
	mu sync.Mutex

	ID      string    `yaml:"id"`
	Started time.Time `yaml:"started"`
	Initial int       `yaml:"initial"`
	Final   int       `yaml:"final"`
	Entries []Entry   `yaml:"entries"`

	subs []event.Subscription
}

// New creates a session for a run that starts at initial.
func New(initial int) *Session {
	return &Session{
		ID:      uuid.NewString(),
		Started: time.Now(),
		Initial: initial,
		Final:   initial,
	}
}

// Attach subscribes the session to calculator activity on the bus.
func (s *Session) Attach(bus *event.Bus) {
	s.subs = append(s.subs, bus.Subscribe("calc.op.*", s.record))
}

// Detach removes the session's bus subscriptions.
func (s *Session) Detach(bus *event.Bus) {
	for _, sub := range s.subs {
		bus.Unsubscribe(sub)
	}
	s.subs = nil
}

func (s *Session) record(ev event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := Entry{
		Seq: len(s.Entries) + 1,
		At:  ev.Metadata.Timestamp,
	}

	switch p := ev.Payload.(type) {
	case event.OpApplied:
		entry.Token = p.Token
		entry.Action = ActionApplied
		entry.Value = p.Value
		s.Final = p.Value
	case event.OpUndone:
		entry.Token = p.Token
		entry.Action = ActionUndone
		entry.Value = p.Value
		s.Final = p.Value
	case event.OpRejected:
		entry.Token = p.Token
		entry.Action = ActionRejected
		entry.Value = s.Final
		entry.Reason = p.Reason
	default:
		return
	}

	s.Entries = append(s.Entries, entry)
}

// Len returns the number of recorded entries.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Entries)
}

// Save writes the transcript to path as YAML.
func (s *Session) Save(path string) error {
	s.mu.Lock()
	data, err := yaml.Marshal(s)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing session %s: %w", path, err)
	}
	return nil
}

// Load reads a previously saved transcript from path.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session %s: %w", path, err)
	}

	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", path, err)
	}
	return &s, nil
}

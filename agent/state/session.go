package state

import (
	"errors"
	"fmt"
	"strings"
	"time"

	contractx "github.com/wanderstay/concierge/agent/contract"
)

var (
	ErrInvalidIdentity = errors.New("identity is empty")
	ErrOrderViolation  = errors.New("turn order violation")
)

// Session is the ordered conversation history bound to one authenticated
// identity. The identity never changes for the session's lifetime; every
// domain call made on the session's behalf uses it.
type Session struct {
	Identity  string           `json:"identity"`
	Turns     []contractx.Turn `json:"turns,omitempty"`
	TurnCount int              `json:"turn_count"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func NewSession(identity string, now time.Time) (*Session, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return nil, ErrInvalidIdentity
	}
	return &Session{
		Identity:  identity,
		UpdatedAt: now.UTC(),
	}, nil
}

// Append adds turns to the history, enforcing the ordering invariant: a
// tool-call turn must be immediately followed by its tool-result turn before
// any assistant text or further tool-call is recorded.
func (s *Session) Append(now time.Time, turns ...contractx.Turn) error {
	if s == nil {
		return errors.New("nil session")
	}
	for _, t := range turns {
		if err := s.checkNext(t); err != nil {
			return err
		}
		if t.At.IsZero() {
			t.At = now.UTC()
		}
		s.Turns = append(s.Turns, t)
		s.TurnCount++
	}
	s.UpdatedAt = now.UTC()
	return nil
}

func (s *Session) checkNext(next contractx.Turn) error {
	last, ok := s.last()
	if ok && last.Role == contractx.RoleToolCall {
		if next.Role != contractx.RoleToolResult {
			return fmt.Errorf("%w: tool-call %q awaiting its result, got role %q",
				ErrOrderViolation, last.Tool, next.Role)
		}
		if next.Tool != last.Tool {
			return fmt.Errorf("%w: tool-result for %q does not match pending call %q",
				ErrOrderViolation, next.Tool, last.Tool)
		}
		return nil
	}
	if next.Role == contractx.RoleToolResult {
		return fmt.Errorf("%w: tool-result for %q without a pending tool-call",
			ErrOrderViolation, next.Tool)
	}
	return nil
}

func (s *Session) last() (contractx.Turn, bool) {
	if s == nil || len(s.Turns) == 0 {
		return contractx.Turn{}, false
	}
	return s.Turns[len(s.Turns)-1], true
}

// Validate re-checks the whole sequence, used when a session is loaded from
// an external store.
func (s *Session) Validate() error {
	if s == nil {
		return errors.New("nil session")
	}
	if strings.TrimSpace(s.Identity) == "" {
		return ErrInvalidIdentity
	}
	replay := Session{Identity: s.Identity}
	for _, t := range s.Turns {
		if err := replay.checkNext(t); err != nil {
			return err
		}
		replay.Turns = append(replay.Turns, t)
	}
	return nil
}

// CloneTurns returns a copy of the turn slice so callers cannot mutate the
// stored history through the returned value.
func (s *Session) CloneTurns() []contractx.Turn {
	if s == nil || len(s.Turns) == 0 {
		return nil
	}
	out := make([]contractx.Turn, len(s.Turns))
	copy(out, s.Turns)
	return out
}

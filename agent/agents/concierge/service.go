package concierge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	contractx "github.com/wanderstay/concierge/agent/contract"
)

const (
	// DefaultMaxRoundTrips bounds the tool-call round trips spent on one
	// incoming message. Unbounded re-entry is a liveness defect, not a
	// feature.
	DefaultMaxRoundTrips = 5

	DefaultFallbackReply = "I'm sorry, I couldn't complete that request right now. Could you try again or rephrase it?"
)

var (
	ErrInvalidMessage = errors.New("message is empty")
)

type Config struct {
	MaxRoundTrips int    `envconfig:"MAX_ROUND_TRIPS" split_words:"true" default:"5"`
	FallbackReply string `envconfig:"FALLBACK_REPLY" split_words:"true"`
}

// Service is the turn loop controller. For each incoming message it drives
// the reasoning round trips, dispatches requested tool calls in emission
// order, and appends every turn to the identity's session history.
//
// Messages for the same identity are serialized; independent identities run
// fully concurrently.
type Service struct {
	store contractx.Store
	model contractx.ReasoningClient
	tools contractx.ToolGateway

	maxRoundTrips int
	fallbackReply string

	mu           sync.Mutex
	sessionLocks map[string]*sync.Mutex
}

func New(store contractx.Store, model contractx.ReasoningClient, tools contractx.ToolGateway, cfg Config) (*Service, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if model == nil {
		return nil, errors.New("reasoning client is required")
	}
	if tools == nil {
		return nil, errors.New("tool gateway is required")
	}

	maxRoundTrips := cfg.MaxRoundTrips
	if maxRoundTrips <= 0 {
		maxRoundTrips = DefaultMaxRoundTrips
	}
	fallbackReply := strings.TrimSpace(cfg.FallbackReply)
	if fallbackReply == "" {
		fallbackReply = DefaultFallbackReply
	}

	return &Service{
		store:         store,
		model:         model,
		tools:         tools,
		maxRoundTrips: maxRoundTrips,
		fallbackReply: fallbackReply,
		sessionLocks:  make(map[string]*sync.Mutex),
	}, nil
}

// HandleMessage processes one incoming user message and returns the final
// natural-language reply. Only an unauthorized caller or a reasoning-service
// failure surfaces as an error; every tool-level failure is absorbed into
// the conversation.
func (s *Service) HandleMessage(ctx context.Context, identity, text string) (string, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return "", contractx.ErrUnauthorized
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %s", contractx.ErrValidation, ErrInvalidMessage)
	}

	lock := s.sessionLock(identity)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.Append(ctx, identity, contractx.Turn{
		Role: contractx.RoleUser,
		Text: text,
	}); err != nil {
		return "", err
	}

	specs := s.tools.Specs()

	for round := 0; round <= s.maxRoundTrips; round++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		history, err := s.store.History(ctx, identity)
		if err != nil {
			return "", err
		}

		reply, err := s.model.Send(ctx, history, specs)
		if err != nil {
			// History stays as of the last fully appended turn so the
			// user may retry.
			return "", err
		}

		if reply.IsFinal() {
			if err := s.store.Append(ctx, identity, contractx.Turn{
				Role: contractx.RoleAssistant,
				Text: reply.Text,
			}); err != nil {
				return "", err
			}
			return reply.Text, nil
		}

		if round == s.maxRoundTrips {
			break
		}

		log.Debug().
			Str("identity", identity).
			Int("round", round+1).
			Int("tool_calls", len(reply.ToolRequests)).
			Msg("executing requested tool calls")

		if err := s.executeBatch(ctx, identity, reply.ToolRequests); err != nil {
			return "", err
		}
	}

	log.Warn().
		Str("identity", identity).
		Int("max_round_trips", s.maxRoundTrips).
		Msg("round-trip cap exceeded, terminating with fallback reply")

	if err := s.store.Append(ctx, identity, contractx.Turn{
		Role: contractx.RoleAssistant,
		Text: s.fallbackReply,
	}); err != nil {
		return "", err
	}
	return s.fallbackReply, nil
}

// executeBatch runs one round's tool calls sequentially, in the order the
// reasoning service emitted them. Each call appends exactly one tool-call
// turn immediately followed by its tool-result turn; a call interrupted by
// the deadline is still recorded as an error outcome, never left dangling.
func (s *Service) executeBatch(ctx context.Context, identity string, requests []contractx.ToolRequest) error {
	for _, req := range requests {
		if err := s.store.Append(ctx, identity, contractx.Turn{
			Role:   contractx.RoleToolCall,
			Tool:   req.Tool,
			CallID: req.CallID,
			Args:   req.Args,
		}); err != nil {
			return err
		}

		result := s.tools.Execute(ctx, identity, req)

		if err := s.store.Append(ctx, identity, contractx.Turn{
			Role:   contractx.RoleToolResult,
			Tool:   req.Tool,
			CallID: req.CallID,
			Result: result.Output(),
		}); err != nil {
			return err
		}
	}
	return nil
}

// Reset discards the identity's session history (logout or explicit reset).
func (s *Service) Reset(ctx context.Context, identity string) error {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return contractx.ErrUnauthorized
	}

	lock := s.sessionLock(identity)
	lock.Lock()
	defer lock.Unlock()
	return s.store.Reset(ctx, identity)
}

func (s *Service) sessionLock(identity string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.sessionLocks[identity]
	if !ok {
		lock = &sync.Mutex{}
		s.sessionLocks[identity] = lock
	}
	return lock
}

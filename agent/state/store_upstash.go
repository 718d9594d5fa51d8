package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	contractx "github.com/wanderstay/concierge/agent/contract"
)

var ErrNilSession = errors.New("session is nil")

const (
	defaultStoreKeyPrefix = "concierge:session:"
	defaultStoreTTL       = 24 * time.Hour
	maxResponseSizeBytes  = 2 << 20
)

// StoreOption customizes UpstashRedisStore.
type StoreOption func(*UpstashRedisStore)

func WithKeyPrefix(prefix string) StoreOption {
	return func(s *UpstashRedisStore) {
		trimmed := strings.TrimSpace(prefix)
		if trimmed != "" {
			s.keyPrefix = trimmed
		}
	}
}

func WithTTL(ttl time.Duration) StoreOption {
	return func(s *UpstashRedisStore) {
		s.ttl = ttl
	}
}

func WithHTTPClient(client *http.Client) StoreOption {
	return func(s *UpstashRedisStore) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// UpstashRedisStore is the durable Session/History Store variant, persisting
// each identity's session in Upstash Redis via REST. Append is load-modify-
// save under an in-process per-identity lock; the store is effectively
// single-writer per key.
type UpstashRedisStore struct {
	baseURL    string
	token      string
	httpClient *http.Client
	keyPrefix  string
	ttl        time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	now func() time.Time
}

var _ contractx.Store = (*UpstashRedisStore)(nil)

type redisRESTResponse struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

type UpstashRedisConfig struct {
	URL     string        `envconfig:"URL" split_words:"true" required:"true"`
	Token   string        `envconfig:"TOKEN" split_words:"true" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

func NewUpstashRedisStore(cfg UpstashRedisConfig, opts ...StoreOption) (*UpstashRedisStore, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, errors.New("upstash redis url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid redis rest url: %w", err)
	}

	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("upstash redis token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	store := &UpstashRedisStore{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		keyPrefix: defaultStoreKeyPrefix,
		ttl:       defaultStoreTTL,
		locks:     make(map[string]*sync.Mutex),
		now:       time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}

	if store.ttl < 0 {
		return nil, errors.New("ttl must be >= 0")
	}

	return store, nil
}

func (s *UpstashRedisStore) History(ctx context.Context, identity string) ([]contractx.Turn, error) {
	sess, err := s.load(ctx, identity)
	if err != nil {
		return nil, err
	}
	return sess.CloneTurns(), nil
}

func (s *UpstashRedisStore) Append(ctx context.Context, identity string, turns ...contractx.Turn) error {
	if len(turns) == 0 {
		return nil
	}

	lock, err := s.identityLock(identity)
	if err != nil {
		return err
	}
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(ctx, identity)
	if err != nil {
		return err
	}
	if err := sess.Append(s.now(), turns...); err != nil {
		return err
	}
	return s.save(ctx, sess)
}

func (s *UpstashRedisStore) Reset(ctx context.Context, identity string) error {
	key, err := s.redisKey(identity)
	if err != nil {
		return err
	}
	_, err = s.exec(ctx, []any{"DEL", key})
	return err
}

// load returns the stored session, or a fresh empty one for an unknown
// identity.
func (s *UpstashRedisStore) load(ctx context.Context, identity string) (*Session, error) {
	key, err := s.redisKey(identity)
	if err != nil {
		return nil, err
	}

	resp, err := s.exec(ctx, []any{"GET", key})
	if err != nil {
		return nil, err
	}

	result := bytes.TrimSpace(resp.Result)
	if len(result) == 0 || bytes.Equal(result, []byte("null")) {
		return NewSession(identity, s.now())
	}

	var encoded string
	if err := json.Unmarshal(result, &encoded); err != nil {
		return nil, fmt.Errorf("decode session payload: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(encoded), &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	if err := sess.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session loaded from store: %w", err)
	}
	return &sess, nil
}

func (s *UpstashRedisStore) save(ctx context.Context, sess *Session) error {
	if sess == nil {
		return ErrNilSession
	}

	key, err := s.redisKey(sess.Identity)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	cmd := []any{"SET", key, string(payload)}
	if s.ttl > 0 {
		cmd = append(cmd, "EX", ttlSeconds(s.ttl))
	}

	_, err = s.exec(ctx, cmd)
	return err
}

func (s *UpstashRedisStore) identityLock(identity string) (*sync.Mutex, error) {
	if strings.TrimSpace(identity) == "" {
		return nil, ErrInvalidIdentity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[identity]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[identity] = lock
	}
	return lock, nil
}

func (s *UpstashRedisStore) redisKey(identity string) (string, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return "", ErrInvalidIdentity
	}
	prefix := strings.TrimSpace(s.keyPrefix)
	if prefix == "" {
		prefix = defaultStoreKeyPrefix
	}
	return prefix + identity, nil
}

func (s *UpstashRedisStore) exec(ctx context.Context, command []any) (*redisRESTResponse, error) {
	if s == nil {
		return nil, errors.New("nil store")
	}
	if len(command) == 0 {
		return nil, errors.New("empty redis command")
	}

	body, err := json.Marshal(command)
	if err != nil {
		return nil, fmt.Errorf("marshal redis command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build redis request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute redis request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("read redis response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("redis http status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed redisRESTResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode redis response: %w", err)
	}
	if parsed.Error != "" {
		return nil, errors.New(parsed.Error)
	}
	return &parsed, nil
}

func ttlSeconds(ttl time.Duration) int64 {
	seconds := ttl / time.Second
	if seconds <= 0 {
		return 1
	}
	if ttl%time.Second != 0 {
		seconds++
	}
	return int64(seconds)
}

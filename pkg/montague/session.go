package montague

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"github.com/vic/montague/internal/log"
	"github.com/vic/montague/pkg/combinator"
	"github.com/vic/montague/pkg/lexicon"
	"github.com/vic/montague/pkg/types"
	"github.com/vic/montague/pkg/world"
)

// Session interprets many sentences against one lexicon. Translations do
// not depend on the world, so they are cached per token sequence and survive
// SetWorld.
type Session struct {
	ID uuid.UUID

	lex   *lexicon.Lexicon
	comb  *combinator.Combinator
	cache *gocache.Cache

	mu    sync.RWMutex
	world *world.Model
}

type SessionOption func(*sessionConfig)

type sessionConfig struct {
	ttl  time.Duration
	comb []combinator.Option
}

// WithCacheTTL sets how long translations stay cached; zero or less keeps
// them for the life of the session.
func WithCacheTTL(d time.Duration) SessionOption {
	return func(c *sessionConfig) { c.ttl = d }
}

// WithCombinator passes options to the session's combinator.
func WithCombinator(opts ...combinator.Option) SessionOption {
	return func(c *sessionConfig) { c.comb = append(c.comb, opts...) }
}

func NewSession(lex *lexicon.Lexicon, m *world.Model, opts ...SessionOption) *Session {
	cfg := sessionConfig{ttl: 10 * time.Minute}
	for _, opt := range opts {
		opt(&cfg)
	}
	if m == nil {
		m = world.New()
	}

	cache := gocache.New(gocache.NoExpiration, 0)
	if cfg.ttl > 0 {
		cache = gocache.New(cfg.ttl, 2*cfg.ttl)
	}

	s := &Session{
		ID:    uuid.New(),
		lex:   lex,
		comb:  combinator.New(lex, cfg.comb...),
		cache: cache,
		world: m,
	}
	log.Debug("session %s: %d words", s.ID, lex.Len())
	return s
}

func (s *Session) Lexicon() *lexicon.Lexicon { return s.lex }

func (s *Session) World() *world.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.world
}

// SetWorld replaces the model used by Interpret.
func (s *Session) SetWorld(m *world.Model) {
	if m == nil {
		m = world.New()
	}
	s.mu.Lock()
	s.world = m
	s.mu.Unlock()
}

func cacheKey(tokens []string) string { return strings.Join(tokens, "\x1f") }

// Translate returns every reading of tokens, of any type.
func (s *Session) Translate(tokens []string) ([]combinator.Candidate, error) {
	key := cacheKey(tokens)
	if v, found := s.cache.Get(key); found {
		log.Debug("session %s: cache hit for %q", s.ID, strings.Join(tokens, " "))
		return append([]combinator.Candidate(nil), v.([]combinator.Candidate)...), nil
	}
	cands, err := s.comb.Parse(tokens)
	if err != nil {
		log.Debug("session %s: %q: %v", s.ID, strings.Join(tokens, " "), err)
		return nil, err
	}
	log.Debug("session %s: %q has %d readings", s.ID, strings.Join(tokens, " "), len(cands))
	s.cache.SetDefault(key, cands)
	return append([]combinator.Candidate(nil), cands...), nil
}

// Interpret evaluates the truth-valued readings of tokens in the current world.
func (s *Session) Interpret(tokens []string) (*Result, error) {
	all, err := s.Translate(tokens)
	if err != nil {
		return nil, err
	}
	cands := combinator.Filter(all, types.Truth)
	if len(cands) == 0 {
		found := lo.Uniq(lo.Map(all, func(c combinator.Candidate, _ int) types.Type { return c.Type }))
		return nil, &combinator.NoParseError{Tokens: append([]string(nil), tokens...), Want: types.Truth, Found: found}
	}
	return evaluate(tokens, cands, s.World())
}

// Forget drops all cached translations.
func (s *Session) Forget() { s.cache.Flush() }

// Cached is the number of cached translations.
func (s *Session) Cached() int { return s.cache.ItemCount() }

package store

import (
	"sync"

	"github.com/user/pagesmith/internal/logging"
	"github.com/user/pagesmith/internal/nav"
	"github.com/user/pagesmith/internal/schema"
	"github.com/user/pagesmith/internal/validation"
)

// subscriberBuffer is the capacity of each subscription channel. A
// subscriber that falls this far behind misses notifications.
const subscriberBuffer = 8

// Event announces a committed configuration
type Event struct {
	Version uint64
}

// Store holds the authoritative page configuration. Readers get deep
// clones; every write goes through validation so the held value is always
// valid, and a rejected write leaves it untouched.
type Store struct {
	mu        sync.RWMutex
	cfg       schema.PageConfig
	version   uint64
	validator *validation.Validator
	logger    *logging.Logger

	subMu  sync.Mutex
	subs   map[int]chan Event
	nextID int
}

// Option configures a Store
type Option func(*Store)

// WithValidator validates writes with v, e.g. one using the English catalog
func WithValidator(v *validation.Validator) Option {
	return func(s *Store) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a store seeded with the default configuration
func New(opts ...Option) *Store {
	s := &Store{
		cfg:       schema.Default(),
		validator: validation.NewValidator(),
		logger:    logging.NewNopLogger(),
		subs:      make(map[int]chan Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a deep copy of the current configuration
func (s *Store) Get() schema.PageConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone()
}

// Snapshot returns a deep copy together with its version
func (s *Store) Snapshot() (schema.PageConfig, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone(), s.version
}

// Version returns the number of committed writes
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Replace validates cfg and makes it the current configuration
func (s *Store) Replace(cfg schema.PageConfig) (schema.PageConfig, error) {
	return s.ReplaceFromInput(cfg)
}

// ReplaceFromInput validates untrusted input (decoded JSON/YAML, raw bytes
// or a typed config), re-derives the navigation from its sections and
// commits the result. Supplied nav items are never trusted.
func (s *Store) ReplaceFromInput(input any) (schema.PageConfig, error) {
	cfg, err := s.validator.Validate(input)
	if err == nil {
		cfg, err = s.validator.Validate(nav.Sync(cfg))
	}
	if err != nil {
		s.logger.Debug("Rejected configuration", logging.Error(err))
		return schema.PageConfig{}, err
	}

	s.mu.Lock()
	version := s.commit(cfg)
	s.mu.Unlock()

	s.notify(version)
	return cfg.Clone(), nil
}

// Update applies patch to a copy of the current configuration, re-derives
// the navigation, validates and commits. The patch never sees the held value.
func (s *Store) Update(patch func(*schema.PageConfig)) (schema.PageConfig, error) {
	s.mu.Lock()
	next := nav.Sync(s.cfg.With(patch))
	cfg, err := s.validator.Validate(next)
	if err != nil {
		s.mu.Unlock()
		s.logger.Debug("Rejected update", logging.Error(err))
		return schema.PageConfig{}, err
	}
	version := s.commit(cfg)
	s.mu.Unlock()

	s.notify(version)
	return cfg.Clone(), nil
}

// Reset restores the default configuration
func (s *Store) Reset() schema.PageConfig {
	s.mu.Lock()
	version := s.commit(schema.Default())
	s.mu.Unlock()

	s.notify(version)
	return s.Get()
}

// commit must be called with mu held
func (s *Store) commit(cfg schema.PageConfig) uint64 {
	s.cfg = cfg
	s.version++
	s.logger.Debug("Configuration committed",
		logging.Uint64("version", s.version),
		logging.Int("sections", len(cfg.Sections)),
	)
	return s.version
}

// Subscribe registers for commit notifications. The returned function
// unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
			close(ch)
		})
	}
}

func (s *Store) notify(version uint64) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for id, ch := range s.subs {
		select {
		case ch <- Event{Version: version}:
		default:
			s.logger.Warn("Dropped store notification",
				logging.Int("subscriber", id),
				logging.Uint64("version", version),
			)
		}
	}
}

package config

import (
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// Store holds the active configuration snapshot. Snapshots are immutable;
// a reload swaps the whole pointer, so a reader that takes one snapshot at
// the start of a tick can never observe a torn update.
type Store struct {
	path string
	cur  atomic.Pointer[Config]
}

// NewStore creates a store with cfg as the active snapshot. path is the
// file Reload re-reads; it may be empty, in which case Reload only
// re-applies defaults and environment overrides.
func NewStore(path string, cfg *Config) *Store {
	s := &Store{path: path}
	s.cur.Store(cfg)
	return s
}

// Snapshot returns the active configuration. The returned value must be
// treated as read-only.
func (s *Store) Snapshot() *Config {
	return s.cur.Load()
}

// Path returns the config file the store reloads from.
func (s *Store) Path() string { return s.path }

// Reload re-reads the configuration from disk and swaps it in. A
// configuration that fails to parse or validate is rejected: the previous
// snapshot stays active and the error is returned.
func (s *Store) Reload() error {
	cfg, err := Load(s.path)
	if err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("config reload rejected, keeping previous configuration")
		return err
	}
	s.cur.Store(cfg)
	log.Info().Str("path", s.path).Msg("configuration reloaded")
	return nil
}

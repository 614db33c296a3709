// Package settings is the persisted configuration store: the rule list,
// schedule list, current quick-block session and display flags, kept in a
// bbolt database. It owns all persistence; the in-memory rule snapshot is
// rebuilt from it on every change.
package settings

import (
	"encoding/binary"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/haukened/tubegate/internal/block/domain"
)

var (
	bucketConfig = []byte("config")
	bucketMeta   = []byte("meta")

	keyRules     = []byte("rules")
	keySchedules = []byte("schedules")
	keySession   = []byte("session")
	keyFlags     = []byte("flags")
	keyVersion   = []byte("version")
	keyUpdated   = []byte("updated_unix")
)

// Flags carries the feature gates plus the cosmetic display toggles. The
// cosmetic map is persisted verbatim for the UI layer; nothing in the
// blocking core interprets its keys.
type Flags struct {
	BlockShorts bool
	BlockPosts  bool
	Cosmetic    map[string]bool
}

// Settings is one full configuration snapshot as loaded from the store.
type Settings struct {
	Rules     []domain.Rule
	Schedules []domain.Schedule
	Session   domain.QuickBlockSession
	Flags     Flags
	Version   uint64
}

// Gates projects the feature gates into the domain type.
func (s Settings) Gates() domain.FeatureGates {
	return domain.FeatureGates{BlockShorts: s.Flags.BlockShorts, BlockPosts: s.Flags.BlockPosts}
}

// Store is a bbolt-backed settings store.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the settings database at path and ensures buckets
// exist.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open settings db: %w", err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketConfig); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketMeta)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Load reads the full settings snapshot. Missing keys decode to empty
// values, so a freshly created database loads as an empty configuration.
func (s *Store) Load() (Settings, error) {
	var out Settings
	err := s.db.View(func(tx *bbolt.Tx) error {
		cfg := tx.Bucket(bucketConfig)
		meta := tx.Bucket(bucketMeta)

		rules, err := decodeRules(cfg.Get(keyRules))
		if err != nil {
			return err
		}
		schedules, err := decodeSchedules(cfg.Get(keySchedules))
		if err != nil {
			return err
		}
		session, err := decodeSession(cfg.Get(keySession))
		if err != nil {
			return err
		}
		flags, err := decodeFlags(cfg.Get(keyFlags))
		if err != nil {
			return err
		}

		out = Settings{
			Rules:     rules,
			Schedules: schedules,
			Session:   session,
			Flags:     flags,
			Version:   readUint64(meta.Get(keyVersion)),
		}
		return nil
	})
	if err != nil {
		return Settings{}, err
	}
	return out, nil
}

// ReplaceRules writes the full rule list, preserving slice order, and bumps
// the version.
func (s *Store) ReplaceRules(rules []domain.Rule) error {
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("rule %q: %w", r.ID, err)
		}
	}
	buf, err := encodeRules(rules)
	if err != nil {
		return err
	}
	return s.put(keyRules, buf)
}

// ReplaceSchedules writes the full schedule list and bumps the version.
func (s *Store) ReplaceSchedules(schedules []domain.Schedule) error {
	for _, sc := range schedules {
		if err := sc.Validate(); err != nil {
			return fmt.Errorf("schedule %q: %w", sc.ID, err)
		}
	}
	buf, err := encodeSchedules(schedules)
	if err != nil {
		return err
	}
	return s.put(keySchedules, buf)
}

// SetSession records the current quick-block session. Expired sessions are
// left in place; they read as inactive and are simply overwritten by the
// next quick-block action.
func (s *Store) SetSession(session domain.QuickBlockSession) error {
	buf, err := encodeSession(session)
	if err != nil {
		return err
	}
	return s.put(keySession, buf)
}

// SetFlags records the feature gates and cosmetic toggles.
func (s *Store) SetFlags(flags Flags) error {
	buf, err := encodeFlags(flags)
	if err != nil {
		return err
	}
	return s.put(keyFlags, buf)
}

// put writes one config value and bumps version and updated timestamp in the
// same transaction.
func (s *Store) put(key, value []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketConfig).Put(key, value); err != nil {
			return err
		}
		meta := tx.Bucket(bucketMeta)
		next := readUint64(meta.Get(keyVersion)) + 1
		if err := meta.Put(keyVersion, writeUint64(next)); err != nil {
			return err
		}
		return meta.Put(keyUpdated, writeUint64(uint64(time.Now().Unix())))
	})
}

func readUint64(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

func writeUint64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

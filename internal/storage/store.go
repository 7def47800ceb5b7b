// Package storage provides the durable key/value store shared by every
// context: values are JSON blobs in a single sqlite table, and every write
// is broadcast to subscribers so live config changes propagate without
// polling.
package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Entry is a single persisted key/value pair.
type Entry struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}

// Change describes one completed write. OldValue is nil when the key did
// not exist before the write; NewValue is nil when the key was deleted.
type Change struct {
	Key      string
	OldValue json.RawMessage
	NewValue json.RawMessage
}

// Subscriber receives every Change after it is durably written.
type Subscriber func(Change)

// Store is the gorm-backed key/value store.
type Store struct {
	db *gorm.DB

	mu          sync.RWMutex
	subscribers map[int]Subscriber
	nextSubID   int
}

// Open opens (or creates) the store at the given sqlite path.
func Open(dbPath string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Storage initialized at %s", dbPath)

	return &Store{
		db:          db,
		subscribers: make(map[int]Subscriber),
	}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Get unmarshals the value stored under key into dest. The boolean reports
// whether the key existed; a missing key leaves dest untouched.
func (s *Store) Get(key string, dest any) (bool, error) {
	var entry Entry
	err := s.db.Where("key = ?", key).First(&entry).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(entry.Value, dest); err != nil {
		return false, fmt.Errorf("decode stored value for %q: %w", key, err)
	}
	return true, nil
}

// Put marshals value and writes it under key, then notifies subscribers.
func (s *Store) Put(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value for %q: %w", key, err)
	}

	var old Entry
	var oldValue json.RawMessage
	if err := s.db.Where("key = ?", key).First(&old).Error; err == nil {
		oldValue = json.RawMessage(old.Value)
	}

	entry := Entry{Key: key, Value: raw, UpdatedAt: time.Now()}
	if err := s.db.Save(&entry).Error; err != nil {
		return err
	}

	s.notify(Change{Key: key, OldValue: oldValue, NewValue: raw})
	return nil
}

// Delete removes the key if present and notifies subscribers.
func (s *Store) Delete(key string) error {
	var old Entry
	err := s.db.Where("key = ?", key).First(&old).Error
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.db.Where("key = ?", key).Delete(&Entry{}).Error; err != nil {
		return err
	}

	s.notify(Change{Key: key, OldValue: json.RawMessage(old.Value)})
	return nil
}

// Subscribe registers fn for every subsequent change. The returned func
// removes the subscription.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) notify(change Change) {
	s.mu.RLock()
	subs := make([]Subscriber, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(change)
	}
}
